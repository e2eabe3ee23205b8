// Package authz is the authorization policy engine: a stateless, pure
// mapping of (user, action, resource) to allow or deny. A denial for an
// anonymous caller wraps domain.ErrUnauthorized; a denial for an
// authenticated caller wraps domain.ErrForbidden, so the two stay
// distinguishable all the way to the transport layer.
package authz

import (
	"fmt"

	"confdesk/internal/domain"
)

// Action is the operation being attempted on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is the type of resource being acted on.
type Resource string

const (
	ResourceEvent          Resource = "event"
	ResourceTopic          Resource = "topic"
	ResourcePaper          Resource = "paper"
	ResourceRegistration   Resource = "registration"
	ResourceContactMessage Resource = "contact_message"
)

// Target carries object-level context for ownership checks. Nil when the
// check is type-level only.
type Target struct {
	OwnerID string
}

// Authorize returns nil when user may perform action on the given resource
// type, otherwise an error wrapping domain.ErrUnauthorized (anonymous) or
// domain.ErrForbidden (authenticated but denied) with the deny reason.
func Authorize(user *domain.User, action Action, resource Resource, target *Target) error {
	switch resource {
	case ResourceEvent, ResourceTopic:
		if action == ActionRead {
			return nil
		}
		return requireStaff(user, string(resource)+" writes are restricted to staff")

	case ResourcePaper:
		switch action {
		case ActionRead:
			return nil
		case ActionCreate:
			if user == nil {
				return deny(user, "authentication required to submit a paper")
			}
			if user.IsStaff || user.Role == domain.RoleAuthor {
				return nil
			}
			return deny(user, "only authors or staff may submit papers")
		default:
			return requireStaff(user, "paper review is restricted to staff")
		}

	case ResourceRegistration:
		// Role-only gate: the staff flag does not substitute for a role.
		if user == nil {
			return deny(user, "authentication required for event registration")
		}
		if !user.Role.Valid() {
			return deny(user, "registration requires an author or participant role")
		}
		switch action {
		case ActionRead, ActionDelete:
			if target != nil && target.OwnerID != user.ID {
				return deny(user, "registrations belong to their owner")
			}
			return nil
		case ActionCreate:
			return nil
		default:
			return deny(user, "registrations cannot be updated")
		}

	case ResourceContactMessage:
		if user == nil {
			return deny(user, "authentication required for contact messages")
		}
		switch action {
		case ActionRead:
			if user.IsStaff {
				return nil
			}
			if target != nil && target.OwnerID != user.ID {
				return deny(user, "contact messages are visible to their owner only")
			}
			return nil
		case ActionCreate:
			return nil
		default:
			return deny(user, "contact messages cannot be modified")
		}
	}

	return deny(user, fmt.Sprintf("unknown resource %q", resource))
}

func requireStaff(user *domain.User, reason string) error {
	if user != nil && user.IsStaff {
		return nil
	}
	return deny(user, reason)
}

func deny(user *domain.User, reason string) error {
	if user == nil {
		return fmt.Errorf("%s: %w", reason, domain.ErrUnauthorized)
	}
	return fmt.Errorf("%s: %w", reason, domain.ErrForbidden)
}
