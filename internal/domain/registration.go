package domain

import (
	"context"
	"time"
)

// RegistrationPlan is the plan a user registers under. The price for each
// plan is looked up server-side at registration time and never supplied by
// the client.
type RegistrationPlan string

const (
	PlanGeneral  RegistrationPlan = "general"
	PlanStudent  RegistrationPlan = "student"
	PlanWorkshop RegistrationPlan = "workshop"
)

// PriceTable maps a plan to its price in minor currency units. It is built
// from configuration at startup and injected into the registration service;
// it must not be mutated afterwards.
type PriceTable map[RegistrationPlan]int64

// Price returns the price for a plan and whether the plan is known.
func (t PriceTable) Price(plan RegistrationPlan) (int64, bool) {
	price, ok := t[plan]
	return price, ok
}

// EventRegistration ties a user to an event. (user, event) is unique; Price
// is the price at the time of registration and immutable afterwards.
// swagger:model EventRegistration
type EventRegistration struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	EventID   string           `json:"event_id"`
	Plan      RegistrationPlan `json:"plan"`
	Price     int64            `json:"price"`
	CreatedAt time.Time        `json:"created_at"`
}

// EventRegistrationRepository defines registration storage. Create must
// surface a unique-constraint violation on (user, event) as ErrConflict:
// the constraint, not the service-level existence check, is the
// authoritative guard against racing registrations.
type EventRegistrationRepository interface {
	Create(ctx context.Context, reg *EventRegistration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	DeleteByEventAndUser(ctx context.Context, eventID, userID string) error
}

// RegistrationService defines registration business logic. All three
// operations are gated on role ∈ {author, participant}; the staff flag does
// not bypass the role gate.
type RegistrationService interface {
	Register(ctx context.Context, actor *User, eventID string, plan RegistrationPlan) (*EventRegistration, error)
	Cancel(ctx context.Context, actor *User, eventID string) error
	GetMyRegistration(ctx context.Context, actor *User, eventID string) (*EventRegistration, error)
}
