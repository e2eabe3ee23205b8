package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confdesk/internal/authz"
	"confdesk/internal/domain"
)

type contactService struct {
	contactRepo domain.ContactMessageRepository
}

// NewContactService creates a ContactService.
func NewContactService(contactRepo domain.ContactMessageRepository) domain.ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Create(ctx context.Context, actor *domain.User, subject, message string) (*domain.ContactMessage, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, authz.ResourceContactMessage, nil); err != nil {
		return nil, err
	}
	if subject == "" || message == "" {
		return nil, fmt.Errorf("subject and message are required: %w", domain.ErrInvalidInput)
	}

	msg := &domain.ContactMessage{
		UserID:    actor.ID,
		Subject:   subject,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return msg, nil
}

func (s *contactService) List(ctx context.Context, actor *domain.User) ([]*domain.ContactMessage, error) {
	if err := authz.Authorize(actor, authz.ActionRead, authz.ResourceContactMessage, nil); err != nil {
		return nil, err
	}

	// Staff see everything; everyone else only their own. The filter lives
	// in the query so there is no post-filtering of rows in memory.
	var ownerID *string
	if !actor.IsStaff {
		ownerID = &actor.ID
	}
	msgs, err := s.contactRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}

func (s *contactService) Get(ctx context.Context, actor *domain.User, id string) (*domain.ContactMessage, error) {
	msg, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get contact message: %w", err)
	}

	if err := authz.Authorize(actor, authz.ActionRead, authz.ResourceContactMessage, &authz.Target{OwnerID: msg.UserID}); err != nil {
		return nil, err
	}
	return msg, nil
}
