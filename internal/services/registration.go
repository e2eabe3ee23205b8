package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"confdesk/internal/authz"
	"confdesk/internal/domain"
)

type registrationService struct {
	registrationRepo domain.EventRegistrationRepository
	eventRepo        domain.EventRepository
	prices           domain.PriceTable
	emailService     domain.EmailService
	logger           *slog.Logger
}

// NewRegistrationService creates a RegistrationService. The price table is
// injected configuration; it is read-only and prices are captured on the
// registration row at creation time.
func NewRegistrationService(
	registrationRepo domain.EventRegistrationRepository,
	eventRepo domain.EventRepository,
	prices domain.PriceTable,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		prices:           prices,
		emailService:     emailService,
		logger:           logger,
	}
}

func (s *registrationService) Register(ctx context.Context, actor *domain.User, eventID string, plan domain.RegistrationPlan) (*domain.EventRegistration, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, authz.ResourceRegistration, nil); err != nil {
		return nil, err
	}

	price, ok := s.prices.Price(plan)
	if !ok {
		return nil, fmt.Errorf("unknown registration plan %q: %w", plan, domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Advisory pre-check; the unique constraint on (user, event) is the
	// authoritative guard against a racing duplicate.
	if _, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, actor.ID); err == nil {
		return nil, fmt.Errorf("already registered for event: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get event registration: %w", err)
	}

	reg := &domain.EventRegistration{
		UserID:    actor.ID,
		EventID:   eventID,
		Plan:      plan,
		Price:     price,
		CreatedAt: time.Now(),
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create event registration: %w", err)
	}

	if s.emailService != nil {
		data := &domain.RegistrationEmailData{
			Email:      actor.Email,
			Name:       actor.Name,
			EventTitle: event.Title,
			Plan:       string(plan),
			Price:      price,
		}
		if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.Warn("registration confirmation email failed", "event_id", eventID, "err", err)
		}
	}

	return reg, nil
}

func (s *registrationService) Cancel(ctx context.Context, actor *domain.User, eventID string) error {
	if err := authz.Authorize(actor, authz.ActionDelete, authz.ResourceRegistration, nil); err != nil {
		return err
	}

	if err := s.registrationRepo.DeleteByEventAndUser(ctx, eventID, actor.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event registration: %w", err)
	}
	return nil
}

func (s *registrationService) GetMyRegistration(ctx context.Context, actor *domain.User, eventID string) (*domain.EventRegistration, error) {
	if err := authz.Authorize(actor, authz.ActionRead, authz.ResourceRegistration, nil); err != nil {
		return nil, err
	}

	reg, err := s.registrationRepo.GetByEventAndUser(ctx, eventID, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event registration: %w", err)
	}
	return reg, nil
}
