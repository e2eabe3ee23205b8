package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"confdesk/internal/domain"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

// NewEventRegistrationRepository returns a domain.EventRegistrationRepository
// implemented with Postgres.
func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{DB: db}
}

// Create inserts a registration. The unique (user_id, event_id) constraint is
// the authoritative duplicate guard: a violation is returned as
// domain.ErrConflict so a racing second registration fails cleanly.
func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (user_id, event_id, plan, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.UserID, reg.EventID, reg.Plan, reg.Price, reg.CreatedAt).
		Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("already registered for event: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *eventRegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	query := `
		SELECT id, user_id, event_id, plan, price, created_at
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg := &domain.EventRegistration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.Plan, &reg.Price, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) DeleteByEventAndUser(ctx context.Context, eventID, userID string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
