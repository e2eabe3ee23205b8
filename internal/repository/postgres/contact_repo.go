package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confdesk/internal/domain"
)

type contactMessageRepository struct {
	DB *sql.DB
}

// NewContactMessageRepository returns a domain.ContactMessageRepository
// implemented with Postgres.
func NewContactMessageRepository(db *sql.DB) domain.ContactMessageRepository {
	return &contactMessageRepository{DB: db}
}

func (r *contactMessageRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (user_id, subject, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, msg.UserID, msg.Subject, msg.Message, msg.CreatedAt).
		Scan(&msg.ID)
}

func (r *contactMessageRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	query := `
		SELECT id, user_id, subject, message, created_at
		FROM contact_messages
		WHERE id = $1
	`
	msg := &domain.ContactMessage{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&msg.ID, &msg.UserID, &msg.Subject, &msg.Message, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return msg, nil
}

// List applies the ownership filter in the query itself so non-staff result
// sets stay bounded at the store. A nil ownerID returns every message.
func (r *contactMessageRepository) List(ctx context.Context, ownerID *string) ([]*domain.ContactMessage, error) {
	query := `
		SELECT id, user_id, subject, message, created_at
		FROM contact_messages
	`
	args := []interface{}{}
	if ownerID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]*domain.ContactMessage, 0)
	for rows.Next() {
		msg := &domain.ContactMessage{}
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Subject, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}
