package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"confdesk/internal/domain"

	"github.com/lib/pq"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

// Create inserts the event row, resolves each topic name (find-or-create by
// exact name) and links it, and inserts the schedule children, all in one
// transaction. A duplicate (event, date) schedule rolls back the whole write
// and returns domain.ErrConflict.
func (r *eventRepository) Create(ctx context.Context, event *domain.Event, topics []domain.TopicInput, schedules []domain.ScheduleInput) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (owner_id, title, description, location, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query,
		event.OwnerID, event.Title, event.Description, event.Location,
		event.StartDate, event.EndDate, event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	if err := linkTopics(ctx, tx, event.ID, topics); err != nil {
		return err
	}
	if err := insertSchedules(ctx, tx, event.ID, schedules); err != nil {
		return err
	}

	return tx.Commit()
}

// Update merges non-nil scalar fields and applies full-replace semantics to
// the topic and schedule collections: a nil collection pointer leaves the
// collection untouched, an empty slice clears it, a non-empty slice replaces
// it. Everything runs in one transaction.
func (r *eventRepository) Update(ctx context.Context, eventID string, patch *domain.EventPatch) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if patch.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *patch.Title)
		n++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *patch.Description)
		n++
	}
	if patch.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *patch.Location)
		n++
	}
	if patch.StartDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_date = $%d", n))
		args = append(args, *patch.StartDate)
		n++
	}
	if patch.EndDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_date = $%d", n))
		args = append(args, *patch.EndDate)
		n++
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if patch.Topics != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_topics WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("clear event topics: %w", err)
		}
		if err := linkTopics(ctx, tx, eventID, *patch.Topics); err != nil {
			return err
		}
	}

	if patch.Schedules != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_schedules WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("clear event schedules: %w", err)
		}
		if err := insertSchedules(ctx, tx, eventID, *patch.Schedules); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// linkTopics resolves each topic name to a global topic row, creating it on
// first reference, and links it to the event. The upsert keeps the
// find-or-create race-safe; the link insert is ON CONFLICT DO NOTHING so a
// name repeated in the input degenerates to a single association.
func linkTopics(ctx context.Context, tx *sql.Tx, eventID string, topics []domain.TopicInput) error {
	for _, topic := range topics {
		var topicID string
		err := tx.QueryRowContext(ctx, `SELECT id FROM topics WHERE name = $1`, topic.Name).Scan(&topicID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("find topic %q: %w", topic.Name, err)
		}
		if errors.Is(err, sql.ErrNoRows) {
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO topics (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`,
				topic.Name,
			).Scan(&topicID); err != nil {
				return fmt.Errorf("create topic %q: %w", topic.Name, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_topics (event_id, topic_id) VALUES ($1, $2) ON CONFLICT (event_id, topic_id) DO NOTHING`,
			eventID, topicID,
		); err != nil {
			return fmt.Errorf("link topic %q: %w", topic.Name, err)
		}
	}
	return nil
}

func insertSchedules(ctx context.Context, tx *sql.Tx, eventID string, schedules []domain.ScheduleInput) error {
	for _, s := range schedules {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_schedules (event_id, title, date, details) VALUES ($1, $2, $3, $4)`,
			eventID, s.Title, s.Date, s.Details,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("duplicate schedule date for event: %w", domain.ErrConflict)
			}
			return fmt.Errorf("insert schedule: %w", err)
		}
	}
	return nil
}

// GetByID returns the detail projection: the event row with topics and
// schedules expanded, schedules ordered by date ascending.
func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, owner_id, title, description, location, start_date, end_date, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.Location,
		&e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	e.Topics, err = r.listTopics(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list event topics: %w", err)
	}
	e.Schedules, err = r.listSchedules(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list event schedules: %w", err)
	}
	return e, nil
}

func (r *eventRepository) listTopics(ctx context.Context, eventID string) ([]*domain.Topic, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name FROM topics t
		 JOIN event_topics et ON et.topic_id = t.id
		 WHERE et.event_id = $1
		 ORDER BY t.name`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topics := make([]*domain.Topic, 0)
	for rows.Next() {
		t := &domain.Topic{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *eventRepository) listSchedules(ctx context.Context, eventID string) ([]*domain.EventSchedule, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, title, date, details
		 FROM event_schedules
		 WHERE event_id = $1
		 ORDER BY date ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.EventSchedule, 0)
	for rows.Next() {
		s := &domain.EventSchedule{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.Title, &s.Date, &s.Details); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// List returns the list projection (no nested expansion), newest first,
// optionally filtered to events linked to any of the given topic IDs.
func (r *eventRepository) List(ctx context.Context, topicIDs []string, offset, limit int) ([]*domain.Event, int, error) {
	where := ""
	args := []interface{}{}
	if len(topicIDs) > 0 {
		where = `WHERE id IN (SELECT event_id FROM event_topics WHERE topic_id = ANY($1))`
		args = append(args, pq.Array(topicIDs))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events %s`, where)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, title, description, location, start_date, end_date, created_at, updated_at
		FROM events %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.Location,
			&e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "23505"
}
