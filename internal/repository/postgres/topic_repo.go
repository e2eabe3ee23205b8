package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"confdesk/internal/domain"
)

type topicRepository struct {
	DB *sql.DB
}

// NewTopicRepository returns a domain.TopicRepository implemented with Postgres.
// Topic creation has no repository method: topics are created inside the
// event aggregate write.
func NewTopicRepository(db *sql.DB) domain.TopicRepository {
	return &topicRepository{DB: db}
}

func (r *topicRepository) List(ctx context.Context) ([]*domain.Topic, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM topics ORDER BY name DESC`)
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

func (r *topicRepository) UpdateName(ctx context.Context, topicID, name string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE topics SET name = $2 WHERE id = $1`, topicID, name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("topic name already exists: %w", domain.ErrConflict)
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *topicRepository) Delete(ctx context.Context, topicID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, topicID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
