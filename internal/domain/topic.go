package domain

import "context"

// Topic is a global, name-deduplicated label shared across events. There is
// no direct create operation: topics come into existence through event writes.
// swagger:model Topic
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TopicRepository defines storage for global topics.
type TopicRepository interface {
	List(ctx context.Context) ([]*Topic, error)
	UpdateName(ctx context.Context, topicID, name string) error
	Delete(ctx context.Context, topicID string) error
}

// TopicService defines topic reads (public) and staff-only maintenance.
type TopicService interface {
	List(ctx context.Context) ([]*Topic, error)
	Rename(ctx context.Context, actor *User, topicID, name string) error
	Delete(ctx context.Context, actor *User, topicID string) error
}
