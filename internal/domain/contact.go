package domain

import (
	"context"
	"time"
)

// ContactMessage is a message from a user to the organizers. It has no
// status or workflow; it is an owned log entry.
// swagger:model ContactMessage
type ContactMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessageRepository defines contact message storage. List applies the
// ownership filter in the query itself: a nil ownerID returns all messages
// (staff view), otherwise only the owner's.
type ContactMessageRepository interface {
	Create(ctx context.Context, msg *ContactMessage) error
	GetByID(ctx context.Context, id string) (*ContactMessage, error)
	List(ctx context.Context, ownerID *string) ([]*ContactMessage, error)
}

// ContactService defines contact message business logic.
type ContactService interface {
	Create(ctx context.Context, actor *User, subject, message string) (*ContactMessage, error)
	List(ctx context.Context, actor *User) ([]*ContactMessage, error)
	Get(ctx context.Context, actor *User, id string) (*ContactMessage, error)
}
