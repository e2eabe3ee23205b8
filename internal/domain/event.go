package domain

import (
	"context"
	"time"
)

// Event represents a conference event together with its topic associations
// and per-day schedule children. Topics and Schedules are populated on the
// detail projection; list projections leave them nil.
// swagger:model Event
type Event struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Topics      []*Topic         `json:"topics,omitempty"`
	Schedules   []*EventSchedule `json:"schedules,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// EventSchedule is a per-day entry of an event. (event, date) is unique and
// schedules are always returned ordered by date ascending.
// swagger:model EventSchedule
type EventSchedule struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Details string    `json:"details"`
}

// TopicInput names a topic to associate with an event. Topics are global and
// resolved by exact name match, created on first reference.
type TopicInput struct {
	Name string `json:"name"`
}

// ScheduleInput is one schedule child supplied on an event write.
type ScheduleInput struct {
	Title   string
	Date    time.Time
	Details string
}

// EventPatch is a partial update of an event. Nil scalar fields are left
// untouched. The collection fields distinguish absent from empty: a nil
// pointer means "leave the collection alone", a pointer to an empty slice
// clears it, and a pointer to a non-empty slice replaces it entirely.
type EventPatch struct {
	Title       *string
	Description *string
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
	Topics      *[]TopicInput
	Schedules   *[]ScheduleInput
}

// EventFilter narrows and paginates the public event list. TopicIDs applies
// OR semantics: events linked to any of the given topics match.
type EventFilter struct {
	TopicIDs []string
	Page     int
	PageSize int
}

// EventRepository defines the interface for event aggregate storage. Create
// and Update must apply the event row and its topic/schedule side effects in
// a single transaction: any child failure rolls back the whole write.
type EventRepository interface {
	Create(ctx context.Context, event *Event, topics []TopicInput, schedules []ScheduleInput) error
	Update(ctx context.Context, eventID string, patch *EventPatch) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, topicIDs []string, offset, limit int) ([]*Event, int, error)
	Delete(ctx context.Context, id string) error
}

// EventCreate carries all fields for creating an event.
type EventCreate struct {
	Title       string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	Topics      []TopicInput
	Schedules   []ScheduleInput
}

// EventService defines the business logic for the event aggregate.
// Writes are staff-only; reads are public.
type EventService interface {
	Create(ctx context.Context, actor *User, input *EventCreate) (*Event, error)
	Update(ctx context.Context, actor *User, eventID string, patch *EventPatch) (*Event, error)
	Delete(ctx context.Context, actor *User, eventID string) error
	Get(ctx context.Context, eventID string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, int, error)
}
