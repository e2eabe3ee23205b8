package domain

import (
	"context"
	"io"
	"time"
)

// PaperType classifies a submission.
type PaperType string

const (
	PaperTypeOral     PaperType = "oral"
	PaperTypePoster   PaperType = "poster"
	PaperTypeWorkshop PaperType = "workshop"
)

// Valid reports whether t is a known paper type.
func (t PaperType) Valid() bool {
	return t == PaperTypeOral || t == PaperTypePoster || t == PaperTypeWorkshop
}

// PaperStatus is the review status of a paper. Transitions are performed only
// by staff and are deliberately unrestricted: accepted and rejected are
// terminal by convention, not enforced.
type PaperStatus string

const (
	PaperStatusSubmitted PaperStatus = "submitted"
	PaperStatusAccepted  PaperStatus = "accepted"
	PaperStatusRejected  PaperStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s PaperStatus) Valid() bool {
	return s == PaperStatusSubmitted || s == PaperStatusAccepted || s == PaperStatusRejected
}

// Paper is a submission to an event by an author.
// swagger:model Paper
type Paper struct {
	ID        string      `json:"id"`
	EventID   string      `json:"event_id"`
	AuthorID  string      `json:"author_id"`
	Title     string      `json:"title"`
	Abstract  string      `json:"abstract"`
	Keywords  string      `json:"keywords"`
	PaperType PaperType   `json:"paper_type"`
	PDFPath   *string     `json:"pdf_file,omitempty"`
	Status    PaperStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// FileUpload carries an inbound multipart file. Size and ContentType come
// from the multipart part headers and are validated before any persistent
// write happens.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// PaperSubmission carries the author-supplied fields of a new paper. Author
// and event are never client-supplied; they come from the request context and
// path respectively.
type PaperSubmission struct {
	Title     string
	Abstract  string
	Keywords  string
	PaperType PaperType
}

// PaperRepository defines paper storage.
type PaperRepository interface {
	Create(ctx context.Context, paper *Paper) error
	GetByID(ctx context.Context, id string) (*Paper, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Paper, error)
	UpdateStatus(ctx context.Context, id string, status PaperStatus) error
	UpdatePDFPath(ctx context.Context, id, pdfPath string) error
}

// PaperService defines submission and review business logic.
type PaperService interface {
	Submit(ctx context.Context, actor *User, eventID string, input *PaperSubmission, file *FileUpload) (*Paper, error)
	SetStatus(ctx context.Context, actor *User, paperID string, status PaperStatus) (*Paper, error)
	ReplacePDF(ctx context.Context, actor *User, paperID string, file *FileUpload) (*Paper, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Paper, error)
	Get(ctx context.Context, paperID string) (*Paper, error)
}
