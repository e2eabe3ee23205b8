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

const (
	pdfContentType = "application/pdf"
	maxPDFSize     = 10 << 20 // 10 MiB

	paperUploadFolder = "papers"
)

type paperService struct {
	paperRepo    domain.PaperRepository
	eventRepo    domain.EventRepository
	userRepo     domain.UserRepository
	fileStorage  domain.FileStorage
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewPaperService creates a PaperService.
func NewPaperService(
	paperRepo domain.PaperRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	fileStorage domain.FileStorage,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.PaperService {
	return &paperService{
		paperRepo:    paperRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		fileStorage:  fileStorage,
		emailService: emailService,
		logger:       logger,
	}
}

// validatePDF checks content type and size limits. It runs before any
// persistent write so an invalid upload leaves no blob and no row behind.
func validatePDF(file *domain.FileUpload) error {
	if file == nil || file.Reader == nil {
		return fmt.Errorf("pdf_file is required: %w", domain.ErrInvalidInput)
	}
	if file.ContentType != pdfContentType {
		return fmt.Errorf("pdf_file: only PDF files are allowed: %w", domain.ErrInvalidInput)
	}
	if file.Size > maxPDFSize {
		return fmt.Errorf("pdf_file: PDF must be <= 10MB: %w", domain.ErrInvalidInput)
	}
	return nil
}

func (s *paperService) Submit(ctx context.Context, actor *domain.User, eventID string, input *domain.PaperSubmission, file *domain.FileUpload) (*domain.Paper, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, authz.ResourcePaper, nil); err != nil {
		return nil, err
	}

	if !input.PaperType.Valid() {
		return nil, fmt.Errorf("unknown paper type %q: %w", input.PaperType, domain.ErrInvalidInput)
	}
	if err := validatePDF(file); err != nil {
		return nil, err
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	pdfPath, err := s.fileStorage.Save(ctx, paperUploadFolder, file.Filename, file.Reader)
	if err != nil {
		return nil, fmt.Errorf("store pdf: %w", err)
	}

	paper := &domain.Paper{
		EventID:   eventID,
		AuthorID:  actor.ID,
		Title:     input.Title,
		Abstract:  input.Abstract,
		Keywords:  input.Keywords,
		PaperType: input.PaperType,
		PDFPath:   &pdfPath,
		Status:    domain.PaperStatusSubmitted,
		CreatedAt: time.Now(),
	}
	if err := s.paperRepo.Create(ctx, paper); err != nil {
		if cleanupErr := s.fileStorage.Delete(ctx, pdfPath); cleanupErr != nil {
			s.logger.Warn("orphan pdf cleanup failed", "path", pdfPath, "err", cleanupErr)
		}
		return nil, fmt.Errorf("create paper: %w", err)
	}
	return paper, nil
}

func (s *paperService) SetStatus(ctx context.Context, actor *domain.User, paperID string, status domain.PaperStatus) (*domain.Paper, error) {
	if err := authz.Authorize(actor, authz.ActionUpdate, authz.ResourcePaper, nil); err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, fmt.Errorf("unknown paper status %q: %w", status, domain.ErrInvalidInput)
	}

	if err := s.paperRepo.UpdateStatus(ctx, paperID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update paper status: %w", err)
	}

	paper, err := s.paperRepo.GetByID(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("reload paper: %w", err)
	}

	if s.emailService != nil && (status == domain.PaperStatusAccepted || status == domain.PaperStatusRejected) {
		s.notifyDecision(ctx, paper)
	}
	return paper, nil
}

func (s *paperService) notifyDecision(ctx context.Context, paper *domain.Paper) {
	author, err := s.userRepo.GetByID(ctx, paper.AuthorID)
	if err != nil {
		s.logger.Warn("paper decision email skipped, author lookup failed", "paper_id", paper.ID, "err", err)
		return
	}
	data := &domain.PaperDecisionEmailData{
		Email:      author.Email,
		Name:       author.Name,
		PaperTitle: paper.Title,
		Status:     string(paper.Status),
	}
	if err := s.emailService.SendPaperDecision(ctx, data); err != nil {
		s.logger.Warn("paper decision email failed", "paper_id", paper.ID, "err", err)
	}
}

func (s *paperService) ReplacePDF(ctx context.Context, actor *domain.User, paperID string, file *domain.FileUpload) (*domain.Paper, error) {
	if err := authz.Authorize(actor, authz.ActionUpdate, authz.ResourcePaper, nil); err != nil {
		return nil, err
	}
	if err := validatePDF(file); err != nil {
		return nil, err
	}

	paper, err := s.paperRepo.GetByID(ctx, paperID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get paper: %w", err)
	}
	oldPath := paper.PDFPath

	newPath, err := s.fileStorage.Save(ctx, paperUploadFolder, file.Filename, file.Reader)
	if err != nil {
		return nil, fmt.Errorf("store pdf: %w", err)
	}
	if err := s.paperRepo.UpdatePDFPath(ctx, paperID, newPath); err != nil {
		if cleanupErr := s.fileStorage.Delete(ctx, newPath); cleanupErr != nil {
			s.logger.Warn("orphan pdf cleanup failed", "path", newPath, "err", cleanupErr)
		}
		return nil, fmt.Errorf("update paper pdf: %w", err)
	}

	// Old blob removal is best-effort once the row points at the new one.
	if oldPath != nil {
		if err := s.fileStorage.Delete(ctx, *oldPath); err != nil {
			s.logger.Warn("old pdf cleanup failed", "path", *oldPath, "err", err)
		}
	}

	paper.PDFPath = &newPath
	return paper, nil
}

func (s *paperService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Paper, error) {
	papers, err := s.paperRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	return papers, nil
}

func (s *paperService) Get(ctx context.Context, paperID string) (*domain.Paper, error) {
	paper, err := s.paperRepo.GetByID(ctx, paperID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get paper: %w", err)
	}
	return paper, nil
}
