package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confdesk/internal/domain"
)

type paperRepository struct {
	DB *sql.DB
}

// NewPaperRepository returns a domain.PaperRepository implemented with Postgres.
func NewPaperRepository(db *sql.DB) domain.PaperRepository {
	return &paperRepository{DB: db}
}

func (r *paperRepository) Create(ctx context.Context, paper *domain.Paper) error {
	query := `
		INSERT INTO papers (event_id, author_id, title, abstract, keywords, paper_type, pdf_path, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		paper.EventID, paper.AuthorID, paper.Title, paper.Abstract, paper.Keywords,
		paper.PaperType, paper.PDFPath, paper.Status, paper.CreatedAt,
	).Scan(&paper.ID)
}

func (r *paperRepository) GetByID(ctx context.Context, id string) (*domain.Paper, error) {
	query := `
		SELECT id, event_id, author_id, title, abstract, keywords, paper_type, pdf_path, status, created_at
		FROM papers
		WHERE id = $1
	`
	return r.scanPaper(r.DB.QueryRowContext(ctx, query, id))
}

func (r *paperRepository) scanPaper(row *sql.Row) (*domain.Paper, error) {
	p := &domain.Paper{}
	var pdfPath sql.NullString
	err := row.Scan(
		&p.ID, &p.EventID, &p.AuthorID, &p.Title, &p.Abstract, &p.Keywords,
		&p.PaperType, &pdfPath, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if pdfPath.Valid {
		p.PDFPath = &pdfPath.String
	}
	return p, nil
}

func (r *paperRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Paper, error) {
	query := `
		SELECT id, event_id, author_id, title, abstract, keywords, paper_type, pdf_path, status, created_at
		FROM papers
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	papers := make([]*domain.Paper, 0)
	for rows.Next() {
		p := &domain.Paper{}
		var pdfPath sql.NullString
		if err := rows.Scan(&p.ID, &p.EventID, &p.AuthorID, &p.Title, &p.Abstract, &p.Keywords,
			&p.PaperType, &pdfPath, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		if pdfPath.Valid {
			p.PDFPath = &pdfPath.String
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// UpdateStatus changes the status column and nothing else.
func (r *paperRepository) UpdateStatus(ctx context.Context, id string, status domain.PaperStatus) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE papers SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *paperRepository) UpdatePDFPath(ctx context.Context, id, pdfPath string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE papers SET pdf_path = $2 WHERE id = $1`, id, pdfPath)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
