package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"confdesk/internal/delivery/http/helpers"
	"confdesk/internal/delivery/http/middleware"
	"confdesk/internal/domain"
)

// maxPaperFormSize bounds the multipart form parse. Slightly above the 10MB
// PDF limit so an oversized file reaches the service and gets a proper 400
// instead of a parse error.
const maxPaperFormSize = 11 << 20

// SetPaperStatusRequest is the request body for PATCH /events/{eventID}/papers/{paperID}/set-status.
type SetPaperStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (s SetPaperStatusRequest) Validate() []string {
	if strings.TrimSpace(s.Status) == "" {
		return []string{"status is required"}
	}
	return nil
}

type PaperController struct {
	Logger  *slog.Logger
	Service domain.PaperService
}

func NewPaperController(logger *slog.Logger, svc domain.PaperService) *PaperController {
	return &PaperController{
		Logger:  logger,
		Service: svc,
	}
}

// paperFileFromForm extracts the pdf_file part from a parsed multipart form.
// Returns nil and writes a 400 when the part is missing.
func paperFileFromForm(w http.ResponseWriter, r *http.Request) *domain.FileUpload {
	file, header, err := r.FormFile("pdf_file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "pdf_file is required")
		return nil
	}
	return &domain.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}
}

// ListByEvent godoc
// @Summary List papers for an event
// @Description Returns all papers submitted to the event, newest first. Public.
// @Tags papers
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is an array of papers"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/papers [get]
func (c *PaperController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	papers, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if papers == nil {
		papers = []*domain.Paper{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, papers)
}

// Get godoc
// @Summary Get a paper by ID
// @Description Returns a single paper. Public.
// @Tags papers
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param paperID path string true "Paper ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the paper"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/papers/{paperID} [get]
func (c *PaperController) Get(w http.ResponseWriter, r *http.Request) {
	paperID := r.PathValue("paperID")
	if paperID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing paperID")
		return
	}
	paper, err := c.Service.Get(r.Context(), paperID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, paper)
}

// Submit godoc
// @Summary Submit a paper
// @Description Submits a paper to the event as a multipart form: title, abstract, keywords, paper_type ("oral", "poster", or "workshop"), and the pdf_file part (application/pdf, max 10MB). The authenticated user becomes the author and the paper starts in "submitted" status. Requires an author role or the staff flag.
// @Tags papers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param title formData string true "Paper title"
// @Param abstract formData string false "Abstract"
// @Param keywords formData string false "Comma-separated keywords"
// @Param paper_type formData string true "oral, poster, or workshop"
// @Param pdf_file formData file true "PDF file (max 10MB)"
// @Success 201 {object} helpers.APIResponse "data contains the created paper"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (bad type, size, or fields)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (participant without author role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/papers [post]
func (c *PaperController) Submit(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := r.ParseMultipartForm(maxPaperFormSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "title is required")
		return
	}
	file := paperFileFromForm(w, r)
	if file == nil {
		return
	}

	actor, _ := middleware.UserFromContext(r.Context())
	submission := &domain.PaperSubmission{
		Title:     title,
		Abstract:  r.FormValue("abstract"),
		Keywords:  r.FormValue("keywords"),
		PaperType: domain.PaperType(strings.TrimSpace(strings.ToLower(r.FormValue("paper_type")))),
	}
	paper, err := c.Service.Submit(r.Context(), actor, eventID, submission, file)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, paper)
}

// SetStatus godoc
// @Summary Set a paper's review status
// @Description Sets the paper status to "submitted", "accepted", or "rejected". Accepted and rejected decisions trigger a notification email to the author. Staff only.
// @Tags papers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param paperID path string true "Paper ID (UUID)"
// @Param body body SetPaperStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated paper"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown status)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not staff)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/papers/{paperID}/set-status [patch]
func (c *PaperController) SetStatus(w http.ResponseWriter, r *http.Request) {
	paperID := r.PathValue("paperID")
	if paperID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing paperID")
		return
	}
	var req SetPaperStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	status := domain.PaperStatus(strings.TrimSpace(strings.ToLower(req.Status)))
	paper, err := c.Service.SetStatus(r.Context(), actor, paperID, status)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, paper)
}

// UploadPDF godoc
// @Summary Replace a paper's PDF
// @Description Replaces the paper's PDF with a new file from the pdf_file multipart part (application/pdf, max 10MB). The previous file is removed after the new one is stored. Staff only.
// @Tags papers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param paperID path string true "Paper ID (UUID)"
// @Param pdf_file formData file true "PDF file (max 10MB)"
// @Success 200 {object} helpers.APIResponse "data contains the updated paper"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (bad type or size)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not staff)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/papers/{paperID}/upload-pdf [post]
func (c *PaperController) UploadPDF(w http.ResponseWriter, r *http.Request) {
	paperID := r.PathValue("paperID")
	if paperID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing paperID")
		return
	}
	if err := r.ParseMultipartForm(maxPaperFormSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	file := paperFileFromForm(w, r)
	if file == nil {
		return
	}

	actor, _ := middleware.UserFromContext(r.Context())
	paper, err := c.Service.ReplacePDF(r.Context(), actor, paperID, file)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, paper)
}
