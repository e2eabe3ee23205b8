package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"confdesk/internal/delivery/http/helpers"
	"confdesk/internal/delivery/http/middleware"
	"confdesk/internal/domain"
)

// CreateContactMessageRequest is the request body for POST /contact.
type CreateContactMessageRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate implements Validator.
func (c CreateContactMessageRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Subject) == "" {
		errs = append(errs, "subject is required")
	}
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Send a contact message
// @Description Creates a contact message to the organizers from the authenticated user.
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateContactMessageRequest true "Subject and message"
// @Success 201 {object} helpers.APIResponse "data contains the created message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contact [post]
func (c *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateContactMessageRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	msg, err := c.Service.Create(r.Context(), actor, req.Subject, req.Message)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, msg)
}

// List godoc
// @Summary List contact messages
// @Description Returns contact messages, newest first. Staff see all messages; everyone else sees only their own.
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data is an array of messages"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contact [get]
func (c *ContactController) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())
	msgs, err := c.Service.List(r.Context(), actor)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if msgs == nil {
		msgs = []*domain.ContactMessage{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msgs)
}

// Get godoc
// @Summary Get a contact message by ID
// @Description Returns a single contact message. Owners and staff only.
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param messageID path string true "Message ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner or staff)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /contact/{messageID} [get]
func (c *ContactController) Get(w http.ResponseWriter, r *http.Request) {
	messageID := r.PathValue("messageID")
	if messageID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing messageID")
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	msg, err := c.Service.Get(r.Context(), actor, messageID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msg)
}
