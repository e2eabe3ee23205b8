package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"confdesk/internal/delivery/http/helpers"
	"confdesk/internal/delivery/http/middleware"
	"confdesk/internal/domain"
)

// RegisterRequest is the request body for POST /events/{eventID}/register.
// Price is never part of the body; it is looked up server-side from the plan.
type RegisterRequest struct {
	Plan string `json:"plan"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	if strings.TrimSpace(r.Plan) == "" {
		return []string{"plan is required"}
	}
	return nil
}

// CancelRegistrationResponse is the data payload for DELETE /events/{eventID}/register (200).
type CancelRegistrationResponse struct {
	Status string `json:"status"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Registers the authenticated user for the event under the given plan ("general", "student", or "workshop"). The price is resolved server-side and captured on the registration. Requires an author or participant role; the staff flag alone does not qualify. A second registration for the same event returns 409.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RegisterRequest true "Registration plan"
// @Success 201 {object} helpers.APIResponse "data contains the registration with its price"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown plan)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (no author/participant role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	plan := domain.RegistrationPlan(strings.TrimSpace(strings.ToLower(req.Plan)))
	reg, err := c.Service.Register(r.Context(), actor, eventID, plan)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// Cancel godoc
// @Summary Cancel my registration
// @Description Deletes the authenticated user's registration for the event. 404 when no registration exists.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (no author/participant role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [delete]
func (c *RegistrationController) Cancel(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	if err := c.Service.Cancel(r.Context(), actor, eventID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CancelRegistrationResponse{Status: "cancelled"})
}

// MyRegistration godoc
// @Summary Get my registration for an event
// @Description Returns the authenticated user's registration for the event, if any.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the registration"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (no author/participant role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/my-registration [get]
func (c *RegistrationController) MyRegistration(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	reg, err := c.Service.GetMyRegistration(r.Context(), actor, eventID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
