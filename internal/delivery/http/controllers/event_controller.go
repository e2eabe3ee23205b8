package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"confdesk/internal/delivery/http/helpers"
	"confdesk/internal/delivery/http/middleware"
	"confdesk/internal/domain"
)

// ScheduleRequest is one schedule child in an event write body.
type ScheduleRequest struct {
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Details string    `json:"details"`
}

// CreateEventRequest is the request body for POST /events. Topics are plain
// names; unknown names create new global topics.
type CreateEventRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Topics      []string          `json:"topics"`
	Schedules   []ScheduleRequest `json:"schedules"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.StartDate.IsZero() {
		errs = append(errs, "start_date is required")
	}
	if c.EndDate.IsZero() {
		errs = append(errs, "end_date is required")
	}
	errs = append(errs, validateTopics(c.Topics)...)
	errs = append(errs, validateSchedules(c.Schedules)...)
	return errs
}

// UpdateEventRequest is the request body for PATCH and PUT /events/{eventID}.
// Scalar fields omitted from the body are unchanged. For topics and schedules
// an omitted key leaves the collection alone, an empty array clears it, and a
// non-empty array replaces it entirely.
type UpdateEventRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Location    *string            `json:"location"`
	StartDate   *time.Time         `json:"start_date"`
	EndDate     *time.Time         `json:"end_date"`
	Topics      *[]string          `json:"topics"`
	Schedules   *[]ScheduleRequest `json:"schedules"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Topics != nil {
		errs = append(errs, validateTopics(*u.Topics)...)
	}
	if u.Schedules != nil {
		errs = append(errs, validateSchedules(*u.Schedules)...)
	}
	return errs
}

func validateTopics(topics []string) []string {
	var errs []string
	for _, name := range topics {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "topic names cannot be empty")
			break
		}
	}
	return errs
}

func validateSchedules(schedules []ScheduleRequest) []string {
	var errs []string
	for _, s := range schedules {
		if strings.TrimSpace(s.Title) == "" {
			errs = append(errs, "schedule title is required")
			break
		}
		if s.Date.IsZero() {
			errs = append(errs, "schedule date is required")
			break
		}
	}
	return errs
}

func toTopicInputs(names []string) []domain.TopicInput {
	out := make([]domain.TopicInput, 0, len(names))
	for _, name := range names {
		out = append(out, domain.TopicInput{Name: strings.TrimSpace(name)})
	}
	return out
}

func toScheduleInputs(schedules []ScheduleRequest) []domain.ScheduleInput {
	out := make([]domain.ScheduleInput, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, domain.ScheduleInput{Title: s.Title, Date: s.Date, Details: s.Details})
	}
	return out
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List events
// @Description Returns a paginated list of events, newest first. Optional topics query param filters by topic IDs (comma-separated, OR semantics). List items omit topics and schedules; fetch an event by ID for the full projection. Public.
// @Tags events
// @Produce json
// @Param topics query string false "Comma-separated topic IDs"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	var topicIDs []string
	if raw := strings.TrimSpace(r.URL.Query().Get("topics")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				topicIDs = append(topicIDs, id)
			}
		}
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.List(r.Context(), domain.EventFilter{
		TopicIDs: topicIDs,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: events, Pagination: meta})
}

// Create godoc
// @Summary Create an event
// @Description Creates an event together with its topic associations and schedule children in a single transaction. Topic names that do not exist yet are created. Staff only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event with topics and schedules"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not staff)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate schedule date)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	event, err := c.Service.Create(r.Context(), actor, &domain.EventCreate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Topics:      toTopicInputs(req.Topics),
		Schedules:   toScheduleInputs(req.Schedules),
	})
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Get godoc
// @Summary Get an event by ID
// @Description Returns the event with its topics (sorted by name) and schedules (sorted by date). Public.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.Get(r.Context(), eventID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Partially updates an event. Omitted scalar fields are unchanged. For topics and schedules: omitted key leaves the collection alone, empty array clears it, non-empty array replaces it entirely. All changes commit or roll back together. PUT uses the same semantics. Staff only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not staff)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate schedule date)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())

	patch := &domain.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Topics != nil {
		topics := toTopicInputs(*req.Topics)
		patch.Topics = &topics
	}
	if req.Schedules != nil {
		schedules := toScheduleInputs(*req.Schedules)
		patch.Schedules = &schedules
	}

	event, err := c.Service.Update(r.Context(), actor, eventID, patch)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEventResponse is the data payload for DELETE /events/{eventID} (200).
type DeleteEventResponse struct {
	Status string `json:"status"`
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes an event with its topic links, schedules, papers, and registrations. Staff only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not staff)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	if err := c.Service.Delete(r.Context(), actor, eventID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}
