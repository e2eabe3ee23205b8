package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"confdesk/internal/delivery/http/helpers"
	"confdesk/internal/delivery/http/middleware"
	"confdesk/internal/domain"
)

// RenameTopicRequest is the request body for PATCH /topics/{topicID}.
type RenameTopicRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (t RenameTopicRequest) Validate() []string {
	if strings.TrimSpace(t.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// DeleteTopicResponse is the data payload for DELETE /topics/{topicID} (200).
type DeleteTopicResponse struct {
	Status string `json:"status"`
}

type TopicController struct {
	Logger  *slog.Logger
	Service domain.TopicService
}

func NewTopicController(logger *slog.Logger, svc domain.TopicService) *TopicController {
	return &TopicController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List topics
// @Description Returns all global topics. Public.
// @Tags topics
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of topics"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /topics [get]
func (c *TopicController) List(w http.ResponseWriter, r *http.Request) {
	topics, err := c.Service.List(r.Context())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if topics == nil {
		topics = []*domain.Topic{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, topics)
}

// Rename godoc
// @Summary Rename a topic
// @Description Renames a global topic. The new name must be unique. Staff only.
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param topicID path string true "Topic ID (UUID)"
// @Param body body RenameTopicRequest true "New topic name"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not staff)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /topics/{topicID} [patch]
func (c *TopicController) Rename(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topicID")
	if topicID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing topicID")
		return
	}
	var req RenameTopicRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	if err := c.Service.Rename(r.Context(), actor, topicID, strings.TrimSpace(req.Name)); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.Topic{ID: topicID, Name: strings.TrimSpace(req.Name)})
}

// Delete godoc
// @Summary Delete a topic
// @Description Deletes a global topic and its event associations. Staff only.
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param topicID path string true "Topic ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not staff)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /topics/{topicID} [delete]
func (c *TopicController) Delete(w http.ResponseWriter, r *http.Request) {
	topicID := r.PathValue("topicID")
	if topicID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing topicID")
		return
	}
	actor, _ := middleware.UserFromContext(r.Context())
	if err := c.Service.Delete(r.Context(), actor, topicID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteTopicResponse{Status: "deleted"})
}
