package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confdesk/internal/delivery/http/middleware"
	"confdesk/internal/domain"
)

// fakeTopicService implements domain.TopicService for handler tests.
type fakeTopicService struct {
	listErr     error
	renameErr   error
	deleteErr   error
	listResult  []*domain.Topic
	lastTopicID string
	lastName    string
}

func (f *fakeTopicService) List(ctx context.Context) ([]*domain.Topic, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeTopicService) Rename(ctx context.Context, actor *domain.User, topicID, name string) error {
	f.lastTopicID = topicID
	f.lastName = name
	return f.renameErr
}

func (f *fakeTopicService) Delete(ctx context.Context, actor *domain.User, topicID string) error {
	f.lastTopicID = topicID
	return f.deleteErr
}

func TestTopicController_List(t *testing.T) {
	ctrl := NewTopicController(testLogger, &fakeTopicService{
		listResult: []*domain.Topic{{ID: "t-1", Name: "Go"}},
	})
	req := httptest.NewRequest(http.MethodGet, "/topics", nil)
	rr := httptest.NewRecorder()

	ctrl.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Go"`)
}

func TestTopicController_Rename(t *testing.T) {
	t.Run("trims the new name", func(t *testing.T) {
		fake := &fakeTopicService{}
		ctrl := NewTopicController(testLogger, fake)
		req := httptest.NewRequest(http.MethodPatch, "/topics/t-1", bytes.NewBufferString(`{"name":"  Golang  "}`))
		req.Header.Set("Content-Type", "application/json")
		req.SetPathValue("topicID", "t-1")
		req = req.WithContext(middleware.SetUser(req.Context(), testStaff))
		rr := httptest.NewRecorder()

		ctrl.Rename(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "t-1", fake.lastTopicID)
		assert.Equal(t, "Golang", fake.lastName)
	})

	t.Run("duplicate name is 409", func(t *testing.T) {
		ctrl := NewTopicController(testLogger, &fakeTopicService{renameErr: domain.ErrConflict})
		req := httptest.NewRequest(http.MethodPatch, "/topics/t-1", bytes.NewBufferString(`{"name":"Cloud"}`))
		req.Header.Set("Content-Type", "application/json")
		req.SetPathValue("topicID", "t-1")
		req = req.WithContext(middleware.SetUser(req.Context(), testStaff))
		rr := httptest.NewRecorder()

		ctrl.Rename(rr, req)

		require.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestTopicController_Delete(t *testing.T) {
	fake := &fakeTopicService{}
	ctrl := NewTopicController(testLogger, fake)
	req := httptest.NewRequest(http.MethodDelete, "/topics/t-1", nil)
	req.SetPathValue("topicID", "t-1")
	req = req.WithContext(middleware.SetUser(req.Context(), testStaff))
	rr := httptest.NewRecorder()

	ctrl.Delete(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"deleted"`)
	assert.Equal(t, "t-1", fake.lastTopicID)
}
