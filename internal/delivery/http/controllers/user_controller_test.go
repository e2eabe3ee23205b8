package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confdesk/internal/delivery/http/middleware"
)

func TestUserController_Me(t *testing.T) {
	t.Run("returns the context user", func(t *testing.T) {
		ctrl := NewUserController(testLogger, &fakeUserService{})
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req = req.WithContext(middleware.SetUser(req.Context(), testAuthor))
		rr := httptest.NewRecorder()

		ctrl.Me(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"u-author"`)
	})

	t.Run("no user in context is 401", func(t *testing.T) {
		ctrl := NewUserController(testLogger, &fakeUserService{})
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rr := httptest.NewRecorder()

		ctrl.Me(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUserController_UpdateMe(t *testing.T) {
	t.Run("passes only supplied fields", func(t *testing.T) {
		fake := &fakeUserService{user: testAuthor}
		ctrl := NewUserController(testLogger, fake)
		req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewBufferString(`{"affiliation":"Analytical Engines Ltd"}`))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.SetUser(req.Context(), testAuthor))
		rr := httptest.NewRecorder()

		ctrl.UpdateMe(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, fake.lastPatch)
		assert.Nil(t, fake.lastPatch.Name)
		require.NotNil(t, fake.lastPatch.Affiliation)
		assert.Equal(t, "Analytical Engines Ltd", *fake.lastPatch.Affiliation)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		ctrl := NewUserController(testLogger, &fakeUserService{})
		req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewBufferString(`{"name":"  "}`))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.SetUser(req.Context(), testAuthor))
		rr := httptest.NewRecorder()

		ctrl.UpdateMe(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Contains(t, envelope.Error.Message, "name cannot be empty")
	})

	t.Run("email cannot be smuggled in", func(t *testing.T) {
		ctrl := NewUserController(testLogger, &fakeUserService{})
		req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewBufferString(`{"email":"new@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(middleware.SetUser(req.Context(), testAuthor))
		rr := httptest.NewRecorder()

		ctrl.UpdateMe(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Contains(t, envelope.Error.Message, "unknown field")
	})
}
