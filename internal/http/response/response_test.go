package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airatlasapp/airatlas-server/internal/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"code": "FR"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "bad country code", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "bad country code", env.Error)
}

func TestDomainError_MapsCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", errors.NotFound("no such country"), http.StatusNotFound},
		{"validation", errors.Validation("bad code"), http.StatusBadRequest},
		{"conflict", errors.Conflict("update in progress"), http.StatusConflict},
		{"unavailable", errors.Unavailable("feed unreachable"), http.StatusBadGateway},
		{"plain error", assertAnError(), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			DomainError(rec, tt.err, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDomainError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	DomainError(rec, assertAnError(), nil)

	env := decode(t, rec)
	assert.Equal(t, "internal server error", env.Error)
}

func assertAnError() error {
	return assert.AnError
}
