package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		status int
	}{
		{name: "slot taken is a conflict", code: ErrSlotTaken, status: http.StatusConflict},
		{name: "invalid email is a bad request", code: ErrInvalidEmail, status: http.StatusBadRequest},
		{name: "missing data is a bad request", code: ErrMissingRequiredData, status: http.StatusBadRequest},
		{name: "unknown code falls back to 500", code: "XXX_999", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "message", map[string]string{"field": "email"})

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "message", body.Message)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusMethodNotAllowed, StatusFor(ErrMethodNotAllowed))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(ErrInvalidTransition))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(ErrDatabaseOperation))
}
