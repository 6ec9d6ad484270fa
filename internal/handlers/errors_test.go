package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"planit/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantDetails int
	}{
		{name: "validation", err: common.NewFieldError("email", "Invalid email address"), wantStatus: http.StatusBadRequest, wantMessage: "Validation error", wantDetails: 1},
		{name: "conflict", err: common.NewConflict("User already exists"), wantStatus: http.StatusBadRequest, wantMessage: "User already exists"},
		{name: "forbidden", err: common.NewForbidden("Forbidden: Access denied"), wantStatus: http.StatusForbidden, wantMessage: "Forbidden: Access denied"},
		{name: "internal hides cause", err: common.NewInternal("failed to create user", errors.New("pq: connection refused")), wantStatus: http.StatusInternalServerError, wantMessage: "Internal Server Error"},
		{name: "framework error", err: echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"), wantStatus: http.StatusRequestEntityTooLarge, wantMessage: "Request Entity Too Large"},
		{name: "foreign error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMessage: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			ErrorHandler(tt.err, c)

			require.Equal(t, tt.wantStatus, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMessage, resp.Error)
			assert.Len(t, resp.Details, tt.wantDetails)
		})
	}
}
