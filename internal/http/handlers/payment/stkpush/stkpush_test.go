package stkpush

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStkPushHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "номер в формате 07",
			body:           `{"plan_name":"Elite Insight","phone":"0712345678"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `push notification sent`,
		},
		{
			name:           "номер в формате 254",
			body:           `{"plan_name":"Elite Insight","phone":"254712345678"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `push notification sent`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "не хватает полей",
			body:           `{"plan_name":"Elite Insight"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `required field`,
		},
		{
			name:           "не кенийский номер",
			body:           `{"plan_name":"Elite Insight","phone":"0212345678"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `valid kenyan phone number`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(logger)

			req := httptest.NewRequest(http.MethodPost, "/payments/stkpush", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
		})
	}
}
