package check

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс check.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) IsCodeUsed(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func TestCheckHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "код не использован",
			query: "?code=ABC1234567",
			setupMock: func(m *MockService) {
				m.On("IsCodeUsed", mock.Anything, "ABC1234567").Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"used":false`,
		},
		{
			name:  "код уже использован",
			query: "?code=XYZ9876543",
			setupMock: func(m *MockService) {
				m.On("IsCodeUsed", mock.Anything, "XYZ9876543").Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"used":true`,
		},
		{
			name:           "код не передан",
			query:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `code must be 10 characters`,
		},
		{
			name:           "код в нижнем регистре",
			query:          "?code=abc1234567",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `code must be 10 characters`,
		},
		{
			name:           "код короче десяти символов",
			query:          "?code=ABC123",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `code must be 10 characters`,
		},
		{
			name:  "ошибка хранилища",
			query: "?code=ABC1234567",
			setupMock: func(m *MockService) {
				m.On("IsCodeUsed", mock.Anything, "ABC1234567").Return(false, errors.New("db is down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not check code`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/payments/check"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
