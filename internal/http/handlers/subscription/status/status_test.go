package status

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockService реализует интерфейс status.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) IsActive(ctx context.Context, planName string) (bool, error) {
	args := m.Called(ctx, planName)
	return args.Bool(0), args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		plan           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "подписка действует",
			plan: "Elite Insight",
			setupMock: func(m *MockService) {
				m.On("IsActive", mock.Anything, "Elite Insight").Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"active":true`,
		},
		{
			name: "подписки нет",
			plan: "Elite Insight",
			setupMock: func(m *MockService) {
				m.On("IsActive", mock.Anything, "Elite Insight").Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"active":false`,
		},
		{
			name:           "план не указан",
			plan:           "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `plan query param is required`,
		},
		{
			name: "ошибка хранилища",
			plan: "Elite Insight",
			setupMock: func(m *MockService) {
				m.On("IsActive", mock.Anything, "Elite Insight").Return(false, errors.New("db is down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not check subscription status`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			target := "/subscriptions/status"
			if tt.plan != "" {
				target += "?plan=" + url.QueryEscape(tt.plan)
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
