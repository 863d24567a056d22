package returncar

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/car-dealership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-dealership/internal/models"
	carservice "github.com/magabrotheeeer/car-dealership/internal/services/car"
)

// MockService реализует интерфейс returncar.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Return(ctx context.Context, actorID, carID int64) (*models.Car, error) {
	args := m.Called(ctx, actorID, carID)
	car, _ := args.Get(0).(*models.Car)
	return car, args.Error(1)
}

func TestReturnHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	returnedCar := &models.Car{
		ID:                 5,
		Brand:              "Toyota",
		Model:              "Corolla",
		Year:               2020,
		VIN:                "JTDBR32E530012345",
		Price:              18000,
		HorsePower:         132,
		IsAvailableForRent: true,
	}

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный возврат",
			url:  "/cars/5/return",
			setupMock: func(m *MockService) {
				m.On("Return", mock.Anything, int64(42), int64(5)).
					Return(returnedCar, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"isAvailableForRent":true`,
		},
		{
			name: "автомобиль уже свободен",
			url:  "/cars/5/return",
			setupMock: func(m *MockService) {
				m.On("Return", mock.Anything, int64(42), int64(5)).
					Return(nil, carservice.ErrAlreadyAvailable)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"car is already available"}`,
		},
		{
			name: "чужой автомобиль",
			url:  "/cars/5/return",
			setupMock: func(m *MockService) {
				m.On("Return", mock.Anything, int64(42), int64(5)).
					Return(nil, carservice.ErrNotRenter)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"car is rented by another user"}`,
		},
		{
			name: "автомобиль не найден",
			url:  "/cars/5/return",
			setupMock: func(m *MockService) {
				m.On("Return", mock.Anything, int64(42), int64(5)).
					Return(nil, carservice.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"car not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, tt.url, nil)
			ctx := context.WithValue(req.Context(), middlewarectx.UserID, int64(42))
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			id := strings.TrimSuffix(strings.TrimPrefix(tt.url, "/cars/"), "/return")
			rctx.URLParams.Add("id", id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
