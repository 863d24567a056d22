package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-dealership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-dealership/internal/models"
	authservice "github.com/magabrotheeeer/car-dealership/internal/services/auth"
	"github.com/magabrotheeeer/car-dealership/internal/session"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req models.DummyUser) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validRequest := models.DummyUser{
		Username:  "newuser",
		Password:  "secret123",
		FirstName: "Jan",
		LastName:  "Kowalski",
	}
	createdUser := &models.User{
		ID:        1,
		Username:  "newuser",
		FirstName: "Jan",
		LastName:  "Kowalski",
		IsDealer:  false,
	}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:        "успешная регистрация",
			requestBody: validRequest,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, validRequest).
					Return(createdUser, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"newuser"`,
			expectCookie:   true,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации",
			requestBody: models.DummyUser{
				Username: "ab",
				Password: "123",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Username is shorter than 3 characters`,
		},
		{
			name:        "занятое имя пользователя",
			requestBody: validRequest,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, validRequest).
					Return(nil, authservice.ErrUsernameTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"username is already taken"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validRequest,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, validRequest).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not register user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			sessions := session.NewMemoryStore(time.Hour)
			handler := New(logger, mockService, sessions)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			if tt.expectCookie {
				cookies := w.Result().Cookies()
				require.Len(t, cookies, 1)
				cookie := cookies[0]
				assert.Equal(t, middlewarectx.SessionCookie, cookie.Name)
				assert.True(t, cookie.HttpOnly)
				assert.Equal(t, "/", cookie.Path)

				// Токен из cookie должен открывать сессию зарегистрированного пользователя
				sess, err := sessions.Get(context.Background(), cookie.Value)
				require.NoError(t, err)
				assert.Equal(t, createdUser.ID, sess.UserID)
			}

			mockService.AssertExpectations(t)
		})
	}
}
