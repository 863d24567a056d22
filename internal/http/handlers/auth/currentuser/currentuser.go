// Package currentuser реализует HTTP-обработчик получения текущего пользователя сессии.
package currentuser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-dealership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-dealership/internal/http/response"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/models"
	authservice "github.com/magabrotheeeer/car-dealership/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы получения текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения пользователя по ID.
type Service interface {
	CurrentUser(ctx context.Context, id int64) (*models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает пользователя, которому принадлежит сессия.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Данные пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /current-user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.currentuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if errors.Is(err, authservice.ErrNotFound) {
		log.Error("user not found", slog.Int64("id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read user"))
		return
	}

	log.Info("current user resolved", slog.String("username", user.Username))
	render.JSON(w, r, response.OKWithData(user))
}
