// Package buy реализует HTTP-обработчик покупки автомобиля.
//
// Покупка переводит свободный автомобиль в проданные: у него появляется
// владелец, и обратно в каталог он не возвращается.
package buy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-dealership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-dealership/internal/http/response"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/models"
	carservice "github.com/magabrotheeeer/car-dealership/internal/services/car"
)

// Handler обрабатывает HTTP-запросы покупки автомобиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики покупки.
type Service interface {
	Buy(ctx context.Context, actorID, carID int64) (*models.Car, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Купить автомобиль
// @Description Продаёт свободный автомобиль текущему пользователю.
// @Tags Cars
// @Produce  json
// @Param id path int true "ID автомобиля"
// @Success 200 {object} map[string]any "Автомобиль продан"
// @Failure 400 {object} response.ErrorResponse "Автомобиль занят"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Автомобиль не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /cars/{id}/buy [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.buy"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	car, err := h.service.Buy(r.Context(), userID, id)
	switch {
	case errors.Is(err, carservice.ErrNotFound):
		log.Error("car not found", slog.Int64("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("car not found"))
		return
	case errors.Is(err, carservice.ErrNotAvailable):
		log.Error("car is not available", slog.Int64("id", id))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("car is not available"))
		return
	case err != nil:
		log.Error("failed to buy car", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not buy car"))
		return
	}

	log.Info("success to buy car", slog.Int64("id", id), slog.Int64("owner_id", userID))
	render.JSON(w, r, response.OKWithData(car))
}
