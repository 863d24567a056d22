// Package read реализует HTTP-обработчик получения автомобиля по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-dealership/internal/http/response"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/models"
	carservice "github.com/magabrotheeeer/car-dealership/internal/services/car"
)

// Handler обрабатывает HTTP-запросы получения автомобиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения автомобиля.
type Service interface {
	Read(ctx context.Context, id int64) (*models.Car, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить автомобиль
// @Description Возвращает автомобиль по ID.
// @Tags Cars
// @Produce  json
// @Param id path int true "ID автомобиля"
// @Success 200 {object} map[string]any "Данные автомобиля"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Автомобиль не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /cars/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.read"

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

	car, err := h.service.Read(r.Context(), id)
	if errors.Is(err, carservice.ErrNotFound) {
		log.Error("car not found", slog.Int64("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("car not found"))
		return
	}
	if err != nil {
		log.Error("failed to read car", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read car"))
		return
	}

	log.Info("success to read car", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(car))
}
