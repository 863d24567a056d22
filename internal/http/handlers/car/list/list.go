// Package list реализует HTTP-обработчик получения каталога автомобилей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-dealership/internal/http/response"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/models"
)

// Handler обрабатывает HTTP-запросы получения каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения каталога.
type Service interface {
	List(ctx context.Context) ([]*models.Car, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог автомобилей
// @Description Возвращает все автомобили салона, включая выданные и проданные.
// @Tags Cars
// @Produce  json
// @Success 200 {object} map[string]any "Список автомобилей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /cars [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cars, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list cars", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list cars"))
		return
	}

	log.Info("success to list cars", slog.Int("count", len(cars)))
	render.JSON(w, r, response.OKWithData(cars))
}
