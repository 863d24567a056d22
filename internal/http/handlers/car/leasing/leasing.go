// Package leasing реализует HTTP-обработчик расчёта лизингового платежа.
//
// Handler принимает первоначальный взнос и срок в месяцах, проверяет их
// и возвращает помесячный платёж для выбранного автомобиля.
// Расчёт не меняет состояние автомобиля.
package leasing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/car-dealership/internal/http/response"
	"github.com/magabrotheeeer/car-dealership/internal/lib/leasing"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/models"
	carservice "github.com/magabrotheeeer/car-dealership/internal/services/car"
)

// Handler обрабатывает HTTP-запросы расчёта лизинга.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики расчёта лизинга.
type Service interface {
	Leasing(ctx context.Context, carID int64, downPayment float64, months int) (*models.LeasingQuote, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Рассчитать лизинг
// @Description Считает помесячный лизинговый платёж для автомобиля.
// @Tags Cars
// @Accept  json
// @Produce  json
// @Param id path int true "ID автомобиля"
// @Param request body models.DummyLeasing true "Первоначальный взнос и срок"
// @Success 200 {object} map[string]any "Расчёт лизинга"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры расчёта"
// @Failure 404 {object} response.ErrorResponse "Автомобиль не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /cars/{id}/leasing [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.leasing"

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

	var req models.DummyLeasing
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	quote, err := h.service.Leasing(r.Context(), id, *req.DownPayment, req.Months)
	switch {
	case errors.Is(err, carservice.ErrNotFound):
		log.Error("car not found", slog.Int64("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("car not found"))
		return
	case errors.Is(err, leasing.ErrDownPaymentTooLarge):
		log.Error("down payment exceeds car price", slog.Int64("id", id))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("down payment exceeds car price"))
		return
	case err != nil:
		log.Error("failed to calculate leasing", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not calculate leasing"))
		return
	}

	log.Info("success to calculate leasing", slog.Int64("car_id", id))
	render.JSON(w, r, response.OKWithData(quote))
}
