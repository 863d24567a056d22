// Package create реализует HTTP-обработчик бронирования автомобиля на период.
//
// Handler принимает JSON-запрос с ID автомобиля и датами проката,
// валидирует их и вызывает бизнес-логику бронирования. Запись о прокате
// и смена состояния автомобиля происходят атомарно.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/car-dealership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-dealership/internal/http/response"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/models"
	rentalservice "github.com/magabrotheeeer/car-dealership/internal/services/rental"
)

// Handler управляет HTTP-запросами на бронирование автомобилей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики бронирования
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики бронирования.
type Service interface {
	Create(ctx context.Context, userID int64, req models.DummyRental) (*models.Rental, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Забронировать автомобиль
// @Description Бронирует автомобиль на период для текущего пользователя.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Param request body models.DummyRental true "Автомобиль и даты проката"
// @Success 201 {object} map[string]any "Бронь создана"
// @Failure 400 {object} response.ErrorResponse "Некорректные даты или занятый автомобиль"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Автомобиль не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rentals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRental
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

	userID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rental, err := h.service.Create(r.Context(), userID, req)
	switch {
	case errors.Is(err, rentalservice.ErrInvalidDateRange):
		log.Error("invalid rental dates")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("start date must be before end date"))
		return
	case errors.Is(err, rentalservice.ErrCarNotFound):
		log.Error("car not found", slog.Int64("car_id", req.CarID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("car not found"))
		return
	case errors.Is(err, rentalservice.ErrCarUnavailable):
		log.Error("car is not available", slog.Int64("car_id", req.CarID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("car is not available"))
		return
	case err != nil:
		log.Error("failed to create rental", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create rental"))
		return
	}

	log.Info("success to create rental", slog.Int64("id", rental.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(rental))
}
