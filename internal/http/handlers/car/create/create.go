// Package create реализует HTTP-обработчик добавления автомобиля в салон.
//
// Handler принимает JSON-запрос с данными автомобиля, валидирует их,
// извлекает ID пользователя из контекста и вызывает бизнес-логику.
// Добавлять автомобили может только дилер.
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
	carservice "github.com/magabrotheeeer/car-dealership/internal/services/car"
)

// Handler управляет HTTP-запросами на добавление автомобилей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для работы с автомобилями
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики добавления автомобиля.
type Service interface {
	Create(ctx context.Context, actorID int64, req models.DummyCar) (*models.Car, error)
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
// @Summary Добавить автомобиль
// @Description Добавляет новый автомобиль в салон. Доступно только дилеру.
// @Tags Cars
// @Accept  json
// @Produce  json
// @Param request body models.DummyCar true "Данные нового автомобиля"
// @Success 201 {object} map[string]any "Автомобиль добавлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступно только дилеру"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /cars [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCar
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

	car, err := h.service.Create(r.Context(), userID, req)
	if errors.Is(err, carservice.ErrForbidden) {
		log.Error("only dealer can add cars", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("only dealer can add cars"))
		return
	}
	if err != nil {
		log.Error("failed to create car", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create car"))
		return
	}

	log.Info("success to create car", slog.Int64("id", car.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(car))
}
