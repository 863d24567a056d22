// Package createcustomer реализует HTTP-обработчик создания клиента дилером.
//
// В отличие от самостоятельной регистрации, сессия для созданного
// клиента не открывается: дилер остаётся в своей.
package createcustomer

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
	authservice "github.com/magabrotheeeer/car-dealership/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы создания клиента дилером.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания клиента.
type Service interface {
	CreateCustomer(ctx context.Context, actorID int64, req models.DummyUser) (*models.User, error)
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
// @Summary Создать клиента
// @Description Создает клиента от имени дилера. Сессия для клиента не открывается.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyUser true "Данные нового клиента"
// @Success 201 {object} map[string]any "Клиент создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или занятое имя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступно только дилеру"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/create-customer [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.createcustomer"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

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

	user, err := h.service.CreateCustomer(r.Context(), userID, req)
	switch {
	case errors.Is(err, authservice.ErrForbidden):
		log.Error("only dealer can create customers", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("only dealer can create customers"))
		return
	case errors.Is(err, authservice.ErrUsernameTaken):
		log.Error("username is already taken", slog.String("username", req.Username))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username is already taken"))
		return
	case err != nil:
		log.Error("failed to create customer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create customer"))
		return
	}

	log.Info("customer created", slog.Int64("id", user.ID), slog.String("username", user.Username))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(user))
}
