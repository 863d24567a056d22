package remove

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
	rentalservice "github.com/magabrotheeeer/car-dealership/internal/services/rental"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Remove(ctx context.Context, userID, carID int64) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// Прокат адресуется по ID автомобиля, не по ID записи о прокате:
// так его адресует существующий фронтенд.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	carID, err := strconv.ParseInt(chi.URLParam(r, "carID"), 10, 64)
	if err != nil {
		log.Error("invalid car id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid car id"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	err = h.service.Remove(r.Context(), userID, carID)
	switch {
	case errors.Is(err, rentalservice.ErrRentalNotFound):
		log.Error("rental not found", slog.Int64("car_id", carID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("rental not found"))
		return
	case errors.Is(err, rentalservice.ErrNotRentalOwner):
		log.Error("rental belongs to another user", slog.Int64("car_id", carID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("rental belongs to another user"))
		return
	case err != nil:
		log.Error("failed to remove rental", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove rental"))
		return
	}

	log.Info("success to remove rental", slog.Int64("car_id", carID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"released_car_id": carID,
	}))
}
