// Package home реализует HTTP-обработчик корневого маршрута API.
package home

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-dealership/internal/http/response"
)

// Handler обрабатывает запросы к корню API.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Корень API
// @Description Возвращает приветственное сообщение.
// @Tags General
// @Produce  json
// @Success 200 {object} map[string]any "Приветственное сообщение"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.home"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	log.Debug("serving welcome message")
	render.JSON(w, r, response.OKWithData(map[string]string{
		"message": "Welcome to the Car Dealership API!",
	}))
}
