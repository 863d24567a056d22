// Package logout реализует HTTP-обработчик завершения сессии пользователя.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-dealership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-dealership/internal/http/response"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/session"
)

// Handler обрабатывает HTTP-запросы выхода из системы.
type Handler struct {
	log      *slog.Logger
	sessions session.Store
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions session.Store) *Handler {
	return &Handler{log: log, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Завершает текущую сессию и очищает cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Сессия завершена"
// @Failure 400 {object} response.ErrorResponse "Нет активной сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie, err := r.Cookie(middlewarectx.SessionCookie)
	if err != nil {
		log.Error("no active session")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("no active session"))
		return
	}

	if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
		log.Error("failed to delete session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not logout"))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	log.Info("logout success")
	render.JSON(w, r, response.OKWithData(map[string]string{
		"message": "logout successful",
	}))
}
