// Package middlewarectx содержит HTTP middleware для проверки cookie-сессий.
//
// SessionMiddleware читает cookie сессии, находит её в хранилище сессий
// и в случае успеха добавляет в контекст ID и имя пользователя
// для дальнейшего использования в обработчиках.
//
// В случае отсутствия или истечения сессии возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/magabrotheeeer/car-dealership/internal/http/response"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для ID пользователя в контексте
	UserID Key = "user_id"
	// User — ключ для имени пользователя в контексте
	User Key = "username"
)

// SessionCookie — имя cookie, в которой хранится токен сессии.
const SessionCookie = "session_id"

// SessionMiddleware возвращает HTTP middleware, который проверяет cookie сессии.
//
// Если сессия найдена, добавляет ID и имя пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func SessionMiddleware(sessions session.Store, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "auth.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				log.Error("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			sess, err := sessions.Get(r.Context(), cookie.Value)
			if errors.Is(err, session.ErrNotFound) {
				log.Error("unknown or expired session")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			if err != nil {
				log.Error("failed to read session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, sess.UserID)
			ctx = context.WithValue(ctx, User, sess.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
