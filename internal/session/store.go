// Package session реализует хранилище сессий: непрозрачный токен
// отображается в данные пользователя с ограниченным временем жизни.
//
// Хранилище передаётся в обработчики явно, а не живёт в глобальном
// состоянии middleware.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/car-dealership/internal/models"
)

// ErrNotFound возвращается, когда токен неизвестен или сессия истекла.
var ErrNotFound = errors.New("session not found")

// Store описывает интерфейс хранилища сессий.
type Store interface {
	// Create сохраняет сессию и возвращает новый токен.
	Create(ctx context.Context, sess models.Session) (string, error)
	// Get возвращает сессию по токену или ErrNotFound.
	Get(ctx context.Context, token string) (*models.Session, error)
	// Delete удаляет сессию по токену.
	Delete(ctx context.Context, token string) error
	// TTL возвращает время жизни сессии.
	TTL() time.Duration
}
