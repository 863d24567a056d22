package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/car-dealership/internal/models"
)

// MemoryStore — потокобезопасное хранилище сессий в памяти процесса.
// Используется в тестах и при запуске без redis.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]memoryEntry
}

type memoryEntry struct {
	sess      models.Session
	expiresAt time.Time
}

// NewMemoryStore создает пустое хранилище сессий с заданным TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		data: make(map[string]memoryEntry),
	}
}

// Create сохраняет сессию и возвращает новый токен.
func (s *MemoryStore) Create(_ context.Context, sess models.Session) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = memoryEntry{
		sess:      sess,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

// Get возвращает сессию по токену или ErrNotFound.
// Истёкшие записи удаляются лениво при обращении.
func (s *MemoryStore) Get(_ context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.data[token]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.data, token)
		return nil, ErrNotFound
	}
	sess := entry.sess
	return &sess, nil
}

// Delete удаляет сессию по токену.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, token)
	return nil
}

// TTL возвращает время жизни сессии.
func (s *MemoryStore) TTL() time.Duration { return s.ttl }
