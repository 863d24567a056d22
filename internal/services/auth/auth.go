// Package services содержит логику бизнес-уровня для работы
// с пользователями и аутентификацией.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/car-dealership/internal/lib/password"
	"github.com/magabrotheeeer/car-dealership/internal/models"
)

var (
	// ErrUsernameTaken возвращается при регистрации занятого имени.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrInvalidCredentials возвращается при неверном имени или пароле.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotFound возвращается, когда пользователь не существует
	// или скрыт (дилеры не отдаются через клиентские ручки).
	ErrNotFound = errors.New("user not found")
	// ErrForbidden возвращается при попытке действия без нужных прав.
	ErrForbidden = errors.New("not allowed")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListCustomers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (int64, error)
	DeleteUser(ctx context.Context, id int64) (int64, error)
}

// AuthService отвечает за регистрацию, вход и операции над клиентами.
type AuthService struct {
	users UserRepository
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register создает нового клиента (не дилера) с хэшированием пароля.
func (s *AuthService) Register(ctx context.Context, req models.DummyUser) (*models.User, error) {
	return s.createCustomer(ctx, req)
}

// Login проверяет пароль пользователя и возвращает его учётную запись.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateCustomer создает клиента от имени дилера.
// Не-дилер получает ErrForbidden.
func (s *AuthService) CreateCustomer(ctx context.Context, actorID int64, req models.DummyUser) (*models.User, error) {
	actor, err := s.users.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsDealer {
		return nil, ErrForbidden
	}
	return s.createCustomer(ctx, req)
}

// CurrentUser возвращает пользователя по ID сессии.
func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListCustomers возвращает всех клиентов (не дилеров).
func (s *AuthService) ListCustomers(ctx context.Context) ([]*models.User, error) {
	return s.users.ListCustomers(ctx)
}

// GetCustomer возвращает клиента по ID. Дилеры через эту ручку
// не отдаются и выглядят как отсутствующие.
func (s *AuthService) GetCustomer(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.IsDealer {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateCustomer обновляет данные клиента. Редактировать можно
// только собственную учётную запись.
func (s *AuthService) UpdateCustomer(ctx context.Context, actorID, id int64, req models.DummyUserUpdate) (*models.User, error) {
	user, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID != actorID {
		return nil, ErrForbidden
	}

	patch := models.UserPatch{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Password != nil {
		hashed, err := password.GetHash(*req.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hashed
	}
	if _, err := s.users.UpdateUser(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.users.GetUser(ctx, id)
}

// DeleteCustomer удаляет клиента. Удалить можно только
// собственную учётную запись.
func (s *AuthService) DeleteCustomer(ctx context.Context, actorID, id int64) error {
	user, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if user.ID != actorID {
		return ErrForbidden
	}
	_, err = s.users.DeleteUser(ctx, id)
	return err
}

func (s *AuthService) createCustomer(ctx context.Context, req models.DummyUser) (*models.User, error) {
	_, err := s.users.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     req.Username,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsDealer:     false,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = id
	return &user, nil
}
