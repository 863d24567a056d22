// Package services содержит бизнес-логику бронирования автомобилей.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/models"
	"github.com/magabrotheeeer/car-dealership/internal/storage/repository"
)

var (
	// ErrCarNotFound возвращается, когда автомобиль не существует.
	ErrCarNotFound = errors.New("car not found")
	// ErrCarUnavailable возвращается при бронировании занятого автомобиля.
	ErrCarUnavailable = errors.New("car is not available")
	// ErrRentalNotFound возвращается, когда у автомобиля нет активного проката.
	ErrRentalNotFound = errors.New("rental not found")
	// ErrNotRentalOwner возвращается при снятии чужой брони.
	ErrNotRentalOwner = errors.New("rental belongs to another user")
	// ErrInvalidDateRange возвращается, когда даты проката не образуют период.
	ErrInvalidDateRange = errors.New("invalid rental dates")
)

// RentalRepository определяет методы для работы с прокатами в хранилище.
type RentalRepository interface {
	// BookCar атомарно создаёт прокат и помечает автомобиль занятым.
	BookCar(ctx context.Context, rental models.Rental) (int64, error)
	// ReleaseCar атомарно удаляет прокат по ID автомобиля
	// и возвращает автомобиль в салон.
	ReleaseCar(ctx context.Context, carID, userID int64) error
	// ListRentalsByUser возвращает прокаты пользователя с проекцией автомобиля.
	ListRentalsByUser(ctx context.Context, userID int64) ([]*models.RentalWithCar, error)
}

// EventPublisher описывает публикацию событий проката в брокер.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// RentalService реализует бизнес-логику бронирования.
type RentalService struct {
	repo   RentalRepository
	events EventPublisher
	log    *slog.Logger
}

// NewRentalService создает новый экземпляр RentalService.
func NewRentalService(repo RentalRepository, events EventPublisher, log *slog.Logger) *RentalService {
	return &RentalService{repo: repo, events: events, log: log}
}

// Create бронирует автомобиль на период. Запись о прокате и смена
// состояния автомобиля происходят в одной транзакции хранилища.
func (s *RentalService) Create(ctx context.Context, userID int64, req models.DummyRental) (*models.Rental, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, ErrInvalidDateRange
	}

	rental := models.Rental{
		CarID:     req.CarID,
		UserID:    userID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	id, err := s.repo.BookCar(ctx, rental)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if errors.Is(err, repository.ErrCarUnavailable) {
		return nil, ErrCarUnavailable
	}
	if err != nil {
		return nil, err
	}
	rental.ID = id

	s.log.Info("rental created", slog.Int64("id", id), slog.Int64("car_id", rental.CarID))
	if err := s.events.Publish("rental.created", rental); err != nil {
		s.log.Warn("failed to publish rental event", sl.Err(err))
	}
	return &rental, nil
}

// Remove снимает бронь. Прокат адресуется по ID автомобиля — так
// адресует его существующий фронтенд. Снять бронь может только её владелец.
func (s *RentalService) Remove(ctx context.Context, userID, carID int64) error {
	err := s.repo.ReleaseCar(ctx, carID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRentalNotFound
	}
	if errors.Is(err, repository.ErrNotRenter) {
		return ErrNotRentalOwner
	}
	if err != nil {
		return err
	}

	s.log.Info("rental removed", slog.Int64("car_id", carID), slog.Int64("user_id", userID))
	if err := s.events.Publish("rental.returned", map[string]any{
		"carId":  carID,
		"userId": userID,
	}); err != nil {
		s.log.Warn("failed to publish rental event", sl.Err(err))
	}
	return nil
}

// ListByUser возвращает прокаты пользователя.
func (s *RentalService) ListByUser(ctx context.Context, userID int64) ([]*models.RentalWithCar, error) {
	return s.repo.ListRentalsByUser(ctx, userID)
}
