// Package services содержит бизнес-логику работы с автомобилями:
// CRUD, переходы состояний (прокат, возврат, покупка) и расчёт лизинга.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/car-dealership/internal/lib/leasing"
	"github.com/magabrotheeeer/car-dealership/internal/models"
)

var (
	// ErrNotFound возвращается, когда автомобиль не существует.
	ErrNotFound = errors.New("car not found")
	// ErrNotAvailable возвращается при попытке взять в прокат
	// или купить занятый автомобиль.
	ErrNotAvailable = errors.New("car is not available")
	// ErrAlreadyAvailable возвращается при возврате свободного автомобиля.
	ErrAlreadyAvailable = errors.New("car is already available")
	// ErrNotRenter возвращается при возврате чужого автомобиля.
	ErrNotRenter = errors.New("car is rented by another user")
	// ErrForbidden возвращается при действии, доступном только дилеру.
	ErrForbidden = errors.New("not allowed")
	// ErrCarInUse возвращается при удалении выданного или проданного автомобиля.
	ErrCarInUse = errors.New("car is rented or sold")
)

// CarRepository определяет методы для работы с автомобилями в хранилище.
type CarRepository interface {
	// CreateCar добавляет новый автомобиль и возвращает его ID.
	CreateCar(ctx context.Context, car models.Car) (int64, error)
	// GetCar возвращает автомобиль по ID.
	GetCar(ctx context.Context, id int64) (*models.Car, error)
	// ListCars возвращает все автомобили салона.
	ListCars(ctx context.Context) ([]*models.Car, error)
	// UpdateCar выполняет частичное обновление по ID.
	UpdateCar(ctx context.Context, id int64, upd models.DummyCarUpdate) (int64, error)
	// DeleteCar удаляет автомобиль по ID.
	DeleteCar(ctx context.Context, id int64) (int64, error)
	// MarkCarRented помечает автомобиль выданным в прокат.
	MarkCarRented(ctx context.Context, carID, renterID int64) (int64, error)
	// MarkCarSold помечает автомобиль проданным.
	MarkCarSold(ctx context.Context, carID, ownerID int64) (int64, error)
	// ReturnCar возвращает автомобиль в салон и удаляет его брони.
	ReturnCar(ctx context.Context, carID int64) error
	// GetUser возвращает пользователя по ID (для проверки прав дилера).
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// CarService реализует бизнес-логику работы с автомобилями.
type CarService struct {
	repo CarRepository
	log  *slog.Logger
}

// NewCarService создает новый экземпляр CarService.
func NewCarService(repo CarRepository, log *slog.Logger) *CarService {
	return &CarService{repo: repo, log: log}
}

// List возвращает все автомобили салона.
func (s *CarService) List(ctx context.Context) ([]*models.Car, error) {
	return s.repo.ListCars(ctx)
}

// Read возвращает автомобиль по ID.
func (s *CarService) Read(ctx context.Context, id int64) (*models.Car, error) {
	return s.getCar(ctx, id)
}

// Create добавляет автомобиль в салон. Доступно только дилеру,
// новый автомобиль всегда свободен.
func (s *CarService) Create(ctx context.Context, actorID int64, req models.DummyCar) (*models.Car, error) {
	if err := s.requireDealer(ctx, actorID); err != nil {
		return nil, err
	}

	car := models.Car{
		Brand:              req.Brand,
		Model:              req.Model,
		Year:               req.Year,
		VIN:                req.VIN,
		Price:              *req.Price,
		HorsePower:         req.HorsePower,
		IsAvailableForRent: true,
	}
	id, err := s.repo.CreateCar(ctx, car)
	if err != nil {
		return nil, err
	}
	car.ID = id

	s.log.Info("created new car", slog.Int64("id", id), slog.String("vin", car.VIN))
	return &car, nil
}

// Update выполняет частичное обновление автомобиля.
func (s *CarService) Update(ctx context.Context, id int64, req models.DummyCarUpdate) (*models.Car, error) {
	rows, err := s.repo.UpdateCar(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.getCar(ctx, id)
}

// Delete удаляет автомобиль. Доступно только дилеру и только пока
// автомобиль свободен: выданный или проданный автомобиль удалить нельзя.
func (s *CarService) Delete(ctx context.Context, actorID, id int64) error {
	if err := s.requireDealer(ctx, actorID); err != nil {
		return err
	}
	car, err := s.getCar(ctx, id)
	if err != nil {
		return err
	}
	if car.State() != models.CarStateAvailable {
		return ErrCarInUse
	}
	_, err = s.repo.DeleteCar(ctx, id)
	return err
}

// Rent выдаёт автомобиль в прокат: Available -> Rented.
func (s *CarService) Rent(ctx context.Context, actorID, carID int64) (*models.Car, error) {
	car, err := s.getCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.State() != models.CarStateAvailable {
		return nil, ErrNotAvailable
	}
	rows, err := s.repo.MarkCarRented(ctx, carID, actorID)
	if err != nil {
		return nil, err
	}
	// Проигрыш гонки за автомобиль выглядит так же, как занятый автомобиль.
	if rows == 0 {
		return nil, ErrNotAvailable
	}

	s.log.Info("car rented", slog.Int64("car_id", carID), slog.Int64("renter_id", actorID))
	return s.getCar(ctx, carID)
}

// Return принимает автомобиль обратно: Rented -> Available.
// Вернуть автомобиль может только его арендатор.
func (s *CarService) Return(ctx context.Context, actorID, carID int64) (*models.Car, error) {
	car, err := s.getCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.State() == models.CarStateAvailable {
		return nil, ErrAlreadyAvailable
	}
	if car.RenterID == nil || *car.RenterID != actorID {
		return nil, ErrNotRenter
	}
	if err := s.repo.ReturnCar(ctx, carID); err != nil {
		return nil, err
	}

	s.log.Info("car returned", slog.Int64("car_id", carID), slog.Int64("renter_id", actorID))
	return s.getCar(ctx, carID)
}

// Buy продаёт автомобиль: Available -> Sold.
func (s *CarService) Buy(ctx context.Context, actorID, carID int64) (*models.Car, error) {
	car, err := s.getCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.State() != models.CarStateAvailable {
		return nil, ErrNotAvailable
	}
	rows, err := s.repo.MarkCarSold(ctx, carID, actorID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotAvailable
	}

	s.log.Info("car sold", slog.Int64("car_id", carID), slog.Int64("owner_id", actorID))
	return s.getCar(ctx, carID)
}

// Renter возвращает ссылку на арендатора автомобиля. Для свободного
// или проданного автомобиля RenterID пуст.
func (s *CarService) Renter(ctx context.Context, carID int64) (*models.CarRenter, error) {
	car, err := s.getCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	return &models.CarRenter{CarID: car.ID, RenterID: car.RenterID}, nil
}

// Leasing считает лизинговый платёж для автомобиля.
// Расчёт не меняет состояние.
func (s *CarService) Leasing(ctx context.Context, carID int64, downPayment float64, months int) (*models.LeasingQuote, error) {
	car, err := s.getCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	quote, err := leasing.Calculate(car.Price, downPayment, months)
	if err != nil {
		return nil, err
	}
	return &models.LeasingQuote{
		CarID:           car.ID,
		CarBrand:        car.Brand,
		CarModel:        car.Model,
		TotalPrice:      quote.TotalPrice,
		DownPayment:     quote.DownPayment,
		RemainingAmount: quote.RemainingAmount,
		Months:          quote.Months,
		MonthlyRate:     quote.MonthlyRate,
	}, nil
}

func (s *CarService) getCar(ctx context.Context, id int64) (*models.Car, error) {
	car, err := s.repo.GetCar(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (s *CarService) requireDealer(ctx context.Context, actorID int64) error {
	actor, err := s.repo.GetUser(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsDealer {
		return ErrForbidden
	}
	return nil
}
