package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-dealership/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCar(ctx context.Context, car models.Car) (int64, error) {
	args := m.Called(ctx, car)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}
func (m *RepoMock) ListCars(ctx context.Context) ([]*models.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Car), args.Error(1)
}
func (m *RepoMock) UpdateCar(ctx context.Context, id int64, upd models.DummyCarUpdate) (int64, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) DeleteCar(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) MarkCarRented(ctx context.Context, carID, renterID int64) (int64, error) {
	args := m.Called(ctx, carID, renterID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) MarkCarSold(ctx context.Context, carID, ownerID int64) (int64, error) {
	args := m.Called(ctx, carID, ownerID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ReturnCar(ctx context.Context, carID int64) error {
	return m.Called(ctx, carID).Error(0)
}
func (m *RepoMock) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func availableCar() *models.Car {
	return &models.Car{
		ID:                 5,
		Brand:              "Toyota",
		Model:              "Corolla",
		Year:               2020,
		VIN:                "JTDBR32E530012345",
		Price:              18000,
		HorsePower:         132,
		IsAvailableForRent: true,
	}
}

func rentedCar(renterID int64) *models.Car {
	car := availableCar()
	car.IsAvailableForRent = false
	car.RenterID = &renterID
	return car
}

func soldCar(ownerID int64) *models.Car {
	car := availableCar()
	car.IsAvailableForRent = false
	car.OwnerID = &ownerID
	return car
}

func TestCarService_Rent(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "успешный прокат",
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(availableCar(), nil).Once()
				r.On("MarkCarRented", mock.Anything, int64(5), int64(42)).Return(int64(1), nil).Once()
				r.On("GetCar", mock.Anything, int64(5)).Return(rentedCar(42), nil).Once()
			},
		},
		{
			name: "автомобиль уже в прокате",
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(rentedCar(7), nil).Once()
			},
			wantErr: ErrNotAvailable,
		},
		{
			name: "автомобиль продан",
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(soldCar(7), nil).Once()
			},
			wantErr: ErrNotAvailable,
		},
		{
			name: "автомобиль не существует",
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: ErrNotFound,
		},
		{
			name: "проигрыш гонки за автомобиль",
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(availableCar(), nil).Once()
				r.On("MarkCarRented", mock.Anything, int64(5), int64(42)).Return(int64(0), nil).Once()
			},
			wantErr: ErrNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewCarService(repo, newNoopLogger())

			car, err := svc.Rent(context.Background(), 42, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.CarStateRented, car.State())
				assert.Equal(t, int64(42), *car.RenterID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCarService_Return(t *testing.T) {
	tests := []struct {
		name       string
		actorID    int64
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:    "успешный возврат",
			actorID: 42,
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(rentedCar(42), nil).Once()
				r.On("ReturnCar", mock.Anything, int64(5)).Return(nil).Once()
				r.On("GetCar", mock.Anything, int64(5)).Return(availableCar(), nil).Once()
			},
		},
		{
			name:    "автомобиль уже свободен",
			actorID: 42,
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(availableCar(), nil).Once()
			},
			wantErr: ErrAlreadyAvailable,
		},
		{
			name:    "возврат чужого автомобиля",
			actorID: 42,
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(rentedCar(7), nil).Once()
			},
			wantErr: ErrNotRenter,
		},
		{
			name:    "возврат проданного автомобиля",
			actorID: 42,
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(soldCar(7), nil).Once()
			},
			wantErr: ErrNotRenter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewCarService(repo, newNoopLogger())

			car, err := svc.Return(context.Background(), tt.actorID, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.CarStateAvailable, car.State())
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCarService_Buy(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "успешная покупка",
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(availableCar(), nil).Once()
				r.On("MarkCarSold", mock.Anything, int64(5), int64(42)).Return(int64(1), nil).Once()
				r.On("GetCar", mock.Anything, int64(5)).Return(soldCar(42), nil).Once()
			},
		},
		{
			name: "покупка автомобиля в прокате",
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(rentedCar(7), nil).Once()
			},
			wantErr: ErrNotAvailable,
		},
		{
			name: "повторная покупка",
			setupMocks: func(r *RepoMock) {
				r.On("GetCar", mock.Anything, int64(5)).Return(soldCar(7), nil).Once()
			},
			wantErr: ErrNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewCarService(repo, newNoopLogger())

			car, err := svc.Buy(context.Background(), 42, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.CarStateSold, car.State())
				assert.Equal(t, int64(42), *car.OwnerID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCarService_Delete(t *testing.T) {
	dealer := &models.User{ID: 1, Username: "dealer", IsDealer: true}
	customer := &models.User{ID: 2, Username: "customer"}

	tests := []struct {
		name       string
		actorID    int64
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name:    "успешное удаление",
			actorID: 1,
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, int64(1)).Return(dealer, nil).Once()
				r.On("GetCar", mock.Anything, int64(5)).Return(availableCar(), nil).Once()
				r.On("DeleteCar", mock.Anything, int64(5)).Return(int64(1), nil).Once()
			},
		},
		{
			name:    "удаление не дилером",
			actorID: 2,
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, int64(2)).Return(customer, nil).Once()
			},
			wantErr: ErrForbidden,
		},
		{
			name:    "удаление выданного автомобиля",
			actorID: 1,
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, int64(1)).Return(dealer, nil).Once()
				r.On("GetCar", mock.Anything, int64(5)).Return(rentedCar(7), nil).Once()
			},
			wantErr: ErrCarInUse,
		},
		{
			name:    "удаление проданного автомобиля",
			actorID: 1,
			setupMocks: func(r *RepoMock) {
				r.On("GetUser", mock.Anything, int64(1)).Return(dealer, nil).Once()
				r.On("GetCar", mock.Anything, int64(5)).Return(soldCar(7), nil).Once()
			},
			wantErr: ErrCarInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := NewCarService(repo, newNoopLogger())

			err := svc.Delete(context.Background(), tt.actorID, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCarService_Create(t *testing.T) {
	dealer := &models.User{ID: 1, Username: "dealer", IsDealer: true}
	customer := &models.User{ID: 2, Username: "customer"}
	price := 18000.0
	req := models.DummyCar{
		Brand:      "Toyota",
		Model:      "Corolla",
		Year:       2020,
		VIN:        "JTDBR32E530012345",
		Price:      &price,
		HorsePower: 132,
	}

	t.Run("дилер добавляет автомобиль", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, int64(1)).Return(dealer, nil).Once()
		repo.On("CreateCar", mock.Anything, mock.MatchedBy(func(c models.Car) bool {
			return c.VIN == req.VIN && c.IsAvailableForRent
		})).Return(int64(5), nil).Once()
		svc := NewCarService(repo, newNoopLogger())

		car, err := svc.Create(context.Background(), 1, req)
		require.NoError(t, err)
		assert.Equal(t, int64(5), car.ID)
		assert.Equal(t, models.CarStateAvailable, car.State())
		repo.AssertExpectations(t)
	})

	t.Run("клиенту добавлять нельзя", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUser", mock.Anything, int64(2)).Return(customer, nil).Once()
		svc := NewCarService(repo, newNoopLogger())

		_, err := svc.Create(context.Background(), 2, req)
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertExpectations(t)
	})
}

func TestCarService_Renter(t *testing.T) {
	t.Run("возвращает ID арендатора", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetCar", mock.Anything, int64(5)).Return(rentedCar(42), nil).Once()
		svc := NewCarService(repo, newNoopLogger())

		renter, err := svc.Renter(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), renter.CarID)
		require.NotNil(t, renter.RenterID)
		assert.Equal(t, int64(42), *renter.RenterID)
		repo.AssertExpectations(t)
	})

	t.Run("свободный автомобиль без арендатора", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetCar", mock.Anything, int64(5)).Return(availableCar(), nil).Once()
		svc := NewCarService(repo, newNoopLogger())

		renter, err := svc.Renter(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), renter.CarID)
		assert.Nil(t, renter.RenterID)
		repo.AssertExpectations(t)
	})

	t.Run("несуществующий автомобиль", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetCar", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows).Once()
		svc := NewCarService(repo, newNoopLogger())

		_, err := svc.Renter(context.Background(), 99)
		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertExpectations(t)
	})
}

func TestCarService_Leasing(t *testing.T) {
	t.Run("расчёт для автомобиля", func(t *testing.T) {
		repo := new(RepoMock)
		car := availableCar()
		car.Price = 20000
		repo.On("GetCar", mock.Anything, int64(5)).Return(car, nil).Once()
		svc := NewCarService(repo, newNoopLogger())

		quote, err := svc.Leasing(context.Background(), 5, 5000, 36)
		require.NoError(t, err)
		assert.Equal(t, 15000.00, quote.RemainingAmount)
		assert.Equal(t, 416.67, quote.MonthlyRate)
		assert.Equal(t, "Toyota", quote.CarBrand)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка не меняет состояние", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetCar", mock.Anything, int64(5)).Return(availableCar(), nil).Once()
		svc := NewCarService(repo, newNoopLogger())

		_, err := svc.Leasing(context.Background(), 5, 99999, 36)
		assert.Error(t, err)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "UpdateCar", mock.Anything, mock.Anything, mock.Anything)
	})
}
