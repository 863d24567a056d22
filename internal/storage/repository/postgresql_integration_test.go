package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-dealership/internal/models"
)

func TestStorage_BookCar(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	tests := []struct {
		name      string
		wantErr   error
		setup     func(t *testing.T, factory *TestDataFactory) (carID, userID int64)
		wantCount int
	}{
		{
			name: "successful booking",
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				userID := factory.CreateUser(t, "testuser", "hashedpassword", "Jan", "Kowalski", false)
				carID := factory.CreateCar(t, "Toyota", "Corolla", 2020, "JTDBR32E530012345", 18000, 132)
				return carID, userID
			},
			wantCount: 1,
		},
		{
			name:    "car already booked",
			wantErr: ErrCarUnavailable,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				firstID := factory.CreateUser(t, "first", "hashedpassword", "Jan", "Kowalski", false)
				secondID := factory.CreateUser(t, "second", "hashedpassword", "Anna", "Nowak", false)
				carID := factory.CreateCar(t, "Toyota", "Corolla", 2020, "JTDBR32E530012345", 18000, 132)
				_, err := factory.storage.BookCar(context.Background(), models.Rental{
					CarID: carID, UserID: firstID, StartDate: start, EndDate: end,
				})
				require.NoError(t, err)
				return carID, secondID
			},
			wantCount: 1,
		},
		{
			name:    "car does not exist",
			wantErr: sql.ErrNoRows,
			setup: func(t *testing.T, factory *TestDataFactory) (int64, int64) {
				userID := factory.CreateUser(t, "testuser", "hashedpassword", "Jan", "Kowalski", false)
				return 9999, userID
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			carID, userID := tt.setup(t, factory)

			id, err := storage.BookCar(context.Background(), models.Rental{
				CarID: carID, UserID: userID, StartDate: start, EndDate: end,
			})

			verification := NewTestVerification(storage)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Positive(t, id)
				verification.VerifyCarAvailability(t, carID, false)
			}
			if carID != 9999 {
				verification.VerifyRentalCount(t, carID, tt.wantCount)
			}
		})
	}
}

func TestStorage_ReleaseCar(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	t.Run("successful release", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "testuser", "hashedpassword", "Jan", "Kowalski", false)
		carID := factory.CreateCar(t, "Toyota", "Corolla", 2020, "JTDBR32E530012345", 18000, 132)
		_, err := storage.BookCar(context.Background(), models.Rental{
			CarID: carID, UserID: userID, StartDate: start, EndDate: end,
		})
		require.NoError(t, err)

		require.NoError(t, storage.ReleaseCar(context.Background(), carID, userID))

		verification := NewTestVerification(storage)
		verification.VerifyCarAvailability(t, carID, true)
		verification.VerifyRentalCount(t, carID, 0)
	})

	t.Run("release by another user keeps booking", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		ownerID := factory.CreateUser(t, "owner", "hashedpassword", "Jan", "Kowalski", false)
		strangerID := factory.CreateUser(t, "stranger", "hashedpassword", "Anna", "Nowak", false)
		carID := factory.CreateCar(t, "Toyota", "Corolla", 2020, "JTDBR32E530012345", 18000, 132)
		_, err := storage.BookCar(context.Background(), models.Rental{
			CarID: carID, UserID: ownerID, StartDate: start, EndDate: end,
		})
		require.NoError(t, err)

		err = storage.ReleaseCar(context.Background(), carID, strangerID)
		assert.ErrorIs(t, err, ErrNotRenter)

		verification := NewTestVerification(storage)
		verification.VerifyCarAvailability(t, carID, false)
		verification.VerifyRentalCount(t, carID, 1)
	})
}

func TestStorage_ReturnCar(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userID := factory.CreateUser(t, "testuser", "hashedpassword", "Jan", "Kowalski", false)
	carID := factory.CreateCar(t, "Toyota", "Corolla", 2020, "JTDBR32E530012345", 18000, 132)
	_, err := storage.BookCar(context.Background(), models.Rental{
		CarID: carID, UserID: userID, StartDate: start, EndDate: end,
	})
	require.NoError(t, err)

	require.NoError(t, storage.ReturnCar(context.Background(), carID))

	verification := NewTestVerification(storage)
	verification.VerifyCarAvailability(t, carID, true)
	verification.VerifyRentalCount(t, carID, 0)

	car, err := storage.GetCar(context.Background(), carID)
	require.NoError(t, err)
	assert.Nil(t, car.RenterID)
}

func TestStorage_UpdateCar(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	carID := factory.CreateCar(t, "Toyota", "Corolla", 2020, "JTDBR32E530012345", 18000, 132)

	// Частичное обновление не должно трогать остальные поля
	newPrice := 16500.0
	rows, err := storage.UpdateCar(context.Background(), carID, models.DummyCarUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	car, err := storage.GetCar(context.Background(), carID)
	require.NoError(t, err)
	assert.Equal(t, 16500.0, car.Price)
	assert.Equal(t, "Toyota", car.Brand)
	assert.Equal(t, 2020, car.Year)

	rows, err = storage.UpdateCar(context.Background(), 9999, models.DummyCarUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestStorage_Users(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	id, err := storage.CreateUser(context.Background(), models.User{
		Username:     "testuser",
		PasswordHash: "hashedpassword",
		FirstName:    "Jan",
		LastName:     "Kowalski",
	})
	require.NoError(t, err)

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "dealer", "hashedpassword", "Adam", "Mickiewicz", true)

	user, err := storage.GetUserByUsername(context.Background(), "testuser")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = storage.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Дилеры не попадают в список клиентов
	customers, err := storage.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "testuser", customers[0].Username)
}
