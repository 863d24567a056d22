package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/car-dealership/internal/models"
)

// BookCar атомарно создаёт запись о прокате и помечает автомобиль
// занятым. Строка автомобиля блокируется FOR UPDATE, поэтому два
// одновременных бронирования не могут пройти оба: проигравший
// увидит занятый автомобиль и получит ErrCarUnavailable.
// При любой ошибке обе записи откатываются.
func (s *Storage) BookCar(ctx context.Context, rental models.Rental) (int64, error) {
	const op = "storage.BookCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var available bool
	if err := tx.QueryRowContext(ctx,
		`SELECT is_available_for_rent FROM cars WHERE id = $1 FOR UPDATE`,
		rental.CarID).Scan(&available); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !available {
		return 0, fmt.Errorf("%s: %w", op, ErrCarUnavailable)
	}

	var newID int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO rentals (car_id, user_id, start_date, end_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		rental.CarID, rental.UserID, rental.StartDate, rental.EndDate).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE cars SET is_available_for_rent = FALSE, renter_id = $2 WHERE id = $1`,
		rental.CarID, rental.UserID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReleaseCar атомарно удаляет запись о прокате и возвращает автомобиль
// в салон. Прокат ищется по ID автомобиля — так адресует его
// существующий фронтенд. Снять бронь может только её владелец.
func (s *Storage) ReleaseCar(ctx context.Context, carID, userID int64) error {
	const op = "storage.ReleaseCar"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var rentalID, ownerID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id, user_id FROM rentals WHERE car_id = $1 FOR UPDATE`,
		carID).Scan(&rentalID, &ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ownerID != userID {
		return fmt.Errorf("%s: %w", op, ErrNotRenter)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM rentals WHERE id = $1`, rentalID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE cars SET is_available_for_rent = TRUE, renter_id = NULL WHERE id = $1`,
		carID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRentalsByUser возвращает прокаты пользователя вместе
// с проекцией автомобиля.
func (s *Storage) ListRentalsByUser(ctx context.Context, userID int64) ([]*models.RentalWithCar, error) {
	const op = "storage.ListRentalsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.car_id, r.user_id, r.start_date, r.end_date,
			      c.brand, c.model, c.vin, c.price
			  FROM rentals r
			  JOIN cars c ON c.id = r.car_id
			  WHERE r.user_id = $1
			  ORDER BY r.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RentalWithCar
	for rows.Next() {
		var item models.RentalWithCar
		if err := rows.Scan(&item.ID, &item.CarID, &item.UserID, &item.StartDate, &item.EndDate,
			&item.CarBrand, &item.CarModel, &item.CarVIN, &item.CarPrice); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
