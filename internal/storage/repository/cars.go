package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/car-dealership/internal/models"
)

// CreateCar вставляет новый автомобиль и возвращает его ID.
func (s *Storage) CreateCar(ctx context.Context, car models.Car) (int64, error) {
	const op = "storage.CreateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cars (brand, model, year, vin, price, horse_power, is_available_for_rent)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		car.Brand, car.Model, car.Year, car.VIN, car.Price, car.HorsePower,
		car.IsAvailableForRent).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetCar возвращает автомобиль по его ID.
func (s *Storage) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	const op = "storage.GetCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, brand, model, year, vin, price, horse_power,
			      is_available_for_rent, owner_id, renter_id
			  FROM cars WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Car
	if err := row.Scan(&result.ID, &result.Brand, &result.Model, &result.Year, &result.VIN,
		&result.Price, &result.HorsePower, &result.IsAvailableForRent,
		&result.OwnerID, &result.RenterID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListCars возвращает список всех автомобилей салона.
func (s *Storage) ListCars(ctx context.Context) ([]*models.Car, error) {
	const op = "storage.ListCars"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, brand, model, year, vin, price, horse_power,
			      is_available_for_rent, owner_id, renter_id
			  FROM cars
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Car
	for rows.Next() {
		var item models.Car
		if err := rows.Scan(&item.ID, &item.Brand, &item.Model, &item.Year, &item.VIN,
			&item.Price, &item.HorsePower, &item.IsAvailableForRent,
			&item.OwnerID, &item.RenterID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCar выполняет частичное обновление: nil-поля не трогают
// сохранённые значения. Возвращает количество изменённых строк.
func (s *Storage) UpdateCar(ctx context.Context, id int64, upd models.DummyCarUpdate) (int64, error) {
	const op = "storage.UpdateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cars
			  SET brand = COALESCE($1, brand),
			      model = COALESCE($2, model),
			      year = COALESCE($3, year),
			      vin = COALESCE($4, vin),
			      price = COALESCE($5, price),
			      horse_power = COALESCE($6, horse_power),
			      is_available_for_rent = COALESCE($7, is_available_for_rent)
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		upd.Brand, upd.Model, upd.Year, upd.VIN, upd.Price, upd.HorsePower,
		upd.IsAvailableForRent, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// DeleteCar удаляет автомобиль по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteCar(ctx context.Context, id int64) (int64, error) {
	const op = "storage.DeleteCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cars WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// MarkCarRented переводит автомобиль в состояние "в прокате".
// Условие на доступность в WHERE защищает от гонки двух арендаторов:
// проигравший получает 0 изменённых строк.
func (s *Storage) MarkCarRented(ctx context.Context, carID, renterID int64) (int64, error) {
	const op = "storage.MarkCarRented"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cars
			  SET is_available_for_rent = FALSE, renter_id = $2
			  WHERE id = $1 AND is_available_for_rent = TRUE`
	result, err := s.DB.ExecContext(ctx, query, carID, renterID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// MarkCarSold переводит автомобиль в состояние "продан".
func (s *Storage) MarkCarSold(ctx context.Context, carID, ownerID int64) (int64, error) {
	const op = "storage.MarkCarSold"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cars
			  SET is_available_for_rent = FALSE, owner_id = $2
			  WHERE id = $1 AND is_available_for_rent = TRUE`
	result, err := s.DB.ExecContext(ctx, query, carID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ReturnCar возвращает автомобиль в салон: снимает арендатора и удаляет
// записи о бронировании этого автомобиля в одной транзакции, чтобы
// запись о прокате не пережила возврат.
func (s *Storage) ReturnCar(ctx context.Context, carID int64) error {
	const op = "storage.ReturnCar"
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

	if _, err := tx.ExecContext(ctx,
		`UPDATE cars SET is_available_for_rent = TRUE, renter_id = NULL WHERE id = $1`,
		carID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM rentals WHERE car_id = $1`, carID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
