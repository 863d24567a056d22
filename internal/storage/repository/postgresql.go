// Package repository реализует хранилище данных на основе PostgreSQL
// для управления автомобилями, пользователями и прокатами. Предоставляет
// методы создания, чтения, обновления и удаления записей, а также
// транзакционные операции бронирования.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrCarUnavailable возвращается при попытке забронировать
	// автомобиль, который уже выдан или продан.
	ErrCarUnavailable = errors.New("car is not available")
	// ErrNotRenter возвращается при попытке снять бронь,
	// принадлежащую другому пользователю.
	ErrNotRenter = errors.New("rental belongs to another user")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с автомобилями, пользователями и прокатами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'cars'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table cars missing or query error: %w", err)
	}
	return nil
}
