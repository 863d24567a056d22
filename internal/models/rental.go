package models

import "time"

// Rental представляет бронирование автомобиля пользователем
// на ограниченный срок. Пока запись существует, автомобиль
// недоступен и его RenterID равен UserID записи.
type Rental struct {
	ID        int64     `json:"id"`
	CarID     int64     `json:"carId"`
	UserID    int64     `json:"userId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// RentalWithCar — прокат вместе с проекцией автомобиля для списков.
type RentalWithCar struct {
	Rental
	CarBrand string  `json:"carBrand"`
	CarModel string  `json:"carModel"`
	CarVIN   string  `json:"carVin"`
	CarPrice float64 `json:"carPrice"`
}

// DummyRental используется для приёма данных нового проката из JSON-запроса.
// Даты приходят в формате RFC 3339.
type DummyRental struct {
	CarID     int64     `json:"carId" validate:"required,gte=1"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}
