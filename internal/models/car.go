// Package models содержит доменные структуры автосалона: автомобили,
// пользователи, прокаты и сессии, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

// CarState — явное состояние автомобиля, вычисляемое из флага доступности
// и двух ссылок на пользователей. Допустимы ровно три комбинации:
// доступен (обе ссылки пустые), в прокате (заполнен RenterID),
// продан (заполнен OwnerID).
type CarState string

const (
	// CarStateAvailable — автомобиль свободен для проката и покупки.
	CarStateAvailable CarState = "available"
	// CarStateRented — автомобиль выдан в прокат.
	CarStateRented CarState = "rented"
	// CarStateSold — автомобиль продан.
	CarStateSold CarState = "sold"
)

// Car представляет автомобиль салона.
// Имена JSON-полей совпадают с контрактом существующего фронтенда.
type Car struct {
	ID                 int64   `json:"id"`
	Brand              string  `json:"brand"`
	Model              string  `json:"model"`
	Year               int     `json:"year"`
	VIN                string  `json:"vin"`
	Price              float64 `json:"price"`
	HorsePower         int     `json:"horsePower"`
	IsAvailableForRent bool    `json:"isAvailableForRent"`
	OwnerID            *int64  `json:"ownerId"`
	RenterID           *int64  `json:"renterId"`
}

// State возвращает явное состояние автомобиля.
func (c *Car) State() CarState {
	switch {
	case c.IsAvailableForRent:
		return CarStateAvailable
	case c.RenterID != nil:
		return CarStateRented
	default:
		return CarStateSold
	}
}

// CarRenter — ссылка на арендатора автомобиля. RenterID равен null,
// пока автомобиль не в прокате.
type CarRenter struct {
	CarID    int64  `json:"carId"`
	RenterID *int64 `json:"renterId"`
}

// DummyCar используется для приёма данных нового автомобиля из JSON-запроса.
type DummyCar struct {
	Brand      string   `json:"brand" validate:"required"`
	Model      string   `json:"model" validate:"required"`
	Year       int      `json:"year" validate:"required,gte=1886"`
	VIN        string   `json:"vin" validate:"required,len=17"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	HorsePower int      `json:"horsePower" validate:"required,gte=1"`
}

// DummyCarUpdate используется для частичного обновления автомобиля.
// Незаполненные поля (nil) не изменяют сохранённые значения.
type DummyCarUpdate struct {
	Brand              *string  `json:"brand" validate:"omitempty,min=1"`
	Model              *string  `json:"model" validate:"omitempty,min=1"`
	Year               *int     `json:"year" validate:"omitempty,gte=1886"`
	VIN                *string  `json:"vin" validate:"omitempty,len=17"`
	Price              *float64 `json:"price" validate:"omitempty,gte=0"`
	HorsePower         *int     `json:"horsePower" validate:"omitempty,gte=1"`
	IsAvailableForRent *bool    `json:"isAvailableForRent"`
}

// DummyLeasing — входные данные расчёта лизинга.
type DummyLeasing struct {
	DownPayment *float64 `json:"downPayment" validate:"required,gte=0"`
	Months      int      `json:"months" validate:"required,gte=1"`
}

// LeasingQuote — результат расчёта лизинга для конкретного автомобиля.
type LeasingQuote struct {
	CarID           int64   `json:"carId"`
	CarBrand        string  `json:"carBrand"`
	CarModel        string  `json:"carModel"`
	TotalPrice      float64 `json:"totalPrice"`
	DownPayment     float64 `json:"downPayment"`
	RemainingAmount float64 `json:"remainingAmount"`
	Months          int     `json:"months"`
	MonthlyRate     float64 `json:"monthlyRate"`
}
