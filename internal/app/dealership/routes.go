// Package dealership собирает приложение автосалона: хранилище,
// сессии, сервисы и маршруты HTTP-сервера.
package dealership

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/admin/createcustomer"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/auth/currentuser"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/buy"
	carcreate "github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/create"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/leasing"
	carlist "github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/list"
	carread "github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/read"
	carremove "github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/remove"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/rent"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/renter"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/returncar"
	carupdate "github.com/magabrotheeeer/car-dealership/internal/http/handlers/car/update"
	"github.com/magabrotheeeer/car-dealership/internal/http/handlers/home"
	rentalcreate "github.com/magabrotheeeer/car-dealership/internal/http/handlers/rental/create"
	rentallist "github.com/magabrotheeeer/car-dealership/internal/http/handlers/rental/list"
	rentalremove "github.com/magabrotheeeer/car-dealership/internal/http/handlers/rental/remove"
	userlist "github.com/magabrotheeeer/car-dealership/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/car-dealership/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/car-dealership/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/car-dealership/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/car-dealership/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/car-dealership/internal/services/auth"
	carservice "github.com/magabrotheeeer/car-dealership/internal/services/car"
	rentalservice "github.com/magabrotheeeer/car-dealership/internal/services/rental"
	"github.com/magabrotheeeer/car-dealership/internal/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, sessions session.Store, authService *authservice.AuthService, carService *carservice.CarService, rentalService *rentalservice.RentalService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Get("/", home.New(logger).ServeHTTP)
	r.Post("/register", register.New(logger, authService, sessions).ServeHTTP)
	r.Post("/login", login.New(logger, authService, sessions).ServeHTTP)
	r.Post("/logout", logout.New(logger, sessions).ServeHTTP)
	r.Get("/cars", carlist.New(logger, carService).ServeHTTP)
	r.Get("/cars/{id}", carread.New(logger, carService).ServeHTTP)
	r.Get("/cars/{id}/renter", renter.New(logger, carService).ServeHTTP)
	r.Post("/cars/{id}/leasing", leasing.New(logger, carService).ServeHTTP)

	// Группа с cookie-сессиями
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(sessions, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/current-user", currentuser.New(logger, authService).ServeHTTP)
		r.Post("/cars", carcreate.New(logger, carService).ServeHTTP)
		r.Put("/cars/{id}", carupdate.New(logger, carService).ServeHTTP)
		r.Delete("/cars/{id}", carremove.New(logger, carService).ServeHTTP)
		r.Post("/cars/{id}/rent", rent.New(logger, carService).ServeHTTP)
		r.Post("/cars/{id}/return", returncar.New(logger, carService).ServeHTTP)
		r.Post("/cars/{id}/buy", buy.New(logger, carService).ServeHTTP)
		r.Get("/users", userlist.New(logger, authService).ServeHTTP)
		r.Get("/users/{id}", userread.New(logger, authService).ServeHTTP)
		r.Put("/users/{id}", userupdate.New(logger, authService).ServeHTTP)
		r.Delete("/users/{id}", userremove.New(logger, authService).ServeHTTP)
		r.Post("/admin/create-customer", createcustomer.New(logger, authService).ServeHTTP)
		r.Post("/rentals", rentalcreate.New(logger, rentalService).ServeHTTP)
		r.Get("/rentals", rentallist.New(logger, rentalService).ServeHTTP)
		r.Delete("/rentals/{carID}", rentalremove.New(logger, rentalService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
