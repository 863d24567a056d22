package dealership

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/car-dealership/internal/config"
	"github.com/magabrotheeeer/car-dealership/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/car-dealership/internal/lib/sl"
	"github.com/magabrotheeeer/car-dealership/internal/migrations"
	authservice "github.com/magabrotheeeer/car-dealership/internal/services/auth"
	carservice "github.com/magabrotheeeer/car-dealership/internal/services/car"
	rentalservice "github.com/magabrotheeeer/car-dealership/internal/services/rental"
	"github.com/magabrotheeeer/car-dealership/internal/session"
	"github.com/magabrotheeeer/car-dealership/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	var sessions session.Store
	if cfg.RedisConnection.Addr != "" {
		sessions, err = session.NewRedisStore(ctx, cfg.RedisConnection, cfg.TTL)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("redis is not configured, using in-memory session store")
		sessions = session.NewMemoryStore(cfg.TTL)
	}

	var events rentalservice.EventPublisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQAddress != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQAddress, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetRentalQueues())
		if err != nil {
			return nil, err
		}
		events = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("rabbitmq is not configured, rental events will be dropped")
	}

	authService := authservice.NewAuthService(db)
	carService := carservice.NewCarService(db, logger)
	rentalService := rentalservice.NewRentalService(db, events, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, sessions, authService, carService, rentalService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
