// Package thegurutips собирает сервис: хранилище, кеш, брокер событий,
// бизнес-логику и HTTP-сервер.
package thegurutips

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/VictonicTechnologies/thegurutips/internal/cache"
	"github.com/VictonicTechnologies/thegurutips/internal/config"
	"github.com/VictonicTechnologies/thegurutips/internal/content"
	"github.com/VictonicTechnologies/thegurutips/internal/ledger"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
	"github.com/VictonicTechnologies/thegurutips/internal/migrations"
	"github.com/VictonicTechnologies/thegurutips/internal/rabbitmq"
	"github.com/VictonicTechnologies/thegurutips/internal/register"
	paymentservice "github.com/VictonicTechnologies/thegurutips/internal/services/payment"
	"github.com/VictonicTechnologies/thegurutips/internal/storage/kv"
)

// App владеет ресурсами сервиса и умеет запускаться и останавливаться.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	store    kv.Store
	amqpConn *amqp.Connection
}

// New собирает приложение по конфигу.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	var contentCache content.Cache
	if cfg.RedisConnection.Addr != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		contentCache = cacheRedis
	} else {
		logger.Warn("redis is not configured, content cache is disabled")
	}

	var events paymentservice.EventPublisher
	var amqpConn *amqp.Connection
	if cfg.Rabbit.URL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.Rabbit.URL, cfg.Rabbit.Retries, cfg.Rabbit.RetryTimeout)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn)
		if err != nil {
			return nil, err
		}
		events = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("rabbitmq is not configured, payment events are disabled")
	}

	codeLedger := ledger.New(store, logger)
	subRegister := register.New(store, logger)
	validationService := paymentservice.New(codeLedger, subRegister, events, logger)
	contentClient := content.New(cfg.Content, contentCache, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, validationService, codeLedger, subRegister, contentClient, cfg.TillNumber)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		store:    store,
		amqpConn: amqpConn,
	}, nil
}

// newStore выбирает реализацию хранилища коллекций по конфигу.
func newStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Driver {
	case "bolt", "":
		return kv.NewBolt(cfg.Storage.BoltPath)
	case "postgres":
		store, err := kv.NewPostgres(cfg.Storage.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err := migrations.Run(store.DB, cfg.Storage.MigrationsPath); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

// Run запускает HTTP-сервер и ждёт завершения контекста или ошибки сервера.
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
		if cerr := a.store.Close(); cerr != nil {
			a.logger.Error("failed to close store", sl.Err(cerr))
		}
		if a.amqpConn != nil {
			if cerr := a.amqpConn.Close(); cerr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(cerr))
			}
		}
		return err
	}
}
