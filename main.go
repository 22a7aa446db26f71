package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kiosk/internal/cache"
	"kiosk/internal/config"
	"kiosk/internal/database"
	"kiosk/internal/events"
	"kiosk/internal/handlers"
	"kiosk/internal/logger"
	"kiosk/internal/repositories"
	"kiosk/internal/services"
	"kiosk/pkg/kafka"
	"kiosk/pkg/rabbitmq"
)

// App is the wired service: HTTP routes over the database, the event
// publisher and the product cache.
type App struct {
	Fiber *fiber.App

	db        *gorm.DB
	publisher events.Publisher
	mq        *rabbitmq.Client
	closers   []func() error
}

// NewApp opens every dependency named in cfg and mounts the routes.
func NewApp(cfg config.Config) (*App, error) {
	a := &App{}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, func() error { return database.Close(db) })
	if err := database.Migrate(db); err != nil {
		a.Close()
		return nil, err
	}

	publisher, mq, err := newPublisher(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.publisher, a.mq = publisher, mq
	a.closers = append(a.closers, publisher.Close)

	productCache, err := newCache(cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	if closer, ok := productCache.(interface{ Close() error }); ok {
		a.closers = append(a.closers, closer.Close)
	}

	store := repositories.NewGORMStore(db)
	policy := services.NewRolePolicy(cfg.Auth.EmailDomain, cfg.Auth.AdminEmails)
	wallets := services.NewWalletService(store, publisher)

	a.Fiber = fiber.New(fiber.Config{AppName: cfg.App.Name})
	a.Fiber.Use(recover.New())
	a.Fiber.Use(fiberlogger.New())

	handlers.Mount(a.Fiber.Group("/api/v1"), handlers.Services{
		Auth:         services.NewAuthService(store, policy, cfg.JWT.Secret, cfg.JWT.TTL),
		Users:        services.NewUserService(store, policy),
		Wallets:      wallets,
		Transactions: services.NewTransactionService(store, wallets),
		Orders:       services.NewOrderService(store, publisher),
		OrderItems:   services.NewOrderItemService(store),
		Products:     services.NewProductService(store, productCache, cfg.Redis.TTL),
		Categories:   services.NewCategoryService(store),
		Suppliers:    services.NewSupplierService(store),
	})

	return a, nil
}

// StartAuditConsumer logs every event that reaches the RabbitMQ queue. It is
// a no-op for other brokers.
func (a *App) StartAuditConsumer() error {
	if a.mq == nil {
		return nil
	}
	return a.mq.Consume(func(msg amqp.Delivery) error {
		return events.Audit(msg.Body)
	})
}

// Close releases dependencies in reverse order of acquisition.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func newPublisher(cfg config.Config) (events.Publisher, *rabbitmq.Client, error) {
	switch cfg.Events.Broker {
	case "":
		return events.NopPublisher{}, nil, nil
	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			return nil, nil, err
		}
		return events.NewRabbitMQPublisher(client), client, nil
	case "kafka":
		return events.NewKafkaPublisher(kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported events broker %q", cfg.Events.Broker)
	}
}

type closingCache struct {
	cache.Cache
	close func() error
}

func (c closingCache) Close() error { return c.close() }

func newCache(cfg config.RedisConfig) (cache.Cache, error) {
	if cfg.Addr == "" {
		return cache.Nop{}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, closeFn, err := cache.NewRedisCache(ctx, cfg.Addr)
	if err != nil {
		return nil, err
	}
	return closingCache{Cache: c, close: closeFn}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Log.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("failed to start", zap.Error(err))
	}

	if err := app.StartAuditConsumer(); err != nil {
		logger.Log.Warn("audit consumer not started", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Log.Info("starting server", zap.String("port", cfg.App.Port), zap.String("broker", cfg.Events.Broker))
		if err := app.Fiber.Listen(cfg.App.Port); err != nil {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Log.Info("shutting down server")

	if err := app.Fiber.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.Error("error during fiber shutdown", zap.Error(err))
	}
	if err := app.Close(); err != nil {
		logger.Log.Error("error releasing resources", zap.Error(err))
	}
	logger.Log.Info("server gracefully stopped")
}
