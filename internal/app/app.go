package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	fileadapter "github.com/shopcore/admin-service/internal/adapter/file"
	memoryadapter "github.com/shopcore/admin-service/internal/adapter/memory"
	natsadapter "github.com/shopcore/admin-service/internal/adapter/nats"
	redisadapter "github.com/shopcore/admin-service/internal/adapter/redis"
	"github.com/shopcore/admin-service/internal/adapter/restapi"
	s3adapter "github.com/shopcore/admin-service/internal/adapter/storage/s3"
	"github.com/shopcore/admin-service/internal/app/config"
	"github.com/shopcore/admin-service/internal/mailer"
	"github.com/shopcore/admin-service/internal/platform/logger"
	httpport "github.com/shopcore/admin-service/internal/port/http"
	"github.com/shopcore/admin-service/internal/port/http/handler"
	"github.com/shopcore/admin-service/internal/repository"
	"github.com/shopcore/admin-service/internal/service"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpport.Server
	redisClient *goredis.Client
}

// disabledImageStorage rejects uploads when no MinIO endpoint is configured.
type disabledImageStorage struct{}

func (disabledImageStorage) Upload(context.Context, string, []byte) (string, error) {
	return "", fmt.Errorf("%w: image storage is not configured", service.ErrValidationFailed)
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.NewZapLogger(logger.ZapConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: env=%s http_port=%s backend=%s", cfg.Env, cfg.HTTPServer.Port, cfg.Backend.BaseURL)

	userRepo := restapi.NewUserRepository(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	productRepo := restapi.NewProductRepository(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	appLogger.Info("Backend resource repositories initialized")

	var redisClient *goredis.Client
	needRedis := cfg.Session.Store == "redis" || cfg.Cart.Store == "redis"
	if needRedis {
		redisClient, err = redisadapter.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis client: %w", err)
		}
		appLogger.Info("Redis client initialized")
	}

	var sessionStore repository.SessionStore
	if cfg.Session.Store == "redis" {
		sessionStore = redisadapter.NewSessionStore(redisClient)
	} else {
		sessionStore = fileadapter.NewSessionStore(cfg.Session.FilePath)
	}
	appLogger.Infof("Session store initialized (%s)", cfg.Session.Store)

	var cartRepo repository.CartRepository
	if cfg.Cart.Store == "redis" {
		cartRepo = redisadapter.NewCartRepository(redisClient)
	} else {
		cartRepo = memoryadapter.NewCartRepository()
	}
	appLogger.Infof("Cart repository initialized (%s)", cfg.Cart.Store)

	var publisher natsadapter.MessagePublisher = natsadapter.NoOpPublisher{}
	if cfg.NATS.URL != "" {
		conn, err := natsadapter.NewConnection(cfg.NATS)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NATS: %w", err)
		}
		publisher, err = natsadapter.NewNATSPublisher(conn)
		if err != nil {
			return nil, err
		}
		appLogger.Info("NATS publisher initialized")
	}

	var imageStorage service.ImageStorage = disabledImageStorage{}
	if cfg.MinIO.Endpoint != "" {
		storage, err := s3adapter.NewStorage(cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize image storage: %w", err)
		}
		imageStorage = storage
	}

	var mail mailer.Mailer = mailer.NoOpMailer{}
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
		appLogger.Info("SMTP mailer initialized")
	}

	authService := service.NewAuthService(userRepo, sessionStore, mail, appLogger)
	userService := service.NewUserService(userRepo, productRepo, sessionStore, publisher, appLogger)
	catalogService := service.NewCatalogService(productRepo, imageStorage, appLogger)
	cartService := service.NewCartService(cartRepo, productRepo, appLogger, cfg.Cart.TTL)
	purchaseService := service.NewPurchaseService(userRepo, productRepo, cartRepo, sessionStore, publisher, appLogger)
	appLogger.Info("Services initialized")

	router := httpport.NewRouter(httpport.Handlers{
		Auth:     handler.NewAuthHandler(authService, appLogger),
		User:     handler.NewUserHandler(userService, appLogger),
		Catalog:  handler.NewCatalogHandler(catalogService, appLogger),
		Cart:     handler.NewCartHandler(cartService, appLogger),
		Purchase: handler.NewPurchaseHandler(purchaseService, appLogger),
	}, appLogger)

	server := httpport.NewServer(cfg.HTTPServer.Port, cfg.HTTPServer.ReadTimeout, cfg.HTTPServer.WriteTimeout, router, appLogger)

	return &App{
		cfg:         cfg,
		log:         appLogger,
		server:      server,
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() {
	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v, shutting down", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		a.log.Errorf("Error during HTTP server shutdown: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing redis client: %v", err)
		}
	}
	a.log.Info("Application stopped")
}
