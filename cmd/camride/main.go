package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/camride/camride/internal/pkg/config"
	"github.com/camride/camride/internal/pkg/database"
	"github.com/camride/camride/internal/pkg/health"
	"github.com/camride/camride/internal/pkg/logger"
	"github.com/camride/camride/internal/pkg/middleware"
	"github.com/camride/camride/internal/pkg/nats"
	nrpkg "github.com/camride/camride/internal/pkg/newrelic"
	"github.com/camride/camride/internal/pkg/retry"
	accountgateway "github.com/camride/camride/services/accounts/gateway"
	accounthandler "github.com/camride/camride/services/accounts/handler"
	accounthttp "github.com/camride/camride/services/accounts/handler/http"
	accountrepo "github.com/camride/camride/services/accounts/repository"
	accountusecase "github.com/camride/camride/services/accounts/usecase"
	ridegateway "github.com/camride/camride/services/rides/gateway"
	ridehandler "github.com/camride/camride/services/rides/handler"
	ridehttp "github.com/camride/camride/services/rides/handler/http"
	riderepo "github.com/camride/camride/services/rides/repository"
	rideusecase "github.com/camride/camride/services/rides/usecase"
	wallethandler "github.com/camride/camride/services/wallet/handler"
	wallethttp "github.com/camride/camride/services/wallet/handler/http"
	walletrepo "github.com/camride/camride/services/wallet/repository"
	walletusecase "github.com/camride/camride/services/wallet/usecase"
)

func main() {
	appName := "camride"
	configPath := "config/camride.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Backing services may still be starting when we are; dial them
	// with backoff instead of failing on the first refused connection.
	retrier := retry.New(retry.StartupConfig(), zapLogger)

	var postgresClient *database.PostgresClient
	err = retrier.Execute(context.Background(), "postgres connect", func(ctx context.Context) error {
		postgresClient, err = database.NewPostgresClient(configs.Database)
		return err
	})
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	var natsClient *nats.Client
	err = retrier.Execute(context.Background(), "nats connect", func(ctx context.Context) error {
		natsClient, err = nats.NewClient(configs.NATS.URL)
		return err
	})
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	// Initialize repositories. The wallet repository doubles as the
	// wallet provisioner for account creation and as the fare ledger
	// for ride completion.
	walletRepository := walletrepo.NewWalletRepo(configs, postgresClient)
	accountRepository := accountrepo.NewAccountRepo(configs, postgresClient, walletRepository)
	rideRepository := riderepo.NewRideRepo(configs, postgresClient, walletRepository)

	// Initialize gateways
	accountGW := accountgateway.NewAccountGW(natsClient)
	rideGW := ridegateway.NewRideGW(natsClient)

	// Initialize usecases
	accountUC := accountusecase.NewAccountUC(accountRepository, accountGW, configs)
	walletUC := walletusecase.NewWalletUC(walletRepository, configs)
	rideUC := rideusecase.NewRideUC(rideRepository, rideGW, accountRepository, walletRepository, configs)

	// Initialize handlers
	accountHandler := accounthandler.NewHandler(
		accounthttp.NewAuthHandler(accountUC, configs.JWT),
		accounthttp.NewProfileHandler(accountUC),
		configs,
		redisClient,
	)
	walletHandler := wallethandler.NewHandler(wallethttp.NewWalletHandler(walletUC), configs)
	rideHandler := ridehandler.NewHandler(ridehttp.NewRideHandler(rideUC), configs)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.Middleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Initialize health service
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	accountHandler.RegisterRoutes(e)
	walletHandler.RegisterRoutes(e)
	rideHandler.RegisterRoutes(e)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%d", configs.Server.Port)
		zapLogger.Info("Starting HTTP server",
			logger.String("address", addr),
			logger.String("app", appName))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	zapLogger.Info("Received shutdown signal", logger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	zapLogger.Info("Shutting down HTTP server...")
	if err := e.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	zapLogger.Info("Closing PostgreSQL connection...")
	postgresClient.Close()

	zapLogger.Info("Closing Redis connection...")
	if err := redisClient.Close(); err != nil {
		zapLogger.Error("Error closing Redis connection", logger.Err(err))
	}

	zapLogger.Info("Closing NATS connection...")
	natsClient.Close()

	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
