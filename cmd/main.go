// Package main is the entry point for the application.
// It wires configuration, infrastructure clients, repositories, usecases and
// the HTTP server, then runs until interrupted.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"rental-service/authprovider"
	"rental-service/config"
	httpDelivery "rental-service/delivery/http"
	"rental-service/domain/model"
	"rental-service/pkg/jwt"
	"rental-service/pkg/kafka"
	"rental-service/pkg/logger"
	"rental-service/pkg/postgres"
	"rental-service/pkg/redis"
	"rental-service/pkg/secretbox"
	pgRepository "rental-service/repository/postgres"
	"rental-service/usecase"
)

func main() {
	appLogger := logger.NewJSONDefault()

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	postgresClient, err := postgres.New(postgres.Config{
		Host:            cfg.Infrastructure.Postgres.Host,
		Port:            cfg.Infrastructure.Postgres.Port,
		User:            cfg.Infrastructure.Postgres.User,
		Password:        cfg.Infrastructure.Postgres.Password,
		DBName:          cfg.Infrastructure.Postgres.DBName,
		Schema:          cfg.Infrastructure.Postgres.Schema,
		SSLMode:         cfg.Infrastructure.Postgres.SSLMode,
		MaxIdleConns:    cfg.Infrastructure.Postgres.MaxIdleConns,
		MaxOpenConns:    cfg.Infrastructure.Postgres.MaxOpenConns,
		ConnMaxIdleTime: cfg.Infrastructure.Postgres.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Infrastructure.Postgres.ConnMaxLifetime,
		Debug:           cfg.Infrastructure.Postgres.Debug,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.Infrastructure.Postgres.IsUseMigrate {
		err = postgresClient.Migrate(
			&model.City{},
			&model.Vendor{},
			&model.Vehicle{},
			&model.Booking{},
			&model.ActivityLog{},
		)
		if err != nil {
			appLogger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var cacheClient redis.RedisClient
	if cfg.Infrastructure.Redis.Enabled {
		cacheClient, err = redis.New(
			redis.WithAddrs(cfg.Infrastructure.Redis.Addrs),
			redis.WithUsername(cfg.Infrastructure.Redis.Username),
			redis.WithPassword(cfg.Infrastructure.Redis.Password),
			redis.WithDB(cfg.Infrastructure.Redis.DB),
			redis.WithPoolSize(cfg.Infrastructure.Redis.PoolSize),
		)
		if err != nil {
			appLogger.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
	}

	var producer kafka.Producer
	if cfg.Infrastructure.Kafka.Enabled {
		producer, err = kafka.New(
			kafka.WithBrokers(cfg.Infrastructure.Kafka.Brokers...),
			kafka.WithClientID(cfg.Application.Name),
			kafka.WithAllowAutoTopicCreation(),
		)
		if err != nil {
			appLogger.Error("Failed to connect to kafka", "error", err)
			os.Exit(1)
		}
	}

	box, err := secretbox.New(cfg.Security.Encryption.Secret)
	if err != nil {
		appLogger.Error("Failed to initialize credential vault", "error", err)
		os.Exit(1)
	}

	jwtClient, err := jwt.New(
		jwt.WithSecret(cfg.Security.JWT.Secret),
		jwt.WithIssuer(cfg.Security.JWT.Issuer),
		jwt.WithExpiry(time.Duration(cfg.Security.JWT.ExpiryMinutes)*time.Minute),
	)
	if err != nil {
		appLogger.Error("Failed to initialize token client", "error", err)
		os.Exit(1)
	}

	provider := authprovider.New(authprovider.Config{
		BaseURL:    cfg.AuthProvider.BaseURL,
		ServiceKey: cfg.AuthProvider.ServiceKey,
		Timeout:    time.Duration(cfg.AuthProvider.TimeoutSeconds) * time.Second,
	}, appLogger)

	// Repositories
	vendorRepo := pgRepository.NewVendorRepository(postgresClient.DB(), appLogger)
	cityRepo := pgRepository.NewCityRepository(postgresClient.DB(), appLogger)
	vehicleRepo := pgRepository.NewVehicleRepository(postgresClient.DB(), appLogger)
	bookingRepo := pgRepository.NewBookingRepository(postgresClient.DB(), appLogger)
	activityRepo := pgRepository.NewActivityLogRepository(postgresClient.DB(), appLogger)

	// Usecases
	cityUsecase := usecase.NewCityUseCase(cityRepo, cacheClient, appLogger)
	vendorUsecase := usecase.NewVendorUseCase(vendorRepo, activityRepo, appLogger)
	accountUsecase := usecase.NewAccountUseCase(
		vendorRepo,
		activityRepo,
		provider,
		box,
		producer,
		appLogger,
		cfg.Security.Encryption.PasswordLength,
		cfg.Infrastructure.Kafka.Topics.CredentialDelivery,
	)
	importUsecase := usecase.NewImportUseCase(vendorRepo, activityRepo, cityUsecase, appLogger)
	vehicleUsecase := usecase.NewVehicleUseCase(vehicleRepo, vendorRepo, appLogger)
	bookingUsecase := usecase.NewBookingUseCase(bookingRepo, vehicleRepo, appLogger)
	activityUsecase := usecase.NewActivityUseCase(activityRepo, appLogger)

	// Handlers
	vendorHandler := httpDelivery.NewVendorHandler(vendorUsecase, accountUsecase, importUsecase, appLogger)
	cityHandler := httpDelivery.NewCityHandler(cityUsecase, appLogger)
	vehicleHandler := httpDelivery.NewVehicleHandler(vehicleUsecase, appLogger)
	bookingHandler := httpDelivery.NewBookingHandler(bookingUsecase, appLogger)
	activityHandler := httpDelivery.NewActivityHandler(activityUsecase, appLogger)
	healthHandler := httpDelivery.NewHealthHandler(appLogger)

	router := httpDelivery.NewRouter(
		vendorHandler,
		cityHandler,
		vehicleHandler,
		bookingHandler,
		activityHandler,
		healthHandler,
		jwtClient,
		appLogger,
	)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		appLogger.Info("Service starting", "name", cfg.Application.Name, "version", cfg.Application.Version, "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			appLogger.Warn("Error closing kafka producer", "error", err)
		}
	}
	if cacheClient != nil {
		if err := cacheClient.Close(); err != nil {
			appLogger.Warn("Error closing redis client", "error", err)
		}
	}
	if err := postgresClient.Close(); err != nil {
		appLogger.Warn("Error closing database connection", "error", err)
	}

	appLogger.Info("Server exited")
}
