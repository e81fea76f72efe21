package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusfood/cmd"
	httpadapter "campusfood/internal/adapters/in/http"
	"campusfood/internal/adapters/out/postgres/orderrepo"
	"campusfood/internal/adapters/out/postgres/riderrepo"
	"campusfood/internal/adapters/out/postgres/vendorrepo"
	"campusfood/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	gommonlog "github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	configs := getConfigs()

	db, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	root, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		logger.Error("Failed to build composition root", "error", err)
		os.Exit(1)
	}

	maxAge, err := time.ParseDuration(configs.PendingOrderMaxAge)
	if err != nil {
		logger.Error("Invalid PENDING_ORDER_MAX_AGE", "error", err)
		os.Exit(1)
	}

	jobManager := jobs.NewJobManager(root.CreateCancelStaleOrdersCommandHandler(), maxAge, logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		gommonlog.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:           envOrDefault("HTTP_PORT", "8080"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             envOrDefault("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          envOrDefault("DB_SSLMODE", "disable"),
		RedisURL:           os.Getenv("REDIS_URL"),
		DeliveryFee:        envOrDefault("DELIVERY_FEE", "100"),
		PendingOrderMaxAge: envOrDefault("PENDING_ORDER_MAX_AGE", "15m"),
	}
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&vendorrepo.VendorDTO{},
		&riderrepo.RiderProfileDTO{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) {
	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateApplyTransitionCommandHandler(),
		root.CreateClaimOrderCommandHandler(),
		root.CreateRateOrderCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetOrdersQueryHandler(),
		root.CreateGetAvailableDeliveriesQueryHandler(),
		root.CreateGetDeliveryHistoryQueryHandler(),
		root.Subscriber(),
	)

	e := echo.New()
	e.Logger.SetLevel(gommonlog.INFO)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
