package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"coldstore/internal/config"
	"coldstore/internal/products"
	producthttp "coldstore/internal/products/http"
	"coldstore/internal/products/messaging"
	"coldstore/internal/products/repository"
	"coldstore/internal/products/service"
	"coldstore/web"

	_ "coldstore/docs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	metricCreatedTotal = "products_created_total"
	metricUpdatedTotal = "products_updated_total"
	metricDeletedTotal = "products_deleted_total"
)

// @title        Cold Storage Products API
// @version      1.0
// @description  CRUD service for perishable-goods storage parameter records.
// @host         localhost:8080
// @BasePath     /
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadProducts()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	if err := repository.RunMigrations(cfg.MongoURI, cfg.MongoDatabase, cfg.MigrationsPath); err != nil {
		logger.Error("run migrations", "error", err)
		os.Exit(1)
	}

	// The store connection itself is established lazily on first use.
	connector := repository.NewConnector(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnectTimeout)
	defer func() {
		if err := connector.Close(context.Background()); err != nil {
			logger.Error("close mongodb connection", "error", err)
		}
	}()

	var publisher interface {
		service.Publisher
		Close() error
	} = messaging.NopPublisher{}

	if cfg.RabbitMQURL != "" {
		rabbitConn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("connect rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitConn.Close()

		rabbitPublisher, err := messaging.NewRabbitPublisher(rabbitConn, products.EventsQueue)
		if err != nil {
			logger.Error("init publisher", "error", err)
			os.Exit(1)
		}
		publisher = rabbitPublisher
	} else {
		logger.Info("RABBITMQ_URL not set, product events disabled")
	}
	defer publisher.Close()

	counters := service.Counters{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricCreatedTotal,
			Help: "Total number of products created",
		}),
		Updated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricUpdatedTotal,
			Help: "Total number of products updated",
		}),
		Deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricDeletedTotal,
			Help: "Total number of products deleted",
		}),
	}
	prometheus.MustRegister(counters.Created, counters.Updated, counters.Deleted)

	repo := repository.NewMongo(connector)
	svc := service.New(repo, publisher, logger, counters)
	handler := producthttp.NewHandler(svc, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(producthttp.RequestIDMiddleware())
	router.Use(producthttp.AccessLogMiddleware(logger))
	producthttp.RegisterRoutes(router, handler, repo)
	web.RegisterUI(router)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("products service started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("products service stopped")
}
