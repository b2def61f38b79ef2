package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/izzybakes/pastry-orders/internal/dal/postgres"
	"github.com/izzybakes/pastry-orders/internal/dal/rabbitmq"
	outboxrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/outbox/postgres"
	"github.com/izzybakes/pastry-orders/internal/service/services/catalogsvc"
	"github.com/izzybakes/pastry-orders/internal/service/services/directorysvc"
	"github.com/izzybakes/pastry-orders/internal/service/services/ordersvc"
	"github.com/izzybakes/pastry-orders/internal/tracing"
	httptransport "github.com/izzybakes/pastry-orders/internal/transport/http"
	outboxworker "github.com/izzybakes/pastry-orders/internal/worker/outbox"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	tracing        *tracing.Controller
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracingController := tracing.MustInitTracing()
	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	// The outbox worker publishes to the default exchange, which routes
	// by queue name, so the queue must exist before the first publish.
	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    viper.GetString("rabbitmq.orders.queue"),
		Durable: true,
	}); err != nil {
		panic(err)
	}

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
	)
	directorySvc := directorysvc.MustNewDirectoryService(
		directorysvc.WithPostgresClient(postgresClient),
	)
	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(catalogSvc, directorySvc, orderSvc)
	transport.RegisterRoutes()

	worker := outboxworker.NewWorker(
		outboxrepo.NewOutboxRepository(postgresClient.Pool()),
		rabbitClient,
	)

	return &App{
		transport:      transport,
		outboxWorker:   worker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		tracing:        tracingController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.tracing.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
