package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/corray333/backend-labs/cam2cart/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/cam2cart/internal/dal/mongodb"
	"github.com/corray333/backend-labs/cam2cart/internal/dal/postgres"
	"github.com/corray333/backend-labs/cam2cart/internal/dal/rabbitmq"
	mongorepo "github.com/corray333/backend-labs/cam2cart/internal/dal/repositories/order/mongo"
	postgresrepo "github.com/corray333/backend-labs/cam2cart/internal/dal/repositories/order/postgres"
	"github.com/corray333/backend-labs/cam2cart/internal/otel"
	"github.com/corray333/backend-labs/cam2cart/internal/service/services/ordersvc"
	grpctransport "github.com/corray333/backend-labs/cam2cart/internal/transport/grpc"
	httptransport "github.com/corray333/backend-labs/cam2cart/internal/transport/http"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	grpcTransport  *grpctransport.GRPCTransport
	publisher      *rabbitmq.Publisher
	otelController *otel.OtelController

	// closeStore releases whichever store client was opened.
	closeStore func(ctx context.Context) error
}

// MustNewApp creates a new application.
// Store and broker connection failures are logged, not fatal.
func MustNewApp() *App {
	ctx := context.Background()

	otelController := otel.InitOtel()

	orderRepo, closeStore := mustNewOrderRepository(ctx)

	opts := []ordersvc.Option{ordersvc.WithOrderRepository(orderRepo)}

	var publisher *rabbitmq.Publisher
	if viper.GetBool("rabbitmq.enabled") {
		p, err := rabbitmq.NewPublisher()
		if err != nil {
			slog.Error("RabbitMQ publisher error, order events disabled", "error", err)
		} else {
			publisher = p
			opts = append(opts, ordersvc.WithEventPublisher(publisher))
		}
	}

	orderSvc := ordersvc.MustNewOrderService(opts...)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	var grpcTransport *grpctransport.GRPCTransport
	if viper.GetBool("server.grpc.enabled") {
		g, err := grpctransport.NewGRPCTransport()
		if err != nil {
			panic(err)
		}
		grpcTransport = g
	}

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		grpcTransport:  grpcTransport,
		publisher:      publisher,
		otelController: otelController,
		closeStore:     closeStore,
	}
}

// mustNewOrderRepository opens the store selected by storage.driver.
func mustNewOrderRepository(ctx context.Context) (iorderrepo.IOrderRepository, func(ctx context.Context) error) {
	switch driver := viper.GetString("storage.driver"); driver {
	case "mongo", "mongodb":
		client := mongodb.NewClient(ctx)
		repo := mongorepo.NewOrderRepository(client)
		if err := repo.EnsureIndexes(ctx); err != nil {
			slog.Error("MongoDB index error, will retry on first insert", "error", err)
		}

		return repo, client.Close
	case "postgres":
		client := postgres.NewClient(ctx)
		repo := postgresrepo.NewOrderRepository(client)
		if err := repo.EnsureSchema(ctx); err != nil {
			slog.Error("Postgres migration error, will retry on first query", "error", err)
		}

		return repo, func(context.Context) error {
			client.Close()

			return nil
		}
	default:
		panic("unknown storage.driver: " + driver)
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	if a.grpcTransport != nil {
		go func() {
			if err := a.grpcTransport.Run(); err != nil {
				slog.Error("gRPC server error", "error", err)
			}
		}()
	}

	<-stop
	slog.Info("Shutdown signal received")

	a.gracefulShutdown()
}

// gracefulShutdown stops the transports first, then releases the publisher,
// the store and the tracer provider.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("shutdown.timeout"))
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.grpcTransport != nil {
		if err := a.grpcTransport.Shutdown(ctx); err != nil {
			slog.Error("gRPC server shutdown error", "error", err)
		} else {
			slog.Info("gRPC server stopped gracefully")
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if err := a.closeStore(ctx); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	if err := a.otelController.Shutdown(ctx); err != nil {
		slog.Error("Otel trace provider shutdown error", "error", err)
	} else {
		slog.Info("Otel trace provider stopped gracefully")
	}

	select {
	case <-ctx.Done():
		slog.Warn("Shutdown timeout exceeded")
	default:
		slog.Info("Application shutdown complete")
	}
}
