package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	_ "github.com/corray333/backend-labs/cam2cart/docs"
	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/corray333/backend-labs/cam2cart/internal/transport/http/health"
	createorder "github.com/corray333/backend-labs/cam2cart/internal/transport/http/v1/create_order"
	deleteorder "github.com/corray333/backend-labs/cam2cart/internal/transport/http/v1/delete_order"
	getlatestorder "github.com/corray333/backend-labs/cam2cart/internal/transport/http/v1/get_latest_order"
	getorder "github.com/corray333/backend-labs/cam2cart/internal/transport/http/v1/get_order"
	updateorder "github.com/corray333/backend-labs/cam2cart/internal/transport/http/v1/update_order"
	"github.com/corray333/backend-labs/cam2cart/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/cam2cart/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type service interface {
	GetLatest(ctx context.Context) (*order.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*order.Order, error)
	Create(ctx context.Context, req order.CreateOrder) (*order.Order, error)
	Update(ctx context.Context, orderID string, upd order.UpdateOrder) (*order.Order, error)
	Delete(ctx context.Context, orderID string) (*order.Order, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

// Run serves HTTP until Shutdown is called.
func (h *HTTPTransport) Run() error {
	slog.Info("HTTP server listening", "address", h.server.Addr)
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the root handler with all middleware applied.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/health", health.Health)
	h.router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	h.router.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.getLatestOrder)
		r.Post("/", h.createOrder)
		r.Get("/{orderId}", h.getOrder)
		r.Put("/{orderId}", h.updateOrder)
		r.Delete("/{orderId}", h.deleteOrder)
	})
}

func (h *HTTPTransport) getLatestOrder(w http.ResponseWriter, r *http.Request) {
	getlatestorder.GetLatestOrder(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	updateorder.UpdateOrder(w, r, h.service)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(middleware.Recoverer)
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
