package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/izzybakes/pastry-orders/internal/service/models/business"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
	tracemw "github.com/izzybakes/pastry-orders/pkg/http/middleware/trace"
	"github.com/izzybakes/pastry-orders/pkg/logger"
)

type catalogService interface {
	List(ctx context.Context) ([]pastry.Pastry, error)
	Create(ctx context.Context, p pastry.Pastry) (pastry.Pastry, error)
}

type directoryService interface {
	List(ctx context.Context, onlyPending bool) ([]business.Business, error)
	Signup(ctx context.Context, b business.Business) (business.Business, error)
	SetApproval(ctx context.Context, id string, approved bool) (business.Business, error)
}

type orderService interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id string) (order.Order, error)
}

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	catalog   catalogService
	directory directoryService
	orders    orderService
	validate  *validator.Validate
}

func NewHTTPTransport(catalog catalogService, directory directoryService, orders orderService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:    server,
		router:    router,
		catalog:   catalog,
		directory: directory,
		orders:    orders,
		validate:  newValidator(),
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/pastries", h.listPastries)
		r.Post("/pastries", h.createPastry)
		r.Get("/business", h.listBusinesses)
		r.Post("/business/signup", h.signupBusiness)
		r.Patch("/business/{id}/approve", h.approveBusiness)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{id}", h.getOrder)
	})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(tracemw.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

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

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}
