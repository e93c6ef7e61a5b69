package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lenddesk/lenddesk-backend/api/controllers"
	"github.com/lenddesk/lenddesk-backend/api/middleware"
	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
	"github.com/lenddesk/lenddesk-backend/internal/users"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
)

// RouterParams groups everything the HTTP surface needs.
type RouterParams struct {
	Logger *logger.Logger
	Store  controllers.Pinger
	Loans  loans.Service
	Items  items.Service
	Users  users.Service
}

// NewRouter assembles the full HTTP surface: health probes, metrics and
// the versioned API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(params.Logger))
	r.Use(middleware.RequestID(params.Logger))
	r.Use(middleware.Logging(params.Logger))
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(params.Store, params.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/loans", func(r chi.Router) {
			r.Post("/", controllers.LoanPropose(params.Loans, params.Logger))
		})
		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.ItemCreate(params.Items, params.Logger))
			r.Get("/", controllers.ItemList(params.Items, params.Logger))
			r.Get("/{itemID}/loans", controllers.ItemLoans(params.Loans, params.Logger))
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.UserCreate(params.Users, params.Logger))
			r.Get("/", controllers.UserList(params.Users, params.Logger))
		})
	})

	return r
}
