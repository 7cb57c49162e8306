package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phoo-bakery/api/internal/config"
	"github.com/phoo-bakery/api/internal/database"
	"github.com/phoo-bakery/api/internal/handler"
	mw "github.com/phoo-bakery/api/internal/middleware"
	"github.com/phoo-bakery/api/internal/service"
	"github.com/phoo-bakery/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// listCache may be nil, in which case GET /orders always reads the database.
func New(cfg *config.Config, queries *database.Queries, orders *service.OrderService, listCache handler.OrderListCache, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Dashboard clients subscribe here for order.created / order.status_changed.
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	r.Group(func(r chi.Router) {
		// Staff identity is optional: it only fills updatedBy.
		if cfg.JWTSecret != "" {
			r.Use(mw.IdentifyStaff(cfg.JWTSecret))
		} else {
			log.Println("WARNING: JWT_SECRET not set, staff tokens are ignored")
		}

		r.Get("/catalog", handler.Catalog)

		cakeHandler := handler.NewCakeHandler(queries)
		r.Route("/cakes", cakeHandler.RegisterRoutes)

		orderHandler := handler.NewOrderHandler(orders, queries, listCache)
		r.Route("/orders", orderHandler.RegisterRoutes)

		dashboardHandler := handler.NewDashboardHandler(queries)
		r.Route("/dashboard", dashboardHandler.RegisterRoutes)
	})

	log.Println("Router initialized with all handlers")
	return r
}
