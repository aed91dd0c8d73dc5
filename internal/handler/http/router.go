package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osamaqaseem39/stationary-gbs/internal/catalog"
	"github.com/osamaqaseem39/stationary-gbs/internal/event"
	"github.com/osamaqaseem39/stationary-gbs/internal/session"
	"github.com/osamaqaseem39/stationary-gbs/pkg/health"
	"github.com/osamaqaseem39/stationary-gbs/pkg/middleware"
)

// catalogCacheSeconds is the Cache-Control max-age on read-only catalog
// routes. Product data changes slowly enough that short CDN caching is safe.
const catalogCacheSeconds = 60

// Deps carries everything the router needs to build the handler tree.
type Deps struct {
	Catalog    *catalog.Client
	Carts      *session.CartStore
	Customers  *session.CustomerStore
	Events     *event.Producer
	Health     *health.Handler
	Logger     *slog.Logger
	CORS       middleware.CORSConfig
	PprofCIDRs []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.BearerToken())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, deps.PprofCIDRs, deps.Logger)

	productHandler := NewProductHandler(deps.Catalog, deps.Events, deps.Logger)
	categoryHandler := NewCategoryHandler(deps.Catalog, deps.Logger)
	brandHandler := NewBrandHandler(deps.Catalog, deps.Logger)
	cartHandler := NewCartHandler(deps.Carts, deps.Events, deps.Logger)
	accountHandler := NewAccountHandler(deps.Catalog, deps.Customers, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Read-only catalog surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogCacheSeconds))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.List)
				r.Get("/search", productHandler.Search)
				r.Get("/published", productHandler.Published)
				r.Get("/featured", productHandler.Featured)
				r.Get("/trending", productHandler.Trending)
				r.Get("/filter-options", productHandler.FilterOptions)
				r.Get("/category/{categoryId}", productHandler.ByCategory)
				r.Get("/brand/{brandId}", productHandler.ByBrand)
				r.Get("/slug/{slug}", productHandler.GetBySlug)
				r.Get("/{id}", productHandler.Get)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.List)
				r.Get("/root", categoryHandler.Root)
				r.Get("/slug/{slug}", categoryHandler.GetBySlug)
				r.Get("/{id}", categoryHandler.Get)
			})

			r.Route("/brands", func(r chi.Router) {
				r.Get("/", brandHandler.List)
				r.Get("/country/{country}", brandHandler.ByCountry)
				r.Get("/slug/{slug}", brandHandler.GetBySlug)
				r.Get("/{id}", brandHandler.Get)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Use(SessionFromHeader)

			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Route("/account", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Group(func(r chi.Router) {
				r.Use(OptionalSession)
				r.Post("/login", accountHandler.Login)
				r.Post("/register", accountHandler.Register)
			})

			r.Group(func(r chi.Router) {
				r.Use(SessionFromHeader)
				r.Post("/logout", accountHandler.Logout)
				r.Get("/session", accountHandler.Session)
			})

			r.Group(func(r chi.Router) {
				r.Use(OptionalSession)
				r.Use(middleware.RequireToken())

				r.Get("/profile", accountHandler.Profile)
				r.Get("/orders", accountHandler.Orders)
				r.Get("/orders/{id}", accountHandler.GetOrder)

				r.Route("/addresses", func(r chi.Router) {
					r.Get("/", accountHandler.Addresses)
					r.Post("/", accountHandler.CreateAddress)
					r.Get("/{id}", accountHandler.GetAddress)
					r.Patch("/{id}", accountHandler.UpdateAddress)
					r.Delete("/{id}", accountHandler.DeleteAddress)
				})
			})
		})
	})

	return r
}
