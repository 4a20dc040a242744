package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skbags/storefront/api/controllers"
	"github.com/skbags/storefront/api/middleware"
	"github.com/skbags/storefront/internal/backend"
	"github.com/skbags/storefront/internal/catalog"
	"github.com/skbags/storefront/internal/session"
	"github.com/skbags/storefront/pkg/config"
	"github.com/skbags/storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	client *backend.Client,
	cache *catalog.Cache,
	sessions *session.Manager,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, client))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(cache, logg))
			r.Get("/{productId}", controllers.ProductGet(cache, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(sessions, cfg.Session, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(logg))
				r.Delete("/", controllers.CartClear(logg))
				r.Route("/items", func(r chi.Router) {
					r.Post("/", controllers.CartAdd(cache, logg))
					r.Put("/{productId}", controllers.CartUpdateItem(logg))
					r.Delete("/{productId}", controllers.CartRemoveItem(logg))
				})
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/customer", controllers.CheckoutFetch(logg))
				r.Put("/customer", controllers.CheckoutCustomer(logg))
				r.Post("/", controllers.CheckoutSubmit(logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/login", controllers.AdminLogin(client, logg))
		r.Post("/logout", controllers.AdminLogout(client, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductCreate(client, cache, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(client, cache, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(client, cache, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrders(client, logg))
			r.Put("/{orderId}/status", controllers.AdminOrderStatus(client, logg))
		})

		r.Post("/upload", controllers.AdminUpload(client, logg))
	})

	return r
}
