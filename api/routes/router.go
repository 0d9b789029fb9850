package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/communitykitchen/foodshare-backend/api/controllers"
	"github.com/communitykitchen/foodshare-backend/api/middleware"
	"github.com/communitykitchen/foodshare-backend/internal/donations"
	"github.com/communitykitchen/foodshare-backend/internal/requests"
	"github.com/communitykitchen/foodshare-backend/pkg/config"
	"github.com/communitykitchen/foodshare-backend/pkg/logger"
	"github.com/communitykitchen/foodshare-backend/pkg/metrics"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP dbPinger,
	registry *prometheus.Registry,
	donationsService donations.Service,
	requestsService requests.Service,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry)
	auth := middleware.Auth(cfg.JWT, logg)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/token", controllers.IssueToken(cfg.JWT, logg))
		r.Post("/logout", controllers.Logout(cfg.JWT, logg))
	})

	r.Route("/api/v1/foods", func(r chi.Router) {
		// Public browse surface; no cookie required.
		r.Get("/", controllers.ListFoods(donationsService, logg))
		r.Get("/{foodId}", controllers.GetFood(donationsService, logg))

		r.With(auth).Post("/", controllers.CreateFood(donationsService, logg))
		r.With(auth).Get("/manage", controllers.ManageFoods(donationsService, logg))
		r.With(auth).Put("/{foodId}", controllers.EditFood(donationsService, logg))
		r.With(auth).Delete("/{foodId}", controllers.DeleteFood(donationsService, logg))
		r.With(auth).Patch("/{foodId}/status", controllers.UpdateFoodStatus(donationsService, logg))
	})

	r.Route("/api/v1/requests", func(r chi.Router) {
		// Donors review incoming claims on their item without a cookie.
		r.Get("/by-food/{foodId}", controllers.ListRequestsByFood(requestsService, logg))

		r.With(auth).Post("/", controllers.CreateRequest(requestsService, logg))
		r.With(auth).Get("/", controllers.ListRequests(requestsService, logg))
		r.With(auth).Delete("/{requestId}", controllers.CancelRequest(requestsService, logg))
		r.With(auth).Delete("/by-food/{foodId}", controllers.RejectRequestsByFood(requestsService, logg))
	})

	return r
}
