package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/packfinderz-promotions/api/controllers"
	promotioncontrollers "github.com/angelmondragon/packfinderz-promotions/api/controllers/promotions"
	"github.com/angelmondragon/packfinderz-promotions/api/middleware"
	"github.com/angelmondragon/packfinderz-promotions/pkg/config"
	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
)

// Dependencies collects what the router hands to its controllers.
type Dependencies struct {
	Evaluator promotioncontrollers.Evaluator
	Readiness map[string]controllers.Pinger
	Gatherer  prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/promotions", func(r chi.Router) {
		r.Post("/evaluate", promotioncontrollers.Evaluate(deps.Evaluator, logg))
	})

	return r
}
