package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ghfavorites/internal/handlers"
	"ghfavorites/internal/handlers/api"
	"ghfavorites/internal/session"
)

// RegisterRoutes registers all application routes. gatherer is nil when
// metrics are disabled.
func (s *Server) RegisterRoutes(sess *session.Session, gatherer prometheus.Gatherer) {
	s.App.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if gatherer != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api.NewFavoritesHandler(sess).Register(s.App.Group("/api"))
	handlers.NewPageHandler(sess, "GitHub Favorites").Register(s.App)
}
