package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driving"
	"github.com/materials-advisor/advisor/internal/logger"
)

// MaxBodySize limits request bodies.
const MaxBodySize = 1 << 20

// Server is the advisor HTTP server.
type Server struct {
	app      *fiber.App
	settings domain.ServerSettings
}

// NewServer builds the app and its routes. retrieval may be nil.
func NewServer(settings domain.ServerSettings, advisor driving.AdvisorService, retrieval driving.RetrievalService) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "materials-advisor",
		ErrorHandler:          ErrorHandler,
		BodyLimit:             MaxBodySize,
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
	})

	var (
		wrapHandler  = NewWrapHandler(advisor)
		checkHandler = NewCheckHandler(retrieval)
		check        = app.Group("/check")
		apiGroup     = app.Group("/api")
	)

	app.Use(RequestID(), AccessLog())

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiGroup.Post("/wrap",
		RateLimit(settings.RateLimit, settings.Burst),
		Timeout(settings.RequestTimeout),
		wrapHandler.HandleWrap,
	)

	return &Server{app: app, settings: settings}
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen() error {
	logger.Info("Listening on %s", s.settings.Addr)
	return s.app.Listen(s.settings.Addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
