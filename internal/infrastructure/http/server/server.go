package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yuzvak/rocketshoes-cart/internal/config"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/http/handlers"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/clock"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

type Server struct {
	server        *http.Server
	logger        *logger.Logger
	healthHandler *handlers.HealthHandler
	cartHandler   *handlers.CartHandler
}

func NewServer(
	cfg *config.Config,
	store handlers.CartService,
	checks map[string]handlers.HealthCheck,
	clk clock.Clock,
	logger *logger.Logger,
) *Server {
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s := &Server{
		server:        server,
		logger:        logger,
		healthHandler: handlers.NewHealthHandler(checks, clk, logger),
		cartHandler:   handlers.NewCartHandler(store, logger),
	}
	server.Handler = s.setupRoutes()

	return s
}

// Handler exposes the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
