package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/property-leads-api/internal/api/handler"
	"github.com/vfg2006/property-leads-api/internal/api/handler/router"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/usecases/analytics"
	"github.com/vfg2006/property-leads-api/internal/usecases/authenticating"
	"github.com/vfg2006/property-leads-api/internal/usecases/booking"
	"github.com/vfg2006/property-leads-api/internal/usecases/clients"
	"github.com/vfg2006/property-leads-api/internal/usecases/listing"
	"github.com/vfg2006/property-leads-api/internal/usecases/tracking"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"github.com/vfg2006/property-leads-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Services struct {
	Tracker       tracking.Tracker
	Booker        booking.Booker
	Properties    listing.PropertyService
	Clients       clients.ClientService
	Analyzer      analytics.Analyzer
	Authenticator authenticating.Authenticator
	Maintenance   handler.MaintenanceRunner
	Database      handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

// NewHandler builds the full middleware chain and route table.
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Tracking(services.Tracker)...),
		router.WithRoutes(handler.Properties(services.Properties)...),
		router.WithRoutes(handler.Consultations(services.Booker, cfg.App.Location)...),
		router.WithRoutes(handler.Clients(services.Clients)...),
		router.WithRoutes(handler.Stats(services.Analyzer)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Users(services.Authenticator)...),
		router.WithRoutes(handler.CronJobs(services.Maintenance)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, services Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}
}

// Run serves until SIGINT/SIGTERM or ctx cancellation, then drains
// in-flight requests for up to 15 seconds.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("interrupt signal received")
	case <-ctx.Done():
		log.L.Info("application context cancelled")
	case err := <-errCh:
		log.L.WithError(err).Error("server stopped unexpectedly")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("shutting down server")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("graceful shutdown failed")
		return err
	}

	log.L.Info("server stopped")
	return nil
}
