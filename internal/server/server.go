// Package server exposes the conversion service over HTTP: the conversion
// endpoint, the operations listing, health probes, and metrics.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "github.com/yuggu7665-beep/converter-tools/internal/errors"

	"github.com/yuggu7665-beep/converter-tools/internal/config"
	"github.com/yuggu7665-beep/converter-tools/internal/dispatch"
	"github.com/yuggu7665-beep/converter-tools/internal/platform/correlation"
	"github.com/yuggu7665-beep/converter-tools/internal/registry"
)

// HealthCheck is a named readiness check.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	dispatcher *dispatch.Dispatcher
	registry   *registry.Registry

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, dispatcher *dispatch.Dispatcher, reg *registry.Registry, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		dispatcher:   dispatcher,
		registry:     reg,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.echo.Use(requestIDMiddleware())
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(apperrors.Middleware())
	// Headroom over the payload ceiling so the validator, not the body
	// limiter, produces the precise payload_too_large message.
	s.echo.Use(middleware.BodyLimit(fmt.Sprintf("%dB", 2*s.config.MaxUploadBytes)))

	s.echo.POST("/api/v1/convert/:category/:operation", s.handleConvert)
	s.echo.GET("/api/v1/operations", s.handleListOperations)

	s.registerHealthRoutes()
}

// requestIDMiddleware assigns each request a correlation ID, propagated via
// context into every log record and echoed back in the X-Request-ID header.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = correlation.NewID()
			}

			ctx := correlation.WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			return next(c)
		}
	}
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}
