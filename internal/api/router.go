package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/interiorfitout/backoffice/docs"
	"github.com/interiorfitout/backoffice/internal/api/handler"
	"github.com/interiorfitout/backoffice/internal/api/middleware"
	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

// Deps groups everything the router needs. Connection pools live in the
// caller; the router only sees the services built on top of them.
type Deps struct {
	Auth      ports.AuthService
	Enquiries ports.EnquiryService
	Dashboard ports.DashboardService

	// Readiness checks run by /health/ready, keyed by dependency name.
	Readiness map[string]handler.PingFunc

	// ContactRatePerMinute caps contact form submissions per client IP.
	ContactRatePerMinute int

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "backoffice",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	enquiryHandler := handler.NewEnquiryHandler(d.Enquiries)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/refresh", authHandler.Refresh)
	e.POST("/api/contact", enquiryHandler.Submit, middleware.RateLimitByIP(d.ContactRatePerMinute))

	// --- Admin routes (access gate on every request) ---
	admin := e.Group("/api/admin", middleware.Auth(d.Auth), middleware.RBAC(domain.RoleAdmin))
	admin.GET("/me", authHandler.Me)
	admin.GET("/dashboard", dashboardHandler.Stats)
	admin.GET("/enquiries", enquiryHandler.List)
	admin.GET("/enquiries/:id", enquiryHandler.Get)
	admin.PATCH("/enquiries/:id/status", enquiryHandler.UpdateStatus)
	admin.DELETE("/enquiries/:id", enquiryHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
