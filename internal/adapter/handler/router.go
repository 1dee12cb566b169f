package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authMiddleware "github.com/edumeet/notifier/internal/infrastructure/http/middleware"
	"github.com/edumeet/notifier/pkg/config"
	"github.com/edumeet/notifier/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	jwtManager    *jwt.Manager
	reportHandler *Report
	mailHandler   *Mail
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, jwtManager *jwt.Manager, reportHandler *Report, mailHandler *Mail) *Router {
	return &Router{
		cfg:           cfg,
		jwtManager:    jwtManager,
		reportHandler: reportHandler,
		mailHandler:   mailHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group, service-token protected
	v1 := e.Group("/v1", authMiddleware.EchoAuth(rt.jwtManager))

	rt.setupReportRoutes(v1)
	rt.setupMailRoutes(v1)
}

// setupReportRoutes configures report routes
func (rt *Router) setupReportRoutes(g *echo.Group) {
	reportGroup := g.Group("/reports")

	reportGroup.POST("", rt.reportHandler.CreateReport)
	reportGroup.GET("", rt.reportHandler.ListReports)
	reportGroup.GET("/:id", rt.reportHandler.GetReport)
	reportGroup.GET("/:id/html", rt.reportHandler.ReportHTML)
	reportGroup.GET("/:id/archive", rt.reportHandler.ArchiveURL)
}

// setupMailRoutes configures transactional email routes
func (rt *Router) setupMailRoutes(g *echo.Group) {
	mailGroup := g.Group("/emails")

	mailGroup.GET("", rt.mailHandler.History)
	mailGroup.POST("/:kind", rt.mailHandler.SendEmail)
	mailGroup.POST("/:kind/preview", rt.mailHandler.PreviewEmail)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
