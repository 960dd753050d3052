package routes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemRoutes registers health and banner endpoints.
type SystemRoutes struct {
	version string
	db      Pinger
}

// NewSystemRoutes registers GET / and GET /health. A nil db skips the
// database probe.
func NewSystemRoutes(version string, db Pinger) *SystemRoutes {
	return &SystemRoutes{version: version, db: db}
}

func (r *SystemRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/", r.handleRoot)
	s.GET("/health", r.handleHealth)
}

func (r *SystemRoutes) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "LINE Message Logger API",
		"version": r.version,
	})
}

func (r *SystemRoutes) handleHealth(c echo.Context) error {
	if r.db != nil {
		if err := r.db.Ping(c.Request().Context()); err != nil {
			slog.WarnContext(c.Request().Context(), "health_check_failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
