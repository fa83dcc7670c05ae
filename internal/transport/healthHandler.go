package transport

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing component is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports per-component status: postgres is required, so an
// unreachable database degrades the whole check; redis is optional and only
// flips its own component field.
type HealthHandler struct {
	db    *sql.DB
	cache Pinger
}

func NewHealthHandler(db *sql.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	overall := "ok"
	components := gin.H{}

	if h.db == nil {
		components["postgres"] = "disabled"
	} else if err := h.db.PingContext(ctx); err != nil {
		components["postgres"] = "down"
		overall = "degraded"
		status = http.StatusServiceUnavailable
	} else {
		components["postgres"] = "up"
	}

	if h.cache == nil {
		components["redis"] = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		components["redis"] = "down"
	} else {
		components["redis"] = "up"
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"service":    "figment",
		"components": components,
	})
}
