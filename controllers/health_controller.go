package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roomrent/services/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db     Pinger
	logger logger.Logger
}

func NewHealthController(db Pinger, log logger.Logger) *HealthController {
	return &HealthController{db: db, logger: log}
}

// Health pings the database; 503 when it is unreachable
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("health check: database ping failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "db": true})
}
