// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_invite/internal/database"
	sessionModel "github.com/festy23/team_invite/internal/session/model"
)

const checkTimeout = 5 * time.Second

// Handler handles health check requests.
type Handler struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new health handler instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status   string     `json:"status"`
	Store    string     `json:"store,omitempty"`
	Sessions *int64     `json:"sessions,omitempty"`
	Pool     *PoolStats `json:"pool,omitempty"`
}

// PoolStats is a snapshot of the database connection pool.
type PoolStats struct {
	OpenConnections int `json:"open_connections"`
	InUse           int `json:"in_use"`
	Idle            int `json:"idle"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{Status: "unhealthy"})
		return
	}

	resp := Response{Status: "ok", Store: h.db.Dialector.Name()}

	var live int64
	if err := h.db.WithContext(ctx).Model(&sessionModel.Session{}).Count(&live).Error; err != nil {
		h.logger.Warnw("session count failed", "error", err)
	} else {
		resp.Sessions = &live
	}

	if stats, err := database.GetStats(h.db); err != nil {
		h.logger.Warnw("pool stats unavailable", "error", err)
	} else {
		resp.Pool = &PoolStats{
			OpenConnections: stats.OpenConnections,
			InUse:           stats.InUse,
			Idle:            stats.Idle,
		}
	}

	c.JSON(http.StatusOK, resp)
}
