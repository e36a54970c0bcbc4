package public

import (
	"context"
	"time"

	"github.com/autoluxe/internal/cache"
	"github.com/autoluxe/internal/http/response"
	"github.com/autoluxe/internal/models"

	"github.com/gin-gonic/gin"
)

// HealthCheck 服务健康状态
func (h *Handler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	db := "Connected"
	if err := models.Ping(ctx); err != nil {
		requestLog(c).Warnw("health_db_ping_failed", "error", err)
		db = "Disconnected"
	}
	media := "Not Configured"
	if h.Media != nil && h.Media.Configured() {
		media = "Configured"
	}
	redisState := "Disabled"
	if cache.Enabled() {
		redisState = "Enabled"
	}

	response.Success(c, gin.H{
		"status": "OK",
		"db":     db,
		"media":  media,
		"redis":  redisState,
	})
}
