package handlers

import (
	"context"
	"net/http"

	"newsroom/internal/logger"

	"github.com/gin-gonic/gin"
)

// Health reports whether the database answers.
func Health(ping func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(c.Request.Context()); err != nil {
			logger.Get().Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
