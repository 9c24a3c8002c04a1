package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"launchpad-backend/internal/config"
	"launchpad-backend/internal/db"
)

// PingHandler GET /ping
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthHandler GET /health
func HealthHandler(c *gin.Context) {
	health := gin.H{
		"status":   "ok",
		"database": db.DB != nil,
	}
	if config.AppConfig != nil {
		health["chain_id"] = config.AppConfig.Chain.ChainID
		health["chain"] = config.AppConfig.Chain.Name
	}
	c.JSON(http.StatusOK, health)
}
