package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the service banner.
const Version = "1.0.0"

// getHome godoc
// @Summary Show the status of server.
// @Description Service banner with version and endpoint map.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Budget Tracker API",
		"version": Version,
		"endpoints": gin.H{
			"health":       "/health",
			"transactions": "/api/v1/transactions",
			"stats":        "/api/v1/transactions/stats",
			"filter":       "/api/v1/transactions/filter",
			"categories":   "/api/v1/transactions/categories",
		},
	})
}

// getHealth godoc
// @Summary Health check
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// routeNotFound answers unknown routes with a JSON error.
func routeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found", "path": c.Request.URL.Path})
}
