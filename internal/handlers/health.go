package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"photo-studio-backend/internal/models"
)

// HealthHandler godoc
// @Summary     Liveness check
// @Description Reports that the photo studio API is serving. Needs no token and does not reach Gemini, Storage or Postgres.
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	response := models.HealthResponse{
		Status: "ok",
	}
	c.JSON(http.StatusOK, response)
}
