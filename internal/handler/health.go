package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omkar2446/LootDukan/internal/config"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"environment": h.cfg.Environment,
	})
}
