package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omkar2446/LootDukan/internal/middleware"
	"github.com/omkar2446/LootDukan/internal/service"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type StatsHandler struct {
	statsService service.StatsService
	log          logger.Logger
}

func NewStatsHandler(statsService service.StatsService, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		log:          log,
	}
}

func (h *StatsHandler) SellerStats(c *gin.Context) {
	sellerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	stats, err := h.statsService.SellerStats(c.Request.Context(), sellerID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
