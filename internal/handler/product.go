package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/omkar2446/LootDukan/internal/catalog"
	"github.com/omkar2446/LootDukan/internal/middleware"
	"github.com/omkar2446/LootDukan/internal/service"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type ProductHandler struct {
	catalogService service.CatalogService
	log            logger.Logger
}

func NewProductHandler(catalogService service.CatalogService, log logger.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		log:            log,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	minDiscount, _ := strconv.Atoi(c.DefaultQuery("min_discount", "0"))
	opts := catalog.Options{
		Search:      c.Query("search"),
		Store:       c.Query("store"),
		Category:    c.Query("category"),
		MinDiscount: minDiscount,
		Sort:        c.DefaultQuery("sort", catalog.SortNewest),
	}

	products, err := h.catalogService.Browse(c.Request.Context(), opts)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	products, err := h.catalogService.ListBySeller(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateAffiliateDeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req service.AffiliateDealDraft
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalogService.CreateAffiliateDeal(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ProductHandler) SetStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.SetStatus(c.Request.Context(), userID, productID, req.Status); err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
