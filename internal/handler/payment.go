package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omkar2446/LootDukan/internal/middleware"
	"github.com/omkar2446/LootDukan/internal/service"
	apperrors "github.com/omkar2446/LootDukan/pkg/errors"
	"github.com/omkar2446/LootDukan/pkg/logger"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	log            logger.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, log logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		log:            log,
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context())
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

type VerifyPaymentBody struct {
	OrderID   string               `json:"razorpay_order_id" binding:"required"`
	PaymentID string               `json:"razorpay_payment_id" binding:"required"`
	Signature string               `json:"razorpay_signature" binding:"required"`
	Product   service.ListingDraft `json:"product" binding:"required"`
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	sellerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req VerifyPaymentBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.paymentService.VerifyAndPublish(
		c.Request.Context(), sellerID, req.OrderID, req.PaymentID, req.Signature, &req.Product,
	)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}
