package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	payment "github.com/stepup-fit/stepup-server/internal/modules/payment/service"
	"github.com/stepup-fit/stepup-server/pkg/response"
)

type PaymentHandler struct {
	service payment.PaymentService
}

func NewPaymentHandler(service payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateCheckoutSession handles POST /api/pay/create-checkout-session.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	userID := c.GetString("user_id")

	url, err := h.service.CreateCheckout(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Confirm handles POST /api/pay/confirm, the provider's completion callback.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var body struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	if err := h.service.Confirm(c.Request.Context(), body.SessionID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment confirmed"})
}
