package handlers

import (
	"net/http"

	"auraweb/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePayment issues a deposit checkout link for a submission.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	link, err := h.paymentService.CreatePayment(c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, link)
}

// Callback is the gateway webhook. tx_ref arrives as a query param or in a
// JSON body; re-deliveries are safe.
func (h *PaymentHandler) Callback(c *gin.Context) {
	txRef := c.Query("tx_ref")
	if txRef == "" {
		var body struct {
			TxRef string `json:"tx_ref"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			txRef = body.TxRef
		}
	}
	if txRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tx_ref"})
		return
	}

	if _, err := h.paymentService.HandleCallback(txRef); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "verified"})
}

// Verify is the customer-facing poll. Never mutates state.
func (h *PaymentHandler) Verify(c *gin.Context) {
	txRef := c.Query("tx_ref")
	if txRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tx_ref"})
		return
	}

	submission, err := h.paymentService.VerifyStatus(txRef)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentStatus": submission.PaymentStatus,
		"businessName":  submission.BusinessName,
		"packageId":     submission.PackageID,
	})
}
