package handler

import (
	"errors"
	"log"
	"net/http"

	"servicefinder/internal/model"
	"servicefinder/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles checkout initiation, the gateway callback and the
// redirect landing pages.
type PaymentHandler struct {
	service service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) StartCheckout(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	checkout, err := h.service.StartCheckout(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, "register a provider profile before paying")
			return
		}
		if errors.Is(err, service.ErrAlreadyPremium) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		log.Printf("Error starting checkout: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to start checkout")
		return
	}
	respondData(c, http.StatusOK, checkout)
}

// Callback is invoked by the gateway, not by browsers. It must answer 200
// for handled notifications, including duplicates, or the gateway keeps
// retrying.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var payload model.CallbackPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid callback payload: "+err.Error())
		return
	}

	ack, err := h.service.HandleCallback(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		if errors.Is(err, service.ErrTransactionNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error handling payment callback: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to process callback")
		return
	}
	respondData(c, http.StatusOK, ack)
}

func (h *PaymentHandler) SuccessPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<html><body><h1>Payment successful</h1><p>Your provider listing will be activated shortly.</p></body></html>"))
}

func (h *PaymentHandler) CancelPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<html><body><h1>Payment cancelled</h1><p>No charge was made. You can retry from your profile.</p></body></html>"))
}

// RegisterPaymentRoutes registers payment routes
func (h *PaymentHandler) RegisterPaymentRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	paymentGroup := rg.Group("/payment")
	{
		paymentGroup.POST("/checkout", authMW, h.StartCheckout)
		paymentGroup.POST("/callback", h.Callback)
		paymentGroup.GET("/success", h.SuccessPage)
		paymentGroup.GET("/cancel", h.CancelPage)
	}
}
