package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"servicefinder/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the moderation console and dashboard
type AdminHandler struct {
	service service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		log.Printf("Error getting dashboard stats: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve statistics")
		return
	}
	respondData(c, http.StatusOK, stats)
}

func (h *AdminHandler) ListProviders(c *gin.Context) {
	var active *bool
	switch status := c.Query("status"); status {
	case "":
	case "active":
		v := true
		active = &v
	case "inactive":
		v := false
		active = &v
	default:
		respondError(c, http.StatusBadRequest, "Invalid status, use 'active' or 'inactive'")
		return
	}

	providers, err := h.service.ListProviders(c.Request.Context(), active)
	if err != nil {
		log.Printf("Error listing providers for admin: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve providers")
		return
	}
	respondData(c, http.StatusOK, providers)
}

func (h *AdminHandler) setProviderStatus(c *gin.Context, active bool, message string) {
	providerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	if err := h.service.SetProviderActive(c.Request.Context(), providerID, active); err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error setting provider status: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to update provider status")
		return
	}
	respondMessage(c, http.StatusOK, message)
}

func (h *AdminHandler) ActivateProvider(c *gin.Context) {
	h.setProviderStatus(c, true, "Provider activated")
}

func (h *AdminHandler) DeactivateProvider(c *gin.Context) {
	h.setProviderStatus(c, false, "Provider deactivated")
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("Error listing users for admin: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	respondData(c, http.StatusOK, users)
}

// RegisterAdminRoutes registers admin routes behind auth + admin role
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	adminGroup := rg.Group("/admin")
	adminGroup.Use(authMW)
	adminGroup.Use(adminMW)
	{
		adminGroup.GET("/stats", h.GetStats)
		adminGroup.GET("/providers", h.ListProviders)
		adminGroup.PUT("/providers/:id/activate", h.ActivateProvider)
		adminGroup.PUT("/providers/:id/deactivate", h.DeactivateProvider)
		adminGroup.GET("/users", h.ListUsers)
	}
}
