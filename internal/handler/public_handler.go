package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"servicefinder/internal/model"
	"servicefinder/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the browsing surface: categories, subcategories and
// provider listings, plus provider registration for logged-in users.
type PublicHandler struct {
	catalogService  service.CatalogService
	providerService service.ProviderService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(catalogService service.CatalogService, providerService service.ProviderService) *PublicHandler {
	return &PublicHandler{catalogService: catalogService, providerService: providerService}
}

func (h *PublicHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	respondData(c, http.StatusOK, categories)
}

func (h *PublicHandler) ListSubcategories(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	subcategories, err := h.catalogService.ListSubcategories(c.Request.Context(), categoryID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error listing subcategories: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve subcategories")
		return
	}
	respondData(c, http.StatusOK, subcategories)
}

func (h *PublicHandler) ListProviders(c *gin.Context) {
	var filters model.ProviderFilters
	if categoryParam := c.Query("category_id"); categoryParam != "" {
		id, err := strconv.ParseInt(categoryParam, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid category_id format")
			return
		}
		filters.CategoryID = &id
	}
	if subcategoryParam := c.Query("subcategory_id"); subcategoryParam != "" {
		id, err := strconv.ParseInt(subcategoryParam, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid subcategory_id format")
			return
		}
		filters.SubcategoryID = &id
	}
	if cityParam := c.Query("city"); cityParam != "" {
		filters.City = &cityParam
	}
	if premiumParam := c.Query("premium"); premiumParam != "" {
		premium, err := strconv.ParseBool(premiumParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid premium format, use true or false")
			return
		}
		filters.Premium = &premium
	}

	providers, err := h.providerService.ListProviders(c.Request.Context(), filters)
	if err != nil {
		log.Printf("Error listing providers: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve providers")
		return
	}
	respondData(c, http.StatusOK, providers)
}

func (h *PublicHandler) GetProvider(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	provider, err := h.providerService.GetProvider(c.Request.Context(), providerID)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error getting provider: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to retrieve provider")
		return
	}
	respondData(c, http.StatusOK, provider)
}

func (h *PublicHandler) RegisterProvider(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req model.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	provider, err := h.providerService.RegisterProvider(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrProviderAlreadyExists) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error registering provider: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to register provider")
		return
	}
	respondData(c, http.StatusCreated, provider)
}

// RegisterPublicRoutes registers the public browsing routes
func (h *PublicHandler) RegisterPublicRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	publicGroup := rg.Group("/public")
	{
		publicGroup.GET("/categories", h.ListCategories)
		publicGroup.GET("/categories/:id/subcategories", h.ListSubcategories)
		publicGroup.GET("/providers", h.ListProviders)
		publicGroup.GET("/providers/:id", h.GetProvider)
		publicGroup.POST("/providers", authMW, h.RegisterProvider)
	}
}
