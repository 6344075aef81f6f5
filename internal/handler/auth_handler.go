package handler

import (
	"errors"
	"log"
	"net/http"

	"servicefinder/internal/model"
	"servicefinder/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		log.Printf("Error during registration: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Phone
	}
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		respondError(c, http.StatusBadRequest, "Invalid request: identifier is required")
		return
	}

	user, provider, token, err := h.service.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same message whether the identifier is unknown or the
			// password is wrong.
			respondError(c, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
			return
		}
		log.Printf("Error during login: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	data := gin.H{
		"token": token,
		"user":  user,
	}
	if provider != nil {
		data["provider"] = provider
	}
	respondData(c, http.StatusOK, data)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	user, provider, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error loading profile: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	data := gin.H{"user": user}
	if provider != nil {
		data["provider"] = provider
	}
	respondData(c, http.StatusOK, data)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMW, h.Me)
	}
}
