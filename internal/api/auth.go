package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/types"
)

type AuthHandler struct {
	authService     service.IAuthService
	recommendations service.IRecommendationService
}

func NewAuthHandler(authService service.IAuthService, recommendations service.IRecommendationService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		recommendations: recommendations,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "failed to register user")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "failed to log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anonymous signs in a fresh anonymous account.
func (h *AuthHandler) Anonymous(c *gin.Context) {
	resp, err := h.authService.SignInAnonymously(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to sign in")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Logout is stateless for the token; it drops the user's recommendation memo.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.recommendations != nil {
		h.recommendations.Forget(userID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
