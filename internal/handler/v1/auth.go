package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, res)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, pair)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.svc.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, profile)
}

// ListUsers handles GET /users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	respondOK(c, orEmpty(h.svc.ListUsers(c.Request.Context())))
}

func (h *AuthHandler) register(api *gin.RouterGroup, authn gin.HandlerFunc, loginLimit gin.HandlerFunc) {
	g := api.Group("/auth")
	g.POST("/login", loginLimit, h.Login)
	g.POST("/refresh", loginLimit, h.Refresh)
	g.GET("/me", authn, h.Me)

	api.GET("/users", authn, RequirePermission(domain.PermUserManagement), h.ListUsers)
}
