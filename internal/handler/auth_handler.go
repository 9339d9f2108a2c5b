package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hrportal/internal/middleware"
	"hrportal/internal/service"
	"hrportal/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authenticate gin.HandlerFunc) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", authenticate, h.Logout)
		auth.GET("/me", authenticate, h.GetMe)
	}
}

// Login authenticates a user
// @Summary      Log in
// @Description  Verifies credentials, establishes a session and returns its access token (also set as an HttpOnly cookie).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginInput  true  "Credentials"
// @Success      200      {object}  response.Response{data=object}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	case errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
		return
	case err != nil:
		respondError(c, err, false)
		return
	}

	middleware.SetTokenCookie(c, res.Token, time.Until(res.Session.ExpiresAt()))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"token":      res.Token,
		"expires_at": res.Session.ExpiresAt(),
		"user":       res.Session.Principal(),
	}))
}

// Logout ends the current session
// @Summary      Log out
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		respondError(c, err, false)
		return
	}
	middleware.ClearTokenCookie(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Logged out"}))
}

// GetMe returns the principal behind the current session
// @Summary      Current user
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.Principal}
// @Router       /api/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	p := middleware.CurrentSession(c).Principal()
	if p == nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Session expired or invalid"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, p))
}
