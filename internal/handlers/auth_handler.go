package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aipromptweb_backend/internal/auth"
	"aipromptweb_backend/internal/models"
	"aipromptweb_backend/internal/services"
	"aipromptweb_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, token, err := h.authService.Signup(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, userSummary(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, userSummary(user))
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, token, err := h.authService.GoogleLogin(c.Request.Context(), req.Credential)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, userSummary(user))
}

// Me reports the identity baked into the session token; no database
// round trip.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.UserSummary{
		ID:    principal.ID,
		Email: principal.Email,
		Role:  principal.Role,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	principal, ok := h.Principal(c)
	if !ok {
		return
	}

	users, err := h.authService.ListUsers(principal)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// setSessionCookie writes (or clears, for an empty token) the session
// cookie with attributes chosen from the request Origin.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	origin := c.GetHeader("Origin")
	http.SetCookie(c.Writer, auth.SessionCookie(token, origin))
}

func userSummary(user *models.User) dto.UserSummary {
	return dto.UserSummary{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
