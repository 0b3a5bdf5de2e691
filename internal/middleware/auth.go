package middleware

import (
	"github.com/gin-gonic/gin"

	"aipromptweb_backend/internal/auth"
	"aipromptweb_backend/internal/logger"
	"aipromptweb_backend/internal/services/dto"
	"aipromptweb_backend/pkg/apperrors"
)

const principalKey = "principal"

// AuthMiddleware authenticates the request from the session cookie and
// stores the resulting principal in the gin context. Every failure mode
// (missing cookie, bad signature, expired token) yields the same 401.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(auth.SessionCookieName)
		if err != nil || cookie == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.Parse(cookie)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		principal := dto.Principal{
			ID:    claims.Subject,
			Email: claims.Email,
			Role:  claims.Role,
		}
		c.Set(principalKey, principal)

		ctx := logger.WithUserID(c.Request.Context(), principal.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	appErr := apperrors.NewUnauthorizedError("Unauthorized")
	c.AbortWithStatusJSON(appErr.HTTPCode, apperrors.ErrorResponse{Error: appErr})
}

// GetPrincipal returns the authenticated principal set by AuthMiddleware.
func GetPrincipal(c *gin.Context) (dto.Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return dto.Principal{}, false
	}
	principal, ok := val.(dto.Principal)
	return principal, ok
}
