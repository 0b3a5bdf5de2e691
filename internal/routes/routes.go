package routes

import (
	"github.com/gin-gonic/gin"

	"aipromptweb_backend/internal/auth"
	"aipromptweb_backend/internal/handlers"
	"aipromptweb_backend/internal/middleware"
)

// RegisterRoutes wires every HTTP route. The catalog listing and image
// serving are public; everything else under /api requires a session.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
) {
	requireAuth := middleware.AuthMiddleware(tokens)

	api := ginRouter.Group("/api")
	{
		api.POST("/signup", appHandlers.AuthHandler.Signup)
		api.POST("/login", appHandlers.AuthHandler.Login)
		api.POST("/auth/google", appHandlers.AuthHandler.GoogleLogin)
		api.POST("/logout", appHandlers.AuthHandler.Logout)

		api.GET("/me", requireAuth, appHandlers.AuthHandler.Me)
		api.GET("/admin-users", requireAuth, appHandlers.AuthHandler.ListUsers)

		api.GET("/descriptions", appHandlers.CatalogHandler.List)
		api.POST("/description", requireAuth, appHandlers.CatalogHandler.Create)
		api.PUT("/description", requireAuth, appHandlers.CatalogHandler.UpdateDetails)
		api.POST("/imageUrls", requireAuth, appHandlers.CatalogHandler.RegisterImageURL)
		api.POST("/delete-description", requireAuth, appHandlers.CatalogHandler.Delete)

		api.POST("/upload", requireAuth, appHandlers.UploadHandler.Upload)
	}

	ginRouter.GET("/images/*key", appHandlers.FileHandler.Serve)
}
