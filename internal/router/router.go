package router

import (
	"github.com/gin-gonic/gin"

	"github.com/foodgram-app/backend/internal/api"
	"github.com/foodgram-app/backend/internal/middleware"
	"github.com/foodgram-app/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	userHandler *api.UserHandler,
	catalogHandler *api.CatalogHandler,
	recipeHandler *api.RecipeHandler,
	authService *service.AuthService,
	mutationLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	root := router.Group("/api")

	// Auth routes
	auth := root.Group("/auth/token")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.AuthMiddleware(authService), authHandler.Logout)
	}

	// User routes. Reads work anonymously; viewer flags come from the
	// optional token.
	users := root.Group("/users")
	{
		users.POST("", userHandler.Register)
		users.GET("", middleware.OptionalAuthMiddleware(authService), userHandler.List)
		users.GET("/:id", middleware.OptionalAuthMiddleware(authService), userHandler.Get)

		protected := users.Group("", middleware.AuthMiddleware(authService))
		{
			protected.GET("/me", userHandler.Me)
			protected.POST("/set_password", userHandler.SetPassword)
			protected.GET("/subscriptions", userHandler.Subscriptions)
			protected.POST("/:id/subscribe", userHandler.Subscribe)
			protected.DELETE("/:id/subscribe", userHandler.Unsubscribe)
		}
	}

	// Read-only catalog
	tags := root.Group("/tags")
	{
		tags.GET("", catalogHandler.ListTags)
		tags.GET("/:id", catalogHandler.GetTag)
	}
	ingredients := root.Group("/ingredients")
	{
		ingredients.GET("", catalogHandler.ListIngredients)
		ingredients.GET("/:id", catalogHandler.GetIngredient)
	}

	// Recipe routes
	recipes := root.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(authService), recipeHandler.List)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(authService), recipeHandler.Get)

		protected := recipes.Group("", middleware.AuthMiddleware(authService))
		{
			protected.GET("/download_shopping_cart", recipeHandler.DownloadShoppingCart)

			protected.POST("/:id/favorite", recipeHandler.Favorite)
			protected.DELETE("/:id/favorite", recipeHandler.Unfavorite)
			protected.POST("/:id/shopping_cart", recipeHandler.AddToCart)
			protected.DELETE("/:id/shopping_cart", recipeHandler.RemoveFromCart)

			mutations := protected.Group("", mutationLimiter.Middleware())
			{
				mutations.POST("", recipeHandler.Create)
				mutations.PATCH("/:id", recipeHandler.Update)
				mutations.DELETE("/:id", recipeHandler.Delete)
			}
		}
	}

	return router
}
