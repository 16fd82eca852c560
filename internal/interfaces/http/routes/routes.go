// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, base *handlers.SessionHandler, pdfService *pdf.Service, jwtManager *auth.JWTManager) {
	SetupAuthRoutes(rg, base, jwtManager)
	SetupCatalogRoutes(rg, base, jwtManager)
	SetupCartRoutes(rg, base, jwtManager)
	SetupUserRoutes(rg, base, jwtManager)
	SetupOrderRoutes(rg, base, pdfService, jwtManager)
	SetupUIRoutes(rg, base, jwtManager)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, base *handlers.SessionHandler, jwtManager *auth.JWTManager) {
	authHandler := handlers.NewAuthHandler(base)

	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.RefreshToken)
		authGroup.POST("/logout", middleware.OptionalAuthMiddleware(jwtManager), authHandler.Logout)
	}
}

// SetupCatalogRoutes sets up product, category and compare routes
func SetupCatalogRoutes(rg *gin.RouterGroup, base *handlers.SessionHandler, jwtManager *auth.JWTManager) {
	catalogHandler := handlers.NewCatalogHandler(base)
	compareHandler := handlers.NewCompareHandler(base)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		products.GET("", catalogHandler.GetProducts)
		products.DELETE("/filters", catalogHandler.ClearFilters)
		products.GET("/search", catalogHandler.SearchProducts)
		products.GET("/featured", catalogHandler.GetFeaturedProducts)
		products.GET("/popular", catalogHandler.GetPopularProducts)
		products.GET("/new", catalogHandler.GetNewProducts)
		products.GET("/top-rated", catalogHandler.GetTopRatedProducts)
		products.GET("/facets", catalogHandler.GetFacets)
		products.GET("/recently-viewed", catalogHandler.GetRecentlyViewed)
		products.DELETE("/recently-viewed", catalogHandler.ClearRecentlyViewed)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	categories := rg.Group("/categories")
	categories.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:id", catalogHandler.GetCategory)
		categories.GET("/:id/products", catalogHandler.GetCategoryProducts)
	}

	compare := rg.Group("/compare")
	compare.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		compare.GET("", compareHandler.GetCompare)
		compare.DELETE("", compareHandler.ClearCompare)
		compare.POST("/:productId", compareHandler.AddToCompare)
		compare.DELETE("/:productId", compareHandler.RemoveFromCompare)
	}
}

// SetupCartRoutes sets up cart and favorites routes. Both work for guest sessions.
func SetupCartRoutes(rg *gin.RouterGroup, base *handlers.SessionHandler, jwtManager *auth.JWTManager) {
	cartHandler := handlers.NewCartHandler(base)
	favoritesHandler := handlers.NewFavoritesHandler(base)

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.POST("/items/:id/increment", cartHandler.IncrementCartItem)
		cart.POST("/items/:id/decrement", cartHandler.DecrementCartItem)
		cart.PUT("/discount", cartHandler.ApplyDiscount)
		cart.PUT("/shipping", cartHandler.SetShipping)
	}

	favorites := rg.Group("/favorites")
	favorites.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		favorites.GET("", favoritesHandler.GetFavorites)
		favorites.POST("/:productId/toggle", favoritesHandler.ToggleFavorite)
		favorites.DELETE("/:productId", favoritesHandler.RemoveFavorite)
	}
}

// SetupUserRoutes sets up profile, preference and address routes
func SetupUserRoutes(rg *gin.RouterGroup, base *handlers.SessionHandler, jwtManager *auth.JWTManager) {
	userHandler := handlers.NewUserHandler(base)

	users := rg.Group("/user")
	users.Use(middleware.AuthMiddleware(jwtManager)) // All user routes require authentication
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)

		users.GET("/preferences", userHandler.GetPreferences)
		users.PUT("/preferences", userHandler.UpdatePreferences)
		users.PUT("/preferences/notifications", userHandler.UpdateNotificationSettings)
		users.PUT("/preferences/privacy", userHandler.UpdatePrivacySettings)

		users.GET("/addresses", userHandler.GetAddresses)
		users.POST("/addresses", userHandler.CreateAddress)
		users.PUT("/addresses/:id", userHandler.UpdateAddress)
		users.DELETE("/addresses/:id", userHandler.DeleteAddress)
		users.PUT("/addresses/:id/default", userHandler.SetDefaultAddress)
	}
}

// SetupOrderRoutes sets up checkout and order history routes
func SetupOrderRoutes(rg *gin.RouterGroup, base *handlers.SessionHandler, pdfService *pdf.Service, jwtManager *auth.JWTManager) {
	orderHandler := handlers.NewOrderHandler(base, pdfService)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(jwtManager)) // All order routes require authentication
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)
	}
}

// SetupUIRoutes sets up notification and search history routes
func SetupUIRoutes(rg *gin.RouterGroup, base *handlers.SessionHandler, jwtManager *auth.JWTManager) {
	uiHandler := handlers.NewUIHandler(base)

	ui := rg.Group("/ui")
	ui.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		ui.GET("", uiHandler.GetState)
		ui.PUT("/view-mode", uiHandler.SetViewMode)
		ui.GET("/notifications", uiHandler.GetNotifications)
		ui.DELETE("/notifications/:id", uiHandler.RemoveNotification)
		ui.GET("/search-history", uiHandler.GetSearchHistory)
		ui.DELETE("/search-history", uiHandler.ClearSearchHistory)
	}
}
