package router

import (
	"stockmaster_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the public authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.RegisterUser)
		authRoutes.POST("/login", authHandler.LoginUser)
	}
}

// SetupProfileRoutes sets up the profile and profile picture routes.
func SetupProfileRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	profileRoutes := authenticatedGroup.Group("/profile")
	{
		profileRoutes.GET("", authHandler.GetProfile)
		profileRoutes.PUT("", authHandler.UpdateProfile)
		profileRoutes.DELETE("/picture", authHandler.RemoveProfilePicture)
	}
	authenticatedGroup.POST("/upload-profile-picture", authHandler.UploadProfilePicture)
}

// SetupProductRoutes sets up the product and stock routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	{
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.GET("/:id", productHandler.GetProductByID)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
		productRoutes.POST("/:id/adjust-stock", productHandler.AdjustStock)
		productRoutes.GET("/:id/transactions", productHandler.GetProductTransactions)
	}
	authenticatedGroup.GET("/alerts/low-stock", productHandler.GetLowStockAlerts)
}

// SetupCategoryRoutes sets up the category routes.
func SetupCategoryRoutes(authenticatedGroup *gin.RouterGroup, categoryHandler *handlers.CategoryHandler) {
	categoryRoutes := authenticatedGroup.Group("/categories")
	{
		categoryRoutes.GET("", categoryHandler.GetCategories)
		categoryRoutes.POST("", categoryHandler.CreateCategory)
		categoryRoutes.GET("/:id", categoryHandler.GetCategoryByID)
		categoryRoutes.PUT("/:id", categoryHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", categoryHandler.DeleteCategory)
	}
}

// SetupAuditRoutes sets up the transaction ledger and activity log routes.
func SetupAuditRoutes(authenticatedGroup *gin.RouterGroup, auditHandler *handlers.AuditHandler) {
	authenticatedGroup.GET("/inventory-transactions", auditHandler.GetInventoryTransactions)
	authenticatedGroup.GET("/activity-logs", auditHandler.GetActivityLogs)
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/stats", dashboardHandler.GetStats)
		dashboardRoutes.GET("/recent-activities", dashboardHandler.GetRecentActivities)
		dashboardRoutes.GET("/recent-transactions", dashboardHandler.GetRecentTransactions)
		dashboardRoutes.GET("/transaction-summary", dashboardHandler.GetTransactionSummary)
	}
}

// SetupSettingsRoutes sets up the per-user settings routes.
func SetupSettingsRoutes(authenticatedGroup *gin.RouterGroup, settingsHandler *handlers.SettingsHandler) {
	settingsRoutes := authenticatedGroup.Group("/user-settings")
	{
		settingsRoutes.GET("", settingsHandler.GetUserSettings)
		settingsRoutes.PUT("", settingsHandler.UpdateUserSettings)
	}
}
