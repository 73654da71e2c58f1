package router

import (
	"warehouse_backend/internal/handlers"
	"warehouse_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupItemRoutes sets up the inventory item routes.
func SetupItemRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.InventoryHandler, guard roleGuard) {
	itemRoutes := authenticatedGroup.Group("/items")
	{
		itemRoutes.POST("", h.CreateItem)
		itemRoutes.GET("", h.GetItems)
		itemRoutes.GET("/:id", h.GetItemByID)
		itemRoutes.PUT("/:id", h.UpdateItem)
		itemRoutes.DELETE("/:id", guard(models.RoleAdmin, models.RoleManager), h.DeleteItem)
		itemRoutes.POST("/:id/sell", h.SellItem)
		itemRoutes.GET("/:id/qr", h.GetItemQR)
	}
}

// SetupSaleRoutes sets up the read-only sale routes.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.InventoryHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	{
		saleRoutes.GET("", h.GetSales)
		saleRoutes.GET("/:id", h.GetSaleByID)
	}
}

// SetupCategoryRoutes sets up the category routes.
func SetupCategoryRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.CategoryHandler) {
	categoryRoutes := authenticatedGroup.Group("/categories")
	{
		categoryRoutes.POST("", h.CreateCategory)
		categoryRoutes.GET("", h.GetCategories)
		categoryRoutes.GET("/:id", h.GetCategoryByID)
		categoryRoutes.PUT("/:id", h.UpdateCategory)
	}
}

// SetupLocationRoutes sets up the location routes.
func SetupLocationRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.LocationHandler) {
	locationRoutes := authenticatedGroup.Group("/locations")
	{
		locationRoutes.POST("", h.CreateLocation)
		locationRoutes.GET("", h.GetLocations)
		locationRoutes.GET("/:id", h.GetLocationByID)
		locationRoutes.GET("/:id/qr", h.GetLocationQR)
	}
}

// SetupTeamRoutes sets up the team member routes.
func SetupTeamRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.TeamHandler, guard roleGuard) {
	teamRoutes := authenticatedGroup.Group("/team-members")
	{
		teamRoutes.POST("", guard(models.RoleAdmin, models.RoleManager), h.CreateMember)
		teamRoutes.GET("", h.GetMembers)
		teamRoutes.GET("/:id", h.GetMemberByID)
		teamRoutes.PATCH("/:id/status", h.UpdateMemberStatus)
	}
}

// SetupTaskRoutes sets up the task board routes.
func SetupTaskRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.TaskHandler, guard roleGuard) {
	taskRoutes := authenticatedGroup.Group("/tasks")
	{
		taskRoutes.POST("", h.CreateTask)
		taskRoutes.GET("", h.GetTasks)
		taskRoutes.GET("/board", h.GetBoard)
		taskRoutes.GET("/:id", h.GetTaskByID)
		taskRoutes.PUT("/:id", h.UpdateTask)
		taskRoutes.DELETE("/:id", guard(models.RoleAdmin, models.RoleManager), h.DeleteTask)
		taskRoutes.POST("/:id/move", h.MoveTask)
		taskRoutes.POST("/:id/comments", h.AddComment)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.DashboardHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/stats", h.GetStats)
		dashboardRoutes.GET("/summary", h.GetSummary)
	}
}

// SetupQRRoutes sets up the QR generation, scanning and history routes.
func SetupQRRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.QRHandler) {
	qrRoutes := authenticatedGroup.Group("/qr")
	{
		qrRoutes.POST("/generate", h.Generate)
		qrRoutes.POST("/image", h.GenerateImage)
		qrRoutes.POST("/scan", h.Scan)
		qrRoutes.POST("/scan/image", h.ScanImage)
		qrRoutes.GET("/history", h.GetHistory)
		qrRoutes.DELETE("/history", h.ClearHistory)
		qrRoutes.DELETE("/history/:id", h.DeleteHistoryEntry)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("/inventory.xlsx", h.ExportInventory)
	}
}

// SetupSnapshotRoutes sets up the persistence routes.
func SetupSnapshotRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.SnapshotHandler, guard roleGuard) {
	authenticatedGroup.POST("/snapshots", guard(models.RoleAdmin, models.RoleManager), h.SaveSnapshot)
}
