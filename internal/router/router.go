package router

import (
	"net/http"
	"time"

	"warehouse_backend/internal/handlers"
	"warehouse_backend/internal/middleware"
	"warehouse_backend/internal/models"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Options carries what the routes are built from.
type Options struct {
	Store           *repositories.Store
	SnapshotService services.SnapshotService
	AuthEnabled     bool
	JWTSecret       string
	JWTExpiration   time.Duration
}

// roleGuard returns the role middleware, or a pass-through when authentication is off.
type roleGuard func(roles ...models.TeamRole) gin.HandlerFunc

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, opts Options) {
	store := opts.Store

	// Initialize Repositories
	itemRepo := repositories.NewItemRepository()
	categoryRepo := repositories.NewCategoryRepository()
	locationRepo := repositories.NewLocationRepository()
	saleRepo := repositories.NewSaleRepository()
	taskRepo := repositories.NewTaskRepository()
	teamRepo := repositories.NewTeamRepository()
	qrHistoryRepo := repositories.NewQRHistoryRepository()

	// Initialize Services
	inventoryService := services.NewInventoryService(store, itemRepo, categoryRepo, locationRepo, saleRepo, teamRepo)
	categoryService := services.NewCategoryService(store, categoryRepo)
	locationService := services.NewLocationService(store, locationRepo, itemRepo)
	teamService := services.NewTeamService(store, teamRepo)
	taskService := services.NewTaskService(store, taskRepo, teamRepo)
	dashboardService := services.NewDashboardService(store, itemRepo, saleRepo, categoryRepo)
	qrService := services.NewQRService(store, itemRepo, locationRepo, qrHistoryRepo)
	reportService := services.NewReportService(store, itemRepo, saleRepo, categoryRepo, locationRepo)
	authService := services.NewAuthService(store, teamRepo, opts.JWTSecret, opts.JWTExpiration)

	// Initialize Handlers
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, qrService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	locationHandler := handlers.NewLocationHandler(locationService, qrService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	qrHandler := handlers.NewQRHandler(qrService)
	reportHandler := handlers.NewReportHandler(reportService)
	snapshotHandler := handlers.NewSnapshotHandler(opts.SnapshotService)
	authHandler := handlers.NewAuthHandler(authService)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")

	guard := roleGuard(func(...models.TeamRole) gin.HandlerFunc { return middleware.PassThrough() })
	authenticated := apiV1.Group("")
	if opts.AuthEnabled {
		secret := []byte(opts.JWTSecret)
		SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)
		authenticated.Use(middleware.AuthMiddleware(secret))
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		guard = func(roles ...models.TeamRole) gin.HandlerFunc {
			names := make([]string, len(roles))
			for i, r := range roles {
				names[i] = string(r)
			}
			return middleware.RoleAuthMiddleware(names...)
		}
	}

	{
		SetupItemRoutes(authenticated, inventoryHandler, guard)
		SetupSaleRoutes(authenticated, inventoryHandler)
		SetupCategoryRoutes(authenticated, categoryHandler)
		SetupLocationRoutes(authenticated, locationHandler)
		SetupTeamRoutes(authenticated, teamHandler, guard)
		SetupTaskRoutes(authenticated, taskHandler, guard)
		SetupDashboardRoutes(authenticated, dashboardHandler)
		SetupQRRoutes(authenticated, qrHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupSnapshotRoutes(authenticated, snapshotHandler, guard)
	}
}

// SetupPublicAuthRoutes registers the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
}

// SetupAuthenticatedAuthRoutes registers the auth routes that need a token.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentMember)
}
