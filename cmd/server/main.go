package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse_backend/internal/config"
	"warehouse_backend/internal/database"
	"warehouse_backend/internal/middleware"
	"warehouse_backend/internal/repositories"
	"warehouse_backend/internal/router"
	"warehouse_backend/internal/seed"
	"warehouse_backend/internal/services"
	"warehouse_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", "console")
		utils.LogError(err, "Failed to load configuration")
		os.Exit(1)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	store := repositories.NewStore()

	var db *sql.DB
	var snapshotRepo repositories.SnapshotRepository
	if cfg.DBEnabled {
		db, err = database.Open(sigCtx, cfg.Database)
		if err != nil {
			utils.LogError(err, "Failed to initialize database")
			os.Exit(1)
		}
		defer db.Close()
		snapshotRepo = repositories.NewSnapshotRepository(db)
		utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})
	}
	snapshotService := services.NewSnapshotService(store, snapshotRepo, db)

	if err := loadInitialState(sigCtx, cfg, store, snapshotService); err != nil {
		utils.LogError(err, "Failed to load initial state")
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger(middleware.ContextMemberID))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", utils.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{utils.RequestIDHeader}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, router.Options{
		Store:           store,
		SnapshotService: snapshotService,
		AuthEnabled:     cfg.AuthEnabled,
		JWTSecret:       cfg.JWTSecret,
		JWTExpiration:   cfg.JWTTTL,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()
	utils.LogInfo("Server starting", map[string]interface{}{
		"port":         cfg.Port,
		"auth_enabled": cfg.AuthEnabled,
		"db_enabled":   cfg.DBEnabled,
		"api":          "http://localhost:" + cfg.Port + "/api/v1",
	})

	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Graceful shutdown failed")
	}

	if snapshotService.Enabled() {
		if _, err := snapshotService.SaveSnapshot(shutdownCtx); err != nil {
			utils.LogError(err, "Failed to save snapshot on shutdown")
		}
	}
	utils.LogInfo("Server stopped")
}

// loadInitialState restores the latest snapshot when persistence is on, and seeds the demo data otherwise.
func loadInitialState(ctx context.Context, cfg *config.Config, store *repositories.Store, snapshots services.SnapshotService) error {
	if snapshots.Enabled() {
		restored, err := snapshots.RestoreLatest(ctx)
		if err != nil {
			return err
		}
		if restored {
			return nil
		}
	}
	if !cfg.SeedEnabled {
		utils.LogInfo("Starting with an empty warehouse")
		return nil
	}

	adminHash := ""
	if cfg.SeedAdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		adminHash = string(hash)
	}
	store.Restore(seed.Snapshot(adminHash, time.Now()))
	utils.LogInfo("Seeded demo data", map[string]interface{}{"admin_login": adminHash != ""})
	return nil
}
