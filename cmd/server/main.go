package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockmaster_backend/internal/config"
	"stockmaster_backend/internal/database"
	"stockmaster_backend/internal/router"
	"stockmaster_backend/internal/storage"
	"stockmaster_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", "console")
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to the database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.ApplySchema(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Could not apply database schema")
		}
	}

	pictures, err := storage.NewLocalStore(cfg.Upload.Dir, "/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not prepare upload directory")
	}

	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	svc := router.NewServices(db, tokens, pictures, cfg.Upload.MaxBytes)
	engine := router.New(svc, router.FromConfig(cfg, tokens, router.ProbeFor(db)))

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{
			"port":        cfg.App.Port,
			"environment": cfg.App.Environment,
			"api":         "http://localhost:" + cfg.App.Port + "/api",
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
}
