// @title Nomato API
// @version 1.0
// @description Restaurant discovery backend: search, categories, restaurant pages, accounts and sign in.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nomato-app/nomato-backend/config"
	_ "github.com/nomato-app/nomato-backend/docs"
	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/routes"
	"github.com/nomato-app/nomato-backend/services"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	if err := config.InitLogger(); err != nil {
		panic(err)
	}
	defer config.SyncLogger()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to DB
	config.InitDB()
	defer config.CloseDB()
	if err := config.Migrate(models.All()...); err != nil {
		config.Log.Fatalw("❌ migration failed", "error", err)
	}

	// Redis connection
	config.ConnectRedis()
	defer config.CloseRedis()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		config.Log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret, 0); err != nil {
		config.Log.Fatalw("❌ failed to initialize JWT service", "error", err)
	}
	config.Log.Info("✅ JWT service initialized")

	config.InitGoogleOAuth()

	recorder := services.InitAnalyticsRecorder(config.Gorm, services.DefaultAnalyticsQueueSize)
	services.InitMailer()

	port := config.GetEnv("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           routes.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Log.Infow("🚀 server is running", "addr", "http://localhost:"+port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Log.Fatalw("❌ server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Log.Info("🛑 shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		config.Log.Errorw("server shutdown", "error", err)
	}
	if err := recorder.Stop(ctx); err != nil {
		config.Log.Warnw("analytics queue not drained", "error", err)
	}
}
