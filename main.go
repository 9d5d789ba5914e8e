package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"vph-backend/cache"
	"vph-backend/config"
	"vph-backend/controllers"
	"vph-backend/logger"
	"vph-backend/notify"
	"vph-backend/routes"
	"vph-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if err := config.ConnectDatabase(); err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB
	zlog.Info("database connection established, migrations applied")

	roomCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, zlog)
	if roomCache.Enabled() {
		zlog.Info("room cache enabled", zap.String("addr", cfg.RedisAddr))
	}
	notifier := notify.New(cfg.AlertWebhookURL, zlog)

	// Services
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, zlog)
	roomService := services.NewRoomService(db, roomCache, zlog)
	guestService := services.NewGuestService(db)
	bookingService := services.NewBookingService(db, roomCache, notifier, zlog)
	staffService := services.NewStaffService(db, zlog)
	reportService := services.NewReportService(db, roomCache, zlog)

	// Controllers
	authController := controllers.NewAuthController(authService)
	roomController := controllers.NewRoomController(roomService)
	guestController := controllers.NewGuestController(guestService)
	bookingController := controllers.NewBookingController(bookingService)
	staffController := controllers.NewStaffController(staffService)
	reportController := controllers.NewReportController(reportService)

	router := routes.SetupRouter(cfg, db, zlog,
		authController, roomController, bookingController,
		guestController, staffController, reportController)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("listen and serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zlog.Info("shutdown signal received, stopping server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server stopped gracefully")
}
