// Package main runs the exhibitor portal HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smart-exhibitor/backend/config"
	"github.com/smart-exhibitor/backend/internal/admin"
	"github.com/smart-exhibitor/backend/internal/auth"
	"github.com/smart-exhibitor/backend/internal/exhibitors"
	"github.com/smart-exhibitor/backend/internal/middleware"
	"github.com/smart-exhibitor/backend/internal/worker"
	"github.com/smart-exhibitor/backend/pkg/database"
	"github.com/smart-exhibitor/backend/pkg/queue"
	"github.com/smart-exhibitor/backend/pkg/redis"
	"github.com/smart-exhibitor/backend/pkg/response"
	"github.com/smart-exhibitor/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	// Blob storage: local disk by default, S3 when configured.
	var blobs storage.Store
	var localStore *storage.Local
	switch cfg.Storage.Driver {
	case "s3":
		blobs, err = storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Bucket:          cfg.AWS.UploadsBucket,
		}, logger)
		if err != nil {
			logger.Fatal("s3 storage", zap.Error(err))
		}
	default:
		localStore, err = storage.NewLocal(cfg.Storage.UploadDir, logger)
		if err != nil {
			logger.Fatal("local storage", zap.Error(err))
		}
		blobs = localStore
	}

	jobQueue := queue.NewQueue(rdb.Client, logger)

	repo := exhibitors.NewRepository(pool)
	svc := exhibitors.NewService(repo, blobs, jobQueue, cfg.Event.Name, cfg.Event.AdminEmail, logger)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	revoker := auth.NewRevoker(rdb)
	authHandler := auth.NewHandler(repo, svc, jwtService, revoker, cfg.Event.AdminEmail, logger)
	exhibitorHandler := exhibitors.NewHandler(svc, logger)
	adminHandler := admin.NewHandler(svc, logger)

	cleanup := worker.NewCleanupProcessor(blobs, jobQueue, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Uploaded assets (local driver only; S3 objects are served by the bucket)
	if localStore != nil {
		router.Static("/uploads", localStore.BaseDir())
	}

	api := router.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/init", authHandler.Init)
		authGroup.POST("/login", authHandler.Login)
	}

	guard := auth.Middleware(jwtService, revoker)

	authed := api.Group("/auth")
	authed.Use(guard)
	{
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/session", authHandler.Session)
	}

	// Exhibitor self-service
	exhibitor := api.Group("/exhibitors")
	exhibitor.Use(guard)
	{
		exhibitor.GET("/dashboard", exhibitorHandler.Dashboard)
		exhibitor.POST("/logo", exhibitorHandler.UploadLogo)
		exhibitor.POST("/company-info", exhibitorHandler.SubmitCompanyInfo)
		exhibitor.POST("/booth-upgrade", exhibitorHandler.RequestBoothUpgrade)
		exhibitor.GET("/webinar-dates", exhibitorHandler.ListWebinarDates)
		exhibitor.POST("/webinar-date", exhibitorHandler.SelectWebinarDate)
		exhibitor.POST("/banner", exhibitorHandler.GenerateBanner)
	}

	// Admin review
	adminGroup := api.Group("/admin")
	adminGroup.Use(guard, middleware.RequireRole("admin"))
	{
		adminGroup.GET("/dashboard", adminHandler.Dashboard)
		adminGroup.GET("/exhibitors", adminHandler.ListExhibitors)
		adminGroup.POST("/exhibitors", adminHandler.CreateExhibitor)
		adminGroup.GET("/exhibitors/:id", adminHandler.GetExhibitor)
		adminGroup.PUT("/exhibitors/:id/logo", adminHandler.ApproveLogo)
		adminGroup.PUT("/exhibitors/:id/company-info", adminHandler.ApproveCompanyInfo)
		adminGroup.PUT("/exhibitors/:id/booth-upgrade", adminHandler.ApproveBoothUpgrade)
		adminGroup.PUT("/exhibitors/:id/payment", adminHandler.SetPayment)
		adminGroup.PUT("/exhibitors/:id/checklist", adminHandler.SetChecklist)
		adminGroup.POST("/reset-demo", adminHandler.ResetDemo)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background worker (orphaned blob cleanup)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go cleanup.Run(workerCtx)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
