package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "hrportal/api/swagger" // swagger docs
	"hrportal/internal/config"
	"hrportal/internal/database"
	"hrportal/internal/handler"
	"hrportal/internal/middleware"
	"hrportal/internal/model"
	"hrportal/internal/repository"
	"hrportal/internal/service"
	"hrportal/internal/session"
	"hrportal/internal/storage"
	"hrportal/internal/websocket"
	applogger "hrportal/pkg/logger"
)

// @title           HR Portal API
// @version         1.0
// @description     Employee self-service requests: submission, review, fulfillment and audit.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting hr portal api", zap.Int("port", cfg.Server.Port), zap.String("mode", cfg.Server.Mode))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	rdb, err := session.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}

	files, err := storage.NewLocalStorage(&cfg.Storage)
	if err != nil {
		logger.Fatal("upload storage unavailable", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(logger.Named("ws"))
	go wsHub.Run(ctx)

	// Set up dependencies (Repository -> Service -> Handler)
	repo := repository.NewRepository(db)
	sessions := session.NewRedisStore(rdb, logger.Named("session"))
	tokens := session.NewTokenManager(&cfg.Auth)
	notifier := service.NewHubNotifier(wsHub, logger.Named("notify"))
	svc := service.NewService(repo, files, notifier, sessions, tokens, logger)

	if cfg.Auth.BootstrapEmail != "" {
		if err := svc.Users.EnsureSuperAdmin(ctx, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
			logger.Fatal("bootstrap super admin failed", zap.Error(err))
		}
	}

	authenticate := middleware.Authenticate(svc.Auth, logger.Named("auth"))

	requestHandler := handler.NewRequestHandler(svc.Lifecycle, svc.Aggregator)
	authHandler := handler.NewAuthHandler(svc.Auth)
	auditHandler := handler.NewAuditHandler(svc.Audit)
	uploadHandler := handler.NewUploadHandler(files)
	statisticsHandler := handler.NewStatisticsHandler(svc.Statistics)
	userHandler := handler.NewUserHandler(svc.Users)
	employeeHandler := handler.NewEmployeeHandler(svc.Employees)
	fileHandler := handler.NewFileHandler(svc.Files, cfg.Storage.PublicBaseURL)

	// Set up Gin Router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger.Named("http")))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Request-ID"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, func(ctx context.Context, token string) (*model.Principal, error) {
			sess, err := svc.Auth.Resolve(ctx, token)
			if err != nil {
				return nil, err
			}
			return sess.Principal(), nil
		})
	})

	api := router.Group("")
	authHandler.RegisterRoutes(api, authenticate)
	requestHandler.RegisterRoutes(api, authenticate)
	auditHandler.RegisterRoutes(api, authenticate)
	uploadHandler.RegisterRoutes(api, authenticate)
	fileHandler.RegisterRoutes(api, authenticate)
	statisticsHandler.RegisterRoutes(api, authenticate)
	userHandler.RegisterRoutes(api, authenticate)
	employeeHandler.RegisterRoutes(api, authenticate)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	stop()

	if err := rdb.Close(); err != nil {
		logger.Warn("redis close failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}
