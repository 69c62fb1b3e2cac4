package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"blogapi/docs" // swagger docs

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/handler"
	"blogapi/internal/logger"
	"blogapi/internal/media"
	"blogapi/internal/repository"
	"blogapi/internal/router"
	"blogapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Blog API
// @version 1.0
// @description Blog API with cookie sessions, posts, categories, comments and image upload.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	secret, fallback, err := cfg.ResolveJWTSecret()
	if err != nil {
		zlog.Fatal("jwt secret", zap.Error(err))
	}
	if fallback {
		zlog.Warn("JWT_SECRET is not set, using the built-in fallback secret")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, zlog)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		zlog.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		zlog.Warn("redis unavailable, caching and token revocation degrade to no-ops", zap.Error(err))
	}
	cancelPing()

	var uploader media.Uploader = media.Disabled{}
	if cfg.CloudinaryCloudName != "" {
		cld, err := media.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			zlog.Fatal("cloudinary init", zap.Error(err))
		}
		uploader = cld
	} else {
		zlog.Warn("CLOUDINARY_CLOUD_NAME is not set, uploads are disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(secret)
	tokenStore := auth.NewTokenStore(cacheClient)
	guard := auth.NewGuard(jwtService, tokenStore)
	cookie := auth.SessionCookie{Secure: cfg.SecureCookies()}

	// Initialize services
	authService := service.NewAuthService(userRepo, auth.NewPasswordHasher(), jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	postService := service.NewPostService(postRepo, userRepo, categoryRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)
	uploadService := service.NewUploadService(uploader)

	e := echo.New()
	router.Register(e, cfg, zlog, guard, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, cookie, zlog),
		User:     handler.NewUserHandler(userService, zlog),
		Category: handler.NewCategoryHandler(categoryService, zlog),
		Post:     handler.NewPostHandler(postService, zlog, cfg.EnforceOwnership),
		Comment:  handler.NewCommentHandler(commentService, zlog, cfg.EnforceOwnership),
		Upload:   handler.NewUploadHandler(uploadService, zlog),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	zlog.Info("swagger documentation available",
		zap.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		zlog.Info("server starting",
			zap.String("addr", addr),
			zap.String("env", cfg.AppEnv),
			zap.Bool("enforce_ownership", cfg.EnforceOwnership))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("server start", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
	if err := db.Close(gormDB); err != nil {
		zlog.Error("database close", zap.Error(err))
	}
	if err := cacheClient.Close(); err != nil {
		zlog.Error("redis close", zap.Error(err))
	}
}
