package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "whiterabbit/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"whiterabbit/internal/auth"
	"whiterabbit/internal/cache"
	"whiterabbit/internal/config"
	"whiterabbit/internal/db"
	"whiterabbit/internal/handler"
	"whiterabbit/internal/logging"
	"whiterabbit/internal/mailer"
	"whiterabbit/internal/policy"
	"whiterabbit/internal/repository"
	"whiterabbit/internal/router"
	"whiterabbit/internal/service"
)

// @title White Rabbit's Blog API
// @version 1.0
// @description Blog API with posts, comments, personal todolines, account activation and JWT authentication.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", "json")
		bootLogger.Fatal().Err(err).Msg("load configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	if cfg.ResetDB {
		logger.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, running without cache and token revocation")
	}
	cancelPing()

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		logger.Fatal().Err(err).Msg("password hasher")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	todolineRepo := repository.NewTodolineRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	policies := policy.NewDefaultRegistry()
	mail := mailer.New(cfg.SMTP, logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService, tokenStore, mail, logger)
	postService := service.NewPostService(postRepo, cacheClient, cfg.PostCacheTTL, policies, logger)
	commentService := service.NewCommentService(commentRepo, postRepo, cacheClient, policies, logger)
	todolineService := service.NewTodolineService(todolineRepo, policies, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	err = router.Register(e, logger, jwtService, tokenStore, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Post:     handler.NewPostHandler(postService),
		Comment:  handler.NewCommentHandler(commentService),
		Todoline: handler.NewTodolineHandler(todolineService),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("register routes")
	}

	logger.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
