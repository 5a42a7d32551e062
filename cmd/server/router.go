package main

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/snnyvrz/bookshelf/internal/auth"
	"github.com/snnyvrz/bookshelf/internal/config"
	docs "github.com/snnyvrz/bookshelf/internal/docs"
	"github.com/snnyvrz/bookshelf/internal/handler"
	"github.com/snnyvrz/bookshelf/internal/metrics"
	"github.com/snnyvrz/bookshelf/internal/middleware"
	"github.com/snnyvrz/bookshelf/internal/repository"
)

func newRouter(cfg *config.Config, database *gorm.DB, log *zap.Logger, startTime time.Time) (*gin.Engine, error) {
	e := gin.New()

	if err := e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	}); err != nil {
		return nil, err
	}

	httpMetrics := metrics.New()

	e.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		httpMetrics.Middleware(),
	)

	docs.SwaggerInfo.BasePath = "/"

	healthHandler := handler.NewHealthHandler(database, log, startTime, appVersion)
	healthHandler.RegisterRoutes(e)

	e.GET("/metrics", httpMetrics.Handler())
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	accounts := auth.NewService(repository.NewGormUserRepository(database), tokens, cfg.BcryptCost)

	public := e.Group("")
	{
		handler.NewUserHandler(accounts, log).RegisterRoutes(public)
		handler.NewSessionHandler(accounts, handler.CookieConfig{
			Name:   cfg.CookieName,
			Secure: cfg.SecureCookies,
			TTL:    cfg.TokenTTL,
		}, log).RegisterRoutes(public)
	}

	authMiddleware := auth.NewMiddleware(tokens, cfg.CookieName)
	protected := e.Group("", authMiddleware.Handler())
	{
		bookHandler := handler.NewBookHandler(
			repository.NewGormBookRepository(database),
			log,
			handler.WithNotFoundMode(handler.NotFoundMode(cfg.NotFoundMode)),
		)
		bookHandler.RegisterRoutes(protected)
	}

	return e, nil
}
