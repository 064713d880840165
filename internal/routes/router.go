package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"identity-service/internal/auth"
	"identity-service/internal/config"
	"identity-service/internal/delivery/http/handler"
	"identity-service/internal/domain/account"
	"identity-service/internal/infrastructure/database/postgres"
	"identity-service/internal/logger"
	"identity-service/internal/middleware"
	"identity-service/internal/notifier"
	"identity-service/internal/usecase/identity"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, mailer notifier.Notifier) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	clock := auth.SystemClock{}
	hasher := auth.NewPasswordHasher(bcrypt.DefaultCost)
	tokens := auth.NewTokenService([]byte(cfg.JWT.Secret), cfg.JWT.Expiry(), clock)
	resets := auth.NewResetTokenManager(cfg.Reset.Window())

	accountRepository := postgres.NewAccountRepository(db)
	identityService := identity.NewService(accountRepository, hasher, tokens, resets, mailer, clock, cfg.Reset.LinkBaseURL)
	identityHandler := handler.NewIdentityHandler(identityService)

	v1 := router.Group("/api/v1")
	{
		identityHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(tokens))
		protected.Use(middleware.RoleMiddleware(account.RoleClient, account.RoleAdmin))
		{
			identityHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
