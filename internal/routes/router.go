package routes

import (
	"net/http"

	"tour-booking-api/internal/config"
	"tour-booking-api/internal/database"
	"tour-booking-api/internal/email"
	"tour-booking-api/internal/logger"
	"tour-booking-api/internal/middleware"
	"tour-booking-api/internal/token"
	tourHandler "tour-booking-api/internal/tour/handler"
	tourRepository "tour-booking-api/internal/tour/repository"
	tourService "tour-booking-api/internal/tour/service"
	userHandler "tour-booking-api/internal/user/handler"
	userModel "tour-booking-api/internal/user/model"
	userRepository "tour-booking-api/internal/user/repository"
	userService "tour-booking-api/internal/user/service"
	appErrors "tour-booking-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(cfg *config.Config, db *database.Database) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(&cfg.CORS))
	router.Use(middleware.ErrorHandler(cfg))
	router.Use(middleware.RequestSizeLimit(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "error",
				"message": "database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "service is running",
		})
	})

	tokens := token.NewManager(cfg.JWT)
	mailer := email.NewSMTPMailer(cfg.SMTP)

	userRepo := userRepository.NewRepository(db)
	userSvc := userService.NewService(userRepo, tokens, mailer, logger.Logger)
	users := userHandler.NewHandler(userSvc, cfg)

	tourRepo := tourRepository.NewRepository(db)
	tourSvc := tourService.NewService(tourRepo)
	tours := tourHandler.NewHandler(tourSvc)

	v1 := router.Group("/api/v1")
	{
		users.RegisterRoutes(v1)

		// The catalogue reads are public but personalized when a valid
		// token happens to be present.
		public := v1.Group("")
		public.Use(middleware.OptionalAuth(tokens, userRepo))
		{
			tours.RegisterRoutes(public)
		}

		protected := v1.Group("")
		protected.Use(middleware.RequireAuth(tokens, userRepo))
		{
			users.RegisterProtectedRoutes(protected)

			management := protected.Group("")
			management.Use(middleware.RequireRole(userModel.RoleAdmin, userModel.RoleLeadGuide))
			{
				tours.RegisterManagementRoutes(management)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				users.RegisterAdminRoutes(admin)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(appErrors.New("ROUTE_NOT_FOUND", http.StatusNotFound,
			"can't find "+c.Request.URL.Path+" on this server"))
	})

	logger.Info("All routes initialized", zap.String("environment", cfg.Server.Environment))
	return router
}
