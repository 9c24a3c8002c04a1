package router

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"launchpad-backend/internal/app"
	"launchpad-backend/internal/config"
	"launchpad-backend/internal/handlers"
	"launchpad-backend/internal/middleware"
)

// corsMiddleware CORS middleware
// Priority: Environment Variable > YAML Config > Default (*)
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		var allowedOrigins []string
		allowCredentials := true
		maxAge := 3600

		// Priority 1: environment variable
		envOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if envOrigins != "" {
			origins := strings.Split(envOrigins, ",")
			allowedOrigins = make([]string, 0, len(origins))
			for _, o := range origins {
				trimmed := strings.TrimSpace(o)
				if trimmed != "" {
					allowedOrigins = append(allowedOrigins, trimmed)
				}
			}
		} else if config.AppConfig != nil && len(config.AppConfig.CORS.AllowedOrigins) > 0 {
			// Priority 2: YAML config
			allowedOrigins = config.AppConfig.CORS.AllowedOrigins
			allowCredentials = config.AppConfig.CORS.AllowCredentials
			if config.AppConfig.CORS.MaxAge > 0 {
				maxAge = config.AppConfig.CORS.MaxAge
			}
		} else {
			// Priority 3: allow all
			allowedOrigins = []string{"*"}
		}

		if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			allowed := false
			for _, allowedOrigin := range allowedOrigins {
				if strings.TrimSpace(allowedOrigin) == origin {
					allowed = true
					break
				}
			}
			if allowed {
				c.Header("Access-Control-Allow-Origin", origin)
			} else {
				logrus.WithFields(logrus.Fields{
					"request_origin":  origin,
					"allowed_origins": allowedOrigins,
					"path":            c.Request.URL.Path,
					"method":          c.Request.Method,
				}).Warn("🚫 CORS: Request blocked - Origin not in whitelist")
			}
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Cache-Control, Accept")
		if allowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type")
		c.Header("Access-Control-Max-Age", strconv.Itoa(maxAge))

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SetupRouter wires every HTTP surface of the launchpad backend
func SetupRouter(container *app.ServiceContainer) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	logger := logrus.New()

	// ============ Liveness ============
	r.GET("/ping", handlers.PingHandler)
	r.GET("/health", handlers.HealthHandler)

	// ============ Prometheus Metrics ============
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ============ Live submission progress ============
	r.GET("/ws", func(c *gin.Context) {
		container.PushService.HandleConnection(c.Writer, c.Request)
	})

	// ============ Token creation API ============
	tokenHandler := handlers.NewTokenHandler(
		container.TokenCreation,
		container.FeeService,
		container.SubmissionStore,
		container.Signer,
		logger,
	)

	api := r.Group("/api")
	{
		token := api.Group("/token")
		{
			token.POST("/create", tokenHandler.CreateTokenHandler)
			token.POST("/validate-logo", tokenHandler.ValidateLogoHandler)
			token.GET("/fee-quote", tokenHandler.FeeQuoteHandler)
			token.GET("/submissions/:id", tokenHandler.GetSubmissionHandler)
		}
	}

	// ============ Admin API ============
	adminAuthHandler := handlers.NewAdminAuthHandler()
	adminAuth := middleware.NewAdminAuthMiddleware(logger)

	admin := r.Group("/admin")
	{
		admin.POST("/login", adminAuthHandler.AdminLoginHandler)
		admin.POST("/totp/generate", adminAuthHandler.GenerateTOTPSecretHandler)

		protected := admin.Group("")
		protected.Use(adminAuth.RequireAdminAuth())
		{
			protected.GET("/submissions", tokenHandler.ListSubmissionsHandler)
		}
	}

	// ============ NoRoute handler for 404 ============
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message":    "Endpoint not found",
			"path":       c.Request.URL.Path,
			"suggestion": "Check /api/token endpoints for available APIs",
		})
	})

	return r
}
