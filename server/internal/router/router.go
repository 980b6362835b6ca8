package router

import (
	"net/http"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/config"
	"github.com/Aryanthe1/Goal-Sync/server/internal/handlers"
	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/views/components"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

const sessionName = "goalsync_session"

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.Header("Retry-After", info.ResetTime.UTC().Format(http.TimeFormat))
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

// Setup builds the gin engine with the HTML routes (session + CSRF) and the
// JSON API (bearer token) on separate middleware chains.
func Setup(log *zap.Logger, cfg config.ServerConfig, catalog *models.GoalCatalog) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "same-origin",
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	if cfg.AssetsDir != "" {
		router.Static("/assets", cfg.AssetsDir)
	}

	limit := cfg.LoginRate
	if limit <= 0 {
		limit = 5
	}
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: uint(limit),
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	registerAPIRoutes(router, log, cfg, limiter)
	registerWebRoutes(router, log, cfg, catalog, limiter)
	return router
}

func registerAPIRoutes(router *gin.Engine, log *zap.Logger, cfg config.ServerConfig, limiter gin.HandlerFunc) {
	apiHandler := handlers.NewAPIHandler(log, cfg.JWTSecret, cfg.JWTTTL)

	api := router.Group("/api/v1")
	api.POST("/token", limiter, apiHandler.Token)
	api.POST("/score", apiHandler.Score)

	secured := api.Group("")
	secured.Use(BearerAuth(log, []byte(cfg.JWTSecret)))
	{
		secured.GET("/goals", apiHandler.ListGoals)
		secured.POST("/goals", apiHandler.CreateGoal)
		secured.PUT("/goals/:id", apiHandler.UpdateGoal)
		secured.DELETE("/goals/:id", apiHandler.DeleteGoal)
		secured.POST("/goals/:id/completions", apiHandler.ToggleCompletion)

		secured.GET("/checkins", apiHandler.ListCheckins)
		secured.PUT("/checkins/:date", apiHandler.PutCheckin)
		secured.DELETE("/checkins/:date", apiHandler.DeleteCheckin)

		secured.GET("/analytics/summary", apiHandler.Summary)
	}
}

func registerWebRoutes(router *gin.Engine, log *zap.Logger, cfg config.ServerConfig, catalog *models.GoalCatalog, limiter gin.HandlerFunc) {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})

	web := router.Group("/")
	web.Use(sessions.Sessions(sessionName, store))
	// --- Now that sessions are initialized, other middleware can use them ---
	web.Use(NonceMiddleware())
	web.Use(CSRFProtection())
	web.Use(UserLoaderMiddleware(log))
	web.Use(ContentSecurityPolicy())

	authHandler := handlers.NewAuthHandler(log)
	dashboardHandler := handlers.NewDashboardHandler(log)
	goalsHandler := handlers.NewGoalsHandler(log, catalog)
	checkinHandler := handlers.NewCheckinHandler(log)
	analyticsHandler := handlers.NewAnalyticsHandler(log)
	userHandler := handlers.NewUserHandler(log)

	web.GET("/", func(c *gin.Context) {
		if _, isLoggedIn := c.Get(handlers.ContextUserKey); isLoggedIn {
			dashboardHandler.Show(c)
			return
		}
		authHandler.ShowLoginPage(c)
	})

	web.GET("/nav", func(c *gin.Context) {
		_, isLoggedIn := c.Get(handlers.ContextUserKey)
		components.Nav(isLoggedIn, c.GetString(handlers.ContextCSRFTokenKey)).Render(c.Request.Context(), c.Writer)
	})

	web.GET("/login", authHandler.ShowLoginPage)
	web.POST("/login", limiter, authHandler.Login)
	web.POST("/logout", authHandler.Logout)
	web.GET("/register", authHandler.ShowRegisterPage)
	web.POST("/register", limiter, authHandler.Register)

	authorized := web.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.GET("/dashboard", dashboardHandler.Show)

		goalRoutes := authorized.Group("/goals")
		{
			goalRoutes.GET("", goalsHandler.Show)
			goalRoutes.POST("", goalsHandler.Create)
			goalRoutes.POST("/:id/update", goalsHandler.Update)
			goalRoutes.POST("/:id/delete", goalsHandler.Delete)
			goalRoutes.POST("/:id/toggle", goalsHandler.Toggle)
		}

		checkinRoutes := authorized.Group("/checkin")
		{
			checkinRoutes.GET("", checkinHandler.Show)
			checkinRoutes.POST("", checkinHandler.Save)
			checkinRoutes.POST("/delete", checkinHandler.Delete)
		}

		authorized.GET("/analytics", analyticsHandler.Show)

		profileRoutes := authorized.Group("/profile")
		{
			// Point both routes to the SAME handler
			profileRoutes.GET("", userHandler.ShowProfilePage)
			profileRoutes.GET("/:section", userHandler.ShowProfilePage)

			profileRoutes.POST("/update-info", userHandler.UpdateInfo)
			profileRoutes.POST("/update-password", userHandler.UpdatePassword)
			profileRoutes.POST("/notifications", userHandler.UpdateNotificationSettings)
			profileRoutes.POST("/delete", userHandler.DeleteAccount)
		}
	}
}
