package router

import (
	"net/http"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/aggregate"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/config"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/content"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/handlers"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/services"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, generator *content.Generator, runner *aggregate.Runner, cache *services.Cache) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("snailtype", store))
	router.Use(UserLoaderMiddleware(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	// Handlers
	authHandler := handlers.NewAuthHandler(log)
	telemetryHandler := handlers.NewTelemetryHandler(log)
	wordsHandler := handlers.NewWordsHandler(log, generator, cache)
	profileHandler := handlers.NewProfileHandler(log)
	resultsHandler := handlers.NewResultsHandler(log)
	aggregateHandler := handlers.NewAggregateHandler(log, runner)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.POST("/register", limiter, authHandler.Register)
		api.POST("/login", limiter, authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		// Telemetry and results accept anonymous callers.
		api.POST("/telemetry", telemetryHandler.Ingest)
		api.POST("/results", resultsHandler.Save)
		api.GET("/results/:sessionID/chart", resultsHandler.Chart)
		api.GET("/words", wordsHandler.Generate)

		// Externally scheduled trigger, shared-token authenticated. The
		// token is read per-request so config hot reloads take effect.
		api.POST("/aggregate", limiter, TokenRequired(func() string {
			return config.Conf.Server.AggregationToken
		}), aggregateHandler.Trigger)

		authorized := api.Group("/")
		authorized.Use(AuthRequired())
		{
			authorized.GET("/profile", profileHandler.Show)
			authorized.GET("/results", resultsHandler.List)
		}
	}

	return router
}
