package router

import (
	"net/http"
	"time"

	apphttp "merkaz_backend/internal/http"
	"merkaz_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(cors.New(corsConfig(app.Config)))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := app.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	rateLimit := func(c *gin.Context) { c.Next() }
	if app.Limiter != nil {
		rateLimit = httpkit.RateLimit(app.Limiter, app.Logger)
	}

	api := engine.Group("/api")
	ctx := &apphttp.RouterContext{
		Engine:    engine,
		Public:    api,
		V1:        api.Group("/v1"),
		RateLimit: rateLimit,
	}

	for _, module := range app.Modules {
		app.Logger.Info("registering module", "module", module.Name())
		module.RegisterRoutes(ctx)
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", httpkit.RequestIDHeader},
		ExposeHeaders:    []string{httpkit.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	switch origins := cfg.GetCORSOrigins(); {
	case cfg.GetCORSAllowAll():
		corsCfg.AllowAllOrigins = true
	case len(origins) == 0:
		// cors.New refuses a config that allows nothing
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	default:
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}
