package route

import (
	"net/http"
	"strings"
	"time"

	"pdf-voice/backend/api/handler"
	"pdf-voice/backend/api/middleware"
	"pdf-voice/backend/common"
	"pdf-voice/backend/library/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	SessionStore sessions.Store
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
}

func SetRouter(route *gin.Engine, h *handler.Handler, opts Options) error {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	route.Use(middleware.RequestLogger(opts.Metrics))
	route.Use(middleware.LangMiddleware())
	route.Use(middleware.NoCache())
	route.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "Accept-Language"},
		MaxAge:          12 * time.Hour,
	}))
	route.Use(middleware.GzipEncodeMiddleware("/audio/", "/api/audio/", "/metrics"))
	route.Use(sessions.Sessions("session", opts.SessionStore))

	route.GET("/healthz", h.Healthz)
	route.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))

	critical := middleware.CriticalRateLimit()
	SetApiRouter(route, h, critical)
	if err := setWebRouter(route, h, critical); err != nil {
		return err
	}

	route.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			common.RespErrorStr(c, http.StatusNotFound, "API route not found")
			return
		}
		c.String(http.StatusNotFound, "404 page not found")
	})
	return nil
}
