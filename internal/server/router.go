package server

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/feedback"
	"github.com/cristianadrielbraun/memezzz/internal/handlers"
	"github.com/cristianadrielbraun/memezzz/internal/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger      *log.Logger
	Metrics     *middleware.Metrics
	Limiter     *middleware.RateLimiter
	MetricsUser string
	MetricsPass string
	StaticDir   string
}

// clientKey identifies a caller for rate limiting, preferring proxy headers.
func clientKey(c *gin.Context) string {
	if ip := feedback.ClientIP(c.Request.Header); ip != "unknown" {
		return ip
	}
	return c.ClientIP()
}

// NewRouter wires every route onto a gin engine.
func NewRouter(h *handlers.Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	staticDir := opts.StaticDir
	if staticDir == "" {
		staticDir = "web/static"
	}
	r.Static("/web/static", staticDir)

	limited := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		limited = middleware.RateLimit(opts.Limiter, clientKey)
	}

	api := r.Group("/api")
	{
		api.GET("/templates", h.ListTemplates)
		api.GET("/templates/:id", h.GetTemplate)
		api.GET("/examples", h.ListExamples)
		api.GET("/examples/:index/image", h.ExampleImage)

		api.POST("/preview", h.Preview)
		api.POST("/export", h.Export)

		api.POST("/generate-meme-text", limited, h.GenerateMemeText)
		api.POST("/fetch-news-text", limited, h.FetchNewsText)
		api.POST("/submit-feedback", limited, h.SubmitFeedback)

		api.GET("/qr", h.QRCodeHandler)
		api.GET("/qr/styles", h.QRStyles)

		api.POST("/uploads", h.Upload)
		api.GET("/uploads/:id", h.GetUpload)
		api.DELETE("/uploads/:id", h.DeleteUpload)

		api.POST("/htmx/toast", h.GenericToast)
	}

	// Pages
	r.GET("/", h.Home)
	r.GET("/meme-creator", h.Creator)
	r.GET("/sponsored-meme", h.SponsoredMeme)
	r.GET("/sitemap.xml", h.SitemapXML)
	r.GET("/health", h.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", middleware.BasicAuth(opts.MetricsUser, opts.MetricsPass), gin.WrapH(opts.Metrics.Handler()))
	}
	r.NoRoute(h.NotFound)

	return r
}
