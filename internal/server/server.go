// Package server assembles the application from configuration and runs the
// HTTP server until its context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/cache"
	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/config"
	"github.com/cristianadrielbraun/memezzz/internal/extract"
	"github.com/cristianadrielbraun/memezzz/internal/feedback"
	"github.com/cristianadrielbraun/memezzz/internal/handlers"
	"github.com/cristianadrielbraun/memezzz/internal/middleware"
	"github.com/cristianadrielbraun/memezzz/internal/textgen"
	"github.com/cristianadrielbraun/memezzz/internal/uploads"
)

const (
	shutdownTimeout = 30 * time.Second
	sweepInterval   = time.Minute
	visitorIdle     = 10 * time.Minute
)

// App is a fully wired server.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Handler *handlers.Handler
	Router  *gin.Engine
	Cache   cache.Cache
	Uploads *uploads.Store
	Limiter *middleware.RateLimiter
	Metrics *middleware.Metrics
}

// LoadCatalog reads the template catalog and example gallery named in cfg,
// falling back to the built-in sets.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, *catalog.Gallery, error) {
	cat := catalog.Default()
	if cfg.TemplatesFile != "" {
		c, err := catalog.LoadFile(cfg.TemplatesFile)
		if err != nil {
			return nil, nil, err
		}
		cat = c
	}
	gallery := catalog.DefaultGallery()
	if cfg.ExamplesFile != "" {
		g, err := catalog.LoadGalleryFile(cfg.ExamplesFile)
		if err != nil {
			return nil, nil, err
		}
		gallery = g
	}
	return cat, gallery, nil
}

// NewRenderer builds the image renderer for cfg.
func NewRenderer(cfg *config.Config) (*compositor.Renderer, error) {
	fonts, err := compositor.DefaultFonts()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	loader := compositor.AssetLoader{Dir: cfg.TemplatesDir, Client: &http.Client{Timeout: 15 * time.Second}}
	return compositor.NewRenderer(fonts, compositor.NewMemoLoader(loader), cfg.ExportScale), nil
}

func openCache(cfg *config.Config, logger *log.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache()
	}
	rc, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, "memezzz:")
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "err", err)
		return cache.NewMemoryCache()
	}
	logger.Info("connected to redis", "addr", cfg.RedisAddr)
	return rc
}

// New wires every collaborator described by cfg.
func New(cfg *config.Config, logger *log.Logger) (*App, error) {
	cat, gallery, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range catalog.Validate(cat) {
		logger.Warn("template catalog", "problem", w)
	}
	for _, w := range catalog.ValidateGallery(gallery, cat) {
		logger.Warn("example gallery", "problem", w)
	}

	renderer, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}

	store := openCache(cfg, logger)

	var gen textgen.Generator
	if cfg.OpenAIKey != "" {
		gen = textgen.NewCached(textgen.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), store)
	} else {
		logger.Warn("OPENAI_API_KEY is not set, caption generation is disabled")
	}

	telegram := feedback.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, cfg.TelegramAPIURL)
	if !telegram.Configured() {
		logger.Warn("telegram is not configured, feedback submissions will fail")
	}

	metrics := middleware.NewMetrics()
	ups := uploads.NewStore(uploads.DefaultTTL, uploads.DefaultMaxBytes)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	baseURL := ""
	if cfg.Production() {
		baseURL = cfg.PublicBaseURL
	}
	h := handlers.New(handlers.Deps{
		Catalog:   cat,
		Gallery:   gallery,
		Renderer:  renderer,
		Exporter:  compositor.NewExporter(),
		Generator: gen,
		Fetcher:   extract.NewFetcher(store),
		Telegram:  telegram,
		Uploads:   ups,
		Cache:     store,
		Metrics:   metrics,
		BaseURL:   baseURL,
	})

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewRouter(h, RouterOptions{
		Logger:      logger,
		Metrics:     metrics,
		Limiter:     limiter,
		MetricsUser: cfg.MetricsUser,
		MetricsPass: cfg.MetricsPass,
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Handler: h,
		Router:  router,
		Cache:   store,
		Uploads: ups,
		Limiter: limiter,
		Metrics: metrics,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains connections.
func (a *App) Run(ctx context.Context) error {
	defer a.Cache.Close()

	bg, stop := context.WithCancel(ctx)
	defer stop()
	go a.Uploads.Run(bg, sweepInterval)
	go a.Limiter.Run(bg, visitorIdle)
	if sw, ok := a.Cache.(cache.Sweeper); ok {
		go sw.Run(bg, sweepInterval)
	}

	srv := &http.Server{
		Addr:         a.Config.Addr(),
		Handler:      a.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("memezzz listening", "addr", srv.Addr, "env", a.Config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.Logger.Info("server stopped")
	return nil
}
