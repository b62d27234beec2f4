package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/cache"
	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/extract"
	"github.com/cristianadrielbraun/memezzz/internal/feedback"
	"github.com/cristianadrielbraun/memezzz/internal/logging"
	"github.com/cristianadrielbraun/memezzz/internal/middleware"
	"github.com/cristianadrielbraun/memezzz/internal/textgen"
	"github.com/cristianadrielbraun/memezzz/internal/uploads"
)

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Catalog   *catalog.Catalog
	Gallery   *catalog.Gallery
	Renderer  *compositor.Renderer
	Exporter  *compositor.Exporter
	Generator textgen.Generator
	Fetcher   *extract.Fetcher
	Telegram  *feedback.Telegram
	Uploads   *uploads.Store
	Cache     cache.Cache
	Metrics   *middleware.Metrics
	// BaseURL is the public origin used in QR links. Empty means derive it
	// from the request.
	BaseURL string
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	Deps
	now func() time.Time
}

// New returns a Handler. Missing optional collaborators get in-process
// defaults.
func New(d Deps) *Handler {
	if d.Catalog == nil {
		d.Catalog = catalog.Default()
	}
	if d.Gallery == nil {
		d.Gallery = catalog.DefaultGallery()
	}
	if d.Exporter == nil {
		d.Exporter = compositor.NewExporter()
	}
	if d.Cache == nil {
		d.Cache = cache.NewNullCache()
	}
	if d.Fetcher == nil {
		d.Fetcher = extract.NewFetcher(d.Cache)
	}
	if d.Uploads == nil {
		d.Uploads = uploads.NewStore(0, 0)
	}
	if d.Telegram == nil {
		d.Telegram = feedback.NewTelegram("", "", "")
	}
	return &Handler{Deps: d, now: time.Now}
}

// respondError logs err with the request logger and answers with the
// client-facing message.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	logger := logging.FromContext(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "err", err)
	} else {
		logger.Debug("request rejected", "path", c.FullPath(), "err", err)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

// baseURL returns the configured public origin or the one the request came
// in on.
func (h *Handler) baseURL(c *gin.Context) string {
	if h.BaseURL != "" {
		return strings.TrimRight(h.BaseURL, "/")
	}
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1")) {
		scheme = "http"
	}
	return scheme + "://" + host
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "templates": h.Catalog.Len()})
}

// SitemapXML serves the sitemap: the home page, the editor and one editor
// entry per template.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	base := h.baseURL(c)
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n")
	writeURL := func(loc, freq, priority string) {
		b.WriteString("  <url>\n")
		b.WriteString("    <loc>" + loc + "</loc>\n")
		b.WriteString("    <changefreq>" + freq + "</changefreq>\n")
		b.WriteString("    <priority>" + priority + "</priority>\n")
		b.WriteString("  </url>\n")
	}
	writeURL(base+"/", "daily", "1.0")
	writeURL(base+"/meme-creator", "weekly", "0.8")
	for _, t := range h.Catalog.All() {
		writeURL(base+"/meme-creator?template="+t.ID, "monthly", "0.6")
	}
	b.WriteString("</urlset>\n")
	c.String(http.StatusOK, b.String())
}
