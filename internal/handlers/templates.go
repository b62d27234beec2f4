package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/web/components"
)

const exampleCacheTTL = time.Hour

var errNoRenderer = apperr.New(apperr.CodeConfig, "Rendering is not configured")

// ListTemplates returns the catalog in order.
func (h *Handler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.Catalog.All()})
}

// GetTemplate returns one template with its image URL.
func (h *Handler) GetTemplate(c *gin.Context) {
	tpl, ok := h.Catalog.Get(c.Param("id"))
	if !ok {
		respondError(c, apperr.New(apperr.CodeNotFound, "Template not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"template": tpl,
		"imageUrl": components.TemplateImageURL(tpl.Path),
	})
}

// ListExamples returns the gallery and today's featured index.
func (h *Handler) ListExamples(c *gin.Context) {
	featured := -1
	if _, i, ok := h.Gallery.Featured(h.now()); ok {
		featured = i
	}
	c.JSON(http.StatusOK, gin.H{"examples": h.Gallery.Examples, "featured": featured})
}

// ExampleImage renders a gallery example to PNG. Results are cached.
func (h *Handler) ExampleImage(c *gin.Context) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "Invalid example index"))
		return
	}
	ex, ok := h.Gallery.Get(i)
	if !ok {
		respondError(c, apperr.New(apperr.CodeNotFound, "Example not found"))
		return
	}
	tpl, ok := h.Catalog.Get(ex.TemplateID)
	if !ok {
		respondError(c, apperr.New(apperr.CodeNotFound, "Template not found"))
		return
	}
	if h.Renderer == nil {
		respondError(c, errNoRenderer)
		return
	}

	ctx := c.Request.Context()
	key := "example:" + strconv.Itoa(i) + ":" + tpl.ID
	if data, ok, err := h.Cache.Get(ctx, key); err == nil && ok {
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "image/png", data)
		return
	}

	e := compositor.NewEditor(tpl)
	for j, s := range e.Slots() {
		if j < len(ex.Captions) {
			e.SetText(s.ID, ex.Captions[j])
		}
	}
	img, err := h.Renderer.Render(ctx, e.Scene())
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := compositor.EncodePNG(img)
	if err != nil {
		respondError(c, apperr.Wrap(apperr.CodeRender, err, "Failed to encode image"))
		return
	}
	_ = h.Cache.Set(ctx, key, data, exampleCacheTTL)
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", data)
}
