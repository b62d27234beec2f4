package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/logging"
	"github.com/cristianadrielbraun/memezzz/internal/overlay"
)

const (
	previewQRSize  = 240
	downloadQRSize = 1000
	maxQRSize      = 2000
)

// overlayFromQuery reads an overlay config from query parameters.
func overlayFromQuery(c *gin.Context) overlay.Config {
	return overlay.Config{
		Enabled: true,
		Kind:    overlay.Kind(strings.ToLower(c.DefaultQuery("kind", string(overlay.KindSponsor)))),
		Target:  strings.TrimSpace(c.Query("target")),
		Style:   c.DefaultQuery("style", overlay.DefaultStyleID),
		Logo:    c.DefaultQuery("logo", overlay.DefaultLogo),
	}
}

// qrSize picks the output size: "download" renders large, "preview" (the
// default) honours previewSize.
func qrSize(c *gin.Context) (int, error) {
	if c.DefaultQuery("size", "preview") == "download" {
		return downloadQRSize, nil
	}
	ps := c.Query("previewSize")
	if ps == "" {
		return previewQRSize, nil
	}
	n, err := strconv.Atoi(ps)
	if err != nil || n <= 0 || n > maxQRSize {
		return 0, apperr.New(apperr.CodeInvalidInput, "previewSize must be between 1 and %d", maxQRSize)
	}
	return n, nil
}

// QRCodeHandler renders the overlay card the editor shows on top of the
// meme. Invalid targets are reported as 400 so the editor can show the
// validation message and hide the overlay.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	cfg := overlayFromQuery(c)
	if cfg.Target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target parameter is required"})
		return
	}
	size, err := qrSize(c)
	if err != nil {
		respondError(c, err)
		return
	}

	img, err := overlay.Render(cfg, h.baseURL(c), size)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		respondError(c, apperr.Wrap(apperr.CodeRender, err, "Failed to encode QR code"))
		return
	}

	logging.FromContext(c.Request.Context()).Debug("qr rendered", "kind", cfg.Kind, "style", cfg.Style, "size", size)
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// QRStyles lists the overlay palette and the available logos.
func (h *Handler) QRStyles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"styles":       overlay.Palette,
		"defaultStyle": overlay.DefaultStyleID,
		"logos":        overlay.Logos(),
	})
}
