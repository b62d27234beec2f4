package handlers

import (
	"context"
	"image"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/feedback"
	"github.com/cristianadrielbraun/memezzz/internal/logging"
	"github.com/cristianadrielbraun/memezzz/internal/overlay"
	"github.com/cristianadrielbraun/memezzz/web/pages"
)

// editorRequest is the editor snapshot posted by the browser.
type editorRequest struct {
	compositor.State
	// UploadID selects a user upload instead of a catalog template.
	UploadID string         `json:"uploadId"`
	Overlay  overlay.Config `json:"overlay"`
	// Name overrides the template name in the export filename.
	Name string `json:"name"`
	// Session identifies the browser editor for the export guard.
	Session string `json:"session"`
}

// editorFor rebuilds an editor from a snapshot. The returned background is
// nil for catalog templates.
func (h *Handler) editorFor(req editorRequest) (*compositor.Editor, image.Image, error) {
	var tpl *catalog.Template
	var bg image.Image
	if req.UploadID != "" {
		u, ok := h.Uploads.Get(req.UploadID)
		if !ok {
			return nil, nil, apperr.New(apperr.CodeNotFound, "Upload not found")
		}
		tpl, bg = u.Template(), u.Image
	} else {
		var ok bool
		if tpl, ok = h.Catalog.Get(req.TemplateID); !ok {
			return nil, nil, apperr.New(apperr.CodeNotFound, "Template not found")
		}
	}
	e := compositor.NewEditor(tpl)
	e.Load(req.State)
	return e, bg, nil
}

// Preview returns the live preview layout of a snapshot. htmx requests get
// the rendered caption boxes instead of JSON.
func (h *Handler) Preview(c *gin.Context) {
	var req editorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "Invalid request body"))
		return
	}
	e, _, err := h.editorFor(req)
	if err != nil {
		respondError(c, err)
		return
	}
	layout := compositor.Preview(e)
	if c.GetHeader("HX-Request") == "true" {
		render(c, http.StatusOK, pages.PreviewBoxes(layout))
		return
	}
	c.JSON(http.StatusOK, layout)
}

// Export renders the snapshot to PNG. With ?format=dataurl the image comes
// back as a data URL in JSON; otherwise it is sent as an attachment.
func (h *Handler) Export(c *gin.Context) {
	var req editorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "Invalid request body"))
		return
	}
	if h.Renderer == nil {
		respondError(c, errNoRenderer)
		return
	}
	e, bg, err := h.editorFor(req)
	if err != nil {
		respondError(c, err)
		return
	}

	tpl := e.Template()
	scene := e.Scene()
	scene.Background = bg
	logger := logging.FromContext(c.Request.Context())

	cfg := req.Overlay
	cfg.Enabled = req.QR.Enabled
	if cfg.Enabled {
		if err := overlay.Validate(cfg); err != nil {
			// An invalid target turns the overlay off; the export still runs.
			logger.Debug("overlay skipped", "err", err)
		} else {
			size := int(math.Round(float64(tpl.Width*h.Renderer.Scale) * compositor.QRFraction))
			qr, err := overlay.Render(cfg, h.baseURL(c), size)
			if err != nil {
				respondError(c, err)
				return
			}
			scene.Overlay = qr
		}
	}

	name := req.Name
	if name == "" {
		name = tpl.Name
	}
	key := req.Session
	if key == "" {
		key = feedback.ClientIP(c.Request.Header)
		if key == "unknown" {
			key = c.ClientIP()
		}
	}

	out, err := h.Exporter.Export(c.Request.Context(), key, name, func(ctx context.Context) (image.Image, error) {
		return h.Renderer.Render(ctx, scene)
	})
	if err != nil {
		h.observeExport(err)
		respondError(c, err)
		return
	}
	h.observeExport(nil)
	logger.Info("meme exported", "template", tpl.ID, "file", out.Filename, "bytes", len(out.PNG))

	c.Header("X-Meme-Filename", out.Filename)
	if c.Query("format") == "dataurl" {
		c.JSON(http.StatusOK, gin.H{
			"dataUrl":  compositor.DataURL(out.PNG),
			"filename": out.Filename,
			"message":  out.Message,
		})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, "image/png", out.PNG)
}

func (h *Handler) observeExport(err error) {
	if h.Metrics == nil {
		return
	}
	switch {
	case err == nil:
		h.Metrics.ObserveExport("ok")
	case apperr.Is(err, apperr.CodeBusy):
		h.Metrics.ObserveExport("busy")
	default:
		h.Metrics.ObserveExport("error")
	}
}
