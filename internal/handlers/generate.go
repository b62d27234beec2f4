package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/textgen"
)

type generateRequest struct {
	TemplateID    string          `json:"templateId"`
	TemplateName  string          `json:"templateName"`
	Phrases       catalog.Phrases `json:"phrases"`
	Examples      []string        `json:"examples"`
	MaxCharacters int             `json:"maxCharacters"`
	NewsText      string          `json:"newsText"`
	// SlotCount is used for templates outside the catalog (uploads).
	SlotCount int `json:"slotCount"`
}

// GenerateMemeText asks the text generator for captions and distributes
// them over the template's slots.
func (h *Handler) GenerateMemeText(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "Failed to generate meme text"))
		return
	}
	if h.Generator == nil {
		respondError(c, apperr.New(apperr.CodeConfig, "API configuration error"))
		return
	}

	var genReq textgen.Request
	slots := req.SlotCount
	if tpl, ok := h.Catalog.Get(req.TemplateID); ok {
		genReq = textgen.RequestFor(tpl, req.NewsText)
		slots = len(tpl.TextAreas)
	} else {
		if strings.TrimSpace(req.TemplateName) == "" {
			respondError(c, apperr.New(apperr.CodeInvalidInput, "Template is required"))
			return
		}
		t := &catalog.Template{Name: req.TemplateName, Phrases: req.Phrases, Examples: req.Examples, MaxCharacters: req.MaxCharacters}
		genReq = textgen.RequestFor(t, req.NewsText)
		if slots <= 0 {
			slots = 2
		}
	}

	captions, err := h.Generator.Generate(c.Request.Context(), genReq)
	if h.Metrics != nil {
		if err != nil {
			h.Metrics.ObserveGeneration("error")
		} else {
			h.Metrics.ObserveGeneration("ok")
		}
	}
	if err != nil {
		respondError(c, err)
		return
	}

	additional := captions.Additional
	if additional == nil {
		additional = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"topText":         captions.Top,
		"bottomText":      captions.Bottom,
		"additionalTexts": additional,
		"slots":           compositor.Assign(captions, slots),
	})
}
