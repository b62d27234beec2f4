package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/extract"
)

type newsRequest struct {
	URL string `json:"url" form:"url"`
}

// FetchNewsText downloads a page and returns its plain text.
func (h *Handler) FetchNewsText(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "Failed to fetch news text"))
		return
	}
	if req.URL == "" {
		respondError(c, extract.ErrURLRequired)
		return
	}
	text, err := h.Fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newsText": text})
}
