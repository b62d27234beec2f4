package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/uploads"
)

// Upload stores a user image and returns a template sized to it. A
// "replace" form field releases the upload it supersedes.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "No file uploaded"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "No file uploaded"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, uploads.DefaultMaxBytes+1))
	if err != nil {
		respondError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "Failed to read upload"))
		return
	}

	u, err := h.Uploads.Replace(c.PostForm("replace"), fh.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}
	tpl := u.Template()
	e := compositor.NewEditor(tpl)
	c.JSON(http.StatusCreated, gin.H{
		"id":       u.ID,
		"url":      tpl.Path,
		"template": tpl,
		"state":    e.State(),
		"layout":   compositor.Preview(e),
	})
}

// GetUpload serves the original bytes of an upload.
func (h *Handler) GetUpload(c *gin.Context) {
	u, ok := h.Uploads.Get(c.Param("id"))
	if !ok {
		respondError(c, uploads.ErrNotFound)
		return
	}
	c.Header("Cache-Control", "private, max-age=600")
	c.Data(http.StatusOK, u.Mime, u.Data)
}

// DeleteUpload releases an upload.
func (h *Handler) DeleteUpload(c *gin.Context) {
	id := c.Param("id")
	if !h.Uploads.Release(id) {
		respondError(c, uploads.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}
