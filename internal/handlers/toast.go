package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	toast "github.com/cristianadrielbraun/memezzz/web/components/ui/toast"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
// The editor posts here after a download with the "saved" message.
func (h *Handler) GenericToast(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	variant := c.PostForm("variant")
	dismissible := c.PostForm("dismissible") == "on"

	duration := int(compositor.NoticeDuration.Milliseconds())
	if d, err := strconv.Atoi(c.PostForm("duration")); err == nil && d >= 0 {
		duration = d
	}

	var v toast.Variant
	switch variant {
	case "error", "destructive":
		v = toast.VariantError
	case "warning":
		v = toast.VariantWarning
	case "info":
		v = toast.VariantInfo
	case "success":
		v = toast.VariantSuccess
	default:
		v = toast.VariantSuccess
	}

	render(c, http.StatusOK, toast.Toast(toast.Props{
		Title:         title,
		Description:   description,
		Variant:       v,
		Position:      toast.PositionBottomRight,
		Duration:      duration,
		Dismissible:   dismissible,
		ShowIndicator: false,
		Icon:          true,
	}))
}
