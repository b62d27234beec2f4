package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/feedback"
	"github.com/cristianadrielbraun/memezzz/internal/logging"
)

type feedbackRequest struct {
	Email    string `json:"email" form:"email"`
	Feedback string `json:"feedback" form:"feedback"`
}

// SubmitFeedback forwards user feedback to the Telegram chat. Credentials
// are checked before the body is read.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	if !h.Telegram.Configured() {
		logging.FromContext(c.Request.Context()).Error("telegram configuration is missing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req feedbackRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "Feedback text is required"))
		return
	}
	if err := feedback.Validate(req.Feedback); err != nil {
		respondError(c, err)
		return
	}

	msg := feedback.Message(req.Feedback, req.Email, feedback.ClientIP(c.Request.Header))
	if err := h.Telegram.Send(c.Request.Context(), msg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
