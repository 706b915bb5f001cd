package art

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"artfeed-backend/internal/ai"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Images *ai.ImageClient
}

func NewHandler(images *ai.ImageClient) *Handler {
	return &Handler{Images: images}
}

// Generate synthesizes artwork from a text prompt via the image provider.
// Unlike narrative generation there is no local fallback: upstream failures
// surface as 502.
func (h *Handler) Generate(c *gin.Context) {
	var input struct {
		Prompt string `json:"prompt"`
		Model  string `json:"model"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Prompt required."})
		return
	}

	model := ai.NormalizeModel(input.Model)
	imageURL, err := h.Images.Synthesize(c.Request.Context(), prompt, model)
	if err != nil {
		var upstream *ai.UpstreamError
		switch {
		case errors.As(err, &upstream):
			c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": upstream.Message})
		case errors.Is(err, ai.ErrNoImage):
			c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": "No image returned by provider."})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": err.Error()})
		}
		return
	}

	summary := fmt.Sprintf("Artistic (non-realistic) render with %s: %s", model, truncate(prompt, 120))
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"image":   imageURL,
		"summary": summary,
	})
}

// Models proxies the provider's model list so the browser avoids CORS.
func (h *Handler) Models(c *gin.Context) {
	models, err := h.Images.Models(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "models": models})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
