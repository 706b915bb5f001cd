package engagement

import (
	"net/http"

	"artfeed-backend/internal/domain/engagement"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Ledger *engagement.Ledger
}

func NewHandler(ledger *engagement.Ledger) *Handler {
	return &Handler{Ledger: ledger}
}

type likeRequest struct {
	PostID uint `json:"post_id" binding:"required"`
}

func (h *Handler) Like(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	var input likeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ledger.Like(user, input.PostID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "liked": true})
}

func (h *Handler) Unlike(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	var input likeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ledger.Unlike(user, input.PostID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "liked": false})
}

func (h *Handler) MyLikedIDs(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	ids, err := h.Ledger.LikedPostIDs(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load likes"})
		return
	}
	c.JSON(http.StatusOK, ids)
}

func (h *Handler) MyLikes(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	out, err := h.Ledger.LikedPosts(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load likes"})
		return
	}
	c.JSON(http.StatusOK, out)
}
