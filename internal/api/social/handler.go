package social

import (
	"net/http"

	"artfeed-backend/internal/domain/social"
	"artfeed-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Graph *social.Graph
	Users *users.Store
}

func NewHandler(graph *social.Graph, store *users.Store) *Handler {
	return &Handler{Graph: graph, Users: store}
}

type followRequest struct {
	Artist string `json:"artist" binding:"required"`
}

func (h *Handler) Follow(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	var input followRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.Graph.Follow(user, input.Artist)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "following": ok})
}

func (h *Handler) Unfollow(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}
	var input followRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Graph.Unfollow(user, input.Artist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "following": false})
}

// Following lists the artists the user follows, enriched with their bios.
func (h *Handler) Following(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	artists, err := h.Graph.FollowedArtists(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load follows"})
		return
	}
	bios, err := h.Users.BiosFor(artists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load follows"})
		return
	}

	enriched := make([]gin.H, 0, len(artists))
	for _, a := range artists {
		enriched = append(enriched, gin.H{"name": a, "bio": bios[a]})
	}
	c.JSON(http.StatusOK, gin.H{"artists": enriched})
}
