package posts

import (
	"errors"
	"net/http"
	"strconv"

	"artfeed-backend/internal/domain/posts"
	"artfeed-backend/internal/domain/social"
	"artfeed-backend/internal/domain/users"
	"artfeed-backend/internal/enrich"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Posts    *posts.Store
	Graph    *social.Graph
	Users    *users.Store
	Enricher *enrich.Enricher
}

func NewHandler(store *posts.Store, graph *social.Graph, userStore *users.Store, enricher *enrich.Enricher) *Handler {
	return &Handler{Posts: store, Graph: graph, Users: userStore, Enricher: enricher}
}

// Create accepts a new post and queues narrative generation. The response
// returns immediately; the caller re-fetches to see the generated story.
func (h *Handler) Create(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please log in to create a post."})
		return
	}

	var input struct {
		Title    string   `json:"title"`
		IdeaText string   `json:"idea_text"`
		Images   []string `json:"images"`
		Price    string   `json:"price"`
		Contact  string   `json:"contact"`
		Category string   `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.IdeaText == "" && len(input.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide an image or an idea for the artwork"})
		return
	}

	post := posts.Post{
		Author:   user,
		Title:    input.Title,
		IdeaText: input.IdeaText,
		Images:   input.Images,
		Price:    input.Price,
		Contact:  input.Contact,
		Category: input.Category,
	}
	if err := h.Posts.Create(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	h.Enricher.Kick()

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "ok",
		"id":      post.ID,
		"message": "Post submitted. Story will be generated shortly.",
	})
}

// Feed lists posts, optionally restricted to followed authors and/or a
// category. The following view requires a logged-in caller.
func (h *Handler) Feed(c *gin.Context) {
	var filter posts.FeedFilter
	filter.Category = c.Query("category")

	if c.Query("following") == "1" {
		user := c.GetString("username")
		if user == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		filter.FollowedBy = users.Canonical(user)
	}

	out, err := h.Posts.Feed(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	detail, err := h.Posts.Detail(uint(id))
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		return
	}

	following := false
	if user := c.GetString("username"); user != "" {
		following, _ = h.Graph.IsFollowing(user, detail.Author)
	}
	c.JSON(http.StatusOK, gin.H{"post": detail, "following": following})
}

func (h *Handler) MyPosts(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	out, err := h.Posts.ByAuthor(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Artist is the public artist page: their posts, bio, and whether the
// caller follows them.
func (h *Handler) Artist(c *gin.Context) {
	name := c.Param("name")

	out, err := h.Posts.ByAuthor(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	bio := ""
	if artist, err := h.Users.ByUsername(name); err == nil {
		bio = artist.Bio
	}

	following := false
	if user := c.GetString("username"); user != "" {
		following, _ = h.Graph.IsFollowing(user, name)
	}

	c.JSON(http.StatusOK, gin.H{
		"artist":    users.Canonical(name),
		"bio":       bio,
		"posts":     out,
		"following": following,
	})
}

// Latest returns the newest post with its narrative fields, generated or
// not. Admin-guarded debug surface.
func (h *Handler) Latest(c *gin.Context) {
	post, err := h.Posts.Latest()
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no posts yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		return
	}
	c.JSON(http.StatusOK, post)
}
