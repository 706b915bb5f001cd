package routes

import (
	artapi "artfeed-backend/internal/api/art"
	authapi "artfeed-backend/internal/api/auth"
	chatapi "artfeed-backend/internal/api/chat"
	engagementapi "artfeed-backend/internal/api/engagement"
	postsapi "artfeed-backend/internal/api/posts"
	socialapi "artfeed-backend/internal/api/social"
	usersapi "artfeed-backend/internal/api/users"
	"artfeed-backend/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the per-domain handlers wired up in main.
type Handlers struct {
	Auth       *authapi.Handler
	Users      *usersapi.Handler
	Social     *socialapi.Handler
	Posts      *postsapi.Handler
	Engagement *engagementapi.Handler
	Chat       *chatapi.Handler
	Art        *artapi.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/signup", h.Auth.Signup)
	public.POST("/login", h.Auth.Login)

	// Public reads. OptionalAuth so a logged-in caller gets the
	// follow-aware view (following feed filter, following flags).
	read := r.Group("/")
	read.Use(middleware.OptionalAuth())
	read.GET("/feed", h.Posts.Feed)
	read.GET("/posts/:id", h.Posts.Detail)
	read.GET("/artists/:name", h.Posts.Artist)
	read.GET("/api/art-models", h.Art.Models)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/profile", h.Users.GetProfile)
	auth.PUT("/profile", h.Users.UpdateProfile)

	auth.POST("/posts", h.Posts.Create)
	auth.GET("/api/my_posts", h.Posts.MyPosts)

	auth.GET("/following", h.Social.Following)
	auth.POST("/api/follow", h.Social.Follow)
	auth.POST("/api/unfollow", h.Social.Unfollow)

	auth.POST("/api/like", h.Engagement.Like)
	auth.POST("/api/unlike", h.Engagement.Unlike)
	auth.GET("/api/my_liked_ids", h.Engagement.MyLikedIDs)
	auth.GET("/api/my_likes", h.Engagement.MyLikes)

	auth.GET("/api/chat/contacts", h.Chat.Contacts)
	auth.GET("/api/chat/messages", h.Chat.Messages)
	auth.POST("/api/chat/send", h.Chat.Send)

	auth.POST("/api/generate-art", h.Art.Generate)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/latest-post", h.Posts.Latest)
}
