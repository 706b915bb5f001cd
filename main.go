package main

import (
	"context"
	"log"
	"time"

	"artfeed-backend/config"
	"artfeed-backend/database"
	"artfeed-backend/internal/ai"
	artapi "artfeed-backend/internal/api/art"
	authapi "artfeed-backend/internal/api/auth"
	chatapi "artfeed-backend/internal/api/chat"
	engagementapi "artfeed-backend/internal/api/engagement"
	postsapi "artfeed-backend/internal/api/posts"
	socialapi "artfeed-backend/internal/api/social"
	usersapi "artfeed-backend/internal/api/users"
	routes "artfeed-backend/internal/app/http"
	"artfeed-backend/internal/domain/chat"
	"artfeed-backend/internal/domain/engagement"
	"artfeed-backend/internal/domain/posts"
	"artfeed-backend/internal/domain/social"
	"artfeed-backend/internal/domain/users"
	"artfeed-backend/internal/enrich"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Init(config.DB_URL)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	userStore := users.NewStore(db)
	graph := social.NewGraph(db)
	postStore := posts.NewStore(db)
	ledger := engagement.NewLedger(db)
	channel := chat.NewChannel(db, graph)

	var generator ai.Generator
	var tagger ai.Tagger
	if config.AI_API_KEY != "" {
		llm := ai.NewLLMClient(config.AI_BASE_URL, config.AI_API_KEY, config.AI_MODEL)
		generator = llm
		tagger = llm
	} else {
		log.Println("AI_API_KEY not set, narrative generation uses the local fallback")
	}

	enricher := enrich.New(postStore, generator, tagger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go enricher.Run(ctx)

	images := ai.NewImageClient(config.IMAGE_API_URL)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Handlers{
		Auth:       authapi.NewHandler(userStore),
		Users:      usersapi.NewHandler(userStore),
		Social:     socialapi.NewHandler(graph, userStore),
		Posts:      postsapi.NewHandler(postStore, graph, userStore, enricher),
		Engagement: engagementapi.NewHandler(ledger),
		Chat:       chatapi.NewHandler(channel),
		Art:        artapi.NewHandler(images),
	})

	r.Run(":" + config.PORT)
}
