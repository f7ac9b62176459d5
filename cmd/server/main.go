// @title           UGC Ads Backend API
// @version         1.0.0
// @description     Backend API for generating AI media assets, browsing and rating them, and cross-posting them to social platforms via Late.dev. Generation runs through Gemini and KIE.ai; asset status settles via provider webhooks with a polling backstop.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ugc-ads-backend/docs"
	"ugc-ads-backend/internal/config"
	"ugc-ads-backend/internal/database"
	"ugc-ads-backend/internal/gemini"
	"ugc-ads-backend/internal/handlers"
	"ugc-ads-backend/internal/kie"
	"ugc-ads-backend/internal/late"
	"ugc-ads-backend/internal/logging"
	"ugc-ads-backend/internal/middleware"
	"ugc-ads-backend/internal/poller"
	"ugc-ads-backend/internal/services"
	"ugc-ads-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init("production")
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with the dynamic base URL.
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Provider clients.
	geminiClient := gemini.NewClient(cfg.GeminiAPIBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	kieClient := kie.NewClient(cfg.KieAPIBaseURL, cfg.KieAPIKey)
	lateClient := late.NewClient(cfg.LateAPIBaseURL, cfg.LateAPIKey)

	// Supabase clients.
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Supabase client")
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage client")
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	// Database client for direct queries.
	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL != "" {
		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize database client; database operations will be limited")
		} else {
			defer dbClient.Close()

			migrator, err := database.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				log.Warn().Err(err).Msg("failed to initialize migrator")
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					log.Warn().Err(err).Msg("migration failed")
				} else {
					log.Info().Msg("migrations completed")
				}
			}
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set; migrations and database operations will be skipped")
	}

	// Services.
	var generationService *services.GenerationService
	var socialService *services.SocialService
	if dbClient != nil {
		generationService = services.NewGenerationService(
			geminiClient, kieClient, dbClient, storageClient, realtimeClient, cfg.WebhookCallbackURL)
		socialService = services.NewSocialService(lateClient, dbClient)
	}

	// Handlers.
	mediaHandler := handlers.NewMediaHandler(dbClient, generationService)
	socialHandler := handlers.NewSocialHandler(dbClient, socialService)
	creditsHandler := handlers.NewCreditsHandler(kieClient)
	webhookHandler := handlers.NewWebhookHandler(cfg, generationService)

	// Status poller: backstop for lost provider webhooks.
	if dbClient != nil && generationService != nil {
		statusPoller := poller.New(kieClient, dbClient, generationService)
		if err := statusPoller.Start(cfg.PollInterval); err != nil {
			log.Warn().Err(err).Msg("failed to start status poller")
		} else {
			defer statusPoller.Stop()
		}
	}

	// Router.
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth).
	router.GET("/health", handlers.HealthHandler)

	// API routes.
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))

	// Media assets.
	api.GET("/ai/media", mediaHandler.ListMedia)
	api.POST("/ai/media/generate", mediaHandler.Generate)
	api.DELETE("/ai/media/:id", mediaHandler.DeleteMedia)
	api.POST("/ai/media/:id/rating", mediaHandler.RateMedia)
	api.POST("/ai/media/:id/retry", mediaHandler.RetryMedia)
	api.POST("/ai/media/use-for-video", mediaHandler.UseForVideo)

	// Social posting.
	api.POST("/social/post", socialHandler.CreatePost)
	api.GET("/social/posts/:project_id", socialHandler.ListPosts)

	// Credits.
	api.GET("/credits", creditsHandler.GetCredits)

	// Webhook (no auth, shared token).
	router.POST("/api/webhooks/kie", webhookHandler.HandleKieWebhook)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
