package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"photo-studio-backend/internal/config"
	"photo-studio-backend/internal/database"
	"photo-studio-backend/internal/gemini"
	"photo-studio-backend/internal/handlers"
	"photo-studio-backend/internal/logging"
	"photo-studio-backend/internal/middleware"
	"photo-studio-backend/internal/prompt"
	"photo-studio-backend/internal/realtime"
	"photo-studio-backend/internal/services"
	"photo-studio-backend/internal/supabase"
	"photo-studio-backend/internal/workspace"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 15 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(cfg.Environment, cfg.LogLevel)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set: every transformation will fail until it is configured")
	}

	invoker := gemini.NewInvoker(gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Builder: prompt.NewBuilder(cfg.GeminiFastModel, cfg.GeminiProModel),
		Logger:  &logger,
	})

	hub := realtime.NewHub(logger)
	manager := workspace.NewManager(hub, logger)
	go manager.Run(ctx, sweepInterval, cfg.WorkspaceIdleTTL, func(id uuid.UUID) {
		hub.Close(id)
	})

	// Optional result archive (Supabase Storage) and history (Postgres)
	var resultStore services.ResultStore
	if cfg.ArchiveEnabled() {
		supabaseClient, err := supabase.NewClient(cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize Supabase client, results will not be archived")
		} else {
			resultStore = supabaseClient.Storage()
			logger.Info().Str("bucket", cfg.SupabaseStorageBucket).Msg("result archive enabled")
		}
	}

	var historyStore services.HistoryStore
	if cfg.DatabaseURL != "" {
		dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize database client, history is disabled")
		} else {
			defer dbClient.Close()

			if err := database.NewMigrator(dbClient.DB(), logger).Run(); err != nil {
				logger.Warn().Err(err).Msg("migration failed, history is disabled")
			} else {
				historyStore = dbClient
				logger.Info().Msg("migrations completed successfully")
			}
		}
	} else {
		logger.Info().Msg("DATABASE_URL not set, history is disabled")
	}

	archive := services.NewArchiveService(resultStore, historyStore, logger)

	workspacesHandler := handlers.NewWorkspacesHandler(manager, hub, archive, cfg.MaxUploadBytes, cfg.FilenamePrefix, logger)
	transformHandler := handlers.NewTransformHandler(manager, invoker, archive, cfg.FilenamePrefix, logger)
	historyHandler := handlers.NewHistoryHandler(archive)

	// Setup router
	router := gin.New()
	router.Use(logging.Middleware(logger))
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.GET("/health", handlers.HealthHandler)
	if cfg.AuthEnabled() {
		api.Use(middleware.AuthMiddleware(cfg))
	} else {
		logger.Warn().Msg("JWT_SECRET not set, API is unauthenticated")
	}

	api.GET("/options", handlers.OptionsHandler)
	api.GET("/history", historyHandler.ListHistory)

	// Workspace routes
	api.POST("/workspaces", workspacesHandler.CreateWorkspace)
	api.GET("/workspaces/:workspace_id", workspacesHandler.GetWorkspace)
	api.DELETE("/workspaces/:workspace_id", workspacesHandler.DeleteWorkspace)
	api.POST("/workspaces/:workspace_id/clear", workspacesHandler.ClearWorkspace)
	api.POST("/workspaces/:workspace_id/image", workspacesHandler.UploadImage)
	api.GET("/workspaces/:workspace_id/result", workspacesHandler.DownloadResult)
	api.DELETE("/workspaces/:workspace_id/result", workspacesHandler.DiscardResult)
	api.GET("/workspaces/:workspace_id/events", workspacesHandler.Events)

	// Transformations
	api.POST("/workspaces/:workspace_id/enhance", transformHandler.Enhance)
	api.POST("/workspaces/:workspace_id/id-photo", transformHandler.IDPhoto)
	api.POST("/workspaces/:workspace_id/restore", transformHandler.Restore)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
