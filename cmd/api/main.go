package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/forkful/forkful-backend/config"
	"github.com/forkful/forkful-backend/internal/api"
	"github.com/forkful/forkful-backend/internal/database"
	"github.com/forkful/forkful-backend/internal/router"
	"github.com/forkful/forkful-backend/internal/server"
	"github.com/forkful/forkful-backend/internal/service"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Staged batches live in process memory unless Redis is configured.
	var batches service.BatchStore = service.NewMemoryBatchStore()
	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		batches = service.NewRedisBatchStore(redisClient, 24*time.Hour)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	userService := service.NewUserService(db, log)
	recipeService := service.NewRecipeService(db, log)
	ratingService := service.NewRatingService(db, log)
	workflow := service.NewSaveWorkflow(batches, recipeService, log)

	var imageService *service.ImageService
	if cfg.AWSRegion != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Warn().Err(err).Msg("S3 unavailable, image upload disabled")
		} else {
			imageService = service.NewImageService(s3Cfg, log)
		}
	}

	var llmHandler *api.LLMHandler
	llmService, err := service.NewLLMService()
	if err != nil {
		log.Warn().Err(err).Msg("LLM unavailable, recipe generation disabled")
	} else {
		llmHandler = api.NewLLMHandler(llmService, batches)
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService, userService),
		api.NewRecipeHandler(recipeService, ratingService, userService, imageService),
		api.NewSearchHandler(recipeService, userService),
		api.NewUserHandler(userService),
		llmHandler,
		api.NewWSHandler(workflow, authService, log),
		authService,
	)

	srv := server.NewServer(engine, log)
	if err := srv.Start(cfg.ServerHost, cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
}
