package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/domain/fiber/handler"
	"github.com/fadilmartias/resume-analyzer/internal/extractor"
	applogger "github.com/fadilmartias/resume-analyzer/internal/logger"
	"github.com/fadilmartias/resume-analyzer/internal/middleware"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	envErr := godotenv.Load()

	appConfig := config.LoadAppConfig()
	log := applogger.New(applogger.Config{
		Level:       appConfig.LogLevel,
		Format:      appConfig.LogFormat,
		ServiceName: appConfig.Name,
	})
	if envErr != nil {
		log.Warn().Msg("Could not load .env file")
	}

	if err := os.MkdirAll(appConfig.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", appConfig.UploadDir).Msg("cannot create upload directory")
	}

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    int(appConfig.MaxUploadSize) + 1024*1024,
		ErrorHandler: util.FiberErrorHandler,
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: appConfig.FrontendURL,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	modelConfig := config.LoadModelConfig()
	caller, gemini, err := newModelCaller(ctx, modelConfig, log)
	if err != nil {
		log.Fatal().Err(err).Str("provider", modelConfig.Provider).Msg("cannot create model client")
	}

	var (
		store      repository.CandidateStore
		embeddings repository.EmbeddingStore
	)
	dbConfig := config.LoadDBConfig()
	if dbConfig.Driver == config.DBDriverMemory {
		log.Warn().Msg("Using in-memory candidate store, data is lost on restart")
		store = repository.NewMemoryCandidateStore()
	} else {
		db := ConnectDB(log, modelConfig.EmbeddingsEnabled)
		store = repository.NewCandidateRepository(db)
		embeddings = repository.NewCandidateEmbeddingRepository(db)
	}

	var embedder service.Embedder
	if modelConfig.EmbeddingsEnabled {
		switch {
		case embeddings == nil:
			log.Warn().Msg("Embeddings need the postgres driver, disabling them")
		case gemini == nil:
			log.Warn().Msg("Embeddings need GEMINI_API_KEY, disabling them")
		default:
			embedder = gemini
		}
	}
	if embedder == nil {
		embeddings = nil
	}

	ext := extractor.New(config.LoadExtractConfig(), extractor.WithLogger(log))
	resumeUC := usecase.NewResumeUsecase(store, caller, ext, modelConfig.MergePolicy, log)
	if embedder != nil {
		resumeUC.WithEmbeddings(embedder, embeddings, config.LoadGeminiConfig().EmbeddingModel)
	}
	candidateUC := usecase.NewCandidateUsecase(store, embedder, embeddings)

	handler.NewResumeHandler(resumeUC, candidateUC, appConfig, log).RegisterRoutes(app)

	log.Info().Str("port", appConfig.Port).Str("provider", modelConfig.Provider).Msg("Server running")
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// newModelCaller returns the configured model client. The Gemini client is
// also returned when a key is available so it can serve embeddings.
func newModelCaller(ctx context.Context, cfg *config.ModelConfig, log zerolog.Logger) (service.ModelCaller, *service.GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()

	switch cfg.Provider {
	case config.ProviderGemini:
		gemini, err := service.NewGeminiService(ctx, geminiConfig, log)
		if err != nil {
			return nil, nil, err
		}
		return gemini, gemini, nil
	case config.ProviderOpenRouter:
		openRouter, err := service.NewOpenRouterService(config.LoadOpenRouterConfig(), log)
		if err != nil {
			return nil, nil, err
		}
		var gemini *service.GeminiService
		if geminiConfig.APIKey != "" {
			gemini, err = service.NewGeminiService(ctx, geminiConfig, log)
			if err != nil {
				log.Warn().Err(err).Msg("Gemini client unavailable")
			}
		}
		return openRouter, gemini, nil
	}
	return nil, nil, fmt.Errorf("unknown MODEL_PROVIDER %q", cfg.Provider)
}

func ConnectDB(log zerolog.Logger, withVector bool) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to database")
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not get database instance")
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	models := []any{&model.CandidateRecord{}}
	if withVector {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			log.Fatal().Err(err).Msg("cannot enable pgvector extension")
		}
		models = append(models, &model.CandidateEmbedding{})
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	return db
}
