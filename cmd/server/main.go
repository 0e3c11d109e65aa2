package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/Aaryan1901/Agentic-AI-Software-Architecture/docs" // Swagger docs
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/aiagent"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/bundle"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/config"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/database"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/diagram"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/eventbus"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/fallback"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/handlers"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/llm"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/middleware"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/pipeline"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/runlog"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/search"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/session"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/suggest"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/telemetry"
)

const version = "0.1.0"

// @title DesignPanda API
// @version 0.1.0
// @description Architecture recommendation service with a local fallback when the AI backend is unavailable.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize logger with stdout sync
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("DesignPanda API starting...",
		zap.String("version", version),
		zap.String("environment", cfg.Environment),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Tracing is optional
	shutdownTelemetry, err := telemetry.Init(ctx, cfg.OTLPEndpoint, "designpanda-api", cfg.Environment, logger)
	if err != nil {
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	// Session and settings stores use Redis when configured, memory otherwise
	var (
		sessions    session.Store = session.NewMemoryStore(cfg.SessionTTL)
		store       settings.Store
		redisPinger handlers.Pinger
	)
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		redisPinger = rdb

		sessions = session.NewRedisStore(rdb.Client(), cfg.SessionTTL)
		redisSettings := settings.NewRedisStore(rdb.Client())
		if err := redisSettings.Seed(ctx, cfg.BackendURL, cfg.APIKeys); err != nil {
			logger.Warn("failed to seed settings", zap.Error(err))
		}
		store = redisSettings
		logger.Info("connected to redis")
	} else {
		store = settings.NewMemoryStore(cfg.BackendURL, cfg.APIKeys)
		logger.Info("redis not configured, using in-memory stores")
	}

	// Run log is optional
	var (
		runs     pipeline.RunRecorder
		runStats handlers.RunStats
		dbPinger handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		dbPinger = db

		repo := runlog.NewRepository(db.Pool(), logger)
		runs = repo
		runStats = repo
		logger.Info("connected to postgres")
	}

	// Events are optional
	var (
		events      pipeline.EventPublisher
		eventReader handlers.EventReader
	)
	if cfg.NATSURL != "" {
		nc, err := eventbus.Connect(cfg.NATSURL, logger)
		if err != nil {
			logger.Error("failed to connect to NATS", zap.Error(err))
		} else {
			defer nc.Close()
			publisher := eventbus.NewPublisher(nc, logger)
			events = publisher
			eventReader = publisher
		}
	}

	if cfg.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET not set, settings API disabled")
	}

	// Recommendation pipeline
	agent := aiagent.NewClient(cfg.BackendTimeout, aiagent.NewCircuitBreaker(), logger)

	var renderer fallback.Renderer
	if r := diagram.NewRenderer(cfg.PlantUMLServerURL, 10*time.Second); r != nil {
		renderer = r
	}
	generator := fallback.NewGenerator(diagram.NewSynthesizer(), renderer, logger)

	groq := llm.NewGroqClient("", 30*time.Second)
	searchService := search.NewService(search.Providers{
		Groq:   search.NewGroqSearcher(groq),
		Gemini: search.NewGeminiSearcher(llm.NewGeminiClient(cfg.GeminiModel, 1, 2)),
		Serper: search.NewSerperSearcher("", 15*time.Second),
		Tavily: search.NewTavilySearcher("", 15*time.Second),
	}, cfg.SearchCacheSize, logger)

	recommender := pipeline.NewService(pipeline.Deps{
		Settings: store,
		Fetcher:  agent,
		Fallback: generator,
		Search:   searchService,
		Runs:     runs,
		Events:   events,
	}, logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.RegisterRoutes(router, handlers.Handlers{
		Health:          handlers.NewHealthHandler(dbPinger, redisPinger, store),
		Requirements:    handlers.NewRequirementsHandler(sessions, logger),
		Recommendations: handlers.NewRecommendationHandler(recommender, sessions, bundle.NewService(cfg.BundleSigningKey), logger),
		Search:          handlers.NewSearchHandler(searchService, store, logger),
		Suggestions:     handlers.NewSuggestionHandler(suggest.NewAssistant(groq, logger), store, logger),
		Settings:        handlers.NewSettingsHandler(store, agent, logger),
		Runs:            handlers.NewRunsHandler(runStats, eventReader, logger),
	},
		middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		middleware.NewRateLimiter(cfg.RateLimitRPS/4, max(cfg.RateLimitBurst/4, 1)),
		middleware.AdminAuth(cfg.AdminJWTSecret, logger),
	)

	logger.Info("router initialized")

	// Create HTTP server. WriteTimeout covers a full backend call plus fallback.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
