package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/pennyhq/penny/penny-backend/docs"
	"github.com/pennyhq/penny/penny-backend/internal/advisor"
	"github.com/pennyhq/penny/penny-backend/internal/auth"
	"github.com/pennyhq/penny/penny-backend/internal/config"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/handler"
	"github.com/pennyhq/penny/penny-backend/internal/middleware"
	"github.com/pennyhq/penny/penny-backend/internal/repository/cache"
	"github.com/pennyhq/penny/penny-backend/internal/repository/postgres"
	"github.com/pennyhq/penny/penny-backend/internal/repository/storage"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/pennyhq/penny/penny-backend/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Penny API
// @version 1.0
// @description Personal finance API: debts with amortization schedules, bills, investments, messaging and a financial advisor.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	if err := postgres.Migrate(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Object storage is optional; file features answer 503 without it
	var files storage.FileRepository
	if cfg.S3.Bucket != "" {
		s3Repo, err := storage.NewS3FileRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
		}
		files = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("S3 storage enabled")
	} else {
		log.Warn().Msg("S3_BUCKET not set, file uploads disabled")
	}

	// Presence falls back to profiles.last_active without Redis
	var presence domain.PresenceRepository
	if cfg.Redis.Addr != "" {
		presenceRepo, err := cache.NewPresenceRepository(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer presenceRepo.Close()
		presence = presenceRepo
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis presence enabled")
	}

	completion := newCompletionClient(cfg.Advisor)

	tokenManager, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token manager")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	debtRepo := postgres.NewDebtRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	reminderRepo := postgres.NewReminderRepository(pool)
	investmentRepo := postgres.NewInvestmentRepository(pool)
	profitLossRepo := postgres.NewProfitLossRepository(pool)
	conversationRepo := postgres.NewConversationRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	// WebSocket hub for live entity events
	hub := websocket.NewHub()

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo)
	userService := service.NewUserService(userRepo, userRepo, presence, files)
	authService := service.NewAuthService(userRepo, tokenManager, userService)
	avatarService := service.NewAvatarService(userRepo, files)
	debtService := service.NewDebtService(debtRepo, notificationService)
	billService := service.NewBillService(billRepo)
	reminderService := service.NewReminderService(reminderRepo, billRepo, notificationService)
	investmentService := service.NewInvestmentService(investmentRepo, profitLossRepo)
	messagingService := service.NewMessagingService(conversationRepo, messageRepo, userRepo, files)
	advisorService := service.NewAdvisorService(completion, advisorModel(cfg.Advisor), cfg.Advisor.MaxTokens)
	reportService := service.NewReportService(reportRepo, debtRepo, files, notificationService)

	notificationService.SetEventPublisher(hub)
	debtService.SetEventPublisher(hub)
	billService.SetEventPublisher(hub)
	reminderService.SetEventPublisher(hub)
	investmentService.SetEventPublisher(hub)
	hub.SetActivityRecorder(userService)
	userService.SetConnectionTracker(hub)

	authMiddleware := middleware.NewAuthMiddleware(tokenManager, userService)

	loginLimiter := middleware.NewRateLimiterWithConfig(10, 5)
	defer loginLimiter.Stop()
	advisorLimiter := middleware.NewRateLimiterWithConfig(cfg.Advisor.RatePerMinute, 5)
	defer advisorLimiter.Stop()

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Profile:      handler.NewProfileHandler(userService, avatarService),
		Debt:         handler.NewDebtHandler(debtService),
		Bill:         handler.NewBillHandler(billService),
		Reminder:     handler.NewReminderHandler(reminderService),
		Investment:   handler.NewInvestmentHandler(investmentService),
		Messaging:    handler.NewMessagingHandler(messagingService),
		Advisor:      handler.NewAdvisorHandler(advisorService),
		Notification: handler.NewNotificationHandler(notificationService),
		Report:       handler.NewReportHandler(reportService),
	}
	wsHandler := handler.NewWebSocketHandler(hub, websocket.NewJWTValidator(tokenManager), cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.Recover())

	// Uploads are capped per route; this bounds the whole multipart body
	e.Use(echomiddleware.BodyLimit("30M"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec)
	e.GET("/ws", wsHandler.HandleWS)

	handler.RegisterRoutes(e, authMiddleware, handlers, handler.RouteLimiters{
		Login:   loginLimiter,
		Advisor: advisorLimiter,
	})

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	stats := hub.Stats()
	log.Info().Int("users", stats.Users).Int("connections", stats.Connections).Msg("Closing live streams")
	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newCompletionClient builds the configured advisor provider. It returns an
// untyped nil when no key is set so the advisor reports itself unavailable.
func newCompletionClient(cfg config.AdvisorConfig) advisor.CompletionClient {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiKey == "" {
			log.Warn().Msg("GEMINI_API_KEY not set, advisor disabled")
			return nil
		}
		client, err := advisor.NewGeminiClient(context.Background(), cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		return client
	default:
		if cfg.OpenAIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY not set, advisor disabled")
			return nil
		}
		return advisor.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIURL, cfg.OpenAIModel, cfg.RequestTimeout)
	}
}

func advisorModel(cfg config.AdvisorConfig) string {
	if cfg.Provider == "gemini" {
		return cfg.GeminiModel
	}
	return cfg.OpenAIModel
}
