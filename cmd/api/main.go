package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"hirepulse/internal/ai"
	"hirepulse/internal/app"
	"hirepulse/internal/config"
	"hirepulse/internal/database"
	apphttp "hirepulse/internal/http"
	"hirepulse/internal/http/handlers"
	"hirepulse/internal/http/metrics"
	httpmw "hirepulse/internal/http/middleware"
	"hirepulse/internal/matching"
	"hirepulse/internal/notify"
	"hirepulse/internal/observability"
	mongorepo "hirepulse/internal/repository/mongo"
	"hirepulse/internal/security"
	"hirepulse/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	client, db := database.NewMongo(database.MongoConfig{URL: cfg.MongoURL, DBName: cfg.MongoDBName})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	userRepo := mongorepo.NewUserRepository(db)
	jobRepo := mongorepo.NewJobRepository(db)
	applicationRepo := mongorepo.NewApplicationRepository(db)
	interviewRepo := mongorepo.NewInterviewRepository(db)
	resumeRepo := mongorepo.NewResumeRepository(db)
	statsRepo := mongorepo.NewStatsRepository(db)

	tokenProvider := security.NewTokenProvider(cfg.JWTSecret, cfg.AccessTokenTTL)

	var backends []ai.Backend
	if !cfg.GenerateDisabled {
		httpClient := &http.Client{Timeout: cfg.GenerateTimeout}
		if cfg.OllamaURL != "" {
			backends = append(backends, ai.NewOllamaBackend(cfg.OllamaURL, cfg.OllamaModel, httpClient))
		}
		if cfg.HFAPIKey != "" {
			backends = append(backends, ai.NewHuggingFaceBackend(cfg.HFAPIKey, cfg.HFModel, httpClient))
		}
	}
	gateway := ai.NewGateway(cfg.GenerateTimeout, backends...)
	matcher := matching.NewEngine(gateway)

	fileStore, err := storage.NewFileStore(context.Background(), storage.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Fatalf("failed to init file store: %v", err)
	}
	notifier := notify.NewNotifier(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)

	authService := app.NewAuthService(userRepo, tokenProvider, notifier, logger, cfg.ResetTokenTTL)
	jobService := app.NewJobService(jobRepo, gateway, logger)
	resumeService := app.NewResumeService(resumeRepo, fileStore, logger)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, resumeRepo, userRepo, matcher, notifier, logger)
	interviewService := app.NewInterviewService(interviewRepo, applicationRepo, jobRepo, resumeRepo, userRepo, gateway, notifier, logger)
	adminService := app.NewAdminService(userRepo, statsRepo, logger)
	aiService := app.NewAIService(gateway, matcher, logger)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		limiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
	}

	collector := metrics.NewCollector()

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:      handlers.NewAuthHandler(authService, tokenProvider),
		JobHandler:       handlers.NewJobHandler(jobService),
		CandidateHandler: handlers.NewCandidateHandler(resumeService, applicationService, interviewService),
		RecruiterHandler: handlers.NewRecruiterHandler(applicationService, interviewService),
		AdminHandler:     handlers.NewAdminHandler(adminService),
		AIHandler:        handlers.NewAIHandler(aiService),
		AuthMiddleware:   httpmw.NewAuthMiddleware(tokenProvider, authService),
		Limiter:          limiter,
		Metrics:          collector,
		MetricsHandler:   metrics.NewHandler(collector),
		Logger:           logger,
		RequestTimeout:   cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
