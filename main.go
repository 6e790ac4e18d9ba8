package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexmarket/config"
	"lexmarket/database"
	accountRepo "lexmarket/database/repository/account"
	auditRepo "lexmarket/database/repository/audit"
	profileRepo "lexmarket/database/repository/profile"
	stepsRepo "lexmarket/database/repository/steps"
	taxonomyRepo "lexmarket/database/repository/taxonomy"
	"lexmarket/handlers"
	"lexmarket/routes"
	"lexmarket/services/account"
	"lexmarket/services/events"
	"lexmarket/services/notification"
	"lexmarket/services/onboarding"
	"lexmarket/services/storage"
	"lexmarket/utils"
	"lexmarket/worker"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	db := database.DB()
	authCache := utils.GetAuthCacheClient()

	// repositories.
	accounts := accountRepo.NewMongoAccountRepo(db)
	profiles := profileRepo.NewMongoProfileRepo(db)
	steps := stepsRepo.NewMongoStepRepo(db)
	taxonomy := taxonomyRepo.NewMongoTaxonomyRepo(db)
	audits := auditRepo.NewMongoAuditRepo(db)
	tx := database.NewMongoTransactor(database.MongoClient)

	documents, err := storage.NewCloudinaryStore(&config.AppConfig)
	if err != nil {
		logger.Fatal("main: failed to initialize document storage", zap.Error(err))
	}

	queue := asynq.NewClient(events.RedisOpt(&config.AppConfig))
	defer queue.Close()

	// services.
	accountService, err := account.NewDefaultAccountService(accounts, profiles, tx, authCache)
	if err != nil {
		logger.Fatal("main: failed to initialize account service", zap.Error(err))
	}

	onboardingService, err := onboarding.NewDefaultOnboardingService(onboarding.Deps{
		Registry:       onboarding.DefaultRegistry(),
		Accounts:       accounts,
		Profiles:       profiles,
		Steps:          steps,
		Taxonomy:       taxonomy,
		Audit:          audits,
		Tx:             tx,
		Documents:      documents,
		Events:         events.NewAsynqPublisher(queue),
		DocumentFolder: config.AppConfig.DocumentFolder,
	})
	if err != nil {
		logger.Fatal("main: failed to initialize onboarding service", zap.Error(err))
	}

	// The worker still logs events when push notifications are not configured.
	var notifier worker.Notifier
	if fcm, err := utils.FirebaseMessaging(context.Background()); err != nil {
		logger.Warn("main: push notifications disabled", zap.Error(err))
	} else if svc, err := notification.NewDefaultNotificationService(accounts, fcm); err != nil {
		logger.Warn("main: push notifications disabled", zap.Error(err))
	} else {
		notifier = svc
	}
	eventWorker := worker.Start(&config.AppConfig, notifier)

	utils.StartHealthMonitor([]*redis.Client{authCache}, database.MongoClient)

	handlerBundle := &handlers.HandlerBundle{
		AccountRepo:       accounts,
		AuthCache:         authCache,
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		Auth:              handlers.NewAuthHandler(accountService),
		Onboarding:        handlers.NewOnboardingHandler(onboardingService),
		Admin:             handlers.NewAdminHandler(onboardingService),
	}

	router := gin.New()
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	eventWorker.Shutdown()
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
