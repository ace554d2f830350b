package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advisorly/config"
	"advisorly/cron"
	"advisorly/database"
	ledgerRepo "advisorly/database/repository/ledger"
	sessionRepo "advisorly/database/repository/session"
	"advisorly/handlers"
	"advisorly/middleware"
	"advisorly/routes"
	bookingSvc "advisorly/services/booking"
	"advisorly/services/dialog"
	ai "advisorly/services/intelligence"
	"advisorly/services/notification"
	"advisorly/services/scheduling"
	"advisorly/services/tools"
	"advisorly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	var repo ledgerRepo.Repository
	if config.AppConfig.LedgerStore == "mongo" {
		database.InitDB()
		repo = ledgerRepo.NewMongoRepository()
	} else {
		repo = ledgerRepo.NewMemoryRepository()
	}
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	sessions := sessionRepo.NewFromConfig()
	ledgerService := bookingSvc.NewDefaultLedgerService(repo)
	engine := scheduling.NewEngine(scheduling.ParamsFromConfig())
	aiSvc := ai.NewDefaultAIService(config.AppConfig.GeminiAPIKey)

	assistant := dialog.NewDefaultAssistantService(
		sessions,
		ledgerService,
		engine,
		aiSvc,
		config.AppConfig.ConfidenceThreshold,
	)

	dispatcher := tools.NewDispatcherFromConfig(tools.NewMockExecutor())

	notificationService := notification.NewDefaultNotificationService()
	cron.InitReminderWorker(notificationService, ledgerService)
	reminderClient := cron.NewReminderClient()
	defer reminderClient.Close()

	handlers.InitHandlers(assistant, ledgerService, engine, dispatcher, reminderClient)
	routes.RegisterRoutes(router)

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

	logger.Sugar().Info("main: server stopped gracefully")
}
