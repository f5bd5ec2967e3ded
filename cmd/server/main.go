package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codejarvis/internal/api"
	"codejarvis/internal/api/handler"
	"codejarvis/internal/app/executor"
	"codejarvis/internal/app/service"
	"codejarvis/internal/app/worker"
	"codejarvis/internal/common/security"
	"codejarvis/internal/domain/repository"
	"codejarvis/internal/platform/config"
	"codejarvis/internal/platform/jarvis"
	"codejarvis/internal/platform/storage"
	"codejarvis/internal/web"

	"github.com/mdp/qrterminal"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize storage and the execution queue
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, jobQueue, err := storage.Open(startupCtx)
	startupCancel()
	if err != nil {
		log.Fatalf("Failed to initialise %s storage: %v", config.AppConfig.StorageDriver, err)
	}
	defer store.Close()
	fmt.Printf("Storage ready (%s).\n", config.AppConfig.StorageDriver)

	// 4. Initialize Repositories
	sessionRepo := repository.NewKVSessionRepository(store)
	reminderRepo := repository.NewKVReminderRepository(store)
	filterRepo := repository.NewKVFilterRepository(store)
	flashRepo := repository.NewKVFlashRepository(store)
	prefsRepo := repository.NewKVPreferencesRepository(store)
	execJobRepo := repository.NewKVExecutionJobRepository(store, config.AppConfig.ExecutionJobTTL)

	// 5. Initialize Services
	remote := jarvis.NewClient(config.AppConfig.JarvisAPIURL, nil)
	inflight := service.NewCanceler()
	statsService := service.NewStatsService(remote, inflight)
	contestService := service.NewContestService(remote)
	settingsService := service.NewSettingsService(remote, prefsRepo, flashRepo)
	reminderService := service.NewReminderService(remote, reminderRepo, flashRepo)
	services := handler.Services{
		Sessions:  service.NewSessionService(sessionRepo, reminderRepo, filterRepo, flashRepo, remote, inflight),
		Dashboard: service.NewDashboardService(remote, statsService, contestService, settingsService, reminderService),
		Contests:  contestService,
		Reminders: reminderService,
		Stats:     statsService,
		Problems:  service.NewProblemService(remote, filterRepo, flashRepo, inflight),
		Settings:  settingsService,
		CodeSpace: service.NewExecutionJobService(execJobRepo, jobQueue),
	}

	// 6. Initialize Execution Worker (as a goroutine)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if config.AppConfig.ExecutionWorkerInline || !storage.SharedQueue() {
		executionWorker := worker.NewExecutionWorker(
			jobQueue,
			execJobRepo,
			executor.NewMockProvider(time.Now().UnixNano()),
			config.AppConfig.ExecutionRunDelay,
			config.AppConfig.ExecutionSubmitDelay,
		)
		go executionWorker.Start(workerCtx)
		fmt.Println("Execution worker started.")
	} else {
		fmt.Println("Execution worker disabled; run cmd/worker against the shared queue.")
	}

	// 7. Initialize Router & HTTP Server
	pages, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	router := api.NewRouter(services, pages)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 70 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.AppPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.AppPort, err)
		}
	}()
	log.Printf("Server started successfully. Dashboard at %s", config.AppConfig.PublicURL)
	if config.AppConfig.ShowQR {
		qrterminal.GenerateHalfBlock(config.AppConfig.PublicURL, qrterminal.L, os.Stdout)
	}

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal worker to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
