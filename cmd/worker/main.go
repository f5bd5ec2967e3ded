package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"codejarvis/internal/app/executor"
	"codejarvis/internal/app/worker"
	"codejarvis/internal/domain/repository"
	"codejarvis/internal/platform/config"
	"codejarvis/internal/platform/storage"
)

// A standalone CodeSpace worker for deployments that set
// EXECUTION_WORKER_INLINE=false on the server.
func main() {
	config.Load()
	if !storage.SharedQueue() {
		log.Fatalf("The standalone worker needs STORAGE_DRIVER=%s, got %q", config.StorageRedis, config.AppConfig.StorageDriver)
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, jobQueue, err := storage.Open(startupCtx)
	startupCancel()
	if err != nil {
		log.Fatalf("Failed to initialise storage: %v", err)
	}
	defer store.Close()

	executionWorker := worker.NewExecutionWorker(
		jobQueue,
		repository.NewKVExecutionJobRepository(store, config.AppConfig.ExecutionJobTTL),
		executor.NewMockProvider(time.Now().UnixNano()),
		config.AppConfig.ExecutionRunDelay,
		config.AppConfig.ExecutionSubmitDelay,
	)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		executionWorker.Start(ctx)
	}()

	// Graceful shutdown on SIGINT or SIGTERM
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Println("Shutdown signal received.")
	cancel()

	// A job cut short by the signal is marked failed before Start returns.
	wg.Wait()
	log.Println("Worker exited cleanly.")
}
