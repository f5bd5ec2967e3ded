package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"codejarvis/internal/app/executor"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/domain/repository"
	"codejarvis/internal/platform/queue"
)

// ExecutionWorker drains the CodeSpace queue one job at a time.
type ExecutionWorker struct {
	queue       queue.Queue
	jobRepo     repository.ExecutionJobRepository
	provider    executor.Provider
	runDelay    time.Duration
	submitDelay time.Duration
	retryDelay  time.Duration
}

func NewExecutionWorker(q queue.Queue, jobRepo repository.ExecutionJobRepository, provider executor.Provider, runDelay, submitDelay time.Duration) *ExecutionWorker {
	return &ExecutionWorker{
		queue:       q,
		jobRepo:     jobRepo,
		provider:    provider,
		runDelay:    runDelay,
		submitDelay: submitDelay,
		retryDelay:  5 * time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (w *ExecutionWorker) Start(ctx context.Context) {
	log.Println("INFO: Execution worker started")
	for {
		jobID, err := w.queue.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("INFO: Execution worker stopping...")
				return
			}
			if errors.Is(err, queue.ErrEmpty) {
				continue
			}
			log.Printf("ERROR: Failed to pop from execution queue: %v", err)
			if !sleep(ctx, w.retryDelay) {
				log.Println("INFO: Execution worker stopping...")
				return
			}
			continue
		}
		log.Printf("INFO: Worker picked up job ID: %s", jobID)
		w.handleJob(ctx, jobID)
	}
}

func (w *ExecutionWorker) handleJob(ctx context.Context, jobID string) {
	job, err := w.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		log.Printf("ERROR: Failed to fetch job %s: %v", jobID, err)
		return
	}

	job.Status = model.JobStatusRunning
	if err := w.jobRepo.UpdateJob(ctx, job); err != nil {
		log.Printf("ERROR: Failed to update job %s status to running: %v", job.ID, err)
	}

	problem, ok := model.PracticeProblemByID(job.ProblemID)
	if !ok {
		w.fail(ctx, job, fmt.Sprintf("unknown problem %d", job.ProblemID))
		return
	}

	delay := w.runDelay
	if job.Kind == model.JobKindSubmit {
		delay = w.submitDelay
	}
	if !sleep(ctx, delay) {
		w.fail(context.WithoutCancel(ctx), job, "worker shut down before the job finished")
		return
	}

	switch job.Kind {
	case model.JobKindRun:
		res, err := w.provider.Run(ctx, problem, job.Language, job.Code)
		if err != nil {
			w.fail(ctx, job, err.Error())
			return
		}
		job.RunResult = res
	case model.JobKindSubmit:
		res, err := w.provider.Submit(ctx, problem, job.Language, job.Code)
		if err != nil {
			w.fail(ctx, job, err.Error())
			return
		}
		job.SubmitResult = res
	default:
		w.fail(ctx, job, fmt.Sprintf("unknown job kind %q", job.Kind))
		return
	}

	job.Status = model.JobStatusDone
	if err := w.jobRepo.UpdateJob(ctx, job); err != nil {
		log.Printf("ERROR: Failed to store result for job %s: %v", job.ID, err)
		return
	}
	log.Printf("INFO: Job %s (%s) done", job.ID, job.Kind)
}

func (w *ExecutionWorker) fail(ctx context.Context, job *model.ExecutionJob, msg string) {
	log.Printf("ERROR: Job %s failed: %s", job.ID, msg)
	job.Status = model.JobStatusFailed
	job.LastError = &msg
	if err := w.jobRepo.UpdateJob(ctx, job); err != nil {
		log.Printf("ERROR: Failed to update job %s status to failed: %v", job.ID, err)
	}
}

// sleep waits d or until ctx is done; it reports whether the full wait passed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
