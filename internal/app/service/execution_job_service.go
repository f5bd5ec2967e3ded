package service

import (
	"context"
	"fmt"
	"log"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/domain/repository"
	"codejarvis/internal/platform/queue"

	"github.com/google/uuid"
)

// ExecutionJobService backs CodeSpace: it records run/submit jobs and hands
// their ids to the worker through the queue.
type ExecutionJobService struct {
	jobRepo repository.ExecutionJobRepository
	queue   queue.Queue
}

func NewExecutionJobService(jobRepo repository.ExecutionJobRepository, q queue.Queue) *ExecutionJobService {
	return &ExecutionJobService{jobRepo: jobRepo, queue: q}
}

type ExecutionRequest struct {
	ProblemID int    `json:"problem_id"`
	Language  string `json:"language"`
	Code      string `json:"code"`
}

func (s *ExecutionJobService) Problems() []model.PracticeProblem { return model.PracticeProblems }
func (s *ExecutionJobService) Languages() []model.Language       { return model.Languages }

func (s *ExecutionJobService) Enqueue(ctx context.Context, sessionID string, kind model.JobKind, req ExecutionRequest) (*model.ExecutionJob, error) {
	if _, ok := model.PracticeProblemByID(req.ProblemID); !ok {
		return nil, fmt.Errorf("problem %d: %w", req.ProblemID, errUnknownProblem)
	}
	if _, ok := model.LanguageByID(req.Language); !ok {
		return nil, fmt.Errorf("language %q: %w", req.Language, errUnknownLanguage)
	}
	if kind != model.JobKindRun && kind != model.JobKindSubmit {
		return nil, common.Errorf("unknown job kind %q: %w", kind, common.ErrBadRequest)
	}

	job := &model.ExecutionJob{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      kind,
		ProblemID: req.ProblemID,
		Language:  req.Language,
		Code:      req.Code,
		Status:    model.JobStatusIdle,
	}
	if err := s.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, common.Errorf("failed to create execution job: %w", err)
	}
	if err := s.queue.Push(ctx, job.ID); err != nil {
		msg := "failed to enqueue job"
		if uErr := s.jobRepo.UpdateJobStatus(context.WithoutCancel(ctx), job.ID, model.JobStatusFailed, &msg); uErr != nil {
			log.Printf("ERROR: Failed to mark job %s as failed: %v", job.ID, uErr)
		}
		return nil, common.Errorf("failed to push job ID to queue: %w", err)
	}

	log.Printf("INFO: Execution job %s (%s, problem %d) enqueued", job.ID, kind, req.ProblemID)
	return job, nil
}

// Job returns the job if it belongs to the session.
func (s *ExecutionJobService) Job(ctx context.Context, sessionID, jobID string) (*model.ExecutionJob, error) {
	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.SessionID != sessionID {
		return nil, common.ErrNotFound
	}
	return job, nil
}
