package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codejarvis/internal/common"
	"codejarvis/internal/domain/model"
	"codejarvis/internal/platform/kv"
)

type ExecutionJobRepository interface {
	CreateJob(ctx context.Context, job *model.ExecutionJob) error
	GetJobByID(ctx context.Context, id string) (*model.ExecutionJob, error)
	UpdateJob(ctx context.Context, job *model.ExecutionJob) error
	UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, lastError *string) error
}

// kvExecutionJobRepository keeps jobs for ttl after their last update.
type kvExecutionJobRepository struct {
	store kv.Store
	ttl   time.Duration
	now   func() time.Time
}

func NewKVExecutionJobRepository(store kv.Store, ttl time.Duration) ExecutionJobRepository {
	return &kvExecutionJobRepository{store: store, ttl: ttl, now: time.Now}
}

func jobKey(id string) string { return "jobs:" + id }

func (r *kvExecutionJobRepository) CreateJob(ctx context.Context, job *model.ExecutionJob) error {
	now := r.now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	if err := kv.SetJSON(ctx, r.store, jobKey(job.ID), job, r.ttl); err != nil {
		return fmt.Errorf("kvExecutionJobRepository.CreateJob: %w", err)
	}
	return nil
}

func (r *kvExecutionJobRepository) GetJobByID(ctx context.Context, id string) (*model.ExecutionJob, error) {
	job := &model.ExecutionJob{}
	if err := kv.GetJSON(ctx, r.store, jobKey(id), job); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("kvExecutionJobRepository.GetJobByID: %w", err)
	}
	return job, nil
}

func (r *kvExecutionJobRepository) UpdateJob(ctx context.Context, job *model.ExecutionJob) error {
	job.UpdatedAt = r.now().UTC()
	if err := kv.SetJSON(ctx, r.store, jobKey(job.ID), job, r.ttl); err != nil {
		return fmt.Errorf("kvExecutionJobRepository.UpdateJob: %w", err)
	}
	return nil
}

func (r *kvExecutionJobRepository) UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, lastError *string) error {
	job, err := r.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}
	job.Status = status
	job.LastError = lastError
	return r.UpdateJob(ctx, job)
}
