package model

import (
	"time"
)

type JobKind string
type JobStatus string

const (
	JobKindRun    JobKind = "run"
	JobKindSubmit JobKind = "submit"

	JobStatusIdle    JobStatus = "idle"
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusFailed  JobStatus = "failed"

	TestCasePass = "PASS"
	TestCaseFail = "FAIL"
)

// ExecutionJob is one CodeSpace run or submit request.
type ExecutionJob struct {
	ID           string        `json:"id"`
	SessionID    string        `json:"session_id,omitempty"`
	Kind         JobKind       `json:"kind"`
	ProblemID    int           `json:"problem_id"`
	Language     string        `json:"language"`
	Code         string        `json:"code,omitempty"`
	Status       JobStatus     `json:"status"`
	RunResult    *RunResult    `json:"run_result,omitempty"`
	SubmitResult *SubmitResult `json:"submit_result,omitempty"`
	LastError    *string       `json:"last_error,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Public strips the owner and source before the job is returned to a client.
func (j ExecutionJob) Public() ExecutionJob {
	j.SessionID = ""
	j.Code = ""
	return j
}

type TestCaseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Status   string `json:"status"`
}

type RunResult struct {
	Passed  int              `json:"passed"`
	Total   int              `json:"total"`
	Details []TestCaseResult `json:"details"`
}

type SubmitResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Runtime *string `json:"runtime,omitempty"`
	Memory  *string `json:"memory,omitempty"`
}
