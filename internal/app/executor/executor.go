// Package executor is the boundary behind which CodeSpace runs code. Only a
// mock exists; a sandboxed backend can replace it without touching callers.
package executor

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"codejarvis/internal/domain/model"
)

type Provider interface {
	Run(ctx context.Context, problem model.PracticeProblem, language, code string) (*model.RunResult, error)
	Submit(ctx context.Context, problem model.PracticeProblem, language, code string) (*model.SubmitResult, error)
}

// MockProvider fabricates plausible results without executing anything.
type MockProvider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMockProvider(seed int64) *MockProvider {
	return &MockProvider{rnd: rand.New(rand.NewSource(seed))}
}

func (m *MockProvider) intn(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rnd.Intn(n)
}

func (m *MockProvider) float() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rnd.Float64()
}

// Run passes a random number of cases between 1 and all; the first ones pass.
func (m *MockProvider) Run(ctx context.Context, problem model.PracticeProblem, language, code string) (*model.RunResult, error) {
	total := len(problem.TestCases)
	if total == 0 {
		return &model.RunResult{Details: []model.TestCaseResult{}}, nil
	}
	passed := m.intn(total) + 1

	res := &model.RunResult{Passed: passed, Total: total, Details: make([]model.TestCaseResult, 0, total)}
	for i, tc := range problem.TestCases {
		detail := model.TestCaseResult{Input: tc.Input, Expected: tc.Expected, Actual: tc.Expected, Status: model.TestCasePass}
		if i >= passed {
			detail.Actual = "Wrong Answer"
			detail.Status = model.TestCaseFail
		}
		res.Details = append(res.Details, detail)
	}
	return res, nil
}

// Submit accepts with probability 0.7.
func (m *MockProvider) Submit(ctx context.Context, problem model.PracticeProblem, language, code string) (*model.SubmitResult, error) {
	if m.float() > 0.3 {
		runtime := fmt.Sprintf("%dms", m.intn(100)+50)
		memory := fmt.Sprintf("%.1fMB", m.float()*20+10)
		return &model.SubmitResult{
			Success: true,
			Message: "Accepted! Your solution passed all test cases.",
			Runtime: &runtime,
			Memory:  &memory,
		}, nil
	}
	return &model.SubmitResult{Success: false, Message: "Wrong Answer on test case 5 of 15."}, nil
}
