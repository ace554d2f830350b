package tools

import (
	"context"
	"sync"

	"advisorly/models"
)

// MockExecutor acknowledges every command locally. It backs development and
// test environments where no external executor is reachable, and records the
// calls it served.
type MockExecutor struct {
	mu    sync.Mutex
	calls []models.ToolCommand

	// FailTools marks tool names that should report a rejection.
	FailTools map[string]string
	// Delay simulates a slow executor.
	Delay func(ctx context.Context, name string) error
}

func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

func (m *MockExecutor) ExecuteTool(ctx context.Context, name string, params map[string]any) (models.ToolResult, error) {
	if m.Delay != nil {
		if err := m.Delay(ctx, name); err != nil {
			return models.ToolResult{Name: name}, err
		}
	}

	m.mu.Lock()
	m.calls = append(m.calls, models.ToolCommand{Name: name, Params: params})
	m.mu.Unlock()

	if msg, ok := m.FailTools[name]; ok {
		return models.ToolResult{Name: name, Error: msg}, nil
	}
	return models.ToolResult{
		Name:    name,
		Success: true,
		Data:    map[string]any{"acknowledged": true},
	}, nil
}

// Calls returns a copy of the served commands in order.
func (m *MockExecutor) Calls() []models.ToolCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ToolCommand, len(m.calls))
	copy(out, m.calls)
	return out
}
