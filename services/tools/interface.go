package tools

import (
	"context"
	"time"

	"advisorly/config"
	"advisorly/models"
)

// Executor runs one external tool command (calendar, email, notes). The
// concrete executor lives outside this process; implementations here are
// transports to it.
type Executor interface {
	ExecuteTool(ctx context.Context, name string, params map[string]any) (models.ToolResult, error)
}

// Dispatcher executes a command bundle sequentially, each call under its own
// bounded timeout. Ledger state is already committed when commands reach the
// dispatcher: a failed or timed-out tool is recorded and logged, never rolled
// back into the booking.
type Dispatcher struct {
	Executor Executor
	Timeout  time.Duration
}

func NewDispatcher(executor Executor, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{Executor: executor, Timeout: timeout}
}

// NewDispatcherFromConfig wires the configured timeout.
func NewDispatcherFromConfig(executor Executor) *Dispatcher {
	return NewDispatcher(executor, time.Duration(config.AppConfig.ToolCallTimeoutSecs)*time.Second)
}
