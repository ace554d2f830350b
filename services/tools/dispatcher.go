package tools

import (
	"context"
	"errors"

	"advisorly/models"
	"advisorly/utils"

	"go.uber.org/zap"
)

// Dispatch runs all commands in order and returns one result per command.
// Execution never short-circuits: a failed calendar hold must not block the
// advisor email that follows it.
func (d *Dispatcher) Dispatch(ctx context.Context, cmds []models.ToolCommand) []models.ToolResult {
	if len(cmds) == 0 {
		return nil
	}
	logger := utils.GetLogger()

	results := make([]models.ToolResult, 0, len(cmds))
	for _, cmd := range cmds {
		results = append(results, d.dispatchOne(ctx, logger, cmd))
	}
	return results
}

func (d *Dispatcher) dispatchOne(ctx context.Context, logger *zap.Logger, cmd models.ToolCommand) models.ToolResult {
	callCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	result, err := d.Executor.ExecuteTool(callCtx, cmd.Name, cmd.Params)
	result.Name = cmd.Name

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
		result.Success = false
		result.TimedOut = true
		if result.Error == "" {
			result.Error = "tool call timed out"
		}
		logger.Warn("tool call timed out",
			zap.String("tool", cmd.Name), zap.Duration("timeout", d.Timeout))
	case err != nil:
		result.Success = false
		if result.Error == "" {
			result.Error = err.Error()
		}
		logger.Warn("tool call failed",
			zap.String("tool", cmd.Name), zap.Error(err))
	}
	return result
}
