// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
)

// Executor runs a task's action, producing its output file.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given task's command.
	// It returns an error if the action fails.
	Execute(ctx context.Context, task *domain.Task) error
}
