package ports

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
)

// DepResolver discovers a dynamic task's additional dependencies by
// inspecting its state at build time.
//
// The engine only invokes Resolve after all of the task's static
// prerequisites have been brought up to date, so the resolver may read their
// content. Resolution can be expensive (it typically parses files), which is
// why the engine memoizes the result per session and reuses the last run's
// manifest entry when nothing relevant changed. Errors are fatal for the
// task's invocation; they are never retried or masked.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DepResolver interface {
	// Resolve returns the task's additional dependency paths.
	Resolve(ctx context.Context, task *domain.Task) ([]string, error)
}
