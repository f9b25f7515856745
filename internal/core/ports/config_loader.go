package ports

import "go.trai.ch/mason/internal/core/domain"

// ConfigLoader evaluates a pipeline configuration source into a task graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at the given path and returns the task graph.
	Load(path string) (*domain.Graph, error)
}
