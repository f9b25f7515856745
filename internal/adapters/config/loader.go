// Package config provides the pipeline configuration loader for mason.
package config

import (
	"os"
	"slices"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct{}

// Load reads a configuration file from the given path and returns the task
// graph it declares.
func (l *FileConfigLoader) Load(path string) (*domain.Graph, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse evaluates configuration bytes into a domain.Graph.
func Parse(data []byte) (*domain.Graph, error) {
	var masonfile Masonfile
	if err := yaml.Unmarshal(data, &masonfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	g := domain.NewGraph()
	for output, dto := range masonfile.Tasks {
		// Reserved: "all" is the implicit everything target.
		if output == "all" {
			return nil, zerr.With(zerr.New("task name 'all' is reserved"), "task", output)
		}

		task := &domain.Task{
			Name:        domain.NewPath(output),
			Prereqs:     canonicalizePaths(dto.Inputs),
			Command:     dto.Cmd,
			Environment: dto.Environment,
			Scan:        dto.Scan,
		}
		if err := g.AddTask(task); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// canonicalizePaths sorts, deduplicates and interns the given paths.
func canonicalizePaths(strs []string) []domain.Path {
	if len(strs) == 0 {
		return nil
	}
	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)
	return domain.NewPaths(slices.Compact(sorted))
}
