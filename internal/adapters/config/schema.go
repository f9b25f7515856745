package config

// Masonfile represents the structure of the mason.yaml configuration file.
type Masonfile struct {
	Version string             `yaml:"version"`
	TmpRoot string             `yaml:"tmpRoot"`
	Tasks   map[string]TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the configuration. The map key is
// the task's output path.
type TaskDTO struct {
	Inputs      []string          `yaml:"inputs"`
	Cmd         []string          `yaml:"cmd"`
	Scan        bool              `yaml:"scan"`
	Environment map[string]string `yaml:"environment"`
}
