package domain

// Task is a unit of work producing a single output file. Its name is the
// output path, which also serves as its identity in the graph and in the
// manifest store.
type Task struct {
	Name        Path
	Prereqs     []Path
	Command     []string
	Environment map[string]string

	// Scan marks the task as dynamic: after its static prerequisites are
	// satisfied, its inputs are scanned for additional dependency paths.
	Scan bool
}

// Dynamic reports whether the task discovers dependencies at build time.
func (t *Task) Dynamic() bool {
	return t.Scan
}
