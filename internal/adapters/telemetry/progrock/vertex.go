package progrock

import (
	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Write streams task output onto the vertex's stdout stream.
func (v *Vertex) Write(p []byte) (n int, err error) {
	return v.vertex.Stdout().Write(p)
}

// Done completes the vertex with the task's outcome.
func (v *Vertex) Done(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as satisfied without running the action.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
