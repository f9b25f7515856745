package domain

import "unique"

// Path is an interned file path. Task identities and dependency edges are
// all paths, and the same path shows up in many places (graph keys, manifest
// keys, prerequisite lists), so interning keeps comparisons cheap and the
// memory footprint flat.
type Path struct {
	h unique.Handle[string]
}

// NewPath interns the given string as a Path.
func NewPath(s string) Path {
	return Path{h: unique.Make(s)}
}

// String returns the underlying path string.
func (p Path) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return ""
	}
	return p.h.Value()
}

// IsZero reports whether the path was never set.
func (p Path) IsZero() bool {
	var zero unique.Handle[string]
	return p.h == zero
}

// MarshalText implements encoding.TextMarshaler so Path can be used as a
// JSON map key.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	p.h = unique.Make(string(text))
	return nil
}

// NewPaths interns a slice of strings.
func NewPaths(strs []string) []Path {
	if len(strs) == 0 {
		return nil
	}
	res := make([]Path, len(strs))
	for i, s := range strs {
		res[i] = NewPath(s)
	}
	return res
}
