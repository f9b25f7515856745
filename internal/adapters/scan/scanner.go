// Package scan implements dynamic dependency discovery by scanning task
// inputs for @import directives.
package scan

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// FormatVersion identifies the directive syntax this scanner understands.
// It is contributed to the digest-token registry so a syntax change
// invalidates fingerprint-scoped temp state.
const FormatVersion = "scan1"

var importPattern = regexp.MustCompile(`@import\s+"([^"]+)"`)

var _ ports.DepResolver = (*Scanner)(nil)

// Scanner discovers a task's additional dependencies by reading its input
// files and collecting @import "path" directives. Imported paths are
// interpreted relative to the importing file's directory.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Resolve returns the deduplicated, sorted list of imported paths across all
// of the task's inputs. It runs only after the static prerequisites are up
// to date, so the inputs are safe to read.
func (s *Scanner) Resolve(ctx context.Context, task *domain.Task) ([]string, error) {
	seen := make(map[string]struct{})
	for _, input := range task.Prereqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.scanFile(input.String(), seen); err != nil {
			return nil, err
		}
	}

	deps := make([]string, 0, len(seen))
	for dep := range seen {
		deps = append(deps, dep)
	}
	slices.Sort(deps)
	return deps, nil
}

func (s *Scanner) scanFile(path string, seen map[string]struct{}) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		// Inputs that are tasks were just built; anything unreadable here is
		// reported by the staleness check, not by discovery.
		return nil
	}

	f, err := os.Open(path) //nolint:gosec // Path comes from the task definition
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open input"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, m := range importPattern.FindAllStringSubmatch(scanner.Text(), -1) {
			dep := m[1]
			if !filepath.IsAbs(dep) {
				dep = filepath.Join(filepath.Dir(path), dep)
			}
			seen[dep] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to scan input"), "path", path)
	}
	return nil
}
