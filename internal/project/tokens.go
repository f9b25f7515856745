package project

import (
	"slices"
	"sync"
)

// TokenRegistry collects extra digest tokens that become part of the
// fingerprint-scoped temp directory name. Components append version strings
// or feature flags here so that bumping one of them invalidates cached temp
// state even when the configuration text itself did not change.
//
// The registry is an explicit object handed to the Project at construction,
// not ambient package state. Tokens must be registered before the first
// fingerprinting.
type TokenRegistry struct {
	mu     sync.Mutex
	tokens []string
}

// NewTokenRegistry creates a registry seeded with the given tokens.
func NewTokenRegistry(tokens ...string) *TokenRegistry {
	r := &TokenRegistry{}
	r.tokens = append(r.tokens, tokens...)
	return r
}

// Add appends a token to the registry.
func (r *TokenRegistry) Add(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, token)
}

// Tokens returns a sorted copy of the registered tokens, so derived names do
// not depend on registration order.
func (r *TokenRegistry) Tokens() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.tokens))
	copy(out, r.tokens)
	slices.Sort(out)
	return out
}
