// Package routing maps assistance categories to Gemini model identifiers
// and decides the call shape each identifier requires.
package routing

import (
	"sort"
	"strings"
)

const (
	// FallbackModelID is the generic model every unmapped category routes
	// to. It is also what tuned routing degrades to when an identifier is
	// malformed.
	FallbackModelID = "gemini-2.5-flash"

	// TunedPrefix is the API namespace tuned model identifiers carry.
	// Generation calls want the bare name, so Sanitize strips it.
	TunedPrefix = "tunedModels/"
)

// DefaultBindings returns the category table shipped with the service.
// The table is data: adding a category means adding a line here, nothing
// else. Keys are stored lowercase; Resolve lowercases its input.
func DefaultBindings() map[string]string {
	return map[string]string{
		"housing":     TunedPrefix + "housing-newcomers-ca",
		"employment":  TunedPrefix + "employment-newcomers-ca",
		"education":   TunedPrefix + "education-newcomers-ca",
		"healthcare":  TunedPrefix + "healthcare-newcomers-ca",
		"financial":   TunedPrefix + "financial-newcomers-ca",
		"immigration": TunedPrefix + "immigration-newcomers-ca",
		"food":        TunedPrefix + "food-newcomers-ca",
		"clothing":    FallbackModelID,
	}
}

// Registry is the immutable category → raw model identifier table.
// Construct once at startup and share freely; lookups never mutate it.
type Registry struct {
	bindings map[string]string
	fallback string
}

// New builds a Registry from bindings and a fallback identifier. Keys are
// normalized to lowercase. An empty fallback uses FallbackModelID.
func New(bindings map[string]string, fallback string) Registry {
	if fallback == "" {
		fallback = FallbackModelID
	}
	norm := make(map[string]string, len(bindings))
	for k, v := range bindings {
		norm[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return Registry{bindings: norm, fallback: fallback}
}

// Default returns the Registry over DefaultBindings with the standard
// fallback.
func Default() Registry {
	return New(DefaultBindings(), FallbackModelID)
}

// Resolve looks up the raw model identifier for a category,
// case-insensitively. Unknown categories are normal input, not an error:
// they resolve to the fallback identifier.
func (r Registry) Resolve(category string) string {
	if id, ok := r.bindings[strings.ToLower(strings.TrimSpace(category))]; ok {
		return id
	}
	return r.fallback
}

// Fallback returns the identifier unmapped categories resolve to.
func (r Registry) Fallback() string {
	return r.fallback
}

// Categories returns the known category keys, sorted.
func (r Registry) Categories() []string {
	keys := make([]string, 0, len(r.bindings))
	for k := range r.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
