package routing

import "strings"

// CallShape says how the persona instruction travels to the backend.
type CallShape int

const (
	// ShapeStructured passes the instruction as the systemInstruction
	// field, separate from the user content.
	ShapeStructured CallShape = iota
	// ShapeConcatenated folds the instruction into the content string.
	ShapeConcatenated
)

func (s CallShape) String() string {
	if s == ShapeConcatenated {
		return "concatenated"
	}
	return "structured"
}

// Sanitize converts a raw model identifier into the form the generation
// API accepts: tuned identifiers lose their TunedPrefix namespace, generic
// identifiers pass through. A blank identifier degrades to
// FallbackModelID; routing never fails. Pure string work, idempotent.
func Sanitize(raw string) string {
	id := strings.TrimPrefix(raw, TunedPrefix)
	if strings.TrimSpace(id) == "" {
		return FallbackModelID
	}
	return id
}

// ShapeFor decides the call shape for a raw model identifier. Tuned models
// reject a separate systemInstruction field, so for them the instruction
// must be concatenated into the prompt text. This compensates for a
// backend limitation of tuned-model generation calls; it is not a prompt
// design preference.
func ShapeFor(raw string) CallShape {
	if strings.HasPrefix(raw, TunedPrefix) {
		return ShapeConcatenated
	}
	return ShapeStructured
}
