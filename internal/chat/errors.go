package chat

import "fmt"

// ValidationError means the caller supplied incomplete input: no message,
// no category, or a profile that does not pass the navigation gate. The
// turn stops before any backend call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid chat request: " + e.Reason
}

// BackendError means the generation call failed. The user-facing message
// names the category and the attempted model identifier only; the raw
// backend error stays in the operational log, never in the response.
type BackendError struct {
	Category string
	Model    string
	cause    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generation failed for category %q using model %q; please try again", e.Category, e.Model)
}

func (e *BackendError) Unwrap() error {
	return e.cause
}
