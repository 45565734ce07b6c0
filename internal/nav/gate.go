// Package nav holds the navigation gate: pure predicates deciding whether a
// session may move past the intake step. The presentation layer is
// responsible for acting on a false answer (redirecting back to intake);
// the gate itself performs no I/O.
package nav

import (
	"strings"

	"github.com/irvinng98/New2Canada/internal/profile"
)

// CanEnterAssistance reports whether the profile step is complete enough to
// open the assistance category screens. A profile counts as complete once
// Location is non-empty; whitespace-only values are treated as absent so we
// never proceed with an unusable location.
func CanEnterAssistance(p profile.Profile) bool {
	return p.HasLocation()
}

// CanEnterChat reports whether the chat screen for category is reachable:
// a category must be selected and the profile step must be complete.
func CanEnterChat(category string, p profile.Profile) bool {
	return strings.TrimSpace(category) != "" && CanEnterAssistance(p)
}
