// Package profile defines the session-scoped user profile collected before
// chat and the storage capability that persists it.
package profile

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when no profile exists for a session.
var ErrNotFound = errors.New("profile not found")

// Profile is the four-field context collected from the user during the
// intake step. All fields are optional at the type level; navigation
// requires Location before the assistance screens open up.
type Profile struct {
	Location string `json:"location"`
	Status   string `json:"status"`
	Gender   string `json:"gender"`
	Age      string `json:"age"`
}

// HasLocation reports whether Location carries a usable value.
// Whitespace-only strings count as absent.
func (p Profile) HasLocation() bool {
	return strings.TrimSpace(p.Location) != ""
}

// Store persists one Profile per session. Put is a full overwrite; there is
// no partial merge. Implemented by storage.Store.
type Store interface {
	Get(ctx context.Context, sessionID string) (Profile, error)
	Put(ctx context.Context, sessionID string, p Profile) error
	Delete(ctx context.Context, sessionID string) error
}
