// Package chat runs one chat turn end to end: validate, route the category
// to a model, assemble the prompt, and call the generation backend.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/irvinng98/New2Canada/internal/composer"
	"github.com/irvinng98/New2Canada/internal/nav"
	"github.com/irvinng98/New2Canada/internal/profile"
	"github.com/irvinng98/New2Canada/internal/routing"
)

// Generator is the generative backend capability. Instruction may be empty,
// in which case the call carries content only.
type Generator interface {
	Generate(ctx context.Context, model, content, instruction string) (string, error)
}

// Turn is one inbound chat request together with the profile snapshot the
// presentation layer loaded for the session. Turns are ephemeral; nothing
// here is persisted.
type Turn struct {
	Category string
	Message  string
	Profile  profile.Profile
}

// Orchestrator composes registry, router, composer, and the Generator
// capability. Safe for concurrent use: the registry is immutable and each
// turn is independent.
type Orchestrator struct {
	registry routing.Registry
	gen      Generator
}

// New creates an Orchestrator over the given registry and backend.
func New(registry routing.Registry, gen Generator) *Orchestrator {
	return &Orchestrator{registry: registry, gen: gen}
}

// Respond handles a single turn. It returns the backend's text unchanged
// on success. Failures are typed: *ValidationError when the input is
// incomplete (no backend call is made), *BackendError when the generation
// call fails. The backend is invoked exactly once per turn; there are no
// retries here, resubmission is the caller's job.
func (o *Orchestrator) Respond(ctx context.Context, t Turn) (string, error) {
	// Validating.
	if strings.TrimSpace(t.Message) == "" {
		return "", &ValidationError{Reason: "message is required"}
	}
	if strings.TrimSpace(t.Category) == "" {
		return "", &ValidationError{Reason: "category is required"}
	}
	if !nav.CanEnterChat(t.Category, t.Profile) {
		return "", &ValidationError{Reason: "profile is incomplete; submit your details first"}
	}

	// Routing. Total: unknown categories resolve to the fallback model and
	// malformed identifiers degrade rather than error.
	raw := o.registry.Resolve(t.Category)
	model := routing.Sanitize(raw)
	shape := routing.ShapeFor(raw)

	instruction := composer.BuildInstruction(t.Category, t.Profile)
	in := composer.Compose(instruction, t.Message, shape)

	slog.Debug("dispatching chat turn",
		"category", t.Category,
		"model", model,
		"shape", shape.String(),
	)

	// Generating.
	text, err := o.gen.Generate(ctx, model, in.Content, in.Instruction)
	if err != nil {
		// Full detail goes to the log only; the returned error is redacted.
		slog.Error("generation call failed",
			"category", t.Category,
			"model", model,
			"error", err,
		)
		return "", &BackendError{Category: t.Category, Model: model, cause: err}
	}

	return text, nil
}
