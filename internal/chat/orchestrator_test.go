package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/irvinng98/New2Canada/internal/profile"
	"github.com/irvinng98/New2Canada/internal/routing"
)

// mockGenerator records every call so tests can assert call counts and the
// exact payload that reached the backend.
type mockGenerator struct {
	response string
	err      error

	calls           int
	lastModel       string
	lastContent     string
	lastInstruction string
}

func (m *mockGenerator) Generate(_ context.Context, model, content, instruction string) (string, error) {
	m.calls++
	m.lastModel = model
	m.lastContent = content
	m.lastInstruction = instruction
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func completeProfile() profile.Profile {
	return profile.Profile{Location: "Toronto", Status: "PR", Gender: "F", Age: "29"}
}

func TestRespond_HousingSuccess(t *testing.T) {
	gen := &mockGenerator{response: "Here are housing resources in Toronto."}
	orch := New(routing.Default(), gen)

	text, err := orch.Respond(context.Background(), Turn{
		Category: "housing",
		Message:  "Where can I find affordable rentals?",
		Profile:  completeProfile(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Backend text is returned unchanged.
	if text != gen.response {
		t.Errorf("response = %q, want backend text unchanged", text)
	}
	if gen.calls != 1 {
		t.Errorf("backend called %d times, want exactly 1", gen.calls)
	}

	// Housing routes to its tuned model, sanitized for the API.
	if gen.lastModel != "housing-newcomers-ca" {
		t.Errorf("model = %q, want housing-newcomers-ca", gen.lastModel)
	}

	// Tuned models use the concatenated shape: instruction folded into
	// content, no separate instruction channel.
	if gen.lastInstruction != "" {
		t.Errorf("tuned call must not carry a structured instruction, got %q", gen.lastInstruction)
	}
	for _, want := range []string{"Toronto", "Housing", "Where can I find affordable rentals?"} {
		if !strings.Contains(gen.lastContent, want) {
			t.Errorf("content missing %q:\n%s", want, gen.lastContent)
		}
	}
}

func TestRespond_UnknownCategoryUsesFallback(t *testing.T) {
	gen := &mockGenerator{response: "General guidance."}
	orch := New(routing.Default(), gen)

	text, err := orch.Respond(context.Background(), Turn{
		Category: "unknown-category",
		Message:  "Can you help?",
		Profile:  completeProfile(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "General guidance." {
		t.Errorf("response = %q", text)
	}
	if gen.lastModel != routing.FallbackModelID {
		t.Errorf("model = %q, want fallback %q", gen.lastModel, routing.FallbackModelID)
	}

	// The generic model takes the structured shape.
	if gen.lastInstruction == "" {
		t.Error("generic call should carry a structured instruction")
	}
	if gen.lastContent != "Can you help?" {
		t.Errorf("structured content should be the raw message, got %q", gen.lastContent)
	}
}

func TestRespond_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		turn Turn
	}{
		{"empty message", Turn{Category: "housing", Profile: completeProfile()}},
		{"whitespace message", Turn{Category: "housing", Message: "   ", Profile: completeProfile()}},
		{"empty category", Turn{Message: "hi", Profile: completeProfile()}},
		{"missing profile", Turn{Category: "housing", Message: "hi"}},
		{"whitespace location", Turn{Category: "housing", Message: "hi", Profile: profile.Profile{Location: " "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{response: "should never be returned"}
			orch := New(routing.Default(), gen)

			_, err := orch.Respond(context.Background(), tt.turn)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if gen.calls != 0 {
				t.Errorf("backend called %d times on validation failure, want 0", gen.calls)
			}
		})
	}
}

func TestRespond_BackendFailureIsRedacted(t *testing.T) {
	cause := errors.New("HTTP 500: internal upstream panic with secret details")
	gen := &mockGenerator{err: cause}
	orch := New(routing.Default(), gen)

	_, err := orch.Respond(context.Background(), Turn{
		Category: "employment",
		Message:  "How do I get my credentials recognized?",
		Profile:  completeProfile(),
	})

	var bErr *BackendError
	if !errors.As(err, &bErr) {
		t.Fatalf("err = %v, want *BackendError", err)
	}

	msg := bErr.Error()
	if !strings.Contains(msg, "employment") {
		t.Errorf("message should name the category: %q", msg)
	}
	if !strings.Contains(msg, "employment-newcomers-ca") {
		t.Errorf("message should name the attempted model: %q", msg)
	}
	if strings.Contains(msg, "secret details") || strings.Contains(msg, "HTTP 500") {
		t.Errorf("message leaks the raw backend error: %q", msg)
	}

	// The cause stays reachable for logging through the error chain.
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped for operational logging")
	}
}
