// Package composer builds the persona instruction sent to the generation
// backend from category, profile, and user message.
package composer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/irvinng98/New2Canada/internal/profile"
	"github.com/irvinng98/New2Canada/internal/routing"
)

// placeholder renders in place of a missing profile field. Keeping the
// field line with a literal token (instead of dropping it) keeps the
// instruction shape identical across partial profiles.
const placeholder = "N/A"

// messageSeparator joins instruction and user text in the concatenated
// shape. Fixed and labeled so the boundary is always recoverable.
const messageSeparator = "\n\nUser message:\n"

// Input is the payload handed to the generation backend. Instruction is
// empty in the concatenated shape, where it is already folded into Content.
type Input struct {
	Instruction string
	Content     string
}

// BuildInstruction produces the persona instruction for a category and
// profile snapshot. Output is deterministic: same inputs, byte-identical
// text. Missing fields render as the placeholder token.
func BuildInstruction(category string, p profile.Profile) string {
	c := titleCase(category)

	var b strings.Builder
	b.WriteString("You are an assistant specializing in essential resources for newcomers to Canada.\n")
	fmt.Fprintf(&b, "You are currently responding to a query in the %s category.\n", c)
	b.WriteString("\nUser profile:\n")
	fmt.Fprintf(&b, "- Location: %s\n", fieldOr(p.Location))
	fmt.Fprintf(&b, "- Immigration status: %s\n", fieldOr(p.Status))
	fmt.Fprintf(&b, "- Gender: %s\n", fieldOr(p.Gender))
	fmt.Fprintf(&b, "- Age: %s\n", fieldOr(p.Age))
	fmt.Fprintf(&b, "\nGiven this profile, provide a concise, friendly, and relevant response focused on resources and guidance within the %s topic.", c)
	return b.String()
}

// Compose pairs the instruction with the user message according to the
// call shape. Structured keeps two channels; concatenated returns a single
// content string with the fixed separator between them.
func Compose(instruction, message string, shape routing.CallShape) Input {
	if shape == routing.ShapeConcatenated {
		return Input{Content: instruction + messageSeparator + message}
	}
	return Input{Instruction: instruction, Content: message}
}

func fieldOr(v string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

// titleCase uppercases the first rune and lowercases the rest, so
// "housing", "HOUSING", and "Housing" all render identically.
func titleCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
