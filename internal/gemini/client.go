// Package gemini adapts the Google GenAI SDK to the chat.Generator
// capability.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Client wraps a genai.Client for single-shot content generation.
type Client struct {
	client *genai.Client
}

// New creates a Client. The API key is mandatory: generation is refused at
// startup rather than failing on every request later.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	return &Client{client: c}, nil
}

// Generate sends one generation request and returns the response text.
// A non-empty instruction is passed as the structured systemInstruction
// field; callers using the concatenated shape pass it as part of content
// and leave instruction empty.
func (c *Client) Generate(ctx context.Context, model, content, instruction string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if instruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(content), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content with %s: %w", model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: model %s returned no text", model)
	}
	return text, nil
}
