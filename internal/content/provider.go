// Package content generates learner-facing course content through an
// LLM provider. The deterministic engine hands over a pedagogical stage,
// the answer outcome, and question context; this package owns prompt
// construction, provider selection, retries, and response validation.
// The engine never inspects the generated blob.
package content

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over a single LLM backend. Implementations
// exist for Anthropic, OpenAI (and compatible APIs), and Gemini, plus a
// deterministic mock for tests.
type Provider interface {
	// Generate sends a prompt and returns structured JSON. When the
	// request carries a Schema, the response Content conforms to it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the provider's role and constraints.
	System string

	// Messages is the conversation. Content generation is single-turn,
	// so this is normally one user message.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must conform to.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0.0, 1.0]; zero means deterministic.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the provider must honor.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the provider's output.
type Response struct {
	// Content is validated JSON when a schema was requested, raw text
	// otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
