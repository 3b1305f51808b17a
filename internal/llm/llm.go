// Package llm wraps the external text-generation model and the recovery
// logic that turns its free-text replies into JSON.
package llm

import "context"

// Generator is the capability contract for the external model. It is an
// interface so tests can substitute deterministic stand-ins returning canned
// text. Implementations must respect context cancellation and deadlines.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
