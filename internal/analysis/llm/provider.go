package llm

import "context"

// Provider is the whole contract with the generative-text service: a prompt
// in, raw text out. Everything above this interface is testable with a stub.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
