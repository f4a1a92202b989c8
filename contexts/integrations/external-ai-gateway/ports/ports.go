package ports

import "context"

// WolframClient fetches the raw Wolfram response body for a prompt.
type WolframClient interface {
	Query(ctx context.Context, prompt string) ([]byte, error)
}

// GPTClient returns the completion output for a prompt, or nil when the
// provider answered without one.
type GPTClient interface {
	Complete(ctx context.Context, prompt string) (*string, error)
}
