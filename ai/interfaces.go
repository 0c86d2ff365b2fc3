package ai

import "context"

// Completer sends a single prompt to a text-completion service and returns the
// raw free-text response. The service enforces no output schema; recovering
// structure from the response is entirely the caller's responsibility.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends the prompt and returns the model's text response.
	// Returns an error only when the call itself fails (network, auth,
	// quota); an unusable response body is still a successful call.
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages the Completer used for
// both structured extraction and reply generation.
type AIProvider interface {
	// Completer returns the text-completion service.
	// The returned Completer is safe for concurrent use.
	Completer() Completer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
