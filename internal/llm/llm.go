package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Generator sends a prompt to a generative model and returns the raw JSON document it answered with.
type Generator interface {
	Generate(ctx context.Context, prompt string) (json.RawMessage, error)
}

// ErrModelUnavailable covers unreachable endpoints, timeouts and non-2xx answers.
var ErrModelUnavailable = errors.New("model endpoint unavailable")
