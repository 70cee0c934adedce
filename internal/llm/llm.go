package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for recommendation phrasing. The engine
// output is authoritative; phrasing only rewrites it into friendlier prose.
type Client interface {
	PhraseRecommendations(ctx context.Context, input PhraseInput) (json.RawMessage, error)
}

// Seed is one deterministic recommendation handed to the phrasing model.
type Seed struct {
	Fix         string   `json:"fix"`
	Headline    string   `json:"headline"`
	Explanation string   `json:"explanation"`
	Steps       []string `json:"steps"`
	EndState    string   `json:"endState"`
}

// PhraseInput captures the inputs needed for a phrasing request.
type PhraseInput struct {
	Readiness       string
	Alignment       int
	BottleneckLabel string
	Vertical        string
	PromptVersion   string
	Recommendations []Seed
}

type fixJSONKey struct{}

// WithFixJSON returns a context signaling a fix-JSON retry with the given raw output.
func WithFixJSON(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, fixJSONKey{}, raw)
}

// FixJSONFromContext returns the raw JSON to repair, if any.
func FixJSONFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(fixJSONKey{})
	raw, ok := val.(string)
	return raw, ok
}

type promptHashKey struct{}

// WithPromptHashCapture returns a context that asks the provider to write the
// hash of the rendered prompt into sink.
func WithPromptHashCapture(ctx context.Context, sink *string) context.Context {
	if sink == nil {
		return ctx
	}
	return context.WithValue(ctx, promptHashKey{}, sink)
}

// PromptHashSinkFromContext returns the prompt hash sink, if any.
func PromptHashSinkFromContext(ctx context.Context) (*string, bool) {
	sink, ok := ctx.Value(promptHashKey{}).(*string)
	return sink, ok
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// PhraseRecommendations returns ErrNotImplemented.
func (PlaceholderClient) PhraseRecommendations(ctx context.Context, input PhraseInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
