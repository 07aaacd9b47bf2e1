package usage

import (
	"context"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"github.com/strix-ai/strix/events"
	"github.com/strix-ai/strix/internal/registry"
)

// fallbackEncoding is used for model names tiktoken does not recognize.
const fallbackEncoding = "cl100k_base"

// encodings caches one encoder per model name. Constructing an encoder
// loads its BPE ranks, which is too expensive to repeat per request.
var encodings = registry.New[*tiktoken.Tiktoken]()

func encodingForModel(model string) *tiktoken.Tiktoken {
	enc, _ := encodings.GetOrAdd(model, func() *tiktoken.Tiktoken {
		if enc, err := tiktoken.EncodingForModel(model); err == nil {
			return enc
		}
		enc, err := tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			// The fallback encoding could not be loaded either. Token
			// counting degrades to a no-op rather than failing the run.
			return nil
		}
		return enc
	})
	return enc
}

var _ events.Hook = (*TokenCalc)(nil)

// TokenCalc tallies token and request counts into a Tracker as lifecycle
// events arrive. The model name given at construction selects the
// tokenizer; an event carrying its own model name overrides it.
type TokenCalc struct {
	model   string
	tracker *Tracker
}

// NewTokenCalc returns a hook that records usage for requests against
// model into tracker. A nil tracker yields a hook whose methods are
// no-ops.
func NewTokenCalc(model string, tracker *Tracker) *TokenCalc {
	return &TokenCalc{model: model, tracker: tracker}
}

// OnRequestStart counts the tokens of every submitted prompt.
func (c *TokenCalc) OnRequestStart(_ context.Context, evt events.RequestStart) {
	if c.tracker == nil {
		return
	}

	model := c.model
	if evt.Model != "" {
		model = evt.Model
	}
	enc := encodingForModel(model)
	if enc == nil {
		return
	}

	for _, prompt := range evt.Prompts {
		c.tracker.SumPromptTokens(len(enc.Encode(prompt, nil, nil)))
	}
}

// OnNewToken records exactly one completion token. The model client emits
// one event per generated token, so this is an increment, not a recount.
func (c *TokenCalc) OnNewToken(_ context.Context, _ events.NewToken) {
	if c.tracker == nil {
		return
	}
	c.tracker.SumCompletionTokens(1)
}

// OnRequestEnd records one successful request.
func (c *TokenCalc) OnRequestEnd(_ context.Context, _ events.RequestEnd) {
	if c.tracker == nil {
		return
	}
	c.tracker.SumSuccessfulRequests(1)
}
