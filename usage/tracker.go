package usage

import (
	"github.com/google/uuid"
	"github.com/strix-ai/strix/pkg/uuidx"
)

// Tracker accumulates token and request counts for a run. Counters are
// monotonically non-decreasing and the total always equals prompt plus
// completion tokens.
//
// A Tracker assumes synchronous delivery by a single caller context. When
// several goroutines share one instance, the caller owns the exclusion.
type Tracker struct {
	id                 uuid.UUID
	totalTokens        int
	promptTokens       int
	completionTokens   int
	successfulRequests int
}

// NewTracker returns an empty tracker with a fresh identity.
func NewTracker() *Tracker {
	return &Tracker{id: uuidx.New()}
}

// ID returns the identity assigned to this tracker at construction.
func (t *Tracker) ID() uuid.UUID {
	return t.id
}

// SumPromptTokens adds count to the prompt and total token counters.
func (t *Tracker) SumPromptTokens(count int) {
	t.promptTokens += count
	t.totalTokens += count
}

// SumCompletionTokens adds count to the completion and total token counters.
func (t *Tracker) SumCompletionTokens(count int) {
	t.completionTokens += count
	t.totalTokens += count
}

// SumSuccessfulRequests adds count to the successful request counter.
func (t *Tracker) SumSuccessfulRequests(count int) {
	t.successfulRequests += count
}

// Summary is a read-only snapshot of a Tracker.
type Summary struct {
	TotalTokens        int `json:"total_tokens"`
	PromptTokens       int `json:"prompt_tokens"`
	CompletionTokens   int `json:"completion_tokens"`
	SuccessfulRequests int `json:"successful_requests"`
}

// Summary returns the current counter values.
func (t *Tracker) Summary() Summary {
	return Summary{
		TotalTokens:        t.totalTokens,
		PromptTokens:       t.promptTokens,
		CompletionTokens:   t.completionTokens,
		SuccessfulRequests: t.successfulRequests,
	}
}
