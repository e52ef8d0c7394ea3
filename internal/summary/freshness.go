package summary

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Freshness is the tri-state outcome of the timestamp comparison.
type Freshness int

const (
	// Fresh means the stored summary already covers the newest comment.
	Fresh Freshness = iota
	// Stale means at least one comment is newer than the stored summary,
	// or no summary has been generated yet.
	Stale
	// Empty means the collection has no comments at all. It proceeds to
	// the sufficiency gate like Stale, but lets callers skip the corpus
	// fetch if they want to.
	Empty
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case Empty:
		return "empty"
	}
	return "unknown"
}

// FreshnessResult carries the decision plus the cached text when Fresh.
type FreshnessResult struct {
	State Freshness
	Text  string
}

// Decide is the pure freshness rule. A summary generated at the exact
// instant of the newest comment already accounts for it, so equality
// counts as fresh. hasComments is false when the collection has no
// comments; that is Empty regardless of any stored summary.
func Decide(meta CollectionMeta, newest time.Time, hasComments bool) FreshnessResult {
	if !hasComments {
		return FreshnessResult{State: Empty}
	}
	if meta.Generated && !meta.GeneratedAt.Before(newest) {
		return FreshnessResult{State: Fresh, Text: meta.SummaryText}
	}
	return FreshnessResult{State: Stale}
}

// Oracle evaluates freshness for a collection. Pure read, no side effects.
type Oracle struct {
	store FreshnessReader
}

// Evaluate reads the stored summary state and the newest comment timestamp
// and applies Decide. ErrNotFound passes through for unknown collections.
func (o Oracle) Evaluate(ctx context.Context, id uuid.UUID) (FreshnessResult, error) {
	meta, err := o.store.CollectionFreshness(ctx, id)
	if err != nil {
		return FreshnessResult{}, err
	}
	newest, ok, err := o.store.NewestCommentTime(ctx, id)
	if err != nil {
		return FreshnessResult{}, err
	}
	return Decide(meta, newest, ok), nil
}
