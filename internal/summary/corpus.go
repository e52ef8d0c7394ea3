package summary

import (
	"context"

	"github.com/google/uuid"
)

const (
	// CorpusLimit caps how many recent comments feed one generation call.
	CorpusLimit = 50
	// MinComments is the sufficiency gate: fewer comments than this is not
	// enough signal to summarize. Exactly MinComments is sufficient.
	MinComments = 3
)

// Gatherer fetches the bounded recent comment corpus, newest first.
// Recency dominates prompt construction, so order matters.
type Gatherer struct {
	store CorpusReader
}

func (g Gatherer) Gather(ctx context.Context, id uuid.UUID, limit int) ([]string, error) {
	return g.store.RecentComments(ctx, id, limit)
}

// Sufficient reports whether the corpus clears the sufficiency gate.
func Sufficient(corpus []string) bool {
	return len(corpus) >= MinComments
}
