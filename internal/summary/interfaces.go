// Package summary implements the stale-while-revalidate freshness decision
// and regeneration protocol for collection summaries: serve the stored
// summary while it is still newer than every comment, otherwise gather the
// recent comments and regenerate through the model.
package summary

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CollectionMeta is the stored summary state of a collection. Generated is
// true only when both the text and its timestamp are present (the two are
// written together or not at all).
type CollectionMeta struct {
	SummaryText string
	GeneratedAt time.Time
	Generated   bool
}

// FreshnessReader reads the two facts the freshness decision needs.
type FreshnessReader interface {
	// CollectionFreshness returns the stored summary state, or ErrNotFound
	// when the collection id is unknown.
	CollectionFreshness(ctx context.Context, id uuid.UUID) (CollectionMeta, error)
	// NewestCommentTime returns the created_at of the newest comment.
	// ok is false when the collection has no comments at all.
	NewestCommentTime(ctx context.Context, id uuid.UUID) (ts time.Time, ok bool, err error)
}

// CorpusReader fetches the recent comment texts, newest first.
type CorpusReader interface {
	RecentComments(ctx context.Context, id uuid.UUID, limit int) ([]string, error)
}

// SummaryWriter commits a regenerated summary. The text and timestamp must
// land in a single atomic update.
type SummaryWriter interface {
	UpdateSummary(ctx context.Context, id uuid.UUID, text string, generatedAt time.Time) error
}

// Store combines the three store capabilities the protocol uses.
type Store interface {
	FreshnessReader
	CorpusReader
	SummaryWriter
}

// Generator produces a summary from the ordered comment corpus. The call is
// network-bound; implementations must honor ctx cancellation.
type Generator interface {
	Generate(ctx context.Context, comments []string) (string, error)
}
