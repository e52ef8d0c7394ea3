package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SentinelText is the caller-facing literal returned when a collection has
// too few comments to summarize. Not an error.
const SentinelText = "Belum cukup data untuk merangkum."

// Origin tags which path produced the summary text.
type Origin int

const (
	OriginCached Origin = iota
	OriginGenerated
	OriginInsufficient
)

func (o Origin) String() string {
	switch o {
	case OriginCached:
		return "cached"
	case OriginGenerated:
		return "generated"
	case OriginInsufficient:
		return "insufficient"
	}
	return "unknown"
}

// Outcome is the success shape of one Summarize traversal.
type Outcome struct {
	Summary string
	Origin  Origin
}

// Service coordinates the oracle, the gatherer and the regeneration commit.
// It holds no cross-request state; two concurrent stale observers may both
// regenerate and the last write wins. That duplicate model call is an
// accepted trade-off; do not add per-collection locking here without
// revisiting the concurrency notes in DESIGN.md.
type Service struct {
	store    Store
	gen      Generator
	oracle   Oracle
	gatherer Gatherer
	now      func() time.Time
}

func NewService(store Store, gen Generator) *Service {
	return &Service{
		store:    store,
		gen:      gen,
		oracle:   Oracle{store: store},
		gatherer: Gatherer{store: store},
		now:      time.Now,
	}
}

// Summarize runs one traversal of the freshness/regeneration state machine:
// fresh serves the cached text, stale gathers the corpus, a sufficient
// corpus regenerates and commits. All failures leave the core classified:
// ErrNotFound, ErrStoreUnavailable, ErrGenerationFailed or ErrPersistFailed.
// Nothing is retried here; retry policy belongs to the caller.
func (s *Service) Summarize(ctx context.Context, id uuid.UUID) (Outcome, error) {
	res, err := s.oracle.Evaluate(ctx, id)
	if err != nil {
		return Outcome{}, classifyRead(err)
	}
	if res.State == Fresh {
		return Outcome{Summary: res.Text, Origin: OriginCached}, nil
	}

	corpus, err := s.gatherer.Gather(ctx, id, CorpusLimit)
	if err != nil {
		return Outcome{}, classifyRead(err)
	}
	if !Sufficient(corpus) {
		return Outcome{Summary: SentinelText, Origin: OriginInsufficient}, nil
	}

	text, err := s.gen.Generate(ctx, corpus)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{}, fmt.Errorf("%w: empty model response", ErrGenerationFailed)
	}

	// Commit timestamp is the instant of the write, not the call start.
	generatedAt := s.now().UTC()
	if err := s.store.UpdateSummary(ctx, id, text, generatedAt); err != nil {
		return Outcome{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return Outcome{Summary: text, Origin: OriginGenerated}, nil
}

// classifyRead keeps ErrNotFound intact and tags every other read failure
// as transient store unavailability, so no driver error leaves the core raw.
func classifyRead(err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
