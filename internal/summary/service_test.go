package summary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/museumku/ai-service/internal/summary"
)

type write struct {
	text        string
	generatedAt time.Time
}

// fakeStore is a deterministic in-memory summary.Store. A successful
// UpdateSummary mutates meta the way the real store would, so a second
// Summarize observes the committed state.
type fakeStore struct {
	meta        summary.CollectionMeta
	metaErr     error
	newest      time.Time
	hasComments bool
	newestErr   error
	comments    []string
	commentsErr error
	writeErr    error

	metaCalls   int
	newestCalls int
	gatherCalls int
	gatherLimit int
	writes      []write
}

func (f *fakeStore) CollectionFreshness(ctx context.Context, id uuid.UUID) (summary.CollectionMeta, error) {
	f.metaCalls++
	if f.metaErr != nil {
		return summary.CollectionMeta{}, f.metaErr
	}
	return f.meta, nil
}

func (f *fakeStore) NewestCommentTime(ctx context.Context, id uuid.UUID) (time.Time, bool, error) {
	f.newestCalls++
	if f.newestErr != nil {
		return time.Time{}, false, f.newestErr
	}
	return f.newest, f.hasComments, nil
}

func (f *fakeStore) RecentComments(ctx context.Context, id uuid.UUID, limit int) ([]string, error) {
	f.gatherCalls++
	f.gatherLimit = limit
	if f.commentsErr != nil {
		return nil, f.commentsErr
	}
	if len(f.comments) > limit {
		return f.comments[:limit], nil
	}
	return f.comments, nil
}

func (f *fakeStore) UpdateSummary(ctx context.Context, id uuid.UUID, text string, generatedAt time.Time) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, write{text: text, generatedAt: generatedAt})
	f.meta = summary.CollectionMeta{SummaryText: text, GeneratedAt: generatedAt, Generated: true}
	return nil
}

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context, comments []string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestSummarizeFreshServesCached(t *testing.T) {
	st := &fakeStore{
		meta:        summary.CollectionMeta{SummaryText: "ringkasan lama", GeneratedAt: t0, Generated: true},
		newest:      t0.Add(-time.Second),
		hasComments: true,
	}
	gen := &fakeGenerator{text: "ringkasan baru"}
	svc := summary.NewService(st, gen)

	out, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, "ringkasan lama", out.Summary)
	require.Equal(t, summary.OriginCached, out.Origin)
	require.Zero(t, gen.calls, "fresh path must not call the model")
	require.Zero(t, st.gatherCalls, "fresh path must not gather a corpus")
	require.Empty(t, st.writes)
}

func TestSummarizeEqualTimestampIsFresh(t *testing.T) {
	st := &fakeStore{
		meta:        summary.CollectionMeta{SummaryText: "ringkasan", GeneratedAt: t0, Generated: true},
		newest:      t0,
		hasComments: true,
	}
	gen := &fakeGenerator{text: "baru"}
	svc := summary.NewService(st, gen)

	out, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, summary.OriginCached, out.Origin)
	require.Zero(t, gen.calls)
}

func TestSummarizeInsufficientCorpus(t *testing.T) {
	st := &fakeStore{
		meta:        summary.CollectionMeta{SummaryText: "ringkasan", GeneratedAt: t0, Generated: true},
		newest:      t0.Add(time.Second),
		hasComments: true,
		comments:    []string{"bagus", "keren"},
	}
	gen := &fakeGenerator{text: "baru"}
	svc := summary.NewService(st, gen)

	out, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, summary.SentinelText, out.Summary)
	require.Equal(t, summary.OriginInsufficient, out.Origin)
	require.Zero(t, gen.calls, "insufficient corpus must not call the model")
	require.Empty(t, st.writes)
	require.Equal(t, summary.CorpusLimit, st.gatherLimit)
}

func TestSummarizeExactlyAtThresholdIsSufficient(t *testing.T) {
	st := &fakeStore{
		hasComments: true,
		newest:      t0,
		comments:    []string{"satu", "dua", "tiga"},
	}
	gen := &fakeGenerator{text: "ringkasan tiga komentar"}
	svc := summary.NewService(st, gen)

	out, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, summary.OriginGenerated, out.Origin)
	require.Equal(t, 1, gen.calls)
	require.Len(t, st.writes, 1)
}

func TestSummarizeRegeneratesAndCommits(t *testing.T) {
	st := &fakeStore{
		hasComments: true,
		newest:      t0,
		comments:    []string{"a", "b", "c", "d", "e"},
	}
	gen := &fakeGenerator{text: "ringkasan segar"}
	svc := summary.NewService(st, gen)
	id := uuid.New()

	before := time.Now().UTC()
	out, err := svc.Summarize(context.Background(), id)
	after := time.Now().UTC()

	require.NoError(t, err)
	require.Equal(t, "ringkasan segar", out.Summary)
	require.Equal(t, summary.OriginGenerated, out.Origin)
	require.Len(t, st.writes, 1, "exactly one atomic commit")
	w := st.writes[0]
	require.Equal(t, "ringkasan segar", w.text)
	require.False(t, w.generatedAt.Before(before), "commit timestamp must be the write instant")
	require.False(t, w.generatedAt.After(after))

	// Idempotence: the next call serves the just-written text with no
	// second model call.
	again, err := svc.Summarize(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, summary.OriginCached, again.Origin)
	require.Equal(t, "ringkasan segar", again.Summary)
	require.Equal(t, 1, gen.calls)
	require.Len(t, st.writes, 1)
}

func TestSummarizeGenerationFailureLeavesStateUntouched(t *testing.T) {
	prior := summary.CollectionMeta{SummaryText: "ringkasan lama", GeneratedAt: t0, Generated: true}
	st := &fakeStore{
		meta:        prior,
		newest:      t0.Add(time.Minute),
		hasComments: true,
		comments:    []string{"a", "b", "c"},
	}
	gen := &fakeGenerator{err: errors.New("model quota exceeded")}
	svc := summary.NewService(st, gen)

	_, err := svc.Summarize(context.Background(), uuid.New())
	require.ErrorIs(t, err, summary.ErrGenerationFailed)
	require.Empty(t, st.writes)
	require.Equal(t, prior, st.meta, "prior stored state must be unchanged")
}

func TestSummarizeEmptyModelOutputIsGenerationFailure(t *testing.T) {
	st := &fakeStore{
		hasComments: true,
		newest:      t0,
		comments:    []string{"a", "b", "c"},
	}
	gen := &fakeGenerator{text: "   \n"}
	svc := summary.NewService(st, gen)

	_, err := svc.Summarize(context.Background(), uuid.New())
	require.ErrorIs(t, err, summary.ErrGenerationFailed)
	require.Empty(t, st.writes)
}

func TestSummarizePersistFailure(t *testing.T) {
	st := &fakeStore{
		hasComments: true,
		newest:      t0,
		comments:    []string{"a", "b", "c"},
		writeErr:    errors.New("connection reset"),
	}
	gen := &fakeGenerator{text: "ringkasan"}
	svc := summary.NewService(st, gen)

	_, err := svc.Summarize(context.Background(), uuid.New())
	require.ErrorIs(t, err, summary.ErrPersistFailed)
	require.NotErrorIs(t, err, summary.ErrGenerationFailed)
	require.Equal(t, 1, gen.calls, "generation did happen before the failed write")
}

func TestSummarizeUnknownCollection(t *testing.T) {
	st := &fakeStore{metaErr: summary.ErrNotFound}
	gen := &fakeGenerator{text: "x"}
	svc := summary.NewService(st, gen)

	_, err := svc.Summarize(context.Background(), uuid.New())
	require.ErrorIs(t, err, summary.ErrNotFound)
	require.Zero(t, st.newestCalls, "no reads beyond the existence check")
	require.Zero(t, st.gatherCalls)
	require.Zero(t, gen.calls)
}

func TestSummarizeGatherFailureAbortsBeforeGeneration(t *testing.T) {
	st := &fakeStore{
		hasComments: true,
		newest:      t0,
		commentsErr: errors.New("store unavailable"),
	}
	gen := &fakeGenerator{text: "x"}
	svc := summary.NewService(st, gen)

	_, err := svc.Summarize(context.Background(), uuid.New())
	require.ErrorIs(t, err, summary.ErrStoreUnavailable)
	require.Zero(t, gen.calls)
	require.Empty(t, st.writes)
}

func TestSummarizeEmptyCollectionReturnsSentinel(t *testing.T) {
	// Even with a cached summary, a collection with zero comments falls
	// through the sufficiency gate.
	st := &fakeStore{
		meta:        summary.CollectionMeta{SummaryText: "ringkasan", GeneratedAt: t0, Generated: true},
		hasComments: false,
	}
	gen := &fakeGenerator{text: "x"}
	svc := summary.NewService(st, gen)

	out, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, summary.SentinelText, out.Summary)
	require.Equal(t, summary.OriginInsufficient, out.Origin)
	require.Zero(t, gen.calls)
}
