// Package store adapts the Postgres queries to the summary capability
// interfaces.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/museumku/ai-service/internal/db"
	"github.com/museumku/ai-service/internal/summary"
)

// Postgres implements summary.Store over db.Queries.
type Postgres struct {
	q *db.Queries
}

var _ summary.Store = (*Postgres)(nil)

func NewPostgres(q *db.Queries) *Postgres {
	return &Postgres{q: q}
}

func (p *Postgres) CollectionFreshness(ctx context.Context, id uuid.UUID) (summary.CollectionMeta, error) {
	row, err := p.q.GetCollectionSummary(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return summary.CollectionMeta{}, summary.ErrNotFound
	}
	if err != nil {
		return summary.CollectionMeta{}, fmt.Errorf("get collection summary: %w", err)
	}
	var meta summary.CollectionMeta
	if row.AiSummaryText.Valid && row.LastSummaryGeneratedAt.Valid {
		meta = summary.CollectionMeta{
			SummaryText: row.AiSummaryText.String,
			GeneratedAt: row.LastSummaryGeneratedAt.Time,
			Generated:   true,
		}
	}
	return meta, nil
}

func (p *Postgres) NewestCommentTime(ctx context.Context, id uuid.UUID) (time.Time, bool, error) {
	ts, err := p.q.GetNewestCommentTime(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get newest comment time: %w", err)
	}
	return ts.Time, ts.Valid, nil
}

func (p *Postgres) RecentComments(ctx context.Context, id uuid.UUID, limit int) ([]string, error) {
	rows, err := p.q.ListRecentComments(ctx, db.ListRecentCommentsParams{
		CollectionID: id,
		Limit:        int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list recent comments: %w", err)
	}
	texts := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.CommentText != "" {
			texts = append(texts, r.CommentText)
		}
	}
	return texts, nil
}

func (p *Postgres) UpdateSummary(ctx context.Context, id uuid.UUID, text string, generatedAt time.Time) error {
	n, err := p.q.UpdateCollectionSummary(ctx, db.UpdateCollectionSummaryParams{
		ID:                     id,
		AiSummaryText:          text,
		LastSummaryGeneratedAt: pgtype.Timestamptz{Time: generatedAt, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("update collection summary: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no rows updated for collection %s", id)
	}
	return nil
}
