package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getCollectionSummary = `
SELECT ai_summary_text, last_summary_generated_at
FROM collections
WHERE id = $1
`

type GetCollectionSummaryRow struct {
	AiSummaryText          pgtype.Text
	LastSummaryGeneratedAt pgtype.Timestamptz
}

// GetCollectionSummary returns the stored summary pair for a collection.
// pgx.ErrNoRows when the id is unknown.
func (q *Queries) GetCollectionSummary(ctx context.Context, id uuid.UUID) (GetCollectionSummaryRow, error) {
	row := q.db.QueryRow(ctx, getCollectionSummary, id)
	var r GetCollectionSummaryRow
	err := row.Scan(&r.AiSummaryText, &r.LastSummaryGeneratedAt)
	return r, err
}

const updateCollectionSummary = `
UPDATE collections
SET ai_summary_text = $2, last_summary_generated_at = $3
WHERE id = $1
`

type UpdateCollectionSummaryParams struct {
	ID                     uuid.UUID
	AiSummaryText          string
	LastSummaryGeneratedAt pgtype.Timestamptz
}

// UpdateCollectionSummary sets both summary columns in one statement and
// returns how many rows were touched.
func (q *Queries) UpdateCollectionSummary(ctx context.Context, arg UpdateCollectionSummaryParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateCollectionSummary, arg.ID, arg.AiSummaryText, arg.LastSummaryGeneratedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
