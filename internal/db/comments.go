package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getNewestCommentTime = `
SELECT created_at
FROM comments
WHERE collection_id = $1
ORDER BY created_at DESC
LIMIT 1
`

// GetNewestCommentTime returns the created_at of the newest comment for a
// collection. pgx.ErrNoRows when the collection has no comments.
func (q *Queries) GetNewestCommentTime(ctx context.Context, collectionID uuid.UUID) (pgtype.Timestamptz, error) {
	row := q.db.QueryRow(ctx, getNewestCommentTime, collectionID)
	var ts pgtype.Timestamptz
	err := row.Scan(&ts)
	return ts, err
}

const listRecentComments = `
SELECT comment_text, created_at
FROM comments
WHERE collection_id = $1
ORDER BY created_at DESC
LIMIT $2
`

type ListRecentCommentsParams struct {
	CollectionID uuid.UUID
	Limit        int32
}

type ListRecentCommentsRow struct {
	CommentText string
	CreatedAt   pgtype.Timestamptz
}

// ListRecentComments returns up to Limit comments, newest first.
func (q *Queries) ListRecentComments(ctx context.Context, arg ListRecentCommentsParams) ([]ListRecentCommentsRow, error) {
	rows, err := q.db.Query(ctx, listRecentComments, arg.CollectionID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListRecentCommentsRow
	for rows.Next() {
		var r ListRecentCommentsRow
		if err := rows.Scan(&r.CommentText, &r.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
