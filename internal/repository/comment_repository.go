package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/auction-house/internal/model"
)

// CommentRepo manages persistence for listing comments.  Comments are
// immutable once written.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo constructs a CommentRepo with the given DB handle.
func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// Create inserts a new comment and assigns the generated ID and creation
// timestamp back to the struct.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	const q = `INSERT INTO comments (listing_id, author_id, content) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, cm.ListingID, cm.AuthorID, cm.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	const sel = `SELECT id, listing_id, author_id, content, created_at FROM comments WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, cm.ID).Scan(
		&cm.ID, &cm.ListingID, &cm.AuthorID, &cm.Content, &cm.CreatedAt,
	)
}

// ListByListing returns all comments of a listing, oldest first.
func (r *CommentRepo) ListByListing(ctx context.Context, listingID uint64) ([]model.Comment, error) {
	const q = `SELECT id, listing_id, author_id, content, created_at FROM comments WHERE listing_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Comment
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(&cm.ID, &cm.ListingID, &cm.AuthorID, &cm.Content, &cm.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
