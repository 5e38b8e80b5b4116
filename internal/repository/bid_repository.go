package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/auction-house/internal/model"
)

// BidRepo manages persistence for bids.  Bids are append-only; there
// are deliberately no update or delete methods.
type BidRepo struct {
	db *sql.DB
}

// NewBidRepo constructs a BidRepo with the given DB handle.
func NewBidRepo(db *sql.DB) *BidRepo {
	return &BidRepo{db: db}
}

// Create inserts a new bid and assigns the generated ID and creation
// timestamp back to the struct.
func (r *BidRepo) Create(ctx context.Context, b *model.Bid) error {
	const q = `INSERT INTO bids (listing_id, bidder_id, amount_cents) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.ListingID, b.BidderID, b.AmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT id, listing_id, bidder_id, amount_cents, created_at FROM bids WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(
		&b.ID, &b.ListingID, &b.BidderID, &b.AmountCents, &b.CreatedAt,
	)
}

// ListByListing returns the full bid history of a listing in insertion
// order.  Insertion order doubles as the close-time tie-break: when two
// bids share the maximum amount, the earlier one wins.
func (r *BidRepo) ListByListing(ctx context.Context, listingID uint64) ([]model.Bid, error) {
	const q = `SELECT id, listing_id, bidder_id, amount_cents, created_at FROM bids WHERE listing_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Bid
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.ID, &b.ListingID, &b.BidderID, &b.AmountCents, &b.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
