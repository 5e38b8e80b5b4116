package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/auction-house/internal/model"
)

// WatchlistRepo manages the `watchlist` join table linking users to the
// listings they follow.  Membership is a pure set: adding an existing
// pair and removing a missing pair are both harmless no-ops at the SQL
// level, which keeps the toggle operation race-tolerant.
type WatchlistRepo struct {
	db *sql.DB
}

// NewWatchlistRepo constructs a WatchlistRepo with the given DB handle.
func NewWatchlistRepo(db *sql.DB) *WatchlistRepo {
	return &WatchlistRepo{db: db}
}

// IsWatching reports whether the user currently watches the listing.
func (r *WatchlistRepo) IsWatching(ctx context.Context, userID, listingID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM watchlist WHERE user_id = ? AND listing_id = ? LIMIT 1`,
		userID, listingID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Add puts the listing on the user's watchlist.  INSERT IGNORE makes the
// call idempotent under the composite primary key.
func (r *WatchlistRepo) Add(ctx context.Context, userID, listingID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO watchlist (user_id, listing_id) VALUES (?, ?)`,
		userID, listingID)
	return err
}

// Remove takes the listing off the user's watchlist.
func (r *WatchlistRepo) Remove(ctx context.Context, userID, listingID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_id = ? AND listing_id = ?`,
		userID, listingID)
	return err
}

// ListListings returns the listings on the user's watchlist, most
// recently watched first.
func (r *WatchlistRepo) ListListings(ctx context.Context, userID uint64) ([]model.Listing, error) {
	const q = `SELECT l.id, l.owner_id, l.title, l.description, l.starting_bid_cents, l.image_url, l.category, l.is_active, l.winner_id, l.created_at, l.updated_at
               FROM listings l
               JOIN watchlist w ON w.listing_id = l.id
               WHERE w.user_id = ?
               ORDER BY w.created_at DESC, l.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Listing
	for rows.Next() {
		var l model.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
