// Package repository contains data access logic for the auction domain.
// This file defines repository methods for listings. A Listing is the
// central record of the system: it is created by its owner, collects
// bids and comments while active, and is closed exactly once to fix
// the winner.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/auction-house/internal/model"
)

const listingColumns = `id, owner_id, title, description, starting_bid_cents, image_url, category, is_active, winner_id, created_at, updated_at`

// ListingRepo manages persistence for listings.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo constructs a ListingRepo with the given DB handle.
func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

// Create inserts a new listing and assigns the generated ID plus
// DB-default fields (is_active, timestamps) back to the struct.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	const q = `INSERT INTO listings (owner_id, title, description, starting_bid_cents, image_url, category) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, l.OwnerID, l.Title, l.Description, l.StartingBidCents, l.ImageURL, l.Category)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	// Fetch the freshly inserted row to populate default fields.
	const sel = `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
	return scanListing(r.db.QueryRowContext(ctx, sel, l.ID), l)
}

// GetByID retrieves a listing by its ID.  It returns ErrListingNotFound if
// there is no matching row.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
	var l model.Listing
	if err := scanListing(r.db.QueryRowContext(ctx, q, id), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListActive returns all open listings, newest first.
func (r *ListingRepo) ListActive(ctx context.Context) ([]model.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE is_active = 1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q)
}

// ListClosed returns all closed listings, newest first.
func (r *ListingRepo) ListClosed(ctx context.Context) ([]model.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE is_active = 0 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q)
}

// ListByCategory returns the open listings carrying the given category.
func (r *ListingRepo) ListByCategory(ctx context.Context, category string) ([]model.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE is_active = 1 AND category = ? ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, category)
}

// Categories returns the distinct non-empty category values among open
// listings, alphabetically.
func (r *ListingRepo) Categories(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT category FROM listings WHERE is_active = 1 AND category IS NOT NULL AND category <> '' ORDER BY category ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close marks a listing inactive and records the winner in one UPDATE so
// the transition never half-commits.  The is_active guard makes the write
// a no-op when the listing is already closed, so a winner can never be
// reassigned.  A missing row maps to ErrListingNotFound.
func (r *ListingRepo) Close(ctx context.Context, id uint64, winnerID *uint64) error {
	const q = `UPDATE listings SET is_active = 0, winner_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND is_active = 1`
	res, err := r.db.ExecContext(ctx, q, winnerID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Determine whether the row is missing or simply already closed.
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM listings WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrListingNotFound
	}
	return err
}

func (r *ListingRepo) list(ctx context.Context, q string, args ...any) ([]model.Listing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
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

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner, l *model.Listing) error {
	return row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.StartingBidCents,
		&l.ImageURL, &l.Category, &l.IsActive, &l.WinnerID,
		&l.CreatedAt, &l.UpdatedAt,
	)
}
