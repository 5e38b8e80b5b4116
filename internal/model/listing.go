package model

import "time"

// Listing represents an item put up for auction, as stored in the
// `listings` table.  A listing belongs to its owner, accumulates
// bids and comments, and can be watched by many users through the
// `watchlist` join table.  Monetary amounts are stored as integer
// cents to keep bid comparisons exact.
//
// Fields:
//  ID               – primary key identifier of the listing.
//  OwnerID          – user who created the listing.
//  Title            – short item title.
//  Description      – free-form item description.
//  StartingBidCents – minimum acceptable opening amount in cents.
//  ImageURL         – optional link to a product image (nullable).
//  Category         – optional category label (nullable).
//  IsActive         – true while the auction is open for bidding.
//  WinnerID         – bidder who won the auction; set exactly once
//                     when the listing is closed and only when at
//                     least one bid exists (nullable).
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – timestamp of last update.
type Listing struct {
	ID               uint64    // listings.id
	OwnerID          uint64    // listings.owner_id
	Title            string    // listings.title
	Description      string    // listings.description
	StartingBidCents int64     // listings.starting_bid_cents
	ImageURL         *string   // listings.image_url (nullable)
	Category         *string   // listings.category (nullable)
	IsActive         bool      // listings.is_active
	WinnerID         *uint64   // listings.winner_id (nullable)
	CreatedAt        time.Time // listings.created_at
	UpdatedAt        time.Time // listings.updated_at
}
