package model

import "time"

// Bid records a single offer against a listing, mirroring the
// `bids` table.  Bids are append-only: once written they are never
// updated or deleted, so the bid history of a listing is a full
// audit trail of the auction.
//
// Fields:
//  ID          – primary key identifier.
//  ListingID   – listing the bid was placed on.
//  BidderID    – user who placed the bid.
//  AmountCents – offered amount in cents; must strictly exceed the
//                listing's highest bid at the time of insertion.
//  CreatedAt   – creation timestamp; also the tie-break order when
//                two bids share the winning amount (earliest wins).
type Bid struct {
	ID          uint64    // bids.id
	ListingID   uint64    // bids.listing_id
	BidderID    uint64    // bids.bidder_id
	AmountCents int64     // bids.amount_cents
	CreatedAt   time.Time // bids.created_at
}
