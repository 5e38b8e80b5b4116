// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in AuctionEvent.Type.
const (
	EventBidPlaced     = "bid.placed"
	EventListingClosed = "listing.closed"
)

// AuctionEvent is published when a bid is accepted or a listing is
// closed.  It carries enough information for downstream consumers to
// log or trigger analytics without querying the primary database.
type AuctionEvent struct {
	Type         string  `json:"type"`
	ListingID    uint64  `json:"listing_id"`
	ListingTitle string  `json:"listing_title"`
	ActorID      uint64  `json:"actor_id"`
	AmountCents  int64   `json:"amount_cents,omitempty"`
	WinnerID     *uint64 `json:"winner_id,omitempty"`
	OccurredAt   string  `json:"occurred_at"`
}
