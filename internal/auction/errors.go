package auction

import "errors"

// Business rule errors surfaced by the auction service.  Handlers
// translate these into HTTP responses; everything else that bubbles out
// of a service call is a storage failure and maps to a 500.
var (
	// ErrBidTooLow rejects a bid that does not strictly exceed the
	// listing's current highest bid.
	ErrBidTooLow = errors.New("bid amount too low")

	// ErrInvalidAmount rejects a non-positive bid amount before any
	// state is read.
	ErrInvalidAmount = errors.New("invalid bid amount")

	// ErrListingClosed rejects bids against a closed listing and a
	// second close of an already closed listing.
	ErrListingClosed = errors.New("listing is closed")

	// ErrNotOwner rejects a close request from anyone but the
	// listing's owner.
	ErrNotOwner = errors.New("requester does not own the listing")

	// ErrEmptyComment rejects comments with no content.
	ErrEmptyComment = errors.New("comment content is empty")
)
