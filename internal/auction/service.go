// Package auction implements the bidding and closing rules of the
// system: highest-bid computation, bid monotonicity, the one-way close
// transition that fixes a winner, and watchlist toggling.  Everything
// else in the application is plain record shuffling; this package is
// where the invariants live.
package auction

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/auction-house/internal/model"
)

// ListingStore is the slice of listing persistence the service needs.
// *repository.ListingRepo satisfies it; tests substitute an in-memory
// implementation.
type ListingStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Listing, error)
	ListActive(ctx context.Context) ([]model.Listing, error)
	ListClosed(ctx context.Context) ([]model.Listing, error)
	ListByCategory(ctx context.Context, category string) ([]model.Listing, error)
	Categories(ctx context.Context) ([]string, error)
	Close(ctx context.Context, id uint64, winnerID *uint64) error
}

// BidStore persists the append-only bid history of a listing.
type BidStore interface {
	Create(ctx context.Context, b *model.Bid) error
	ListByListing(ctx context.Context, listingID uint64) ([]model.Bid, error)
}

// CommentStore persists listing comments.
type CommentStore interface {
	Create(ctx context.Context, cm *model.Comment) error
	ListByListing(ctx context.Context, listingID uint64) ([]model.Comment, error)
}

// WatchStore maintains the user-to-listing watch relation.
type WatchStore interface {
	IsWatching(ctx context.Context, userID, listingID uint64) (bool, error)
	Add(ctx context.Context, userID, listingID uint64) error
	Remove(ctx context.Context, userID, listingID uint64) error
	ListListings(ctx context.Context, userID uint64) ([]model.Listing, error)
}

// Service enforces the auction lifecycle rules on top of the stores.
// PlaceBid and Close run under a per-listing mutex so that reading the
// current highest bid and writing the next state are serialized per
// listing; reads and unrelated listings are not blocked.
type Service struct {
	listings ListingStore
	bids     BidStore
	comments CommentStore
	watchers WatchStore
	locks    *lockTable
}

// NewService constructs a Service and panics if any store is nil.
func NewService(listings ListingStore, bids BidStore, comments CommentStore, watchers WatchStore) *Service {
	if listings == nil || bids == nil || comments == nil || watchers == nil {
		panic("nil store passed to auction.NewService")
	}
	return &Service{
		listings: listings,
		bids:     bids,
		comments: comments,
		watchers: watchers,
		locks:    newLockTable(),
	}
}

// Detail aggregates everything the listing page needs in one read.
type Detail struct {
	Listing         *model.Listing
	Bids            []model.Bid
	Comments        []model.Comment
	HighestBidCents int64
}

// HighestBid returns the listing's current price in cents: the maximum
// bid amount, or the starting bid when no bids exist.  It never returns
// less than the starting bid.
func (s *Service) HighestBid(ctx context.Context, listingID uint64) (int64, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return 0, err
	}
	bids, err := s.bids.ListByListing(ctx, listingID)
	if err != nil {
		return 0, err
	}
	return highestOf(l, bids), nil
}

// PlaceBid validates and records a bid.  The amount must be positive,
// the listing must still be open, and the amount must strictly exceed
// the current highest bid.  On success the returned bid is the new
// highest and the latest entry in the listing's history.
func (s *Service) PlaceBid(ctx context.Context, listingID, bidderID uint64, amountCents int64) (*model.Bid, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	unlock := s.locks.lock(listingID)
	defer unlock()

	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !l.IsActive {
		return nil, ErrListingClosed
	}
	bids, err := s.bids.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("auction: load bids for listing %d: %w", listingID, err)
	}
	if current := highestOf(l, bids); amountCents <= current {
		return nil, fmt.Errorf("%w: current highest is %d", ErrBidTooLow, current)
	}

	b := &model.Bid{ListingID: listingID, BidderID: bidderID, AmountCents: amountCents}
	if err := s.bids.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("auction: record bid on listing %d: %w", listingID, err)
	}
	return b, nil
}

// PostComment appends a comment to a listing.  The listing must exist
// and the content must be non-empty; there is no further validation.
func (s *Service) PostComment(ctx context.Context, listingID, authorID uint64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	cm := &model.Comment{ListingID: listingID, AuthorID: authorID, Content: content}
	if err := s.comments.Create(ctx, cm); err != nil {
		return nil, fmt.Errorf("auction: record comment on listing %d: %w", listingID, err)
	}
	return cm, nil
}

// Close performs the one-way transition from active to closed.  Only the
// owner may close.  The winner is the bidder of the highest bid, with
// the earliest bid winning ties; a listing with no bids closes without a
// winner.  Closing an already closed listing fails with ErrListingClosed
// and never touches the recorded winner.
func (s *Service) Close(ctx context.Context, listingID, requesterID uint64) (*model.Listing, error) {
	unlock := s.locks.lock(listingID)
	defer unlock()

	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != requesterID {
		return nil, ErrNotOwner
	}
	if !l.IsActive {
		return nil, ErrListingClosed
	}

	bids, err := s.bids.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("auction: load bids for listing %d: %w", listingID, err)
	}
	var winnerID *uint64
	if wb := winningBid(bids); wb != nil {
		id := wb.BidderID
		winnerID = &id
	}
	if err := s.listings.Close(ctx, listingID, winnerID); err != nil {
		return nil, fmt.Errorf("auction: close listing %d: %w", listingID, err)
	}
	l.IsActive = false
	l.WinnerID = winnerID
	return l, nil
}

// ToggleWatch flips the user's watch membership for a listing and
// reports the resulting state: true when the user now watches the
// listing, false when they no longer do.
func (s *Service) ToggleWatch(ctx context.Context, listingID, userID uint64) (bool, error) {
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		return false, err
	}
	watching, err := s.watchers.IsWatching(ctx, userID, listingID)
	if err != nil {
		return false, err
	}
	if watching {
		if err := s.watchers.Remove(ctx, userID, listingID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.watchers.Add(ctx, userID, listingID); err != nil {
		return false, err
	}
	return true, nil
}

// Listing returns a listing together with its bid history, comments and
// current highest bid.
func (s *Service) Listing(ctx context.Context, id uint64) (*Detail, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bids, err := s.bids.ListByListing(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByListing(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Listing:         l,
		Bids:            bids,
		Comments:        comments,
		HighestBidCents: highestOf(l, bids),
	}, nil
}

// ListActive returns all open listings.
func (s *Service) ListActive(ctx context.Context) ([]model.Listing, error) {
	return s.listings.ListActive(ctx)
}

// ListClosed returns all closed listings.
func (s *Service) ListClosed(ctx context.Context) ([]model.Listing, error) {
	return s.listings.ListClosed(ctx)
}

// ListByCategory returns the open listings in a category.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]model.Listing, error) {
	return s.listings.ListByCategory(ctx, category)
}

// Categories returns the distinct categories among open listings.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.listings.Categories(ctx)
}

// Watchlist returns the listings the user watches.
func (s *Service) Watchlist(ctx context.Context, userID uint64) ([]model.Listing, error) {
	return s.watchers.ListListings(ctx, userID)
}

// highestOf computes the current price of a listing from its bid
// history: the maximum bid amount, or the starting bid when the history
// is empty.
func highestOf(l *model.Listing, bids []model.Bid) int64 {
	highest := l.StartingBidCents
	for _, b := range bids {
		if b.AmountCents > highest {
			highest = b.AmountCents
		}
	}
	return highest
}

// winningBid picks the bid that wins at close time: the highest amount,
// earliest bid first on ties.  It returns nil for an empty history.
// Callers pass the history in insertion order, so keeping the first
// strict maximum implements the tie-break.
func winningBid(bids []model.Bid) *model.Bid {
	var win *model.Bid
	for i := range bids {
		if win == nil || bids[i].AmountCents > win.AmountCents {
			win = &bids[i]
		}
	}
	return win
}
