package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/model"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		// JWT claims decode numbers as float64.
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// listingItem is the wire representation of a listing in list and detail
// responses.  Amounts appear both as exact cents and as a display float;
// all preconditions are evaluated on cents only.
type listingItem struct {
	ID               uint64  `json:"id"`
	OwnerID          uint64  `json:"owner_id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	StartingBidCents int64   `json:"starting_bid_cents"`
	StartingBid      float64 `json:"starting_bid"`
	ImageURL         *string `json:"image_url,omitempty"`
	Category         *string `json:"category,omitempty"`
	IsActive         bool    `json:"is_active"`
	WinnerID         *uint64 `json:"winner_id,omitempty"`
}

// bidItem is the wire representation of a bid.
type bidItem struct {
	ID          uint64  `json:"id"`
	BidderID    uint64  `json:"bidder_id"`
	AmountCents int64   `json:"amount_cents"`
	Amount      float64 `json:"amount"`
	CreatedAt   string  `json:"created_at"`
}

// commentItem is the wire representation of a comment.
type commentItem struct {
	ID        uint64 `json:"id"`
	AuthorID  uint64 `json:"author_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func toListingItem(l model.Listing) listingItem {
	return listingItem{
		ID:               l.ID,
		OwnerID:          l.OwnerID,
		Title:            l.Title,
		Description:      l.Description,
		StartingBidCents: l.StartingBidCents,
		StartingBid:      centsToFloat(l.StartingBidCents),
		ImageURL:         l.ImageURL,
		Category:         l.Category,
		IsActive:         l.IsActive,
		WinnerID:         l.WinnerID,
	}
}

func toListingItems(ls []model.Listing) []listingItem {
	out := make([]listingItem, 0, len(ls))
	for _, l := range ls {
		out = append(out, toListingItem(l))
	}
	return out
}

// centsToFloat is display-only; it never feeds back into a comparison.
func centsToFloat(cents int64) float64 {
	return float64(cents) / 100.0
}
