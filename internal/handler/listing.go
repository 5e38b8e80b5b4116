package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/queue"
	"github.com/iliyamo/auction-house/internal/repository"
)

// ListingCreator is the slice of listing persistence the create endpoint
// needs.  *repository.ListingRepo satisfies it.
type ListingCreator interface {
	Create(ctx context.Context, l *model.Listing) error
}

// EventPublisher pushes auction events onto the message broker.  A nil
// publisher disables events; publish failures never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.AuctionEvent) error
}

// ListingHandler serves the authenticated listing operations: creating a
// listing, bidding, commenting and closing.  JWT authentication and role
// validation have already run by the time these methods execute.
type ListingHandler struct {
	Svc      *auction.Service
	Listings ListingCreator
	Events   EventPublisher
}

// NewListingHandler constructs a ListingHandler.  Events may be nil.
func NewListingHandler(svc *auction.Service, listings ListingCreator, events EventPublisher) *ListingHandler {
	if svc == nil || listings == nil {
		panic("nil dependency passed to NewListingHandler")
	}
	return &ListingHandler{Svc: svc, Listings: listings, Events: events}
}

type createListingReq struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	StartingBidCents int64   `json:"starting_bid_cents"`
	ImageURL         *string `json:"image_url"`
	Category         *string `json:"category"`
}

type placeBidReq struct {
	AmountCents int64 `json:"amount_cents"`
}

type postCommentReq struct {
	Content string `json:"content"`
}

// Create handles POST /v1/listings.  The caller becomes the owner and
// the listing starts active.
func (h *ListingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if req.StartingBidCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starting bid must not be negative"})
	}
	// Treat blank optional fields as absent so they store as NULL.
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) == "" {
		req.ImageURL = nil
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		req.Category = nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l := &model.Listing{
		OwnerID:          userID,
		Title:            req.Title,
		Description:      req.Description,
		StartingBidCents: req.StartingBidCents,
		ImageURL:         req.ImageURL,
		Category:         req.Category,
	}
	if err := h.Listings.Create(ctx, l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}
	return c.JSON(http.StatusCreated, toListingItem(*l))
}

// PlaceBid handles POST /v1/listings/:id/bids.  A rejected bid answers
// with the literal message the bid form shows.
func (h *ListingHandler) PlaceBid(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || listingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	var req placeBidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Svc.PlaceBid(ctx, listingID, userID, req.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case errors.Is(err, auction.ErrInvalidAmount):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "bid amount must be positive"})
		case errors.Is(err, auction.ErrListingClosed):
			return c.JSON(http.StatusConflict, echo.Map{"error": "listing is closed"})
		case errors.Is(err, auction.ErrBidTooLow):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Your bid must be higher than the current bid."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "place bid failed"})
	}

	h.publish(queue.AuctionEvent{
		Type:        queue.EventBidPlaced,
		ListingID:   listingID,
		ActorID:     userID,
		AmountCents: b.AmountCents,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, bidItem{
		ID:          b.ID,
		BidderID:    b.BidderID,
		AmountCents: b.AmountCents,
		Amount:      centsToFloat(b.AmountCents),
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// PostComment handles POST /v1/listings/:id/comments.
func (h *ListingHandler) PostComment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || listingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	var req postCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cm, err := h.Svc.PostComment(ctx, listingID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case errors.Is(err, auction.ErrEmptyComment):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment content is required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "post comment failed"})
	}
	return c.JSON(http.StatusCreated, commentItem{
		ID:        cm.ID,
		AuthorID:  cm.AuthorID,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Close handles POST /v1/listings/:id/close.  Only the owner may close;
// a second close answers 409 and never reassigns the winner.
func (h *ListingHandler) Close(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || listingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Svc.Close(ctx, listingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case errors.Is(err, auction.ErrNotOwner):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "only the owner can close a listing"})
		case errors.Is(err, auction.ErrListingClosed):
			return c.JSON(http.StatusConflict, echo.Map{"error": "listing is already closed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "close listing failed"})
	}

	h.publish(queue.AuctionEvent{
		Type:         queue.EventListingClosed,
		ListingID:    l.ID,
		ListingTitle: l.Title,
		ActorID:      userID,
		WinnerID:     l.WinnerID,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, toListingItem(*l))
}

// publish sends an event when a publisher is wired; failures are already
// logged inside the publisher and must not fail the request.
func (h *ListingHandler) publish(ev queue.AuctionEvent) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = h.Events.Publish(ctx, ev)
}
