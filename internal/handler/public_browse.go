// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public browsing API: unauthenticated
// users can page through open and closed listings, explore categories and
// view a listing together with its bid history and comments.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints on top of
// the auction service.
type PublicHandler struct {
	Svc *auction.Service
}

// NewPublicHandler constructs a PublicHandler and panics on a nil service.
func NewPublicHandler(svc *auction.Service) *PublicHandler {
	if svc == nil {
		panic("nil service passed to NewPublicHandler")
	}
	return &PublicHandler{Svc: svc}
}

// listingDetailResp is the full listing page payload.
type listingDetailResp struct {
	Listing         listingItem   `json:"listing"`
	HighestBidCents int64         `json:"highest_bid_cents"`
	HighestBid      float64       `json:"highest_bid"`
	Bids            []bidItem     `json:"bids"`
	Comments        []commentItem `json:"comments"`
}

// GetActiveListings handles GET /v1/listings: all open auctions.
func (h *PublicHandler) GetActiveListings(c echo.Context) error {
	listings, err := h.Svc.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toListingItems(listings)})
}

// GetClosedListings handles GET /v1/listings/closed: finished auctions,
// winner included where one was determined.
func (h *PublicHandler) GetClosedListings(c echo.Context) error {
	listings, err := h.Svc.ListClosed(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toListingItems(listings)})
}

// GetListing handles GET /v1/listings/:id: one listing with its bids,
// comments and the current highest bid.
func (h *PublicHandler) GetListing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	d, err := h.Svc.Listing(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	bids := make([]bidItem, 0, len(d.Bids))
	for _, b := range d.Bids {
		bids = append(bids, bidItem{
			ID:          b.ID,
			BidderID:    b.BidderID,
			AmountCents: b.AmountCents,
			Amount:      centsToFloat(b.AmountCents),
			CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	comments := make([]commentItem, 0, len(d.Comments))
	for _, cm := range d.Comments {
		comments = append(comments, commentItem{
			ID:        cm.ID,
			AuthorID:  cm.AuthorID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, listingDetailResp{
		Listing:         toListingItem(*d.Listing),
		HighestBidCents: d.HighestBidCents,
		HighestBid:      centsToFloat(d.HighestBidCents),
		Bids:            bids,
		Comments:        comments,
	})
}

// GetCategories handles GET /v1/categories: the distinct category names
// among open listings.
func (h *PublicHandler) GetCategories(c echo.Context) error {
	cats, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if cats == nil {
		cats = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cats})
}

// GetCategoryListings handles GET /v1/categories/:name: open listings in
// one category.
func (h *PublicHandler) GetCategoryListings(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}
	listings, err := h.Svc.ListByCategory(c.Request().Context(), name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"category": name, "items": toListingItems(listings)})
}
