package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/repository"
)

// WatchlistHandler serves the authenticated watchlist endpoints.
type WatchlistHandler struct {
	Svc *auction.Service
}

// NewWatchlistHandler constructs a WatchlistHandler and panics on a nil
// service.
func NewWatchlistHandler(svc *auction.Service) *WatchlistHandler {
	if svc == nil {
		panic("nil service passed to NewWatchlistHandler")
	}
	return &WatchlistHandler{Svc: svc}
}

// List handles GET /v1/watchlist: the caller's watched listings.
func (h *WatchlistHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	listings, err := h.Svc.Watchlist(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toListingItems(listings)})
}

// Toggle handles POST /v1/listings/:id/watch: flips watch membership and
// reports the resulting state.
func (h *WatchlistHandler) Toggle(c echo.Context) error {
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

	watching, err := h.Svc.ToggleWatch(ctx, listingID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle watch failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"listing_id": listingID, "watching": watching})
}
