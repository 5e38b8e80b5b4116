package router

// This file registers the authenticated auction routes.  Everything here
// requires a valid JWT and the USER role: creating listings, bidding,
// commenting, closing an auction and managing the personal watchlist.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/handler"
	"github.com/iliyamo/auction-house/internal/middleware"
)

// RegisterUser registers USER-scoped endpoints under /v1.  All routes
// require a valid JWT and the USER role.  The optional bidLimiter
// middleware, when non-nil, applies a per-user token bucket to the bid
// endpoint so a single account cannot flood an auction.
func RegisterUser(e *echo.Echo, l *handler.ListingHandler, w *handler.WatchlistHandler, jwtSecret string, bidLimiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER"),
	)

	// ---- Listings ----
	g.POST("/listings", l.Create)
	g.POST("/listings/:id/close", l.Close)

	// ---- Bids ----
	if bidLimiter != nil {
		g.POST("/listings/:id/bids", l.PlaceBid, bidLimiter)
	} else {
		g.POST("/listings/:id/bids", l.PlaceBid)
	}

	// ---- Comments ----
	g.POST("/listings/:id/comments", l.PostComment)

	// ---- Watchlist ----
	g.GET("/watchlist", w.List)
	g.POST("/listings/:id/watch", w.Toggle)
}
