package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/handler"
)

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler exposes handlers that return sanitized
// listing data.  These routes do not apply any JWT or role middleware and
// are intended for guest users.  The optional cache middleware, when
// non-nil, serves repeated GETs straight from Redis.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	// Expose the active listings index page
	g.GET("/listings", p.GetActiveListings)
	// Closed listings, newest first
	g.GET("/listings/closed", p.GetClosedListings)
	// Listing detail: bids, comments and the current price
	g.GET("/listings/:id", p.GetListing)
	// Distinct categories that have at least one active listing
	g.GET("/categories", p.GetCategories)
	// Active listings filtered by category name
	g.GET("/categories/:name", p.GetCategoryListings)
}
