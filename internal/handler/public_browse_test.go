package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/model"
)

func strptr(s string) *string { return &s }

func TestGetActiveAndClosedListings(t *testing.T) {
	db := newFakeDB()
	db.addListing(model.Listing{ID: 1, OwnerID: 1, Title: "Lamp", StartingBidCents: 1000, IsActive: true, Category: strptr("Home")})
	db.addListing(model.Listing{ID: 2, OwnerID: 2, Title: "Phone", StartingBidCents: 9000, IsActive: false})
	h := NewPublicHandler(newTestService(db))

	rec := doJSON(t, h.GetActiveListings, http.MethodGet, "", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := body(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	require.Equal(t, "Lamp", items[0].(map[string]any)["title"])

	rec = doJSON(t, h.GetClosedListings, http.MethodGet, "", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items = body(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	require.Equal(t, "Phone", items[0].(map[string]any)["title"])
}

func TestGetListingDetail(t *testing.T) {
	db := newFakeDB()
	db.addListing(model.Listing{ID: 1, OwnerID: 1, Title: "Lamp", StartingBidCents: 1000, IsActive: true})
	svc := newTestService(db)
	h := NewPublicHandler(svc)

	_, err := svc.PlaceBid(context.Background(), 1, 2, 1500)
	require.NoError(t, err)
	_, err = svc.PostComment(context.Background(), 1, 3, "great lamp")
	require.NoError(t, err)

	rec := doJSON(t, h.GetListing, http.MethodGet, "", 0, map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := body(t, rec)
	require.Equal(t, float64(1500), resp["highest_bid_cents"])
	require.Equal(t, float64(15), resp["highest_bid"])
	require.Len(t, resp["bids"].([]any), 1)
	require.Len(t, resp["comments"].([]any), 1)

	rec = doJSON(t, h.GetListing, http.MethodGet, "", 0, map[string]string{"id": "42"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h.GetListing, http.MethodGet, "", 0, map[string]string{"id": "zero"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCategories(t *testing.T) {
	db := newFakeDB()
	h := NewPublicHandler(newTestService(db))

	// Empty database answers with an empty array, not null.
	rec := doJSON(t, h.GetCategories, http.MethodGet, "", 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{}, body(t, rec)["items"])

	db.addListing(model.Listing{ID: 1, OwnerID: 1, Title: "Lamp", StartingBidCents: 100, IsActive: true, Category: strptr("Home")})
	db.addListing(model.Listing{ID: 2, OwnerID: 1, Title: "Phone", StartingBidCents: 100, IsActive: false, Category: strptr("Electronics")})

	// Closed listings contribute no categories.
	rec = doJSON(t, h.GetCategories, http.MethodGet, "", 0, nil)
	require.Equal(t, []any{"Home"}, body(t, rec)["items"])
}

func TestGetCategoryListings(t *testing.T) {
	db := newFakeDB()
	db.addListing(model.Listing{ID: 1, OwnerID: 1, Title: "Lamp", StartingBidCents: 100, IsActive: true, Category: strptr("Home")})
	db.addListing(model.Listing{ID: 2, OwnerID: 1, Title: "Rug", StartingBidCents: 200, IsActive: true, Category: strptr("Home")})
	db.addListing(model.Listing{ID: 3, OwnerID: 1, Title: "Phone", StartingBidCents: 300, IsActive: true, Category: strptr("Electronics")})
	h := NewPublicHandler(newTestService(db))

	rec := doJSON(t, h.GetCategoryListings, http.MethodGet, "", 0, map[string]string{"name": "Home"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := body(t, rec)
	require.Equal(t, "Home", resp["category"])
	require.Len(t, resp["items"].([]any), 2)

	// Unknown category is an empty result, not an error.
	rec = doJSON(t, h.GetCategoryListings, http.MethodGet, "", 0, map[string]string{"name": "Toys"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body(t, rec)["items"].([]any), 0)
}
