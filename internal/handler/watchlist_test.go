package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/model"
)

func TestWatchlistToggleAndList(t *testing.T) {
	db := newFakeDB()
	db.addListing(model.Listing{ID: 1, OwnerID: 1, Title: "Lamp", StartingBidCents: 100, IsActive: true})
	h := NewWatchlistHandler(newTestService(db))

	// First toggle starts watching.
	rec := doJSON(t, h.Toggle, http.MethodPost, "", 4, map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body(t, rec)["watching"])

	rec = doJSON(t, h.List, http.MethodGet, "", 4, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body(t, rec)["items"].([]any), 1)

	// Second toggle stops watching; the list is empty again.
	rec = doJSON(t, h.Toggle, http.MethodPost, "", 4, map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, body(t, rec)["watching"])

	rec = doJSON(t, h.List, http.MethodGet, "", 4, nil)
	require.Len(t, body(t, rec)["items"].([]any), 0)
}

func TestWatchlistToggleErrors(t *testing.T) {
	db := newFakeDB()
	h := NewWatchlistHandler(newTestService(db))

	rec := doJSON(t, h.Toggle, http.MethodPost, "", 4, map[string]string{"id": "9"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h.Toggle, http.MethodPost, "", 4, map[string]string{"id": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h.Toggle, http.MethodPost, "", 0, map[string]string{"id": "1"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
