package auction

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
)

// memStore is an in-memory stand-in for the SQL repositories.  It
// implements ListingStore, BidStore, CommentStore and WatchStore so the
// service can be exercised without a database.
type memStore struct {
	listings map[uint64]*model.Listing
	bids     map[uint64][]model.Bid
	comments map[uint64][]model.Comment
	watching map[uint64]map[uint64]bool // userID -> listingID -> watching
	nextBid  uint64
}

func newMemStore() *memStore {
	return &memStore{
		listings: map[uint64]*model.Listing{},
		bids:     map[uint64][]model.Bid{},
		comments: map[uint64][]model.Comment{},
		watching: map[uint64]map[uint64]bool{},
	}
}

func (m *memStore) addListing(l model.Listing) {
	cp := l
	m.listings[l.ID] = &cp
}

func (m *memStore) GetByID(_ context.Context, id uint64) (*model.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) ListActive(_ context.Context) ([]model.Listing, error) {
	return m.filter(func(l *model.Listing) bool { return l.IsActive })
}

func (m *memStore) ListClosed(_ context.Context) ([]model.Listing, error) {
	return m.filter(func(l *model.Listing) bool { return !l.IsActive })
}

func (m *memStore) ListByCategory(_ context.Context, category string) ([]model.Listing, error) {
	return m.filter(func(l *model.Listing) bool {
		return l.IsActive && l.Category != nil && *l.Category == category
	})
}

func (m *memStore) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, l := range m.listings {
		if l.IsActive && l.Category != nil && *l.Category != "" {
			seen[*l.Category] = true
		}
	}
	var out []string
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) Close(_ context.Context, id uint64, winnerID *uint64) error {
	l, ok := m.listings[id]
	if !ok {
		return repository.ErrListingNotFound
	}
	if !l.IsActive {
		return nil // same no-op the SQL guard produces
	}
	l.IsActive = false
	l.WinnerID = winnerID
	return nil
}

func (m *memStore) filter(keep func(*model.Listing) bool) ([]model.Listing, error) {
	var out []model.Listing
	for _, l := range m.listings {
		if keep(l) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) Create(_ context.Context, b *model.Bid) error {
	m.nextBid++
	b.ID = m.nextBid
	m.bids[b.ListingID] = append(m.bids[b.ListingID], *b)
	return nil
}

func (m *memStore) ListByListing(_ context.Context, listingID uint64) ([]model.Bid, error) {
	return append([]model.Bid(nil), m.bids[listingID]...), nil
}

// commentStore wraps memStore so both Create methods can coexist.
type commentStore struct{ m *memStore }

func (cs commentStore) Create(_ context.Context, cm *model.Comment) error {
	cm.ID = uint64(len(cs.m.comments[cm.ListingID]) + 1)
	cs.m.comments[cm.ListingID] = append(cs.m.comments[cm.ListingID], *cm)
	return nil
}

func (cs commentStore) ListByListing(_ context.Context, listingID uint64) ([]model.Comment, error) {
	return append([]model.Comment(nil), cs.m.comments[listingID]...), nil
}

func (m *memStore) IsWatching(_ context.Context, userID, listingID uint64) (bool, error) {
	return m.watching[userID][listingID], nil
}

func (m *memStore) Add(_ context.Context, userID, listingID uint64) error {
	if m.watching[userID] == nil {
		m.watching[userID] = map[uint64]bool{}
	}
	m.watching[userID][listingID] = true
	return nil
}

func (m *memStore) Remove(_ context.Context, userID, listingID uint64) error {
	delete(m.watching[userID], listingID)
	return nil
}

func (m *memStore) ListListings(_ context.Context, userID uint64) ([]model.Listing, error) {
	var out []model.Listing
	for id := range m.watching[userID] {
		if l, ok := m.listings[id]; ok {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func newTestService(m *memStore) *Service {
	return NewService(m, m, commentStore{m}, m)
}

func str(s string) *string { return &s }

func TestHighestBid(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.addListing(model.Listing{ID: 1, OwnerID: 1, Title: "Lamp", StartingBidCents: 1000, IsActive: true})
	svc := newTestService(m)

	// No bids: the starting bid is the current price.
	got, err := svc.HighestBid(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1000), got)

	_, err = svc.PlaceBid(ctx, 1, 2, 1500)
	require.NoError(t, err)
	_, err = svc.PlaceBid(ctx, 1, 3, 2000)
	require.NoError(t, err)

	got, err = svc.HighestBid(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2000), got)

	// Unknown listing surfaces not-found.
	_, err = svc.HighestBid(ctx, 99)
	require.ErrorIs(t, err, repository.ErrListingNotFound)
}

func TestPlaceBid(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		listing model.Listing
		seed    []int64 // existing bids, in order
		amount  int64
		wantErr error
	}{
		{
			name:    "first_bid_above_starting",
			listing: model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 1000, IsActive: true},
			amount:  1500,
		},
		{
			name:    "first_bid_equal_to_starting_rejected",
			listing: model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 1000, IsActive: true},
			amount:  1000,
			wantErr: ErrBidTooLow,
		},
		{
			name:    "equal_to_current_highest_rejected",
			listing: model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true},
			seed:    []int64{1000},
			amount:  1000,
			wantErr: ErrBidTooLow,
		},
		{
			name:    "below_current_highest_rejected",
			listing: model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true},
			seed:    []int64{1000, 1500},
			amount:  1200,
			wantErr: ErrBidTooLow,
		},
		{
			name:    "zero_amount",
			listing: model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true},
			amount:  0,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative_amount",
			listing: model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true},
			amount:  -100,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "closed_listing_rejected",
			listing: model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: false},
			amount:  1000,
			wantErr: ErrListingClosed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newMemStore()
			m.addListing(tc.listing)
			svc := newTestService(m)
			for i, amt := range tc.seed {
				_, err := svc.PlaceBid(ctx, tc.listing.ID, uint64(10+i), amt)
				require.NoError(t, err)
			}

			b, err := svc.PlaceBid(ctx, tc.listing.ID, 42, tc.amount)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				// A rejected bid never changes the current price.
				if tc.listing.IsActive {
					got, herr := svc.HighestBid(ctx, tc.listing.ID)
					require.NoError(t, herr)
					want := tc.listing.StartingBidCents
					for _, amt := range tc.seed {
						if amt > want {
							want = amt
						}
					}
					require.Equal(t, want, got)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.amount, b.AmountCents)
			require.Equal(t, uint64(42), b.BidderID)

			got, err := svc.HighestBid(ctx, tc.listing.ID)
			require.NoError(t, err)
			require.Equal(t, tc.amount, got)
		})
	}
}

func TestPlaceBidUnknownListing(t *testing.T) {
	svc := newTestService(newMemStore())
	_, err := svc.PlaceBid(context.Background(), 7, 1, 1000)
	require.ErrorIs(t, err, repository.ErrListingNotFound)
}

func TestClose(t *testing.T) {
	ctx := context.Background()

	t.Run("winner_is_highest_bidder", func(t *testing.T) {
		m := newMemStore()
		m.addListing(model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true})
		svc := newTestService(m)
		_, err := svc.PlaceBid(ctx, 1, 2, 1000)
		require.NoError(t, err)
		_, err = svc.PlaceBid(ctx, 1, 3, 1500)
		require.NoError(t, err)

		l, err := svc.Close(ctx, 1, 1)
		require.NoError(t, err)
		require.False(t, l.IsActive)
		require.NotNil(t, l.WinnerID)
		require.Equal(t, uint64(3), *l.WinnerID)
	})

	t.Run("no_bids_closes_without_winner", func(t *testing.T) {
		m := newMemStore()
		m.addListing(model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true})
		svc := newTestService(m)

		l, err := svc.Close(ctx, 1, 1)
		require.NoError(t, err)
		require.False(t, l.IsActive)
		require.Nil(t, l.WinnerID)
	})

	t.Run("non_owner_rejected", func(t *testing.T) {
		m := newMemStore()
		m.addListing(model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true})
		svc := newTestService(m)

		_, err := svc.Close(ctx, 1, 2)
		require.ErrorIs(t, err, ErrNotOwner)

		// The listing stays open.
		got, err := m.GetByID(ctx, 1)
		require.NoError(t, err)
		require.True(t, got.IsActive)
	})

	t.Run("double_close_rejected_and_winner_kept", func(t *testing.T) {
		m := newMemStore()
		m.addListing(model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true})
		svc := newTestService(m)
		_, err := svc.PlaceBid(ctx, 1, 2, 1000)
		require.NoError(t, err)

		_, err = svc.Close(ctx, 1, 1)
		require.NoError(t, err)
		_, err = svc.Close(ctx, 1, 1)
		require.ErrorIs(t, err, ErrListingClosed)

		got, err := m.GetByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got.WinnerID)
		require.Equal(t, uint64(2), *got.WinnerID)
	})

	t.Run("bid_after_close_rejected", func(t *testing.T) {
		m := newMemStore()
		m.addListing(model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true})
		svc := newTestService(m)

		_, err := svc.Close(ctx, 1, 1)
		require.NoError(t, err)
		_, err = svc.PlaceBid(ctx, 1, 2, 1000)
		require.ErrorIs(t, err, ErrListingClosed)
	})

	t.Run("unknown_listing", func(t *testing.T) {
		svc := newTestService(newMemStore())
		_, err := svc.Close(ctx, 9, 1)
		require.ErrorIs(t, err, repository.ErrListingNotFound)
	})
}

func TestWinningBidTieBreak(t *testing.T) {
	// Two bids with the same amount: the earlier one wins.
	bids := []model.Bid{
		{ID: 1, BidderID: 7, AmountCents: 1500},
		{ID: 2, BidderID: 8, AmountCents: 1500},
	}
	win := winningBid(bids)
	require.NotNil(t, win)
	require.Equal(t, uint64(7), win.BidderID)

	// A later strictly higher bid still beats an earlier lower one.
	bids = append(bids, model.Bid{ID: 3, BidderID: 9, AmountCents: 1600})
	win = winningBid(bids)
	require.Equal(t, uint64(9), win.BidderID)

	require.Nil(t, winningBid(nil))
}

func TestPostComment(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.addListing(model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true})
	svc := newTestService(m)

	cm, err := svc.PostComment(ctx, 1, 5, "is shipping included?")
	require.NoError(t, err)
	require.Equal(t, uint64(5), cm.AuthorID)

	_, err = svc.PostComment(ctx, 1, 5, "   ")
	require.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.PostComment(ctx, 9, 5, "hello")
	require.ErrorIs(t, err, repository.ErrListingNotFound)

	// Comments stay allowed on closed listings.
	_, err = svc.Close(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.PostComment(ctx, 1, 5, "congrats to the winner")
	require.NoError(t, err)
}

func TestToggleWatch(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.addListing(model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true})
	svc := newTestService(m)

	// Toggling twice returns to the initial state.
	on, err := svc.ToggleWatch(ctx, 1, 4)
	require.NoError(t, err)
	require.True(t, on)

	got, err := svc.Watchlist(ctx, 4)
	require.NoError(t, err)
	require.Len(t, got, 1)

	on, err = svc.ToggleWatch(ctx, 1, 4)
	require.NoError(t, err)
	require.False(t, on)

	got, err = svc.Watchlist(ctx, 4)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = svc.ToggleWatch(ctx, 9, 4)
	require.ErrorIs(t, err, repository.ErrListingNotFound)
}

func TestListingDetail(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.addListing(model.Listing{ID: 1, OwnerID: 1, Title: "Desk", StartingBidCents: 2000, IsActive: true, Category: str("Furniture")})
	svc := newTestService(m)

	_, err := svc.PlaceBid(ctx, 1, 2, 2500)
	require.NoError(t, err)
	_, err = svc.PostComment(ctx, 1, 3, "nice desk")
	require.NoError(t, err)

	d, err := svc.Listing(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Desk", d.Listing.Title)
	require.Len(t, d.Bids, 1)
	require.Len(t, d.Comments, 1)
	require.Equal(t, int64(2500), d.HighestBidCents)
}

func TestBrowse(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.addListing(model.Listing{ID: 1, OwnerID: 1, Title: "Desk", StartingBidCents: 2000, IsActive: true, Category: str("Furniture")})
	m.addListing(model.Listing{ID: 2, OwnerID: 1, Title: "Lamp", StartingBidCents: 500, IsActive: true, Category: str("Furniture")})
	m.addListing(model.Listing{ID: 3, OwnerID: 2, Title: "Phone", StartingBidCents: 9000, IsActive: false, Category: str("Electronics")})
	svc := newTestService(m)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)

	closed, err := svc.ListClosed(ctx)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	require.Equal(t, "Phone", closed[0].Title)

	byCat, err := svc.ListByCategory(ctx, "Furniture")
	require.NoError(t, err)
	require.Len(t, byCat, 2)

	// Closed listings do not contribute categories.
	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Furniture"}, cats)
}
