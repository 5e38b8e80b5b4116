package auction

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/auction-house/internal/model"
)

func TestLockTableSerializesAndCleansUp(t *testing.T) {
	lt := newLockTable()

	var counter, max, active int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lt.lock(1)
			mu.Lock()
			active++
			if active > max {
				max = active
			}
			counter++
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 16, counter)
	require.Equal(t, 1, max, "critical section must never overlap")

	// Released entries are dropped from the table.
	lt.mu.Lock()
	require.Empty(t, lt.locks)
	lt.mu.Unlock()
}

func TestLockTableIndependentListings(t *testing.T) {
	lt := newLockTable()
	unlock1 := lt.lock(1)
	// A different listing's lock must not block.
	done := make(chan struct{})
	go func() {
		unlock2 := lt.lock(2)
		unlock2()
		close(done)
	}()
	<-done
	unlock1()
}

// With many simultaneous identical bids only one can strictly exceed the
// current highest; the rest must be rejected.
func TestConcurrentEqualBidsSingleWinner(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.addListing(model.Listing{ID: 1, OwnerID: 1, StartingBidCents: 500, IsActive: true})
	svc := newTestService(m)

	const n = 32
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.PlaceBid(ctx, 1, uint64(100+i), 1000)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			require.ErrorIs(t, err, ErrBidTooLow)
		}
	}
	require.Equal(t, 1, accepted)

	bids, err := m.ListByListing(ctx, 1)
	require.NoError(t, err)
	require.Len(t, bids, 1)
}
