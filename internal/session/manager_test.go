package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/store"
)

type fakeSource struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSource) LoadCatalog(ctx context.Context) (*catalog.Seed, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	products := []catalog.Product{
		{ID: "1", Name: "Organic Bananas", Price: 2.99, InStock: true, Rating: 4.5, Reviews: 128},
		{ID: "2", Name: "Fresh Avocados", Price: 1.99, InStock: true, Rating: 4.7, Reviews: 89},
	}
	return catalog.NewSeed(products, []catalog.Category{{ID: "1", Slug: "fresh-produce", Name: "Fresh Produce"}}), nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestManager(t *testing.T, src catalog.Source) (*Manager, *MemoryRepository, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var n atomic.Int64
	env := store.Env{
		NewID: func() string { return fmt.Sprintf("id-%d", n.Add(1)) },
		Now:   clk.Now,
	}
	repo := NewMemoryRepository()
	repo.now = clk.Now
	m := NewManager(repo, src,
		config.StoreConfig{TaxRate: 0.1, ShippingCost: 5},
		config.SessionConfig{TTL: time.Hour},
		WithEnv(env))
	return m, repo, clk
}

func TestView_StartsSession(t *testing.T) {
	m, repo, _ := newTestManager(t, &fakeSource{})
	ctx := context.Background()

	state, id, err := m.View(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, state.Catalog.Products, 2)
	assert.Equal(t, 0.1, state.Cart.TaxRate)
	assert.Equal(t, 5.0, state.Cart.ShippingCost)

	_, err = repo.Load(ctx, id)
	assert.NoError(t, err, "new sessions are saved")
}

func TestDispatch_Persists(t *testing.T) {
	m, _, _ := newTestManager(t, &fakeSource{})
	ctx := context.Background()

	_, id, err := m.View(ctx, "")
	require.NoError(t, err)

	state, sameID, err := m.Dispatch(ctx, id, store.AddCatalogItem{ProductID: "1", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, id, sameID)
	assert.Equal(t, 2, state.Cart.Totals.TotalItems)

	state, _, err = m.View(ctx, id)
	require.NoError(t, err)
	require.Len(t, state.Cart.Items, 1)
	assert.Equal(t, 2, state.Cart.Items[0].Quantity)
	// 2.99*2 = 5.98, tax 0.598, shipping 5
	assert.Equal(t, 11.578, state.Cart.Totals.Total)
}

func TestDispatch_FailureIsNotSaved(t *testing.T) {
	m, _, _ := newTestManager(t, &fakeSource{})
	ctx := context.Background()

	_, id, err := m.Dispatch(ctx, "", store.AddCatalogItem{ProductID: "1", Quantity: 1})
	require.NoError(t, err)

	_, _, err = m.Dispatch(ctx, id,
		store.AddCatalogItem{ProductID: "2", Quantity: 1},
		store.SetQuantity{LineID: "missing", Quantity: 3},
	)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	state, _, err := m.View(ctx, id)
	require.NoError(t, err)
	assert.Len(t, state.Cart.Items, 1, "the batch is all or nothing")
}

func TestDispatch_UnknownIDGetsFreshSession(t *testing.T) {
	m, _, _ := newTestManager(t, &fakeSource{})

	_, id, err := m.View(context.Background(), "forged")
	require.NoError(t, err)
	assert.NotEqual(t, "forged", id)
}

func TestDispatch_ExpiredSession(t *testing.T) {
	m, _, clk := newTestManager(t, &fakeSource{})
	ctx := context.Background()

	_, id, err := m.Dispatch(ctx, "", store.AddCatalogItem{ProductID: "1", Quantity: 1})
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	state, newID, err := m.View(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)
	assert.Empty(t, state.Cart.Items)
}

func TestDispatch_ConcurrentSameSession(t *testing.T) {
	m, _, _ := newTestManager(t, &fakeSource{})
	ctx := context.Background()

	_, id, err := m.View(ctx, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := m.Dispatch(ctx, id, store.AddCatalogItem{ProductID: "1", Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, _, err := m.View(ctx, id)
	require.NoError(t, err)
	require.Len(t, state.Cart.Items, 1)
	assert.Equal(t, 20, state.Cart.Items[0].Quantity)
	assert.Zero(t, m.locks.size())
}

func TestCatalogReload(t *testing.T) {
	src := &fakeSource{}
	m, _, clk := newTestManager(t, src)
	ctx := context.Background()

	require.NoError(t, m.Warm(ctx))
	_, id, err := m.View(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())

	clk.Advance(catalog.DefaultCacheExpiry + time.Second)
	_, _, err = m.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCatalogReload_FailureServesCached(t *testing.T) {
	src := &fakeSource{}
	m, _, clk := newTestManager(t, src)
	ctx := context.Background()
	require.NoError(t, m.Warm(ctx))

	src.err = errors.New("backend down")
	clk.Advance(catalog.DefaultCacheExpiry + time.Second)

	state, _, err := m.View(ctx, "")
	require.NoError(t, err)
	assert.Len(t, state.Catalog.Products, 2)
}

func TestWarm_Error(t *testing.T) {
	m, _, _ := newTestManager(t, &fakeSource{err: errors.New("backend down")})
	assert.Error(t, m.Warm(context.Background()))
}

func TestDelete(t *testing.T) {
	m, repo, _ := newTestManager(t, &fakeSource{})
	ctx := context.Background()

	_, id, err := m.View(ctx, "")
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, id))

	_, err = repo.Load(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryRepository_Sweep(t *testing.T) {
	repo := NewMemoryRepository()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, repo.Save(ctx, "b", []byte("2"), 0))

	now = now.Add(time.Hour)
	assert.Equal(t, 1, repo.Sweep())

	_, err := repo.Load(ctx, "b")
	assert.NoError(t, err, "zero ttl never expires")
}
