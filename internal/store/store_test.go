package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/ui"
	"github.com/your-org/storefront/internal/domain/user"
)

var clock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testEnv() Env {
	var mu sync.Mutex
	n := 0
	return Env{
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Now: func() time.Time { return clock },
	}
}

func testSeed() catalog.Seed {
	produce := catalog.Category{ID: "1", Slug: "fresh-produce", Name: "Fresh Produce"}
	products := []catalog.Product{
		{ID: "1", Name: "Organic Bananas", Price: 2.99, Category: produce, Rating: 4.5, Reviews: 128, InStock: true},
		{ID: "2", Name: "Fresh Avocados", Price: 1.99, Category: produce, Rating: 4.7, Reviews: 89, InStock: true},
		{ID: "9", Name: "Blender", Price: 50, Category: produce, Rating: 4.1, Reviews: 12, InStock: true},
	}
	for i := 3; i <= 7; i++ {
		products = append(products, catalog.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("Item %d", i), Price: float64(i), Category: produce})
	}
	return catalog.Seed{Products: products, Categories: []catalog.Category{produce}}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithEnv(testEnv()))
	_, err := s.Dispatch(LoadCatalog{Seed: testSeed()})
	require.NoError(t, err)
	return s
}

func home() user.Address {
	return user.Address{Type: user.AddressHome, Name: "Home", Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US"}
}

func TestDispatch_AppliesAndCountsVersions(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, uint64(1), s.Version())

	state, err := s.Dispatch(AddCatalogItem{ProductID: "1", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s.Version())
	require.Len(t, state.Cart.Items, 1)
	assert.Equal(t, "id-1", state.Cart.Items[0].ID)
	assert.Equal(t, clock, state.Cart.Items[0].AddedAt)
	assert.Equal(t, state, s.Snapshot())
}

func TestDispatch_FailureLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	tests := []struct {
		name   string
		intent Intent
		kind   error
	}{
		{"unknown product", AddCatalogItem{ProductID: "missing", Quantity: 1}, domain.ErrNotFound},
		{"zero quantity", AddCatalogItem{ProductID: "1", Quantity: 0}, domain.ErrInvalidQuantity},
		{"bad discount", ApplyDiscount{Percent: 150}, domain.ErrInvalidRange},
		{"negative shipping", SetShippingCost{Amount: -1}, domain.ErrInvalidRange},
		{"missing line", SetQuantity{LineID: "nope", Quantity: 2}, domain.ErrNotFound},
		{"inverted price range", SetFilters{Filters: catalog.Filters{PriceRange: &catalog.PriceRange{Min: 5, Max: 1}}}, domain.ErrInvalidRange},
		{"unknown address", SetDefaultAddress{ID: "nope"}, domain.ErrNotFound},
		{"nil intent", nil, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Dispatch(tt.intent)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, before, got)
			assert.Equal(t, before, s.Snapshot())
			assert.Equal(t, uint64(1), s.Version())
		})
	}
}

func TestCartScenario(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Dispatch(AddCatalogItem{ProductID: "9", Quantity: 2})
	require.NoError(t, err)
	_, err = s.Dispatch(ApplyDiscount{Percent: 10})
	require.NoError(t, err)
	state, err := s.Dispatch(SetShippingCost{Amount: 5})
	require.NoError(t, err)

	totals := CartTotals(state)
	assert.Equal(t, 100.0, totals.Subtotal)
	assert.Equal(t, 10.0, totals.DiscountAmount)
	assert.Equal(t, 7.2, totals.TaxAmount)
	assert.Equal(t, 102.2, totals.Total)
	assert.Equal(t, 2, CartItemCount(state))

	state, err = s.Dispatch(DecrementQuantity{LineID: "id-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, state.Cart.Items[0].Quantity)

	state, err = s.Dispatch(ClearCart{})
	require.NoError(t, err)
	assert.Empty(t, state.Cart.Items)
	assert.Zero(t, state.Cart.DiscountPercent)
	assert.Equal(t, 5.0, state.Cart.ShippingCost)
}

func TestCompareAndRecentlyViewed(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"1", "2", "3", "4", "5"} {
		_, err := s.Dispatch(AddToCompare{ProductID: id})
		require.NoError(t, err)
	}
	state := s.Snapshot()
	assert.Equal(t, catalog.CompareLimit, state.Catalog.CompareCount())
	assert.False(t, IsInCompare(state, "5"))

	for i := 0; i < 12; i++ {
		_, err := s.Dispatch(SelectProduct{ID: fmt.Sprint(1 + i%7)})
		require.NoError(t, err)
	}
	state = s.Snapshot()
	assert.LessOrEqual(t, len(state.Catalog.RecentlyViewed), catalog.RecentlyViewedLimit)
	assert.Equal(t, 12, state.UI.Analytics.PageViews)

	_, err := s.Dispatch(AddToRecentlyViewed{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavorites(t *testing.T) {
	s := newTestStore(t)

	state, err := s.Dispatch(ToggleFavorite{ProductID: "2"})
	require.NoError(t, err)
	assert.True(t, IsFavorite(state, "2"))

	state, err = s.Dispatch(ToggleFavorite{ProductID: "2"})
	require.NoError(t, err)
	assert.False(t, IsFavorite(state, "2"))

	_, err = s.Dispatch(ToggleFavorite{ProductID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Dispatch(AddToFavorites{ProductID: "1"})
	require.NoError(t, err)
	_, err = s.Dispatch(RemoveProduct{ID: "1"})
	require.NoError(t, err)
	state, err = s.Dispatch(ToggleFavorite{ProductID: "1"})
	require.NoError(t, err)
	assert.False(t, IsFavorite(state, "1"), "favorites of removed products can still be dropped")
}

func TestPlaceOrder(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Dispatch(PlaceOrder{PaymentMethod: "card"})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "no address yet")

	_, err = s.Dispatch(LoginSuccess{Profile: user.Profile{ID: "u1", Email: "ada@example.com"}, Token: "tok"})
	require.NoError(t, err)
	_, err = s.Dispatch(AddAddress{Address: home()})
	require.NoError(t, err)

	_, err = s.Dispatch(PlaceOrder{PaymentMethod: "card"})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "empty cart")

	_, err = s.Dispatch(AddCatalogItem{ProductID: "9", Quantity: 2})
	require.NoError(t, err)
	state, err := s.Dispatch(PlaceOrder{PaymentMethod: "card"})
	require.NoError(t, err)

	require.Len(t, state.Orders.Orders, 1)
	o := state.Orders.Orders[0]
	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, "Home", o.ShippingAddress.Name)
	assert.Len(t, o.Items, 1)
	assert.Empty(t, state.Cart.Items, "placing an order clears the cart")

	state, err = s.Dispatch(UpdateOrderStatus{ID: o.ID, Status: order.StatusCancelled})
	require.NoError(t, err)
	got, ok := OrderByID(state, o.ID)
	require.True(t, ok)
	assert.Equal(t, order.StatusCancelled, got.Status)

	_, err = s.Dispatch(UpdateOrderStatus{ID: o.ID, Status: order.StatusShipped})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = s.Dispatch(PlaceOrder{AddressID: "nope", PaymentMethod: "card"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogoutClearsShopperData(t *testing.T) {
	s := newTestStore(t)
	_, _ = s.Dispatch(LoginSuccess{Profile: user.Profile{ID: "u1"}, Token: "tok"})
	_, _ = s.Dispatch(AddAddress{Address: home()})
	_, _ = s.Dispatch(ToggleFavorite{ProductID: "1"})
	_, _ = s.Dispatch(AddOrder{Order: order.Order{ID: "o1", Status: order.StatusPending}})
	_, _ = s.Dispatch(AddCatalogItem{ProductID: "1", Quantity: 1})

	state, err := s.Dispatch(Logout{})
	require.NoError(t, err)
	assert.False(t, IsAuthenticated(state))
	assert.Empty(t, state.User.Favorites)
	assert.Empty(t, state.User.Addresses)
	assert.Empty(t, RecentOrders(state))
	assert.Len(t, state.Cart.Items, 1, "the cart belongs to the session, not the account")
}

func TestSearchRecordsHistory(t *testing.T) {
	s := newTestStore(t)

	state, err := s.Dispatch(Search{Query: "  bananas "})
	require.NoError(t, err)
	require.Len(t, state.Catalog.SearchResults, 1)
	assert.Equal(t, []string{"bananas"}, state.UI.SearchHistory)

	state, err = s.Dispatch(Search{Query: "   "})
	require.NoError(t, err)
	assert.Empty(t, state.Catalog.SearchResults)
	assert.Len(t, state.UI.SearchHistory, 1)
}

func TestNotify(t *testing.T) {
	s := newTestStore(t)

	state, err := s.Dispatch(Notify{Type: ui.NotificationSuccess, Message: "Saved"})
	require.NoError(t, err)
	require.Len(t, state.UI.Notifications, 1)
	id := state.UI.Notifications[0].ID

	state, err = s.Dispatch(RemoveNotification{ID: id})
	require.NoError(t, err)
	assert.Empty(t, state.UI.Notifications)
}

func TestSubscribe(t *testing.T) {
	s := newTestStore(t)

	var seen []uint64
	unsubscribe := s.Subscribe(func(state State) {
		seen = append(seen, uint64(len(state.Cart.Items)))
	})

	_, _ = s.Dispatch(AddCatalogItem{ProductID: "1", Quantity: 1})
	_, _ = s.Dispatch(AddCatalogItem{ProductID: "missing", Quantity: 1})
	_, _ = s.Dispatch(AddCatalogItem{ProductID: "2", Quantity: 1})
	unsubscribe()
	unsubscribe()
	_, _ = s.Dispatch(ClearCart{})

	assert.Equal(t, []uint64{1, 2}, seen, "rejected intents and post-unsubscribe changes are not delivered")
}

func TestConcurrentDispatch(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Dispatch(AddCatalogItem{ProductID: "1", Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state := s.Snapshot()
	require.Len(t, state.Cart.Items, 1)
	assert.Equal(t, 50, state.Cart.Items[0].Quantity)
	assert.Equal(t, uint64(51), s.Version())
}

func TestMarshalAndRestore(t *testing.T) {
	s := newTestStore(t)
	_, _ = s.Dispatch(AddCatalogItem{ProductID: "9", Quantity: 2})
	_, _ = s.Dispatch(ApplyDiscount{Percent: 10})
	_, _ = s.Dispatch(LoginSuccess{Profile: user.Profile{ID: "u1"}, Token: "tok"})
	_, _ = s.Dispatch(AddAddress{Address: home()})
	_, _ = s.Dispatch(AddToCompare{ProductID: "2"})

	data, err := s.MarshalJSON()
	require.NoError(t, err)

	restored := New(WithEnv(testEnv()))
	require.NoError(t, restored.Restore(data))
	assert.Equal(t, s.Version(), restored.Version())

	again, err := restored.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))

	state := restored.Snapshot()
	assert.Equal(t, 100.0, state.Cart.Totals.Subtotal)
	assert.True(t, IsInCompare(state, "2"))
	def, ok := DefaultAddress(state)
	require.True(t, ok)
	assert.Equal(t, "Home", def.Name)

	assert.Error(t, restored.Restore([]byte(`{"state":`)))
	assert.Error(t, restored.Restore([]byte(`{"version":1,"state":{"cart":{"items":[{"id":"a","quantity":0}]}}}`)))
	assert.Equal(t, s.Version(), restored.Version(), "failed restores keep the previous state")
}

func TestIntentName(t *testing.T) {
	assert.Equal(t, "AddItem", IntentName(AddItem{}))
	assert.Equal(t, "ClearCart", IntentName(&ClearCart{}))
	assert.Equal(t, "<nil>", IntentName(nil))
}
