package order

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/user"
)

var placedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func address() user.Address {
	return user.Address{
		ID: "a1", Type: user.AddressHome, Name: "Home", Street: "1 Main St",
		City: "Springfield", State: "IL", ZipCode: "62701", Country: "US", IsDefault: true,
	}
}

func filledCart(t *testing.T) cart.State {
	t.Helper()
	c, err := cart.NewState().AddItem("line-1", catalog.Product{ID: "9", Name: "Blender", Price: 50}, 2, cart.Variant{}, placedAt)
	require.NoError(t, err)
	c, err = c.ApplyDiscount(10)
	require.NoError(t, err)
	c, err = c.SetShippingCost(5)
	require.NoError(t, err)
	return c
}

func TestNewOrder(t *testing.T) {
	o, err := NewOrder(PlaceRequest{
		ID:            "3f2a9c1e-aaaa-bbbb-cccc-000000000000",
		UserID:        "u1",
		Cart:          filledCart(t),
		Address:       address(),
		PaymentMethod: " card ",
		Now:           placedAt,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "ORD-20240601-3F2A9C1E", o.Number)
	assert.Equal(t, 102.2, o.TotalAmount)
	assert.Equal(t, 100.0, o.Subtotal)
	assert.Equal(t, 2, o.ItemCount())
	assert.Equal(t, "card", o.PaymentMethod)
	require.NotNil(t, o.EstimatedDelivery)
	assert.Equal(t, placedAt.Add(DeliveryWindow), *o.EstimatedDelivery)
	assert.True(t, o.CanBeCancelled())
}

func TestNewOrder_Rejects(t *testing.T) {
	base := PlaceRequest{ID: "o1", Cart: filledCart(t), Address: address(), PaymentMethod: "card", Now: placedAt}

	empty := base
	empty.Cart = cart.NewState()
	_, err := NewOrder(empty)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	noPayment := base
	noPayment.PaymentMethod = ""
	_, err = NewOrder(noPayment)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noAddress := base
	noAddress.Address = user.Address{}
	_, err = NewOrder(noAddress)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddOrder_Prepends(t *testing.T) {
	s := NewState()
	for i := 1; i <= 7; i++ {
		var err error
		s, err = s.AddOrder(Order{ID: fmt.Sprintf("o%d", i), Status: StatusPending})
		require.NoError(t, err)
	}

	assert.Equal(t, "o7", s.Orders[0].ID)
	recent := s.RecentOrders()
	require.Len(t, recent, RecentOrdersLimit)
	assert.Equal(t, "o3", recent[4].ID)

	_, err := s.AddOrder(Order{ID: "o1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClaimGuestOrders(t *testing.T) {
	s := NewState()
	s, err := s.AddOrder(Order{ID: "g1", Status: StatusPending})
	require.NoError(t, err)
	s, err = s.AddOrder(Order{ID: "g2", Status: StatusPending})
	require.NoError(t, err)

	history := []Order{
		{ID: "h1", UserID: "u1", Status: StatusDelivered},
		{ID: "g1", UserID: "u1", Status: StatusPending},
	}
	next, claimed := s.ClaimGuestOrders("u1", history)

	require.Len(t, claimed, 2)
	for _, o := range claimed {
		assert.Equal(t, "u1", o.UserID)
	}
	ids := []string{}
	for _, o := range next.Orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"g2", "g1", "h1"}, ids)
	assert.Empty(t, s.Orders[0].UserID, "receiver is not modified")

	none, claimed := NewState().ClaimGuestOrders("u1", history)
	assert.Empty(t, claimed)
	assert.Len(t, none.Orders, 2)
}

func TestUpdateOrderStatus(t *testing.T) {
	s, _ := NewState().AddOrder(Order{ID: "o1", Status: StatusPending, UpdatedAt: placedAt})
	later := placedAt.Add(time.Hour)

	s, err := s.UpdateOrderStatus("o1", StatusShipped, later)
	require.NoError(t, err)
	o, _ := s.OrderByID("o1")
	assert.Equal(t, StatusShipped, o.Status)
	assert.Equal(t, later, o.UpdatedAt)

	s, err = s.UpdateOrderStatus("o1", StatusDelivered, later)
	require.NoError(t, err)

	_, err = s.UpdateOrderStatus("o1", StatusCancelled, later)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = s.UpdateOrderStatus("o1", "lost", later)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.UpdateOrderStatus("missing", StatusShipped, later)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetTracking(t *testing.T) {
	s, _ := NewState().AddOrder(Order{ID: "o1", Status: StatusProcessing})
	eta := placedAt.Add(72 * time.Hour)

	s, err := s.SetTracking("o1", "1Z999", &eta, placedAt)
	require.NoError(t, err)
	o, _ := s.OrderByID("o1")
	assert.Equal(t, "1Z999", o.TrackingNumber)
	assert.Equal(t, eta, *o.EstimatedDelivery)
}

func TestMemorySource(t *testing.T) {
	ctx := context.Background()
	src := NewMemorySource()

	require.NoError(t, src.SaveOrder(ctx, Order{ID: "o1", UserID: "u1", Status: StatusPending}))
	require.NoError(t, src.SaveOrder(ctx, Order{ID: "o2", UserID: "u1", Status: StatusPending}))
	require.NoError(t, src.SaveOrder(ctx, Order{ID: "o1", UserID: "u1", Status: StatusShipped}))

	orders, err := src.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)
	assert.Equal(t, StatusShipped, orders[1].Status)

	none, err := src.ListOrders(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, none)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.ListOrders(cancelled, "u1")
	assert.ErrorIs(t, err, context.Canceled)
}
