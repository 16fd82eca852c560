package cart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/catalog"
)

var (
	now      = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	bananas  = catalog.Product{ID: "1", Name: "Organic Bananas", Price: 2.99}
	avocados = catalog.Product{ID: "2", Name: "Fresh Avocados", Price: 1.99}
	blender  = catalog.Product{ID: "9", Name: "Blender", Price: 50}
)

func mustAdd(t *testing.T, s State, lineID string, p catalog.Product, q int) State {
	t.Helper()
	next, err := s.AddItem(lineID, p, q, Variant{}, now)
	require.NoError(t, err)
	return next
}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Empty(t, s.Items)
	assert.Equal(t, DefaultTaxRate, s.TaxRate)
	assert.Zero(t, s.Totals.Total)
	assert.True(t, s.IsEmpty())
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", bananas, 1)
	s = mustAdd(t, s, "line-2", bananas, 2)

	require.Len(t, s.Items, 1)
	assert.Equal(t, "line-1", s.Items[0].ID)
	assert.Equal(t, 3, s.Items[0].Quantity)
	assert.Equal(t, 3, s.Totals.TotalItems)
	assert.Equal(t, 1, s.Totals.LineCount)
}

func TestAddItem_VariantsKeepSeparateLines(t *testing.T) {
	s, err := NewState().AddItem("a", bananas, 1, Variant{Size: "S"}, now)
	require.NoError(t, err)
	s, err = s.AddItem("b", bananas, 1, Variant{Size: "L"}, now)
	require.NoError(t, err)
	s, err = s.AddItem("c", bananas, 1, Variant{Size: "L"}, now)
	require.NoError(t, err)

	require.Len(t, s.Items, 2)
	assert.Equal(t, 2, s.Items[1].Quantity)
}

func TestAddItem_RejectsBadQuantity(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", bananas, 1)

	for _, q := range []int{0, -1} {
		next, err := s.AddItem("line-2", avocados, q, Variant{}, now)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Equal(t, s, next, "state is unchanged on error")
	}
}

func TestAddItem_DoesNotModifyPrevious(t *testing.T) {
	before := mustAdd(t, NewState(), "line-1", bananas, 1)
	after := mustAdd(t, before, "line-2", bananas, 4)

	assert.Equal(t, 1, before.Items[0].Quantity)
	assert.Equal(t, 5, after.Items[0].Quantity)
}

func TestTotals_Formula(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", blender, 2)

	s, err := s.ApplyDiscount(10)
	require.NoError(t, err)
	s, err = s.SetShippingCost(5)
	require.NoError(t, err)

	assert.Equal(t, Totals{
		TotalItems:     2,
		LineCount:      1,
		Subtotal:       100,
		DiscountAmount: 10,
		TaxAmount:      7.2,
		ShippingCost:   5,
		Total:          102.2,
	}, s.Totals)
}

func TestTotals_NoFloatDrift(t *testing.T) {
	s := mustAdd(t, NewState(), "a", catalog.Product{ID: "x", Price: 0.1}, 3)
	s, err := s.SetTaxRate(0)
	require.NoError(t, err)

	assert.Equal(t, 0.3, s.Totals.Subtotal)
	assert.Equal(t, 0.3, s.Totals.Total)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", bananas, 1)
	s = mustAdd(t, s, "line-2", avocados, 1)

	once := s.RemoveItem("line-1")
	twice := once.RemoveItem("line-1")

	assert.Equal(t, once, twice)
	assert.Equal(t, "line-2", twice.Items[0].ID)
	assert.Equal(t, 1.99, twice.Totals.Subtotal)
}

func TestSetQuantity(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", bananas, 1)

	next, err := s.SetQuantity("line-1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, next.Items[0].Quantity)
	assert.Equal(t, 11.96, next.Totals.Subtotal)

	zero, err := s.SetQuantity("line-1", 0)
	require.NoError(t, err)
	assert.Equal(t, s.RemoveItem("line-1"), zero)

	_, err = s.SetQuantity("missing", 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIncrementDecrement(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", bananas, 1)

	s, err := s.IncrementQuantity("line-1")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Items[0].Quantity)

	s, err = s.DecrementQuantity("line-1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Items[0].Quantity)

	s, err = s.DecrementQuantity("line-1")
	require.NoError(t, err)
	assert.Empty(t, s.Items, "decrement at one removes the line")

	_, err = s.IncrementQuantity("line-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.DecrementQuantity("line-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyDiscount(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", blender, 1)

	tests := []struct {
		name    string
		percent float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"full", 100, false},
		{"negative", -5, true},
		{"above hundred", 100.5, true},
		{"NaN", math.NaN(), true},
		{"infinite", math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := s.ApplyDiscount(tt.percent)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRange)
				assert.Equal(t, s, next)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.percent, next.DiscountPercent)
		})
	}

	s, _ = s.ApplyDiscount(20)
	s, _ = s.ApplyDiscount(5)
	assert.Equal(t, 2.5, s.Totals.DiscountAmount, "last discount wins")
}

func TestSetShippingCost_RejectsNegative(t *testing.T) {
	for _, amount := range []float64{-1, math.NaN(), math.Inf(1)} {
		next, err := NewState().SetShippingCost(amount)
		assert.ErrorIs(t, err, domain.ErrInvalidRange, "amount %v", amount)
		assert.Zero(t, next.ShippingCost)
	}
}

func TestSetTaxRate_RejectsNonFinite(t *testing.T) {
	for _, rate := range []float64{-0.1, 1.5, math.NaN(), math.Inf(-1)} {
		next, err := NewState().SetTaxRate(rate)
		assert.ErrorIs(t, err, domain.ErrInvalidRange, "rate %v", rate)
		assert.Equal(t, DefaultTaxRate, next.TaxRate)
	}
}

func TestClear(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", blender, 1)
	s, _ = s.ApplyDiscount(15)
	s, _ = s.SetShippingCost(4.5)

	s = s.Clear()

	assert.Empty(t, s.Items)
	assert.Zero(t, s.DiscountPercent)
	assert.Equal(t, 4.5, s.ShippingCost)
	assert.Equal(t, DefaultTaxRate, s.TaxRate)
	assert.Equal(t, 4.5, s.Totals.Total)
}

func TestLoad(t *testing.T) {
	items := []Item{
		{ID: "a", Product: bananas, Quantity: 2},
		{ID: "b", Product: avocados, Quantity: 1},
	}

	s, err := NewState().Load(items)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Totals.TotalItems)

	_, err = NewState().Load([]Item{{ID: "a", Product: bananas, Quantity: 1}, {ID: "a", Product: avocados, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewState().Load([]Item{{ID: "a", Product: bananas, Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestLookups(t *testing.T) {
	s := mustAdd(t, NewState(), "line-1", bananas, 1)

	item, ok := s.ItemByProductID("1")
	require.True(t, ok)
	assert.Equal(t, "line-1", item.ID)
	assert.Equal(t, 2.99, item.LineTotal())

	_, ok = s.ItemByID("nope")
	assert.False(t, ok)

	assert.True(t, s.Toggle().IsOpen)
	assert.False(t, s.SetOpen(true).Toggle().IsOpen)
}
