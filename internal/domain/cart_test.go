package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) Product {
	return Product{ID: id, Name: "item " + id, Price: decimal.NewFromInt(price)}
}

// ============================================================================
// Cart.Add Tests
// ============================================================================

func TestAdd_NewProduct(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 40))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p1", c.Lines[0].ProductID)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.True(t, c.Lines[0].UnitPrice.Equal(decimal.NewFromInt(40)))
}

func TestAdd_ExistingProductIncrementsQuantity(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 40))
	c.Add(product("p1", 40))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 10))
	c.Add(product("p2", 20))
	c.Add(product("p3", 30))
	c.Add(product("p2", 20))

	require.Len(t, c.Lines, 3)
	assert.Equal(t, "p1", c.Lines[0].ProductID)
	assert.Equal(t, "p2", c.Lines[1].ProductID)
	assert.Equal(t, "p3", c.Lines[2].ProductID)
}

func TestAdd_PriceCopiedAtAddTime(t *testing.T) {
	c := NewCart("user-1", "INR")
	p := product("p1", 40)
	c.Add(p)

	p.Price = decimal.NewFromInt(99)

	assert.True(t, c.Lines[0].UnitPrice.Equal(decimal.NewFromInt(40)))
}

// ============================================================================
// Cart.Increase / Cart.Decrease Tests
// ============================================================================

func TestIncrease_ExistingLine(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 40))

	require.NoError(t, c.Increase("p1"))
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestIncrease_MissingLine(t *testing.T) {
	c := NewCart("user-1", "INR")
	assert.ErrorIs(t, c.Increase("p1"), ErrLineNotFound)
}

func TestDecrease_AboveMinimum(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 40))
	require.NoError(t, c.Increase("p1"))

	require.NoError(t, c.Decrease("p1"))
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestDecrease_AtMinimumLeavesCartUnchanged(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 40))

	err := c.Decrease("p1")

	assert.ErrorIs(t, err, ErrQuantityAtMinimum)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestDecrease_NeverRemovesLine(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 40))

	for i := 0; i < 5; i++ {
		_ = c.Decrease("p1")
	}

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestDecrease_MissingLine(t *testing.T) {
	c := NewCart("user-1", "INR")
	assert.ErrorIs(t, c.Decrease("p1"), ErrLineNotFound)
}

// ============================================================================
// Cart.Remove / Cart.Clear Tests
// ============================================================================

func TestRemove_ExistingLine(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 10))
	c.Add(product("p2", 20))

	require.NoError(t, c.Remove("p1"))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p2", c.Lines[0].ProductID)
}

func TestRemove_WorksAtAnyQuantity(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 10))

	require.NoError(t, c.Remove("p1"))
	assert.True(t, c.IsEmpty())
}

func TestRemove_MissingLine(t *testing.T) {
	c := NewCart("user-1", "INR")
	assert.ErrorIs(t, c.Remove("p1"), ErrLineNotFound)
}

func TestClear_ResetsLinesAndDiscounts(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Add(product("p1", 10))
	c.CouponCode = "RATAN10"
	c.ManualDiscountPercent = 20

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.CouponCode)
	assert.Zero(t, c.ManualDiscountPercent)
}

// ============================================================================
// Cart.Subtotal / Cart.ItemCount Tests
// ============================================================================

func TestSubtotal_MultipleLines(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Lines = []CartLine{
		{ProductID: "p1", UnitPrice: decimal.NewFromInt(40), Quantity: 2},
		{ProductID: "p2", UnitPrice: decimal.NewFromInt(25), Quantity: 3},
	}
	// 80 + 75 = 155
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(155)))
}

func TestSubtotal_EmptyCart(t *testing.T) {
	c := NewCart("user-1", "INR")
	assert.True(t, c.Subtotal().Equal(decimal.Zero))
}

func TestItemCount_SumsQuantities(t *testing.T) {
	c := NewCart("user-1", "INR")
	c.Lines = []CartLine{{Quantity: 2}, {Quantity: 3}, {Quantity: 1}}
	assert.Equal(t, 6, c.ItemCount())
}

func TestItemCount_EmptyCart(t *testing.T) {
	c := NewCart("user-1", "INR")
	assert.Equal(t, 0, c.ItemCount())
}

// ============================================================================
// Cart Version Tests
// ============================================================================

func TestMutations_BumpVersion(t *testing.T) {
	c := NewCart("user-1", "INR")
	v := c.Version

	c.Add(product("p1", 10))
	assert.Equal(t, v+1, c.Version)

	require.NoError(t, c.Increase("p1"))
	assert.Equal(t, v+2, c.Version)
}
