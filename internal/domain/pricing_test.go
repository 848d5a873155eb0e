package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ============================================================================
// Price Tests
// ============================================================================

func TestPrice_NoDiscounts(t *testing.T) {
	r := Price(dec("100"), "", 0, 0)

	assert.True(t, r.Subtotal.Equal(dec("100")))
	assert.True(t, r.CouponDiscount.Equal(decimal.Zero))
	assert.True(t, r.ManualDiscount.Equal(decimal.Zero))
	assert.True(t, r.TaxAmount.Equal(dec("18")))
	assert.True(t, r.Total.Equal(dec("118")))
}

func TestPrice_CouponOnly(t *testing.T) {
	// RATAN10 on 100: discount 10, taxable 90, tax 16.2, total 106.2
	r := Price(dec("100"), "RATAN10", 10, 0)

	assert.True(t, r.CouponDiscount.Equal(dec("10")))
	assert.True(t, r.TaxableAmount.Equal(dec("90")))
	assert.True(t, r.TaxAmount.Equal(dec("16.2")))
	assert.True(t, r.Total.Equal(dec("106.2")), "total = %s", r.Total)
}

func TestPrice_CouponThenManualCompounds(t *testing.T) {
	// 20% coupon then 10% manual on 100: 80, then 72, tax 12.96, total 84.96
	r := Price(dec("100"), "RATAN20", 20, 10)

	assert.True(t, r.CouponDiscount.Equal(dec("20")))
	assert.True(t, r.ManualDiscount.Equal(dec("8")))
	assert.True(t, r.TaxableAmount.Equal(dec("72")))
	assert.True(t, r.TaxAmount.Equal(dec("12.96")))
	assert.True(t, r.Total.Equal(dec("84.96")), "total = %s", r.Total)
}

func TestPrice_ManualOnly(t *testing.T) {
	r := Price(dec("200"), "", 0, 30)

	assert.True(t, r.ManualDiscount.Equal(dec("60")))
	assert.True(t, r.TaxableAmount.Equal(dec("140")))
	assert.True(t, r.Total.Equal(dec("165.2")))
}

func TestPrice_ZeroSubtotal(t *testing.T) {
	r := Price(decimal.Zero, "RATAN30", 30, 20)

	assert.True(t, r.Total.Equal(decimal.Zero))
	assert.True(t, r.TaxAmount.Equal(decimal.Zero))
}

func TestPrice_FullPrecisionKept(t *testing.T) {
	// 33.33 with 10% coupon: discount 3.333, taxable 29.997 before manual.
	r := Price(dec("33.33"), "RATAN10", 10, 0)

	assert.True(t, r.CouponDiscount.Equal(dec("3.333")))
	assert.True(t, r.TaxableAmount.Equal(dec("29.997")))
}

func TestPrice_StagesCompoundNotAdd(t *testing.T) {
	r := Price(dec("100"), "RATAN20", 20, 10)

	// Additive 30% would leave 70; compounding leaves 72.
	assert.False(t, r.TaxableAmount.Equal(dec("70")))
	assert.True(t, r.TaxableAmount.Equal(dec("72")))
}

// ============================================================================
// IsAllowedManualDiscount Tests
// ============================================================================

func TestIsAllowedManualDiscount(t *testing.T) {
	for _, p := range []int{0, 10, 20, 30} {
		assert.True(t, IsAllowedManualDiscount(p), "percent %d", p)
	}
	for _, p := range []int{-10, 5, 15, 40, 100} {
		assert.False(t, IsAllowedManualDiscount(p), "percent %d", p)
	}
}
