package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// CouponRegistry.Validate Tests
// ============================================================================

func TestValidate_KnownCodes(t *testing.T) {
	r := NewCouponRegistry(DefaultCoupons())

	for code, percent := range map[string]int{"RATAN10": 10, "RATAN20": 20, "RATAN30": 30} {
		res := r.Validate(code)
		assert.True(t, res.IsValid, code)
		assert.Equal(t, percent, res.DiscountPercent, code)
	}
}

func TestValidate_UnknownCode(t *testing.T) {
	r := NewCouponRegistry(DefaultCoupons())

	res := r.Validate("SAVE50")
	assert.False(t, res.IsValid)
	assert.Zero(t, res.DiscountPercent)
}

func TestValidate_BlankCode(t *testing.T) {
	r := NewCouponRegistry(DefaultCoupons())

	res := r.Validate("")
	assert.False(t, res.IsValid)
	assert.Zero(t, res.DiscountPercent)
}

func TestValidate_CaseSensitive(t *testing.T) {
	r := NewCouponRegistry(DefaultCoupons())

	assert.False(t, r.Validate("ratan10").IsValid)
	assert.False(t, r.Validate("Ratan10").IsValid)
	assert.False(t, r.Validate("RATAN10 ").IsValid)
}

func TestNewCouponRegistry_CopiesTable(t *testing.T) {
	codes := map[string]int{"WELCOME5": 5}
	r := NewCouponRegistry(codes)

	codes["WELCOME5"] = 50
	delete(codes, "WELCOME5")

	res := r.Validate("WELCOME5")
	assert.True(t, res.IsValid)
	assert.Equal(t, 5, res.DiscountPercent)
}
