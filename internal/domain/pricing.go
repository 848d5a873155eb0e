package domain

import "github.com/shopspring/decimal"

// TaxRatePercent is the flat tax rate applied to the discounted subtotal.
const TaxRatePercent = 18

// AllowedManualDiscounts lists the manual discount percentages a user may
// select. Selecting one replaces any prior selection; they never stack.
var AllowedManualDiscounts = []int{0, 10, 20, 30}

// IsAllowedManualDiscount checks a manual discount percent against the
// allowed set.
func IsAllowedManualDiscount(percent int) bool {
	for _, p := range AllowedManualDiscounts {
		if p == percent {
			return true
		}
	}
	return false
}

// PricingResult is the full price breakdown for a cart. All amounts carry
// full internal precision; callers round to two decimal places only at the
// presentation boundary.
type PricingResult struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	CouponPercent  int             `json:"coupon_percent"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	ManualPercent  int             `json:"manual_percent"`
	ManualDiscount decimal.Decimal `json:"manual_discount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxPercent     int             `json:"tax_percent"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

func percentOf(amount decimal.Decimal, percent int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100))
}

// Price computes the breakdown in a fixed stage order: subtotal, then the
// coupon percentage, then the manual discount percentage on the remainder,
// then tax on the discounted amount. Each stage applies to the output of
// the previous one, so a 20% coupon followed by a 10% manual discount
// leaves 72% of the subtotal, not 70%.
func Price(subtotal decimal.Decimal, couponCode string, couponPercent, manualPercent int) PricingResult {
	couponDiscount := percentOf(subtotal, couponPercent)
	afterCoupon := subtotal.Sub(couponDiscount)

	manualDiscount := percentOf(afterCoupon, manualPercent)
	taxable := afterCoupon.Sub(manualDiscount)

	tax := percentOf(taxable, TaxRatePercent)

	return PricingResult{
		Subtotal:       subtotal,
		CouponCode:     couponCode,
		CouponPercent:  couponPercent,
		CouponDiscount: couponDiscount,
		ManualPercent:  manualPercent,
		ManualDiscount: manualDiscount,
		TaxableAmount:  taxable,
		TaxPercent:     TaxRatePercent,
		TaxAmount:      tax,
		Total:          taxable.Add(tax),
	}
}
