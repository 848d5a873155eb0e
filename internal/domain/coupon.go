package domain

// CouponResult is the outcome of validating a coupon code. An unknown code
// is a normal negative result, never an error.
type CouponResult struct {
	Code            string `json:"code"`
	IsValid         bool   `json:"is_valid"`
	DiscountPercent int    `json:"discount_percent"`
}

// CouponRegistry maps coupon codes to their discount percentages. Lookup is
// exact-match and case-sensitive; "ratan10" does not match "RATAN10".
type CouponRegistry struct {
	codes map[string]int
}

// NewCouponRegistry builds a registry from a code-to-percent table. The map
// is copied so later mutation of the argument has no effect.
func NewCouponRegistry(codes map[string]int) *CouponRegistry {
	copied := make(map[string]int, len(codes))
	for code, percent := range codes {
		copied[code] = percent
	}
	return &CouponRegistry{codes: copied}
}

// DefaultCoupons returns the built-in coupon table.
func DefaultCoupons() map[string]int {
	return map[string]int{
		"RATAN10": 10,
		"RATAN20": 20,
		"RATAN30": 30,
	}
}

// Validate looks up a code. Unknown or blank codes yield
// {IsValid: false, DiscountPercent: 0}.
func (r *CouponRegistry) Validate(code string) CouponResult {
	percent, ok := r.codes[code]
	if !ok {
		return CouponResult{Code: code}
	}
	return CouponResult{Code: code, IsValid: true, DiscountPercent: percent}
}
