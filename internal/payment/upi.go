// Package payment derives display-only payment references. Nothing here
// talks to a payment provider; the storefront only renders a UPI deep link
// for the customer to pay out of band.
package payment

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// UPIBuilder renders upi://pay deep links for a fixed payee.
type UPIBuilder struct {
	payeeID   string
	payeeName string
	currency  string
}

// NewUPIBuilder creates a builder for the configured payee and currency.
func NewUPIBuilder(payeeID, payeeName, currency string) *UPIBuilder {
	return &UPIBuilder{payeeID: payeeID, payeeName: payeeName, currency: currency}
}

// Reference renders the deep link for the given amount. The amount is
// rounded to two decimal places here, at the presentation boundary. Query
// parameters are emitted in the conventional pa, pn, am, cu order, which
// map ordering would not preserve.
func (b *UPIBuilder) Reference(amount decimal.Decimal) string {
	var sb strings.Builder
	sb.WriteString("upi://pay?pa=")
	sb.WriteString(url.QueryEscape(b.payeeID))
	sb.WriteString("&pn=")
	sb.WriteString(url.QueryEscape(b.payeeName))
	sb.WriteString("&am=")
	sb.WriteString(amount.StringFixed(2))
	sb.WriteString("&cu=")
	sb.WriteString(url.QueryEscape(b.currency))
	return sb.String()
}
