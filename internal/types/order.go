package types

import "github.com/shopspring/decimal"

// OrderContext carries the monetary bases a percentage fee can apply to.
// The engine never computes these itself; the caller resolves them from the
// session before asking for a fee.
type OrderContext struct {
	// Total is the order total (sum of offer prices).
	Total decimal.Decimal `json:"total"`

	// DeliverySubtotal is the delivery cost accumulated so far, used when a
	// percentage fee is based on delivery rather than on the order.
	DeliverySubtotal decimal.Decimal `json:"delivery_subtotal"`
}
