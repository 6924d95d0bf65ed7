package session

import (
	"github.com/shipwise/shipwise/internal/domain/calcmethod"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shopspring/decimal"
)

// Session is the document the storage layer owns: the products a user is
// tracking, the offers and bundles collected for them, the per-seller
// delivery rules and the forwarders in play. The engine only ever receives
// and returns it; it never holds one between calls.
type Session struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Products      []Product       `json:"products"`
	Offers        []*Offer        `json:"offers"`
	Bundles       []*Bundle       `json:"bundles"`
	DeliveryRules []*DeliveryRule `json:"delivery_rules"`
	Forwarders    []*Forwarder    `json:"forwarders"`
}

// Product is a tracked item a user wants to buy.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Offer is one seller's price for a single product.
type Offer struct {
	ID             string           `json:"id"`
	ProductID      string           `json:"product_id"`
	Seller         string           `json:"seller"`
	Currency       string           `json:"currency"`
	Price          *decimal.Decimal `json:"price"`
	ShippingPrice  *decimal.Decimal `json:"shipping_price"`
	InsurancePrice *decimal.Decimal `json:"insurance_price"`
}

// Bundle is a seller's combined offer covering several products at once.
type Bundle struct {
	ID             string           `json:"id"`
	ProductIDs     []string         `json:"product_ids"`
	Seller         string           `json:"seller"`
	Currency       string           `json:"currency"`
	Price          *decimal.Decimal `json:"price"`
	ShippingPrice  *decimal.Decimal `json:"shipping_price"`
	InsurancePrice *decimal.Decimal `json:"insurance_price"`
}

// DeliveryRule is one seller's delivery fee specification: a top-level
// calculation method plus optional per-group sub-rules for named product
// subsets.
type DeliveryRule struct {
	ID            string              `json:"id"`
	Seller        string              `json:"seller"`
	BillingMethod types.BillingMethod `json:"billing_method"`
	Currency      string              `json:"currency"`

	CalculationMethod *calcmethod.CalculationMethod `json:"calculation_method"`
	Groups            []*Group                      `json:"groups"`

	GlobalFreeShippingThreshold *decimal.Decimal `json:"global_free_shipping_threshold"`
	CustomsClearanceFee         *decimal.Decimal `json:"customs_clearance_fee"`
	CustomsFeeCurrency          string           `json:"customs_fee_currency"`
}

// Group is a sub-rule for a named subset of a seller's products.
type Group struct {
	Name                  string                        `json:"name"`
	CalculationMethod     *calcmethod.CalculationMethod `json:"calculation_method"`
	FreeShippingThreshold *decimal.Decimal              `json:"free_shipping_threshold"`
}

// Forwarder is a parcel-forwarding service with four independently priced
// handling steps, all expressed in the forwarder's currency.
type Forwarder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`

	ReceptionFee   *calcmethod.CalculationMethod `json:"reception_fee"`
	StorageFee     *calcmethod.CalculationMethod `json:"storage_fee"`
	RepackagingFee *calcmethod.CalculationMethod `json:"repackaging_fee"`
	ReshippingFee  *calcmethod.CalculationMethod `json:"reshipping_fee"`
}

// Copy returns a deep copy of the rule.
func (r *DeliveryRule) Copy() *DeliveryRule {
	if r == nil {
		return nil
	}
	out := *r
	out.CalculationMethod = r.CalculationMethod.Copy()
	out.GlobalFreeShippingThreshold = copyDecimal(r.GlobalFreeShippingThreshold)
	out.CustomsClearanceFee = copyDecimal(r.CustomsClearanceFee)
	if r.Groups != nil {
		out.Groups = make([]*Group, len(r.Groups))
		for i, g := range r.Groups {
			out.Groups[i] = g.Copy()
		}
	}
	return &out
}

// Copy returns a deep copy of the group.
func (g *Group) Copy() *Group {
	if g == nil {
		return nil
	}
	out := *g
	out.CalculationMethod = g.CalculationMethod.Copy()
	out.FreeShippingThreshold = copyDecimal(g.FreeShippingThreshold)
	return &out
}

// Copy returns a deep copy of the forwarder.
func (f *Forwarder) Copy() *Forwarder {
	if f == nil {
		return nil
	}
	out := *f
	out.ReceptionFee = f.ReceptionFee.Copy()
	out.StorageFee = f.StorageFee.Copy()
	out.RepackagingFee = f.RepackagingFee.Copy()
	out.ReshippingFee = f.ReshippingFee.Copy()
	return &out
}

// Copy returns a deep copy of the offer.
func (o *Offer) Copy() *Offer {
	if o == nil {
		return nil
	}
	out := *o
	out.Price = copyDecimal(o.Price)
	out.ShippingPrice = copyDecimal(o.ShippingPrice)
	out.InsurancePrice = copyDecimal(o.InsurancePrice)
	return &out
}

// Copy returns a deep copy of the bundle.
func (b *Bundle) Copy() *Bundle {
	if b == nil {
		return nil
	}
	out := *b
	out.ProductIDs = append([]string(nil), b.ProductIDs...)
	out.Price = copyDecimal(b.Price)
	out.ShippingPrice = copyDecimal(b.ShippingPrice)
	out.InsurancePrice = copyDecimal(b.InsurancePrice)
	return &out
}

// Copy returns a deep copy of the session.
func (s *Session) Copy() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Products = append([]Product(nil), s.Products...)
	if s.Offers != nil {
		out.Offers = make([]*Offer, len(s.Offers))
		for i, o := range s.Offers {
			out.Offers[i] = o.Copy()
		}
	}
	if s.Bundles != nil {
		out.Bundles = make([]*Bundle, len(s.Bundles))
		for i, b := range s.Bundles {
			out.Bundles[i] = b.Copy()
		}
	}
	if s.DeliveryRules != nil {
		out.DeliveryRules = make([]*DeliveryRule, len(s.DeliveryRules))
		for i, r := range s.DeliveryRules {
			out.DeliveryRules[i] = r.Copy()
		}
	}
	if s.Forwarders != nil {
		out.Forwarders = make([]*Forwarder, len(s.Forwarders))
		for i, f := range s.Forwarders {
			out.Forwarders[i] = f.Copy()
		}
	}
	return &out
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
