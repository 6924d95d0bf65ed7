package calcmethod

import (
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shopspring/decimal"
)

// CalculationMethod describes how a fee is computed. It is a tagged variant
// discriminated by Type; only the fields relevant to a variant are set.
// The model is shape only: internal consistency of a tier schedule is the
// validator's job and is never repaired here.
type CalculationMethod struct {
	Type types.CalculationType `json:"type"`

	// Amount is the flat fee for the fixed variant.
	Amount *decimal.Decimal `json:"amount,omitempty"`

	// Rate is the decimal fraction for the percentage variant (0.05 = 5%).
	Rate *decimal.Decimal `json:"rate,omitempty"`

	// Base selects what the percentage applies to.
	Base types.PercentageBase `json:"base,omitempty"`

	// IsTiered distinguishes a tier schedule from a single amount with a
	// unit for non-quantity dimensions.
	IsTiered bool `json:"isTiered,omitempty"`

	// Unit is the unit-of-measure code, dimension dependent (kg, cm3, km...).
	Unit string `json:"unit,omitempty"`

	TierValueType types.TierValueType `json:"tierValueType,omitempty"`
	TierValueMode types.TierValueMode `json:"tierValueMode,omitempty"`

	// Ranges is the tier schedule ordered by ascending min.
	Ranges []TierRange `json:"ranges,omitempty"`
}

// TierRange is one row of a tiered schedule. Max is nil for the open-ended
// terminal range, which is legal only on the last row.
type TierRange struct {
	Min   decimal.Decimal  `json:"min"`
	Max   *decimal.Decimal `json:"max"`
	Value decimal.Decimal  `json:"value"`
}

// Contains reports whether the measurement falls inside the range, both
// bounds inclusive. An open-ended range matches everything above Min.
func (r TierRange) Contains(measurement decimal.Decimal) bool {
	if measurement.LessThan(r.Min) {
		return false
	}
	if r.Max == nil {
		return true
	}
	return measurement.LessThanOrEqual(*r.Max)
}

// SameBounds reports whether two ranges cover the identical (min, max) pair.
func (r TierRange) SameBounds(other TierRange) bool {
	if !r.Min.Equal(other.Min) {
		return false
	}
	if (r.Max == nil) != (other.Max == nil) {
		return false
	}
	if r.Max == nil {
		return true
	}
	return r.Max.Equal(*other.Max)
}

// HasRanges reports whether the method carries at least one tier range.
func (m *CalculationMethod) HasRanges() bool {
	return len(m.Ranges) > 0
}

// Copy returns a deep copy of the method. Conversion allocates new
// structures instead of mutating inputs, so shared inputs stay safe.
func (m *CalculationMethod) Copy() *CalculationMethod {
	if m == nil {
		return nil
	}
	out := *m
	out.Amount = copyDecimal(m.Amount)
	out.Rate = copyDecimal(m.Rate)
	if m.Ranges != nil {
		out.Ranges = make([]TierRange, len(m.Ranges))
		for i, r := range m.Ranges {
			out.Ranges[i] = TierRange{
				Min:   r.Min,
				Max:   copyDecimal(r.Max),
				Value: r.Value,
			}
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
