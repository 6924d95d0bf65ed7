package calcmethod

import "github.com/shipwise/shipwise/internal/types"

// TierRangeInput is one tier row exactly as a form holds it: raw strings
// that may not parse yet. An empty Max means "open-ended" on the last row
// and "missing" everywhere else.
type TierRangeInput struct {
	Min   string `json:"min"`
	Max   string `json:"max"`
	Value string `json:"value"`
}

// MethodInput is a calculation method as collected by a form, before it is
// accepted into a CalculationMethod. Only the fields relevant to Type are
// expected to be filled.
type MethodInput struct {
	Type          types.CalculationType `json:"type"`
	Amount        string                `json:"amount,omitempty"`
	Rate          string                `json:"rate,omitempty"`
	Base          types.PercentageBase  `json:"base,omitempty"`
	Unit          string                `json:"unit,omitempty"`
	TierValueType types.TierValueType   `json:"tierValueType,omitempty"`
	TierValueMode types.TierValueMode   `json:"tierValueMode,omitempty"`
	Ranges        []TierRangeInput      `json:"ranges,omitempty"`
}
