package calcmethod

import (
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/types"
)

// FromMap interprets a raw key-value structure as a calculation method of the
// given type. Acceptance is structural only: missing fields default per
// variant and no consistency checks run here, so "can this be read as a
// method" stays separate from "is this method internally consistent".
func FromMap(raw map[string]interface{}, t types.CalculationType) (*CalculationMethod, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	method, err := types.ToStruct[CalculationMethod](raw)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Cannot interpret structure as a %s calculation method", t).
			Mark(ierr.ErrInvalidOperation)
	}
	method.Type = t

	applyDefaults(&method, raw)
	return &method, nil
}

// applyDefaults fills per-variant defaults for fields the raw structure
// omitted. The raw map is consulted where the zero value is indistinguishable
// from an absent field.
func applyDefaults(m *CalculationMethod, raw map[string]interface{}) {
	switch {
	case m.Type == types.CALCULATION_TYPE_PERCENTAGE:
		if m.Base == "" {
			m.Base = types.PERCENTAGE_BASE_ORDER
		}
	case m.Type.IsTiered():
		if m.TierValueType == "" {
			m.TierValueType = types.TIER_VALUE_TYPE_FIXED
		}
		if m.TierValueMode == "" {
			m.TierValueMode = types.TIER_VALUE_MODE_TOTAL
		}
		// The quantity dimension is always tiered; other dimensions default
		// to tiered when a schedule is present and isTiered was not supplied.
		if m.Type == types.CALCULATION_TYPE_QUANTITY {
			m.IsTiered = true
		} else if _, supplied := raw["isTiered"]; !supplied && m.HasRanges() {
			m.IsTiered = true
		}
	}
}
