package types

import (
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/samber/lo"
)

// CalculationType discriminates how a fee is computed. Tiered variants are
// keyed by the dimension the schedule is indexed on.
type CalculationType string

const (
	// CALCULATION_TYPE_FREE means no fee at all.
	CALCULATION_TYPE_FREE CalculationType = "free"

	// CALCULATION_TYPE_ITEM attaches the fee per physical item; the amount is
	// resolved elsewhere so the method itself carries no numeric fields.
	CALCULATION_TYPE_ITEM CalculationType = "item"

	// CALCULATION_TYPE_CUMUL is the additive placeholder used for provisioned
	// default rules: underlying costs are summed, no extra fee is added.
	CALCULATION_TYPE_CUMUL CalculationType = "cumul"

	// CALCULATION_TYPE_FIXED is a flat fee.
	CALCULATION_TYPE_FIXED CalculationType = "fixed"

	// CALCULATION_TYPE_PERCENTAGE applies a decimal rate (0.05 = 5%) to the
	// order total or the delivery subtotal depending on the base.
	CALCULATION_TYPE_PERCENTAGE CalculationType = "percentage"

	// Tiered variants, one per measurement dimension.
	CALCULATION_TYPE_QUANTITY         CalculationType = "quantity"
	CALCULATION_TYPE_DISTANCE         CalculationType = "distance"
	CALCULATION_TYPE_WEIGHT           CalculationType = "weight"
	CALCULATION_TYPE_VOLUME           CalculationType = "volume"
	CALCULATION_TYPE_DIMENSION        CalculationType = "dimension"
	CALCULATION_TYPE_WEIGHT_VOLUME    CalculationType = "weight_volume"
	CALCULATION_TYPE_WEIGHT_DIMENSION CalculationType = "weight_dimension"
)

var calculationTypes = []CalculationType{
	CALCULATION_TYPE_FREE,
	CALCULATION_TYPE_ITEM,
	CALCULATION_TYPE_CUMUL,
	CALCULATION_TYPE_FIXED,
	CALCULATION_TYPE_PERCENTAGE,
	CALCULATION_TYPE_QUANTITY,
	CALCULATION_TYPE_DISTANCE,
	CALCULATION_TYPE_WEIGHT,
	CALCULATION_TYPE_VOLUME,
	CALCULATION_TYPE_DIMENSION,
	CALCULATION_TYPE_WEIGHT_VOLUME,
	CALCULATION_TYPE_WEIGHT_DIMENSION,
}

var tieredTypes = []CalculationType{
	CALCULATION_TYPE_QUANTITY,
	CALCULATION_TYPE_DISTANCE,
	CALCULATION_TYPE_WEIGHT,
	CALCULATION_TYPE_VOLUME,
	CALCULATION_TYPE_DIMENSION,
	CALCULATION_TYPE_WEIGHT_VOLUME,
	CALCULATION_TYPE_WEIGHT_DIMENSION,
}

// IsTiered reports whether the type carries a tier schedule.
func (t CalculationType) IsTiered() bool {
	return lo.Contains(tieredTypes, t)
}

// RequiresInteger reports whether tier bounds for this type must be whole
// numbers. Only the quantity dimension counts discrete units.
func (t CalculationType) RequiresInteger() bool {
	return t == CALCULATION_TYPE_QUANTITY
}

func (t CalculationType) Validate() error {
	if !lo.Contains(calculationTypes, t) {
		return ierr.NewErrorf("unknown calculation type: %s", t).
			WithHint("Calculation method type is not recognized").
			WithReportableDetails(map[string]any{"type": string(t)}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

// PercentageBase selects what a percentage fee applies to.
type PercentageBase string

const (
	PERCENTAGE_BASE_ORDER    PercentageBase = "order"
	PERCENTAGE_BASE_DELIVERY PercentageBase = "delivery"
)

func (b PercentageBase) Validate() error {
	if b != PERCENTAGE_BASE_ORDER && b != PERCENTAGE_BASE_DELIVERY {
		return ierr.NewErrorf("unknown percentage base: %s", b).
			WithHint("Percentage base must be order or delivery").
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

// TierValueType says whether each tier's value is a flat amount or a
// percentage of the order / delivery base.
type TierValueType string

const (
	TIER_VALUE_TYPE_FIXED        TierValueType = "fixed"
	TIER_VALUE_TYPE_PCT_ORDER    TierValueType = "pctOrder"
	TIER_VALUE_TYPE_PCT_DELIVERY TierValueType = "pctDelivery"
)

func (t TierValueType) Validate() error {
	switch t {
	case TIER_VALUE_TYPE_FIXED, TIER_VALUE_TYPE_PCT_ORDER, TIER_VALUE_TYPE_PCT_DELIVERY:
		return nil
	}
	return ierr.NewErrorf("unknown tier value type: %s", t).
		WithHint("Tier value type must be fixed, pctOrder or pctDelivery").
		Mark(ierr.ErrInvalidOperation)
}

// TierValueMode says whether a tier's value applies once or is multiplied by
// the measured quantity.
type TierValueMode string

const (
	TIER_VALUE_MODE_TOTAL    TierValueMode = "total"
	TIER_VALUE_MODE_PER_UNIT TierValueMode = "perUnit"
)

func (m TierValueMode) Validate() error {
	if m != TIER_VALUE_MODE_TOTAL && m != TIER_VALUE_MODE_PER_UNIT {
		return ierr.NewErrorf("unknown tier value mode: %s", m).
			WithHint("Tier value mode must be total or perUnit").
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

// BillingMethod is how a seller's delivery rule is billed across an order.
type BillingMethod string

const (
	BILLING_METHOD_GLOBAL    BillingMethod = "global"
	BILLING_METHOD_PER_GROUP BillingMethod = "perGroup"
)
