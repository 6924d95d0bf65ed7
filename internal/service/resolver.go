package service

import (
	"context"

	"github.com/shipwise/shipwise/internal/domain/calcmethod"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shopspring/decimal"
)

// FeeResolverService computes the fee amount a calculation method yields for
// a measured quantity. Percentage variants draw their base from the supplied
// order context.
type FeeResolverService interface {
	Resolve(ctx context.Context, method *calcmethod.CalculationMethod, measurement decimal.Decimal, order types.OrderContext) (decimal.Decimal, error)

	// ApplyFreeShippingThreshold zeroes a fee once the order subtotal
	// reaches the threshold. A nil threshold never triggers.
	ApplyFreeShippingThreshold(fee decimal.Decimal, threshold *decimal.Decimal, orderSubtotal decimal.Decimal) decimal.Decimal
}

type feeResolverService struct {
	logger *logger.Logger
}

func NewFeeResolverService(logger *logger.Logger) FeeResolverService {
	return &feeResolverService{logger: logger}
}

func (s *feeResolverService) Resolve(ctx context.Context, method *calcmethod.CalculationMethod, measurement decimal.Decimal, order types.OrderContext) (decimal.Decimal, error) {
	if method == nil {
		return decimal.Zero, ierr.NewError("calculation method is nil").
			WithHint("A calculation method is required to resolve a fee").
			Mark(ierr.ErrInvalidOperation)
	}

	switch method.Type {
	case types.CALCULATION_TYPE_FREE, types.CALCULATION_TYPE_ITEM, types.CALCULATION_TYPE_CUMUL:
		// item fees are resolved from the offers themselves and cumul only
		// sums underlying costs; neither adds a fee of its own.
		return decimal.Zero, nil

	case types.CALCULATION_TYPE_FIXED:
		if method.Amount == nil {
			return decimal.Zero, ierr.NewError("fixed method has no amount").
				WithHint("Fixed fee amount is not set").
				Mark(ierr.ErrInvalidOperation)
		}
		return *method.Amount, nil

	case types.CALCULATION_TYPE_PERCENTAGE:
		if method.Rate == nil {
			return decimal.Zero, ierr.NewError("percentage method has no rate").
				WithHint("Percentage fee rate is not set").
				Mark(ierr.ErrInvalidOperation)
		}
		base, err := percentageBase(method.Base, order)
		if err != nil {
			return decimal.Zero, err
		}
		return method.Rate.Mul(base), nil
	}

	if !method.Type.IsTiered() {
		return decimal.Zero, ierr.NewErrorf("unknown calculation type: %s", method.Type).
			WithHint("Calculation method type is not recognized").
			Mark(ierr.ErrInvalidOperation)
	}

	return s.resolveTiered(ctx, method, measurement, order)
}

// resolveTiered locates the range containing the measurement and applies the
// tier value semantics. Ranges are few and UI-authored in ascending order, so
// a linear scan taking the first match is enough.
func (s *feeResolverService) resolveTiered(ctx context.Context, method *calcmethod.CalculationMethod, measurement decimal.Decimal, order types.OrderContext) (decimal.Decimal, error) {
	for _, r := range method.Ranges {
		if !r.Contains(measurement) {
			continue
		}
		return s.tierContribution(method, r, measurement, order)
	}

	// A validated schedule ends in an open-ended range, so falling through
	// means validation was bypassed. Surface it, never clamp or zero.
	s.logger.WithContext(ctx).Errorf("no tier matches measurement %s for %s method", measurement.String(), method.Type)
	return decimal.Zero, ierr.NewErrorf("measurement %s outside all tier ranges", measurement.String()).
		WithHint("No tier covers the measured quantity").
		WithReportableDetails(map[string]any{
			"measurement": measurement.String(),
			"type":        string(method.Type),
		}).
		Mark(ierr.ErrOutOfRange)
}

func (s *feeResolverService) tierContribution(method *calcmethod.CalculationMethod, r calcmethod.TierRange, measurement decimal.Decimal, order types.OrderContext) (decimal.Decimal, error) {
	contribution := r.Value

	switch method.TierValueType {
	case types.TIER_VALUE_TYPE_FIXED, "":
		// value is already an amount
	case types.TIER_VALUE_TYPE_PCT_ORDER:
		contribution = r.Value.Mul(order.Total)
	case types.TIER_VALUE_TYPE_PCT_DELIVERY:
		contribution = r.Value.Mul(order.DeliverySubtotal)
	default:
		return decimal.Zero, ierr.NewErrorf("unknown tier value type: %s", method.TierValueType).
			WithHint("Tier value type is not recognized").
			Mark(ierr.ErrInvalidOperation)
	}

	if method.TierValueMode == types.TIER_VALUE_MODE_PER_UNIT {
		contribution = contribution.Mul(measurement)
	}
	return contribution, nil
}

func (s *feeResolverService) ApplyFreeShippingThreshold(fee decimal.Decimal, threshold *decimal.Decimal, orderSubtotal decimal.Decimal) decimal.Decimal {
	if threshold == nil {
		return fee
	}
	if orderSubtotal.GreaterThanOrEqual(*threshold) {
		return decimal.Zero
	}
	return fee
}

func percentageBase(base types.PercentageBase, order types.OrderContext) (decimal.Decimal, error) {
	switch base {
	case types.PERCENTAGE_BASE_ORDER, "":
		return order.Total, nil
	case types.PERCENTAGE_BASE_DELIVERY:
		return order.DeliverySubtotal, nil
	}
	return decimal.Zero, ierr.NewErrorf("unknown percentage base: %s", base).
		WithHint("Percentage base must be order or delivery").
		Mark(ierr.ErrInvalidOperation)
}
