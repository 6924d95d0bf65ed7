package service

import (
	"testing"

	"github.com/shipwise/shipwise/internal/domain/calcmethod"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/testutil"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type FeeResolverSuite struct {
	suite.Suite
	resolver FeeResolverService
	order    types.OrderContext
}

func TestFeeResolver(t *testing.T) {
	suite.Run(t, new(FeeResolverSuite))
}

func (s *FeeResolverSuite) SetupTest() {
	s.resolver = NewFeeResolverService(logger.L)
	s.order = types.OrderContext{
		Total:            decimal.NewFromInt(200),
		DeliverySubtotal: decimal.NewFromInt(40),
	}
}

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func quantityTiers() *calcmethod.CalculationMethod {
	return &calcmethod.CalculationMethod{
		Type:          types.CALCULATION_TYPE_QUANTITY,
		IsTiered:      true,
		TierValueType: types.TIER_VALUE_TYPE_FIXED,
		TierValueMode: types.TIER_VALUE_MODE_TOTAL,
		Ranges: []calcmethod.TierRange{
			{Min: dec("1"), Max: decPtr("10"), Value: dec("5")},
			{Min: dec("11"), Max: nil, Value: dec("3")},
		},
	}
}

func (s *FeeResolverSuite) TestTieredBoundariesInclusive() {
	ctx := testutil.SetupContext()
	method := quantityTiers()

	fee, err := s.resolver.Resolve(ctx, method, dec("10"), s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("5")), "10 items fall in the first tier, got %s", fee)

	fee, err = s.resolver.Resolve(ctx, method, dec("11"), s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("3")), "11 items fall in the open tier, got %s", fee)

	fee, err = s.resolver.Resolve(ctx, method, dec("50"), s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("3")), "50 items fall in the open tier, got %s", fee)
}

func (s *FeeResolverSuite) TestTieredOutOfRange() {
	method := quantityTiers()
	// Drop the open-ended terminal range so a large measurement misses.
	method.Ranges = method.Ranges[:1]

	_, err := s.resolver.Resolve(testutil.SetupContext(), method, dec("50"), s.order)
	s.Error(err)
	s.True(ierr.IsOutOfRange(err))
}

func (s *FeeResolverSuite) TestTieredPerUnit() {
	method := quantityTiers()
	method.TierValueMode = types.TIER_VALUE_MODE_PER_UNIT

	fee, err := s.resolver.Resolve(testutil.SetupContext(), method, dec("4"), s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("20")), "4 units at 5 each, got %s", fee)
}

func (s *FeeResolverSuite) TestTieredPercentValues() {
	method := quantityTiers()
	method.TierValueType = types.TIER_VALUE_TYPE_PCT_ORDER
	method.Ranges[0].Value = dec("0.05")

	fee, err := s.resolver.Resolve(testutil.SetupContext(), method, dec("2"), s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("10")), "5%% of the 200 order total, got %s", fee)

	method.TierValueType = types.TIER_VALUE_TYPE_PCT_DELIVERY
	fee, err = s.resolver.Resolve(testutil.SetupContext(), method, dec("2"), s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("2")), "5%% of the 40 delivery subtotal, got %s", fee)
}

func (s *FeeResolverSuite) TestFixed() {
	method := &calcmethod.CalculationMethod{
		Type:   types.CALCULATION_TYPE_FIXED,
		Amount: decPtr("12.50"),
	}
	fee, err := s.resolver.Resolve(testutil.SetupContext(), method, decimal.Zero, s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("12.50")))

	method.Amount = nil
	_, err = s.resolver.Resolve(testutil.SetupContext(), method, decimal.Zero, s.order)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *FeeResolverSuite) TestPercentageBases() {
	method := &calcmethod.CalculationMethod{
		Type: types.CALCULATION_TYPE_PERCENTAGE,
		Rate: decPtr("0.10"),
	}

	// Base defaults to the order total when unset.
	fee, err := s.resolver.Resolve(testutil.SetupContext(), method, decimal.Zero, s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("20")))

	method.Base = types.PERCENTAGE_BASE_DELIVERY
	fee, err = s.resolver.Resolve(testutil.SetupContext(), method, decimal.Zero, s.order)
	s.NoError(err)
	s.True(fee.Equal(dec("4")))
}

func (s *FeeResolverSuite) TestZeroFeeVariants() {
	for _, t := range []types.CalculationType{
		types.CALCULATION_TYPE_FREE,
		types.CALCULATION_TYPE_ITEM,
		types.CALCULATION_TYPE_CUMUL,
	} {
		fee, err := s.resolver.Resolve(testutil.SetupContext(), &calcmethod.CalculationMethod{Type: t}, dec("5"), s.order)
		s.NoError(err)
		s.True(fee.IsZero(), "%s contributes no fee of its own", t)
	}
}

func (s *FeeResolverSuite) TestNilMethod() {
	_, err := s.resolver.Resolve(testutil.SetupContext(), nil, decimal.Zero, s.order)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *FeeResolverSuite) TestFreeShippingThreshold() {
	fee := dec("7.50")

	s.True(s.resolver.ApplyFreeShippingThreshold(fee, nil, dec("1000")).Equal(fee))
	s.True(s.resolver.ApplyFreeShippingThreshold(fee, decPtr("50"), dec("49.99")).Equal(fee))
	s.True(s.resolver.ApplyFreeShippingThreshold(fee, decPtr("50"), dec("50")).IsZero())
	s.True(s.resolver.ApplyFreeShippingThreshold(fee, decPtr("50"), dec("120")).IsZero())
}
