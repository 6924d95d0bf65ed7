package service

import (
	"testing"

	"github.com/shipwise/shipwise/internal/domain/calcmethod"
	"github.com/shipwise/shipwise/internal/domain/session"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/testutil"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CurrencyConverterSuite struct {
	suite.Suite
	converter CurrencyConverterService
}

func TestCurrencyConverter(t *testing.T) {
	suite.Run(t, new(CurrencyConverterSuite))
}

func (s *CurrencyConverterSuite) SetupTest() {
	s.converter = NewCurrencyConverterService(logger.L)
}

func usdRates() types.RateMap {
	return types.RateMap{"USD": dec("1.10"), "GBP": dec("0.85"), "JPY": dec("160")}
}

func (s *CurrencyConverterSuite) TestConvertOffer() {
	offer := &session.Offer{
		ID:            "offer-1",
		Currency:      "USD",
		Price:         decPtr("10.00"),
		ShippingPrice: decPtr("4.99"),
	}

	out, err := s.converter.ConvertOffer(testutil.SetupContext(), offer, usdRates(), "EUR")
	s.NoError(err)
	s.Equal("EUR", out.Currency)
	s.True(out.Price.Equal(dec("9.09")), "10.00/1.10 rounds to 9.09, got %s", out.Price)
	s.True(out.ShippingPrice.Equal(dec("4.54")), "4.99/1.10 rounds to 4.54, got %s", out.ShippingPrice)
	s.Nil(out.InsurancePrice)

	// the input offer is never mutated
	s.Equal("USD", offer.Currency)
	s.True(offer.Price.Equal(dec("10.00")))
}

func (s *CurrencyConverterSuite) TestSameCurrencyShared() {
	offer := &session.Offer{ID: "offer-1", Currency: "eur", Price: decPtr("10")}

	out, err := s.converter.ConvertOffer(testutil.SetupContext(), offer, usdRates(), "EUR")
	s.NoError(err)
	s.Same(offer, out, "an offer already in the target currency is shared, not copied")
}

func (s *CurrencyConverterSuite) TestMissingRate() {
	offer := &session.Offer{ID: "offer-1", Currency: "CHF", Price: decPtr("10")}

	_, err := s.converter.ConvertOffer(testutil.SetupContext(), offer, usdRates(), "EUR")
	s.Error(err)
	s.True(ierr.IsConversion(err))
}

func (s *CurrencyConverterSuite) TestConvertDeliveryRule() {
	rule := &session.DeliveryRule{
		ID:       "rule-1",
		Seller:   "acme",
		Currency: "GBP",
		CalculationMethod: &calcmethod.CalculationMethod{
			Type:   types.CALCULATION_TYPE_PERCENTAGE,
			Rate:   decPtr("0.05"),
			Base:   types.PERCENTAGE_BASE_ORDER,
			Amount: nil,
		},
		Groups: []*session.Group{
			{Name: "fragile", FreeShippingThreshold: decPtr("50.00")},
		},
		GlobalFreeShippingThreshold: decPtr("100.00"),
	}

	out, err := s.converter.ConvertDeliveryRule(testutil.SetupContext(), rule, usdRates(), "EUR")
	s.NoError(err)
	s.Equal("EUR", out.Currency)
	s.True(out.GlobalFreeShippingThreshold.Equal(dec("117.65")), "100/0.85, got %s", out.GlobalFreeShippingThreshold)
	s.True(out.Groups[0].FreeShippingThreshold.Equal(dec("58.82")), "50/0.85, got %s", out.Groups[0].FreeShippingThreshold)
	// percentage rates carry no currency
	s.True(out.CalculationMethod.Rate.Equal(dec("0.05")))
}

func (s *CurrencyConverterSuite) TestConvertTieredMethodLeaves() {
	rule := &session.DeliveryRule{
		ID:       "rule-1",
		Currency: "USD",
		CalculationMethod: &calcmethod.CalculationMethod{
			Type:          types.CALCULATION_TYPE_WEIGHT,
			IsTiered:      true,
			TierValueType: types.TIER_VALUE_TYPE_FIXED,
			Ranges: []calcmethod.TierRange{
				{Min: dec("0"), Max: decPtr("10"), Value: dec("5")},
				{Min: dec("10"), Max: nil, Value: dec("3")},
			},
		},
	}

	out, err := s.converter.ConvertDeliveryRule(testutil.SetupContext(), rule, usdRates(), "EUR")
	s.NoError(err)
	ranges := out.CalculationMethod.Ranges
	s.True(ranges[0].Max.Equal(dec("9.09")))
	s.True(ranges[0].Value.Equal(dec("4.55")), "5/1.10 rounds to 4.55, got %s", ranges[0].Value)
	s.Nil(ranges[1].Max, "the open-ended bound stays open")
	s.True(ranges[1].Min.Equal(dec("9.09")))
}

func (s *CurrencyConverterSuite) TestCustomsFeeOwnCurrency() {
	rule := &session.DeliveryRule{
		ID:                  "rule-1",
		Currency:            "EUR",
		CustomsClearanceFee: decPtr("1600"),
		CustomsFeeCurrency:  "JPY",
	}

	out, err := s.converter.ConvertDeliveryRule(testutil.SetupContext(), rule, usdRates(), "EUR")
	s.NoError(err)
	s.True(out.CustomsClearanceFee.Equal(dec("10.00")), "1600/160, got %s", out.CustomsClearanceFee)
	s.Equal("EUR", out.CustomsFeeCurrency)
	// the rule currency already matched, so the rest is untouched
	s.Equal("EUR", out.Currency)
}

func (s *CurrencyConverterSuite) TestProvisionedRulePassesThrough() {
	// A provisioned default rule has no currency and no monetary fields.
	rule := &session.DeliveryRule{
		ID:                "rule-1",
		Seller:            "acme",
		BillingMethod:     types.BILLING_METHOD_GLOBAL,
		CalculationMethod: &calcmethod.CalculationMethod{Type: types.CALCULATION_TYPE_CUMUL},
	}

	out, err := s.converter.ConvertDeliveryRule(testutil.SetupContext(), rule, types.RateMap{}, "EUR")
	s.NoError(err)
	s.Same(rule, out)
}

func (s *CurrencyConverterSuite) TestConvertForwarder() {
	fwd := &session.Forwarder{
		ID:       "fwd-1",
		Currency: "USD",
		ReceptionFee: &calcmethod.CalculationMethod{
			Type:   types.CALCULATION_TYPE_FIXED,
			Amount: decPtr("2.20"),
		},
	}

	out, err := s.converter.ConvertForwarder(testutil.SetupContext(), fwd, usdRates(), "EUR")
	s.NoError(err)
	s.Equal("EUR", out.Currency)
	s.True(out.ReceptionFee.Amount.Equal(dec("2.00")))
	s.Nil(out.StorageFee)
}

func (s *CurrencyConverterSuite) TestConvertSession() {
	sess := &session.Session{
		ID:       "sess-1",
		Currency: "EUR",
		Offers: []*session.Offer{
			{ID: "o1", Currency: "USD", Price: decPtr("10.00")},
			{ID: "o2", Currency: "EUR", Price: decPtr("7.00")},
		},
		Bundles: []*session.Bundle{
			{ID: "b1", Currency: "GBP", Price: decPtr("50.00")},
		},
		Forwarders: []*session.Forwarder{
			{ID: "f1", Currency: "EUR"},
		},
	}

	out, err := s.converter.ConvertSession(testutil.SetupContext(), sess, usdRates(), "EUR")
	s.NoError(err)
	s.Equal("EUR", out.Currency)
	s.True(out.Offers[0].Price.Equal(dec("9.09")))
	s.Same(sess.Offers[1], out.Offers[1])
	s.True(out.Bundles[0].Price.Equal(dec("58.82")))
	s.Same(sess.Forwarders[0], out.Forwarders[0])
}

func (s *CurrencyConverterSuite) TestRoundTripWithinTolerance() {
	rate := dec("1.10")
	inverse := decimal.NewFromInt(1).Div(rate)

	for _, amount := range []string{"10.00", "4.99", "0.01", "123.45"} {
		offer := &session.Offer{ID: "o1", Currency: "USD", Price: decPtr(amount)}

		toEUR, err := s.converter.ConvertOffer(testutil.SetupContext(), offer, types.RateMap{"USD": rate}, "EUR")
		s.NoError(err)
		back, err := s.converter.ConvertOffer(testutil.SetupContext(), toEUR, types.RateMap{"EUR": inverse}, "USD")
		s.NoError(err)

		drift := back.Price.Sub(dec(amount)).Abs()
		s.True(drift.LessThanOrEqual(dec("0.01")), "%s drifted by %s", amount, drift)
	}
}

func (s *CurrencyConverterSuite) TestConvertSessionMissingRateAborts() {
	sess := &session.Session{
		ID:       "sess-1",
		Currency: "EUR",
		Offers: []*session.Offer{
			{ID: "o1", Currency: "CHF", Price: decPtr("10.00")},
		},
	}

	_, err := s.converter.ConvertSession(testutil.SetupContext(), sess, usdRates(), "EUR")
	s.Error(err)
	s.True(ierr.IsConversion(err))
}
