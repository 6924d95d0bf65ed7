package service

import (
	"context"
	"strings"

	"github.com/shipwise/shipwise/internal/domain/calcmethod"
	"github.com/shipwise/shipwise/internal/domain/session"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shopspring/decimal"
)

// CurrencyConverterService rewrites every monetary leaf of a fee tree into a
// target currency, preserving structure. Rates read target→source: rates[src]
// is how many units of src one unit of the target buys, so a converted amount
// is round2(amount / rate). Each leaf is rounded independently.
type CurrencyConverterService interface {
	ConvertDeliveryRule(ctx context.Context, rule *session.DeliveryRule, rates types.RateMap, target string) (*session.DeliveryRule, error)
	ConvertForwarder(ctx context.Context, fwd *session.Forwarder, rates types.RateMap, target string) (*session.Forwarder, error)
	ConvertOffer(ctx context.Context, offer *session.Offer, rates types.RateMap, target string) (*session.Offer, error)
	ConvertBundle(ctx context.Context, bundle *session.Bundle, rates types.RateMap, target string) (*session.Bundle, error)
	ConvertSession(ctx context.Context, sess *session.Session, rates types.RateMap, target string) (*session.Session, error)
}

type currencyConverterService struct {
	logger *logger.Logger
}

func NewCurrencyConverterService(logger *logger.Logger) CurrencyConverterService {
	return &currencyConverterService{logger: logger}
}

func sameCurrency(a, b string) bool {
	return strings.EqualFold(a, b)
}

// needsConversion reports whether an entity currency requires a rate lookup.
// An empty currency means the entity carries no monetary fields of its own
// (provisioned default rules) and passes through untouched.
func needsConversion(source, target string) bool {
	return source != "" && !sameCurrency(source, target)
}

// resolveRate is the single failure point for conversion: a currency present
// in the entity but absent from the rate map aborts the whole call so the
// caller can collect the missing currency and re-prompt, never guess a rate.
func resolveRate(rates types.RateMap, source string) (decimal.Decimal, error) {
	rate, ok := rates.RateFor(source)
	if !ok || rate.IsZero() {
		return decimal.Zero, ierr.NewErrorf("no conversion rate for currency %s", source).
			WithHintf("Missing conversion rate for %s", source).
			WithReportableDetails(map[string]any{"currency": source}).
			Mark(ierr.ErrConversion)
	}
	return rate, nil
}

// convertAmount rewrites one leaf. Nil passes through: an unset amount stays
// "not set", it does not become zero.
func convertAmount(amount *decimal.Decimal, rate decimal.Decimal) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	converted := amount.Div(rate).Round(types.CONVERSION_PRECISION)
	return &converted
}

// convertMethod rewrites the monetary leaves of a calculation method at a
// known rate: the amount if present, and every range's min, max and value
// (max skipped when open-ended). Percentage rates carry no currency and stay
// untouched.
func convertMethod(method *calcmethod.CalculationMethod, rate decimal.Decimal) *calcmethod.CalculationMethod {
	if method == nil {
		return nil
	}
	out := method.Copy()
	out.Amount = convertAmount(out.Amount, rate)
	for i := range out.Ranges {
		r := &out.Ranges[i]
		r.Min = r.Min.Div(rate).Round(types.CONVERSION_PRECISION)
		r.Max = convertAmount(r.Max, rate)
		r.Value = r.Value.Div(rate).Round(types.CONVERSION_PRECISION)
	}
	return out
}

func (s *currencyConverterService) ConvertDeliveryRule(ctx context.Context, rule *session.DeliveryRule, rates types.RateMap, target string) (*session.DeliveryRule, error) {
	if rule == nil {
		return nil, nil
	}

	// The customs fee carries its own currency and converts independently of
	// the rule's. Empty means it shares the rule's currency.
	customsCurrency := rule.CustomsFeeCurrency
	if customsCurrency == "" {
		customsCurrency = rule.Currency
	}

	if !needsConversion(rule.Currency, target) && !needsConversion(customsCurrency, target) {
		return rule, nil
	}

	out := rule.Copy()

	if needsConversion(rule.Currency, target) {
		rate, err := resolveRate(rates, rule.Currency)
		if err != nil {
			return nil, err
		}
		out.GlobalFreeShippingThreshold = convertAmount(out.GlobalFreeShippingThreshold, rate)
		out.CalculationMethod = convertMethod(out.CalculationMethod, rate)
		for _, group := range out.Groups {
			group.FreeShippingThreshold = convertAmount(group.FreeShippingThreshold, rate)
			group.CalculationMethod = convertMethod(group.CalculationMethod, rate)
		}
		out.Currency = target
	}

	if needsConversion(customsCurrency, target) {
		rate, err := resolveRate(rates, customsCurrency)
		if err != nil {
			return nil, err
		}
		out.CustomsClearanceFee = convertAmount(out.CustomsClearanceFee, rate)
	}
	out.CustomsFeeCurrency = target

	return out, nil
}

func (s *currencyConverterService) ConvertForwarder(ctx context.Context, fwd *session.Forwarder, rates types.RateMap, target string) (*session.Forwarder, error) {
	if fwd == nil {
		return nil, nil
	}
	if !needsConversion(fwd.Currency, target) {
		return fwd, nil
	}

	rate, err := resolveRate(rates, fwd.Currency)
	if err != nil {
		return nil, err
	}

	out := fwd.Copy()
	out.ReceptionFee = convertMethod(out.ReceptionFee, rate)
	out.StorageFee = convertMethod(out.StorageFee, rate)
	out.RepackagingFee = convertMethod(out.RepackagingFee, rate)
	out.ReshippingFee = convertMethod(out.ReshippingFee, rate)
	out.Currency = target
	return out, nil
}

func (s *currencyConverterService) ConvertOffer(ctx context.Context, offer *session.Offer, rates types.RateMap, target string) (*session.Offer, error) {
	if offer == nil {
		return nil, nil
	}
	if !needsConversion(offer.Currency, target) {
		return offer, nil
	}

	rate, err := resolveRate(rates, offer.Currency)
	if err != nil {
		return nil, err
	}

	out := offer.Copy()
	out.Price = convertAmount(out.Price, rate)
	out.ShippingPrice = convertAmount(out.ShippingPrice, rate)
	out.InsurancePrice = convertAmount(out.InsurancePrice, rate)
	out.Currency = target
	return out, nil
}

func (s *currencyConverterService) ConvertBundle(ctx context.Context, bundle *session.Bundle, rates types.RateMap, target string) (*session.Bundle, error) {
	if bundle == nil {
		return nil, nil
	}
	if !needsConversion(bundle.Currency, target) {
		return bundle, nil
	}

	rate, err := resolveRate(rates, bundle.Currency)
	if err != nil {
		return nil, err
	}

	out := bundle.Copy()
	out.Price = convertAmount(out.Price, rate)
	out.ShippingPrice = convertAmount(out.ShippingPrice, rate)
	out.InsurancePrice = convertAmount(out.InsurancePrice, rate)
	out.Currency = target
	return out, nil
}

// ConvertSession normalizes every fee-bearing entity of a session to one
// currency, the step that precedes cost optimization. Entities already in the
// target currency are shared, not copied.
func (s *currencyConverterService) ConvertSession(ctx context.Context, sess *session.Session, rates types.RateMap, target string) (*session.Session, error) {
	if sess == nil {
		return nil, nil
	}

	out := *sess
	out.Offers = make([]*session.Offer, len(sess.Offers))
	for i, offer := range sess.Offers {
		converted, err := s.ConvertOffer(ctx, offer, rates, target)
		if err != nil {
			return nil, err
		}
		out.Offers[i] = converted
	}

	out.Bundles = make([]*session.Bundle, len(sess.Bundles))
	for i, bundle := range sess.Bundles {
		converted, err := s.ConvertBundle(ctx, bundle, rates, target)
		if err != nil {
			return nil, err
		}
		out.Bundles[i] = converted
	}

	out.DeliveryRules = make([]*session.DeliveryRule, len(sess.DeliveryRules))
	for i, rule := range sess.DeliveryRules {
		converted, err := s.ConvertDeliveryRule(ctx, rule, rates, target)
		if err != nil {
			return nil, err
		}
		out.DeliveryRules[i] = converted
	}

	out.Forwarders = make([]*session.Forwarder, len(sess.Forwarders))
	for i, fwd := range sess.Forwarders {
		converted, err := s.ConvertForwarder(ctx, fwd, rates, target)
		if err != nil {
			return nil, err
		}
		out.Forwarders[i] = converted
	}

	s.logger.WithContext(ctx).Debugf("converted session %s to %s", sess.ID, target)
	out.Currency = target
	return &out, nil
}
