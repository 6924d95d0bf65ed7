package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/shipwise/shipwise/internal/domain/calcmethod"
	"github.com/shipwise/shipwise/internal/domain/session"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/types"
)

// ProvisionResult reports what default-rule provisioning produced. HasNew
// tells the caller whether anything needs persisting.
type ProvisionResult struct {
	Rules  []*session.DeliveryRule `json:"rules"`
	Added  []*session.DeliveryRule `json:"added"`
	HasNew bool                    `json:"has_new"`
}

// ProvisionerService guarantees every seller observed across a session's
// offers and bundles has at least one delivery rule.
type ProvisionerService interface {
	ProvisionDefaultRules(ctx context.Context, sess *session.Session) ProvisionResult
}

type provisionerService struct {
	logger *logger.Logger
}

func NewProvisionerService(logger *logger.Logger) ProvisionerService {
	return &provisionerService{logger: logger}
}

// ProvisionDefaultRules synthesizes a default rule per seller that has none:
// billed globally with the additive cumul placeholder, meaning underlying
// costs are summed and no extra fee applies (distinct from free). The input
// session is not mutated; running the result through again adds nothing.
func (s *provisionerService) ProvisionDefaultRules(ctx context.Context, sess *session.Session) ProvisionResult {
	result := ProvisionResult{
		Rules: append([]*session.DeliveryRule(nil), sess.DeliveryRules...),
	}

	covered := lo.SliceToMap(sess.DeliveryRules, func(r *session.DeliveryRule) (string, bool) {
		return r.Seller, true
	})

	sellers := lo.Map(sess.Offers, func(o *session.Offer, _ int) string { return o.Seller })
	sellers = append(sellers, lo.Map(sess.Bundles, func(b *session.Bundle, _ int) string { return b.Seller })...)

	for _, seller := range lo.Uniq(sellers) {
		if seller == "" || covered[seller] {
			continue
		}
		rule := &session.DeliveryRule{
			ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DELIVERY_RULE),
			Seller:        seller,
			BillingMethod: types.BILLING_METHOD_GLOBAL,
			CalculationMethod: &calcmethod.CalculationMethod{
				Type: types.CALCULATION_TYPE_CUMUL,
			},
		}
		covered[seller] = true
		result.Rules = append(result.Rules, rule)
		result.Added = append(result.Added, rule)
	}

	result.HasNew = len(result.Added) > 0
	if result.HasNew {
		s.logger.WithContext(ctx).Infof("provisioned %d default delivery rules for session %s", len(result.Added), sess.ID)
	}
	return result
}
