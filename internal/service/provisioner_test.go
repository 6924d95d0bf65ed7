package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shipwise/shipwise/internal/domain/session"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/testutil"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/stretchr/testify/suite"
)

type ProvisionerSuite struct {
	suite.Suite
	provisioner ProvisionerService
}

func TestProvisioner(t *testing.T) {
	suite.Run(t, new(ProvisionerSuite))
}

func (s *ProvisionerSuite) SetupTest() {
	s.provisioner = NewProvisionerService(logger.L)
}

func (s *ProvisionerSuite) TestFillsMissingSellers() {
	sess := &session.Session{
		ID: "sess-1",
		Offers: []*session.Offer{
			{ID: "o1", Seller: "acme"},
			{ID: "o2", Seller: "globex"},
		},
		Bundles: []*session.Bundle{
			{ID: "b1", Seller: "initech"},
		},
		DeliveryRules: []*session.DeliveryRule{
			{ID: "rule-1", Seller: "acme"},
		},
	}

	result := s.provisioner.ProvisionDefaultRules(testutil.SetupContext(), sess)
	s.True(result.HasNew)
	s.Len(result.Added, 2)
	s.Len(result.Rules, 3)

	sellers := lo.Map(result.Added, func(r *session.DeliveryRule, _ int) string { return r.Seller })
	s.ElementsMatch([]string{"globex", "initech"}, sellers)

	for _, rule := range result.Added {
		s.NotEmpty(rule.ID)
		s.Equal(types.BILLING_METHOD_GLOBAL, rule.BillingMethod)
		s.Equal(types.CALCULATION_TYPE_CUMUL, rule.CalculationMethod.Type)
		s.Empty(rule.Currency)
	}

	// the input session is untouched
	s.Len(sess.DeliveryRules, 1)
}

func (s *ProvisionerSuite) TestIdempotent() {
	sess := &session.Session{
		ID: "sess-1",
		Offers: []*session.Offer{
			{ID: "o1", Seller: "acme"},
		},
	}

	first := s.provisioner.ProvisionDefaultRules(testutil.SetupContext(), sess)
	s.True(first.HasNew)
	s.Len(first.Added, 1)

	sess.DeliveryRules = first.Rules
	second := s.provisioner.ProvisionDefaultRules(testutil.SetupContext(), sess)
	s.False(second.HasNew)
	s.Empty(second.Added)
	s.Len(second.Rules, 1)
}

func (s *ProvisionerSuite) TestSkipsEmptySeller() {
	sess := &session.Session{
		ID: "sess-1",
		Offers: []*session.Offer{
			{ID: "o1", Seller: ""},
		},
	}

	result := s.provisioner.ProvisionDefaultRules(testutil.SetupContext(), sess)
	s.False(result.HasNew)
	s.Empty(result.Rules)
}

func (s *ProvisionerSuite) TestDedupesSellerAcrossOffersAndBundles() {
	sess := &session.Session{
		ID: "sess-1",
		Offers: []*session.Offer{
			{ID: "o1", Seller: "acme"},
			{ID: "o2", Seller: "acme"},
		},
		Bundles: []*session.Bundle{
			{ID: "b1", Seller: "acme"},
		},
	}

	result := s.provisioner.ProvisionDefaultRules(testutil.SetupContext(), sess)
	s.Len(result.Added, 1)
}
