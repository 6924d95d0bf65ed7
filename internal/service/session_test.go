package service

import (
	"testing"

	"github.com/shipwise/shipwise/internal/domain/session"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/testutil"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/stretchr/testify/suite"
)

type SessionServiceSuite struct {
	suite.Suite
	store   *testutil.InMemorySessionStore
	service SessionService
}

func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceSuite))
}

func (s *SessionServiceSuite) SetupTest() {
	s.store = testutil.NewInMemorySessionStore()
	s.service = NewSessionService(
		s.store,
		NewCurrencyConverterService(logger.L),
		NewProvisionerService(logger.L),
		logger.L,
	)
}

func (s *SessionServiceSuite) TestCreateAssignsID() {
	ctx := testutil.SetupContext()

	created, err := s.service.CreateSession(ctx, &session.Session{Name: "trip", Currency: "EUR"})
	s.NoError(err)
	s.NotEmpty(created.ID)

	got, err := s.service.GetSession(ctx, created.ID)
	s.NoError(err)
	s.Equal("trip", got.Name)
}

func (s *SessionServiceSuite) TestGetUnknown() {
	_, err := s.service.GetSession(testutil.SetupContext(), "missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SessionServiceSuite) TestUpdateRequiresID() {
	_, err := s.service.UpdateSession(testutil.SetupContext(), &session.Session{Name: "trip"})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SessionServiceSuite) TestDelete() {
	ctx := testutil.SetupContext()
	created, err := s.service.CreateSession(ctx, &session.Session{Name: "trip"})
	s.NoError(err)

	s.NoError(s.service.DeleteSession(ctx, created.ID))

	_, err = s.service.GetSession(ctx, created.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *SessionServiceSuite) TestList() {
	ctx := testutil.SetupContext()
	_, err := s.service.CreateSession(ctx, &session.Session{ID: "sess_b", Name: "b"})
	s.NoError(err)
	_, err = s.service.CreateSession(ctx, &session.Session{ID: "sess_a", Name: "a"})
	s.NoError(err)

	sessions, err := s.service.ListSessions(ctx)
	s.NoError(err)
	s.Len(sessions, 2)
	s.Equal("sess_a", sessions[0].ID)
}

func (s *SessionServiceSuite) TestConvertSessionPersists() {
	ctx := testutil.SetupContext()
	created, err := s.service.CreateSession(ctx, &session.Session{
		Name:     "trip",
		Currency: "EUR",
		Offers: []*session.Offer{
			{ID: "o1", Currency: "USD", Price: decPtr("10.00")},
		},
	})
	s.NoError(err)

	converted, err := s.service.ConvertSession(ctx, created.ID, types.RateMap{"USD": dec("1.10")}, "EUR")
	s.NoError(err)
	s.True(converted.Offers[0].Price.Equal(dec("9.09")))

	stored, err := s.service.GetSession(ctx, created.ID)
	s.NoError(err)
	s.Equal("EUR", stored.Offers[0].Currency)
	s.True(stored.Offers[0].Price.Equal(dec("9.09")))
}

func (s *SessionServiceSuite) TestConvertSessionMissingRateLeavesStoreUntouched() {
	ctx := testutil.SetupContext()
	created, err := s.service.CreateSession(ctx, &session.Session{
		Name:     "trip",
		Currency: "EUR",
		Offers: []*session.Offer{
			{ID: "o1", Currency: "CHF", Price: decPtr("10.00")},
		},
	})
	s.NoError(err)

	_, err = s.service.ConvertSession(ctx, created.ID, types.RateMap{}, "EUR")
	s.Error(err)
	s.True(ierr.IsConversion(err))

	stored, err := s.service.GetSession(ctx, created.ID)
	s.NoError(err)
	s.Equal("CHF", stored.Offers[0].Currency)
}

func (s *SessionServiceSuite) TestProvisionPersistsOnlyWhenNew() {
	ctx := testutil.SetupContext()
	created, err := s.service.CreateSession(ctx, &session.Session{
		Name: "trip",
		Offers: []*session.Offer{
			{ID: "o1", Seller: "acme"},
		},
	})
	s.NoError(err)

	updated, result, err := s.service.ProvisionDefaultRules(ctx, created.ID)
	s.NoError(err)
	s.True(result.HasNew)
	s.Len(updated.DeliveryRules, 1)

	stored, err := s.service.GetSession(ctx, created.ID)
	s.NoError(err)
	s.Len(stored.DeliveryRules, 1)

	// second pass is a no-op
	_, result, err = s.service.ProvisionDefaultRules(ctx, created.ID)
	s.NoError(err)
	s.False(result.HasNew)
}
