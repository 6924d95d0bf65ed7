package service

import (
	"context"

	"github.com/shipwise/shipwise/internal/domain/session"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/types"
)

// SessionService is the thin orchestration layer between the storage
// collaborator and the pure engine functions: it loads a session, invokes a
// transformation and persists the result.
type SessionService interface {
	CreateSession(ctx context.Context, sess *session.Session) (*session.Session, error)
	GetSession(ctx context.Context, id string) (*session.Session, error)
	ListSessions(ctx context.Context) ([]*session.Session, error)
	UpdateSession(ctx context.Context, sess *session.Session) (*session.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// ConvertSession normalizes a stored session to the target currency and
	// persists the converted document.
	ConvertSession(ctx context.Context, id string, rates types.RateMap, target string) (*session.Session, error)

	// ProvisionDefaultRules fills in missing per-seller delivery rules on a
	// stored session, persisting only when something was added.
	ProvisionDefaultRules(ctx context.Context, id string) (*session.Session, ProvisionResult, error)
}

type sessionService struct {
	repo        session.Repository
	converter   CurrencyConverterService
	provisioner ProvisionerService
	logger      *logger.Logger
}

func NewSessionService(
	repo session.Repository,
	converter CurrencyConverterService,
	provisioner ProvisionerService,
	logger *logger.Logger,
) SessionService {
	return &sessionService{
		repo:        repo,
		converter:   converter,
		provisioner: provisioner,
		logger:      logger,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, sess *session.Session) (*session.Session, error) {
	if sess.ID == "" {
		sess.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SESSION)
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*session.Session, error) {
	return s.repo.Get(ctx, id)
}

func (s *sessionService) ListSessions(ctx context.Context) ([]*session.Session, error) {
	return s.repo.List(ctx)
}

func (s *sessionService) UpdateSession(ctx context.Context, sess *session.Session) (*session.Session, error) {
	if sess.ID == "" {
		return nil, ierr.NewError("session id is required").
			WithHint("Session id is required").
			Mark(ierr.ErrValidation)
	}
	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *sessionService) ConvertSession(ctx context.Context, id string, rates types.RateMap, target string) (*session.Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	converted, err := s.converter.ConvertSession(ctx, sess, rates, target)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, converted); err != nil {
		return nil, err
	}
	return converted, nil
}

func (s *sessionService) ProvisionDefaultRules(ctx context.Context, id string) (*session.Session, ProvisionResult, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, ProvisionResult{}, err
	}

	result := s.provisioner.ProvisionDefaultRules(ctx, sess)
	if !result.HasNew {
		return sess, result, nil
	}

	updated := *sess
	updated.DeliveryRules = result.Rules
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, ProvisionResult{}, err
	}
	return &updated, result, nil
}
