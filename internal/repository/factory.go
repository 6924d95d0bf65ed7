package repository

import (
	"github.com/shipwise/shipwise/internal/config"
	"github.com/shipwise/shipwise/internal/domain/session"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/testutil"
)

// NewSessionRepository returns the session store for the configured mode.
// Persistent storage is an external collaborator of the engine; the server
// ships only with the in-memory store for local development.
func NewSessionRepository(cfg *config.Configuration, log *logger.Logger) session.Repository {
	log.Infof("using in-memory session store (mode %s)", cfg.Deployment.Mode)
	return testutil.NewInMemorySessionStore()
}
