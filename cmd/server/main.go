package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shipwise/shipwise/internal/api"
	v1 "github.com/shipwise/shipwise/internal/api/v1"
	"github.com/shipwise/shipwise/internal/config"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/repository"
	"github.com/shipwise/shipwise/internal/service"
	"github.com/shipwise/shipwise/internal/validator"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	validator.NewValidator()

	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Repositories
			repository.NewSessionRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewValidationService,
			service.NewFeeResolverService,
			service.NewCurrencyConverterService,
			service.NewProvisionerService,
			service.NewSessionService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	validationService service.ValidationService,
	resolverService service.FeeResolverService,
	sessionService service.SessionService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(logger),
		Calculation: v1.NewCalculationHandler(validationService, resolverService, logger),
		Session:     v1.NewSessionHandler(sessionService, logger),
	}
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server at %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
