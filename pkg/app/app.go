// Package app wires the command engines to the inbound topics and routes
// their records to the outbound topics.
package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/commandhandler/pkg/config"
	"github.com/amirasaad/commandhandler/pkg/domain/account"
	"github.com/amirasaad/commandhandler/pkg/handler/common"
	"github.com/amirasaad/commandhandler/pkg/handler/creation"
	"github.com/amirasaad/commandhandler/pkg/handler/transfer"
	"github.com/amirasaad/commandhandler/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/amirasaad/commandhandler/pkg/app"

// App consumes the command topics and publishes the records the engines produce.
type App struct {
	Deps     *config.Deps
	Config   *config.App
	Creation *creation.Engine
	Transfer *transfer.Engine
	Router   *router.Router

	guard  *common.InflightGuard
	tracer trace.Tracer
	logger *slog.Logger
}

type options struct {
	generator      account.Generator
	tracerProvider trace.TracerProvider
}

// Option configures an App.
type Option func(*options)

// WithGenerator overrides the IBAN and token source of the creation engine.
func WithGenerator(gen account.Generator) Option {
	return func(o *options) { o.generator = gen }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// New builds the engines, router and in-flight guard over deps.
func New(deps *config.Deps, cfg *config.App, opts ...Option) *App {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	creationOpts := []creation.Option{}
	if cfg.Account != nil {
		creationOpts = append(creationOpts, creation.WithDefaultLimit(cfg.Account.DefaultLimit))
	}

	return &App{
		Deps:     deps,
		Config:   cfg,
		Creation: creation.New(deps.Uow, o.generator, logger, creationOpts...),
		Transfer: transfer.New(deps.Uow, logger, transfer.WithLocker(deps.Locker)),
		Router: router.New(router.Topics{
			CreationFeedback: cfg.Topics.AccountCreationFeedback,
			TransferFeedback: cfg.Topics.MoneyTransferFeedback,
			BalanceChanged:   cfg.Topics.BalanceChanged,
		}),
		guard:  common.NewInflightGuard(logger),
		tracer: o.tracerProvider.Tracer(tracerName),
		logger: logger,
	}
}

// Run consumes both command topics until ctx is cancelled or a subscriber fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Deps.Subscriber.Subscribe(ctx, a.Config.Topics.ConfirmAccountCreation, a.HandleAccountCreation)
	})
	g.Go(func() error {
		return a.Deps.Subscriber.Subscribe(ctx, a.Config.Topics.ConfirmMoneyTransfer, a.HandleMoneyTransfer)
	})
	a.logger.Info("✅ command handler running",
		"account_creation_topic", a.Config.Topics.ConfirmAccountCreation,
		"money_transfer_topic", a.Config.Topics.ConfirmMoneyTransfer,
	)
	return g.Wait()
}
