package config

import (
	"log/slog"

	"github.com/amirasaad/commandhandler/pkg/eventbus"
	"github.com/amirasaad/commandhandler/pkg/lock"
	"github.com/amirasaad/commandhandler/pkg/repository"
)

// Deps holds all infrastructure dependencies for building the app.
type Deps struct {
	Uow        repository.UnitOfWork
	Publisher  eventbus.Publisher
	Subscriber eventbus.Subscriber
	Locker     lock.Locker
	Logger     *slog.Logger
	Config     *App
	// Close releases connections opened while building the dependencies.
	Close func() error
}
