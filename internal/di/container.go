// Package di provides dependency injection configuration for the directory
// server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/openstage/directory-server/internal/config"
	"github.com/openstage/directory-server/internal/di/providers"
	"github.com/openstage/directory-server/internal/logger"
	"github.com/openstage/directory-server/internal/store"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Corpus layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCorpus)

	// Workers
	do.Provide(injector, providers.ProvideWatcher)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*store.Store](injector)
	_ = do.MustInvoke[*providers.CorpusHandle](injector)
	_ = do.MustInvoke[*providers.WatcherHandle](injector)

	return nil
}
