package strata

import "github.com/zoobzio/capitan"

// Provider lifecycle signals.
var (
	// ProviderLoaded is emitted after a provider's store is fully
	// repopulated.
	ProviderLoaded = capitan.NewSignal(
		"strata.provider.loaded",
		"Provider store repopulated",
	)

	// ProviderLoadFailed is emitted when a provider's load fails.
	ProviderLoadFailed = capitan.NewSignal(
		"strata.provider.load.failed",
		"Provider load failed",
	)
)

// Merge view signals.
var (
	// ConfigurationReloaded is emitted when a Root finishes reloading
	// every provider, before the aggregate token fires.
	ConfigurationReloaded = capitan.NewSignal(
		"strata.root.reloaded",
		"All providers reloaded",
	)

	// SourceAdded is emitted when a Manager adds a source.
	SourceAdded = capitan.NewSignal(
		"strata.manager.source.added",
		"Source added to manager",
	)
)

// File source signals.
var (
	// FileChanged is emitted when the file watcher detects a change
	// to a watched configuration file.
	FileChanged = capitan.NewSignal(
		"strata.file.changed",
		"Watched configuration file changed",
	)

	// FileReloadFailed is emitted when re-reading a changed file
	// fails; the previous store is retained and no token fires.
	FileReloadFailed = capitan.NewSignal(
		"strata.file.reload.failed",
		"Watched configuration file reload failed",
	)
)
