package strata

import "github.com/zoobzio/capitan"

// Field keys for configuration events.
var (
	// KeyProvider is the name of the provider involved in an event.
	KeyProvider = capitan.NewStringKey("provider")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyPath is the file path of a watched configuration file.
	KeyPath = capitan.NewStringKey("path")
)
