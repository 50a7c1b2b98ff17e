// Package strata aggregates configuration values from multiple
// heterogeneous sources into one unified, hierarchical,
// case-insensitive key-value view with deterministic precedence and
// synchronous change notification.
//
// # Model
//
// Each source builds a Provider owning one flat store of colon-path
// keys ("database:host"). A Root composes providers in registration
// order; the most recently registered provider wins on conflicting
// keys. Keys are case-insensitive, and a stored value may be an
// explicit null, which is distinct from the key being absent.
//
//	defaults := strata.NewBytesSource("defaults", strata.JSONCodec{},
//	    []byte(`{"server": {"host": "localhost", "port": 8080}}`))
//
//	root, err := strata.NewRoot(ctx,
//	    defaults.Build(),
//	    strata.NewFileSource("/etc/app/config.json").Optional().Build(),
//	    strata.NewEnvSource("APP_").Build(),
//	)
//	if err != nil {
//	    return err
//	}
//	host, err := root.GetRequired("server:host")
//
// # Sections
//
// GetSection scopes the view to a path prefix. Sections store only
// their path and an owner reference; reads and writes delegate to the
// owning Root or Manager, so a section never goes stale.
//
//	server := root.GetSection("server")
//	port := server.Get("port")
//
// # Change notification
//
// Root.ReloadToken returns a one-shot ChangeToken that fires after
// the next Reload, or after a watching provider reloads itself.
// Tokens are terminal once fired; listening indefinitely means
// registering on the fresh token from inside the callback.
//
//	var listen func()
//	listen = func() {
//	    root.ReloadToken().Register(func() {
//	        applySettings(root)
//	        listen()
//	    })
//	}
//	listen()
//
// # Growable configuration
//
// Manager has the same read/write contract as Root but accepts new
// sources at any time; each addition is visible before Add returns.
// Snapshot pins the current provider set into an independent Root.
//
// # Sources
//
// Built in: memory maps, in-memory documents, JSON/YAML files
// (optionally watched via fsnotify with debounced reload), environment
// variables, and command-line arguments. Anything else plugs in
// through the Source and Provider contracts; MapProvider supplies the
// store, child-key enumeration, and normalization so a custom source
// only implements Load.
package strata
