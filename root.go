package strata

import (
	"context"
	"sync"

	"github.com/zoobzio/capitan"
)

// Root merges an ordered, immutable list of providers into one
// configuration view. Precedence is reverse registration order: the
// most recently registered provider wins on conflicting keys.
//
// Construction loads every provider to completion before the Root is
// usable, then subscribes to each provider's reload token so an
// autonomous provider reload surfaces through the aggregate token.
type Root struct {
	providers []Provider
	notifier  *Notifier

	mu       sync.Mutex
	closed   bool
	releases []func()
}

// NewRoot creates a Root over the given providers, loading each one
// in registration order. A single failing provider fails the whole
// construction; no partially loaded Root is returned.
func NewRoot(ctx context.Context, providers ...Provider) (*Root, error) {
	for _, p := range providers {
		if err := loadProvider(ctx, p); err != nil {
			return nil, err
		}
	}
	return newLoadedRoot(providers), nil
}

// newLoadedRoot assembles a Root over providers that are already
// loaded. Used by Manager so rebuilding the merge view does not wipe
// values written into existing providers.
func newLoadedRoot(providers []Provider) *Root {
	r := &Root{
		providers: providers,
		notifier:  NewNotifier(),
		releases:  make([]func(), len(providers)),
	}
	for i, p := range providers {
		r.arm(i, p)
	}
	return r
}

// loadProvider runs one provider's Load and wraps any failure.
func loadProvider(ctx context.Context, p Provider) error {
	if err := p.Load(ctx); err != nil {
		capitan.Emit(ctx, ProviderLoadFailed,
			KeyProvider.Field(p.Name()),
			KeyError.Field(err.Error()),
		)
		return &LoadError{Provider: p.Name(), Err: err}
	}
	capitan.Emit(ctx, ProviderLoaded,
		KeyProvider.Field(p.Name()),
	)
	return nil
}

// arm subscribes to the provider's current reload token. Tokens are
// one-shot, so the callback rotates the aggregate notifier and then
// re-arms against the provider's fresh token, indefinitely.
func (r *Root) arm(i int, p Provider) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	release := p.ReloadToken().Register(func() {
		r.notifier.NotifyChanged()
		r.arm(i, p)
	})

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		release()
		return
	}
	r.releases[i] = release
	r.mu.Unlock()
}

// disarm releases every provider-token registration and stops the
// re-arm loop. Called by Manager when a delegate Root is replaced.
func (r *Root) disarm() {
	r.mu.Lock()
	r.closed = true
	releases := r.releases
	r.releases = make([]func(), len(r.providers))
	r.mu.Unlock()

	for _, release := range releases {
		if release != nil {
			release()
		}
	}
}

// Providers returns the providers in registration order.
func (r *Root) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// TryGet scans providers from highest to lowest precedence and
// returns the first provider's value for the key, even an explicit
// null, plus whether any provider contains the key.
func (r *Root) TryGet(key string) (*string, bool) {
	for i := len(r.providers) - 1; i >= 0; i-- {
		if v, ok := r.providers[i].TryGet(key); ok {
			return v, true
		}
	}
	return nil, false
}

// Get returns the merged value for a key, or nil when no provider
// contains it or the winning value is an explicit null.
func (r *Root) Get(key string) *string {
	v, _ := r.TryGet(key)
	return v
}

// GetRequired returns the merged value for a key, or a
// MissingKeyError naming the exact queried path when resolution
// yields no value.
func (r *Root) GetRequired(key string) (string, error) {
	if v := r.Get(key); v != nil {
		return *v, nil
	}
	return "", &MissingKeyError{Key: key}
}

// Set writes a value into the highest-precedence provider that
// already contains the key, falling back to the last-registered
// provider for new keys. With zero providers the write is a no-op.
func (r *Root) Set(key string, value *string) {
	for i := len(r.providers) - 1; i >= 0; i-- {
		if _, ok := r.providers[i].TryGet(key); ok {
			r.providers[i].Set(key, value)
			return
		}
	}
	if len(r.providers) == 0 {
		return
	}
	r.providers[len(r.providers)-1].Set(key, value)
}

// GetSection returns the section at the given key. It always
// succeeds, including for paths no provider contains.
func (r *Root) GetSection(key string) *Section {
	return newSection(r, NormalizeKey(key))
}

// Children returns the top-level child sections.
func (r *Root) Children() []*Section {
	return r.childSections("")
}

// childSections enumerates the immediate children under parent across
// all providers, highest precedence first. A child name claimed by a
// higher-precedence provider is not reported again by a lower one.
func (r *Root) childSections(parent string) []*Section {
	return r.childSectionsFor(r, parent)
}

// childSectionsFor runs the child enumeration with sections bound to
// owner, so a Manager can hand out sections that track its live
// delegate rather than one Root instance.
func (r *Root) childSectionsFor(owner sectionOwner, parent string) []*Section {
	seen := make(map[string]bool)
	var sections []*Section
	for i := len(r.providers) - 1; i >= 0; i-- {
		for _, key := range r.providers[i].ChildKeys(parent, seen) {
			seen[key] = true
			sections = append(sections, newSection(owner, Combine(parent, key)))
		}
	}
	return sections
}

// Reload synchronously reloads every provider in registration order,
// then fires the aggregate change token exactly once. A single
// failing provider aborts the reload before any notification.
func (r *Root) Reload(ctx context.Context) error {
	for _, p := range r.providers {
		if err := loadProvider(ctx, p); err != nil {
			return err
		}
	}
	capitan.Emit(ctx, ConfigurationReloaded)
	r.notifier.NotifyChanged()
	return nil
}

// ReloadToken returns the aggregate change token, fired once per
// Reload and once per autonomous provider reload.
func (r *Root) ReloadToken() ChangeToken {
	return r.notifier.Token()
}

// Ensure Root implements Configuration.
var _ Configuration = (*Root)(nil)
