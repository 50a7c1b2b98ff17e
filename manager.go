package strata

import (
	"context"
	"sync"

	"github.com/zoobzio/capitan"
)

// Manager is the growable variant of Root. It delegates every read,
// write, and enumeration to a currently-held Root and rebuilds that
// delegate whenever a source is added, so an addition is visible
// before Add returns. Existing providers are never reloaded by a
// rebuild; values written into them survive.
type Manager struct {
	notifier *Notifier

	mu          sync.Mutex
	sources     []Source
	providers   []Provider
	root        *Root
	rootRelease func()
}

// NewManager creates a Manager and adds the given sources in order.
// A failing source load aborts construction.
func NewManager(ctx context.Context, sources ...Source) (*Manager, error) {
	m := &Manager{notifier: NewNotifier()}
	m.root = newLoadedRoot(nil)
	m.armDelegate()
	for _, src := range sources {
		if err := m.Add(ctx, src); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add builds and loads the source's provider, appends it at the
// highest precedence position, and swaps in a rebuilt delegate Root.
// The new provider's values are visible as soon as Add returns.
func (m *Manager) Add(ctx context.Context, source Source) error {
	p := source.Build()
	if err := loadProvider(ctx, p); err != nil {
		return err
	}

	m.mu.Lock()
	m.sources = append(m.sources, source)
	m.providers = append(m.providers, p)
	providers := make([]Provider, len(m.providers))
	copy(providers, m.providers)
	old := m.root
	oldRelease := m.rootRelease
	m.root = newLoadedRoot(providers)
	m.rootRelease = nil
	m.mu.Unlock()

	if oldRelease != nil {
		oldRelease()
	}
	if old != nil {
		old.disarm()
	}
	m.armDelegate()

	capitan.Emit(ctx, SourceAdded,
		KeyProvider.Field(p.Name()),
	)
	return nil
}

// armDelegate subscribes the Manager's aggregate notifier to the
// current delegate Root's one-shot token, re-arming after every
// firing and after every delegate swap.
func (m *Manager) armDelegate() {
	m.mu.Lock()
	root := m.root
	m.mu.Unlock()

	release := root.ReloadToken().Register(func() {
		m.notifier.NotifyChanged()
		m.armDelegate()
	})

	m.mu.Lock()
	if m.root != root {
		// Delegate swapped while registering; Add re-arms against
		// the replacement, so drop this registration.
		m.mu.Unlock()
		release()
		return
	}
	m.rootRelease = release
	m.mu.Unlock()
}

// delegate returns the currently-held Root.
func (m *Manager) delegate() *Root {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root
}

// Providers returns the current providers in registration order.
func (m *Manager) Providers() []Provider {
	return m.delegate().Providers()
}

// Get returns the merged value for a key.
func (m *Manager) Get(key string) *string {
	return m.delegate().Get(key)
}

// TryGet returns the merged value for a key and whether any provider
// contains it.
func (m *Manager) TryGet(key string) (*string, bool) {
	return m.delegate().TryGet(key)
}

// GetRequired returns the merged value for a key, or a
// MissingKeyError naming the queried path.
func (m *Manager) GetRequired(key string) (string, error) {
	return m.delegate().GetRequired(key)
}

// Set writes a value using the same ownership rule as Root.
func (m *Manager) Set(key string, value *string) {
	m.delegate().Set(key, value)
}

// GetSection returns the section at the given key, bound to the
// Manager so later additions remain visible through it.
func (m *Manager) GetSection(key string) *Section {
	return newSection(m, NormalizeKey(key))
}

// Children returns the top-level child sections.
func (m *Manager) Children() []*Section {
	return m.childSections("")
}

func (m *Manager) childSections(parent string) []*Section {
	return m.delegate().childSectionsFor(m, parent)
}

// Reload reloads every provider in registration order through the
// delegate Root, then fires the Manager's aggregate token exactly
// once.
func (m *Manager) Reload(ctx context.Context) error {
	return m.delegate().Reload(ctx)
}

// ReloadToken returns the Manager's aggregate change token. It
// survives delegate rebuilds: tokens obtained before an Add still
// fire for reloads after it.
func (m *Manager) ReloadToken() ChangeToken {
	return m.notifier.Token()
}

// Snapshot returns an independent Root over the Manager's current
// provider instances. The providers are shared, not copied: later Set
// calls remain visible through the snapshot, while later Add calls do
// not affect it.
func (m *Manager) Snapshot() *Root {
	m.mu.Lock()
	providers := make([]Provider, len(m.providers))
	copy(providers, m.providers)
	m.mu.Unlock()
	return newLoadedRoot(providers)
}

// Ensure Manager implements Configuration.
var _ Configuration = (*Manager)(nil)
