package strata

import "sync"

// ChangeToken is a one-shot notification capability. A token starts
// pending and fires at most once, after which it is terminal.
type ChangeToken interface {
	// HasChanged reports whether the token has fired.
	HasChanged() bool

	// ActiveChangeCallbacks reports whether this token invokes
	// registered callbacks when it fires. Tokens that never fire
	// return false so callers can fall back to polling.
	ActiveChangeCallbacks() bool

	// Register adds a callback invoked synchronously when the token
	// fires. Registering on an already-fired token invokes the
	// callback immediately. The returned release function removes the
	// registration; releasing before the token fires guarantees the
	// callback never runs.
	Register(callback func()) (release func())
}

// registration is a single callback slot on a reloadToken.
// released is guarded by the owning token's mutex.
type registration struct {
	callback func()
	released bool
}

// reloadToken is the one-shot token rotated by a Notifier.
type reloadToken struct {
	mu        sync.Mutex
	fired     bool
	callbacks []*registration
}

func newReloadToken() *reloadToken {
	return &reloadToken{}
}

// HasChanged reports whether the token has fired.
func (t *reloadToken) HasChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// ActiveChangeCallbacks always reports true: a reloadToken delivers
// change notifications through its registered callbacks.
func (t *reloadToken) ActiveChangeCallbacks() bool {
	return true
}

// Register adds a callback to run when the token fires.
func (t *reloadToken) Register(callback func()) (release func()) {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		// Fired tokens invoke immediately, closing the race between
		// checking HasChanged and registering.
		callback()
		return func() {}
	}

	reg := &registration{callback: callback}
	t.callbacks = append(t.callbacks, reg)
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		reg.released = true
		t.mu.Unlock()
	}
}

// fire transitions the token to its terminal state and invokes the
// registered callbacks once, in registration order. The callback list
// is snapshotted and cleared before invocation so callbacks that
// re-register or release cannot corrupt the in-progress iteration.
// Firing an already-fired token is a no-op.
func (t *reloadToken) fire() {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	snapshot := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, reg := range snapshot {
		t.mu.Lock()
		released := reg.released
		t.mu.Unlock()
		if released {
			continue
		}
		reg.callback()
	}
}

// Ensure reloadToken implements ChangeToken.
var _ ChangeToken = (*reloadToken)(nil)

// NeverChanges is the canonical token for providers without change
// detection. It is permanently pending, reports no active callbacks,
// and never invokes registered callbacks.
var NeverChanges ChangeToken = neverToken{}

type neverToken struct{}

// HasChanged always reports false.
func (neverToken) HasChanged() bool { return false }

// ActiveChangeCallbacks always reports false.
func (neverToken) ActiveChangeCallbacks() bool { return false }

// Register never invokes the callback and returns a no-op release.
func (neverToken) Register(func()) (release func()) {
	return func() {}
}
