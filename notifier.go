package strata

import "sync"

// Notifier owns a rotating one-shot token. Consumers obtain the
// current token with Token and are notified when NotifyChanged fires
// it; because tokens are one-shot, indefinite listening requires
// fetching a fresh token after every firing.
type Notifier struct {
	mu      sync.Mutex
	current *reloadToken
}

// NewNotifier creates a Notifier with a pending current token.
func NewNotifier() *Notifier {
	return &Notifier{current: newReloadToken()}
}

// Token returns the current change token.
func (n *Notifier) Token() ChangeToken {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// NotifyChanged rotates the current token and fires the previous one.
// The fresh token is installed before the old one fires, so a callback
// that re-queries the Notifier during its own execution observes the
// new token.
func (n *Notifier) NotifyChanged() {
	n.mu.Lock()
	old := n.current
	n.current = newReloadToken()
	n.mu.Unlock()

	old.fire()
}
