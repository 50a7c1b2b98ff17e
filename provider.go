package strata

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Provider owns one flat, normalized key-value store populated from an
// external source. A stored value may be an explicit null (nil),
// which is distinct from the key being absent.
type Provider interface {
	// Name identifies the provider for diagnostics and errors.
	Name() string

	// Load clears and fully repopulates the store from the external
	// source. Any I/O must complete before Load returns; a parse
	// error or missing required resource fails the whole load.
	Load(ctx context.Context) error

	// TryGet returns the stored value and whether the key is present,
	// distinguishing absence from an explicit null.
	TryGet(key string) (*string, bool)

	// Get returns the stored value, collapsing absence and explicit
	// null into nil.
	Get(key string) *string

	// Set stores a value under the normalized key.
	Set(key string, value *string)

	// ChildKeys returns the distinct immediate child segments found
	// under parent ("" for top level) among stored keys, excluding
	// segments already present in seen. Used by the merge root to
	// deduplicate child enumeration across providers.
	ChildKeys(parent string, seen map[string]bool) []string

	// ReloadToken returns the provider's current change token.
	// Providers without change detection return NeverChanges.
	ReloadToken() ChangeToken
}

// String returns a pointer to s, for building explicit values.
func String(s string) *string {
	return &s
}

// StringValues lifts a plain string map into the optional-string form
// stored by providers.
func StringValues(values map[string]string) map[string]*string {
	out := make(map[string]*string, len(values))
	for k, v := range values {
		out[k] = String(v)
	}
	return out
}

// MapProvider is the base store shared by all built-in providers.
// It implements every Provider method except a meaningful Load;
// concrete sources embed it and repopulate the store via Replace.
//
// The store is guarded by a mutex so a provider's autonomous reload
// goroutine can safely replace it at any time.
type MapProvider struct {
	name string

	mu     sync.RWMutex
	values map[string]*string
}

// NewMapProvider creates an empty provider with the given name.
func NewMapProvider(name string) *MapProvider {
	return &MapProvider{
		name:   name,
		values: make(map[string]*string),
	}
}

// Name returns the provider name.
func (p *MapProvider) Name() string {
	return p.name
}

// Load is a no-op for the base provider; the store is populated via
// Set or Replace.
func (p *MapProvider) Load(_ context.Context) error {
	return nil
}

// TryGet returns the stored value and whether the key is present.
func (p *MapProvider) TryGet(key string) (*string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[NormalizeKey(key)]
	return v, ok
}

// Get returns the stored value, or nil when the key is absent.
func (p *MapProvider) Get(key string) *string {
	v, _ := p.TryGet(key)
	return v
}

// Set stores a value under the normalized key.
func (p *MapProvider) Set(key string, value *string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[NormalizeKey(key)] = value
}

// Replace swaps the entire store for the given values, normalizing
// every key. Sources call this from Load to satisfy the
// clear-and-fully-repopulate contract.
func (p *MapProvider) Replace(values map[string]*string) {
	next := make(map[string]*string, len(values))
	for k, v := range values {
		next[NormalizeKey(k)] = v
	}
	p.mu.Lock()
	p.values = next
	p.mu.Unlock()
}

// Len returns the number of stored keys.
func (p *MapProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values)
}

// ChildKeys returns the distinct immediate child segments under parent
// that are not already in seen, ordered with numeric segments first so
// list indices enumerate in positional order.
func (p *MapProvider) ChildKeys(parent string, seen map[string]bool) []string {
	prefix := ""
	if parent != "" {
		prefix = NormalizeKey(parent) + KeyDelimiter
	}

	p.mu.RLock()
	found := make(map[string]bool)
	for key := range p.values {
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			continue
		}
		segment := key[len(prefix):]
		if i := strings.Index(segment, KeyDelimiter); i >= 0 {
			segment = segment[:i]
		}
		if segment == "" || seen[segment] {
			continue
		}
		found[segment] = true
	}
	p.mu.RUnlock()

	keys := make([]string, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return compareSegments(keys[i], keys[j]) < 0
	})
	return keys
}

// ReloadToken returns NeverChanges; base providers have no change
// detection.
func (p *MapProvider) ReloadToken() ChangeToken {
	return NeverChanges
}

// compareSegments orders child segments with numeric segments first,
// numerically, so flattened list indices come back in list order.
func compareSegments(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Ensure MapProvider implements Provider.
var _ Provider = (*MapProvider)(nil)
