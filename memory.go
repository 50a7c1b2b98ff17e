package strata

import "context"

// MemorySource supplies a fixed set of flat key-value pairs. Keys may
// use the colon delimiter to address nested paths directly.
type MemorySource struct {
	values map[string]*string
}

// NewMemorySource creates a source over the given flat values. Use
// StringValues to lift a map[string]string, and nil entries for
// explicit nulls.
func NewMemorySource(values map[string]*string) *MemorySource {
	return &MemorySource{values: values}
}

// Build returns the provider for this source.
func (s *MemorySource) Build() Provider {
	return &memoryProvider{
		MapProvider: NewMapProvider("memory"),
		source:      s,
	}
}

// Ensure MemorySource implements Source.
var _ Source = (*MemorySource)(nil)

type memoryProvider struct {
	*MapProvider
	source *MemorySource
}

// Load replaces the store with the source's values.
func (p *memoryProvider) Load(_ context.Context) error {
	p.Replace(p.source.values)
	return nil
}
