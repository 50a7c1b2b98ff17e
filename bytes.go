package strata

import (
	"context"
	"fmt"
)

// BytesSource decodes an in-memory document with a codec and flattens
// it into colon-path keys. Useful for embedded defaults and tests.
type BytesSource struct {
	name  string
	codec Codec
	data  []byte
}

// NewBytesSource creates a source over the given document bytes.
func NewBytesSource(name string, codec Codec, data []byte) *BytesSource {
	return &BytesSource{name: name, codec: codec, data: data}
}

// Build returns the provider for this source.
func (s *BytesSource) Build() Provider {
	return &bytesProvider{
		MapProvider: NewMapProvider(s.name),
		source:      s,
	}
}

// Ensure BytesSource implements Source.
var _ Source = (*BytesSource)(nil)

type bytesProvider struct {
	*MapProvider
	source *BytesSource
}

// Load decodes and flattens the document into the store.
func (p *bytesProvider) Load(_ context.Context) error {
	var doc any
	if err := p.source.codec.Unmarshal(p.source.data, &doc); err != nil {
		return fmt.Errorf("failed to decode %s document: %w", p.source.codec.ContentType(), err)
	}
	values, err := flattenDocument(doc)
	if err != nil {
		return err
	}
	p.Replace(values)
	return nil
}
