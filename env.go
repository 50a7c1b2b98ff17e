package strata

import (
	"context"
	"os"
	"strings"
)

// envSeparator maps the double underscore in environment variable
// names to the colon path delimiter, since ":" is not portable in
// variable names.
const envSeparator = "__"

// EnvSource reads configuration from environment variables. Variables
// are filtered by an optional prefix, which is stripped from the
// resulting keys, and "__" in names becomes the ":" path delimiter.
//
// The environment is captured as a snapshot at load time through an
// injectable function, keeping the provider deterministic and
// testable rather than reading ambient process state arbitrarily.
type EnvSource struct {
	prefix  string
	environ func() []string
}

// NewEnvSource creates a source over the process environment. Only
// variables starting with prefix are included; an empty prefix
// includes everything.
func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Environ overrides the environment snapshot function. Used in tests
// and for non-process environments.
func (s *EnvSource) Environ(fn func() []string) *EnvSource {
	s.environ = fn
	return s
}

// Build returns the provider for this source.
func (s *EnvSource) Build() Provider {
	return &envProvider{
		MapProvider: NewMapProvider("env"),
		source:      s,
	}
}

// Ensure EnvSource implements Source.
var _ Source = (*EnvSource)(nil)

type envProvider struct {
	*MapProvider
	source *EnvSource
}

// Load snapshots the environment and replaces the store.
func (p *envProvider) Load(_ context.Context) error {
	values := make(map[string]*string)
	for _, entry := range p.source.environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if p.source.prefix != "" {
			if len(name) <= len(p.source.prefix) || !strings.EqualFold(name[:len(p.source.prefix)], p.source.prefix) {
				continue
			}
			name = name[len(p.source.prefix):]
		}
		key := strings.ReplaceAll(name, envSeparator, KeyDelimiter)
		values[key] = String(value)
	}
	p.Replace(values)
	return nil
}
