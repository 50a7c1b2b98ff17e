package strata

import (
	"context"
	"testing"
)

func envProviderFor(t *testing.T, prefix string, entries []string) Provider {
	t.Helper()
	p := NewEnvSource(prefix).Environ(func() []string { return entries }).Build()
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return p
}

func TestEnvSource_NoPrefix_IncludesAll(t *testing.T) {
	p := envProviderFor(t, "", []string{"HOST=localhost", "PORT=8080"})

	if v := p.Get("host"); v == nil || *v != "localhost" {
		t.Error("expected HOST to load as 'host'")
	}
	if v := p.Get("port"); v == nil || *v != "8080" {
		t.Error("expected PORT to load as 'port'")
	}
}

func TestEnvSource_Prefix_FiltersAndStrips(t *testing.T) {
	p := envProviderFor(t, "APP_", []string{
		"APP_HOST=h",
		"OTHER_HOST=x",
	})

	if v := p.Get("host"); v == nil || *v != "h" {
		t.Error("expected prefixed variable with prefix stripped")
	}
	if _, ok := p.TryGet("other_host"); ok {
		t.Error("expected unprefixed variable to be filtered out")
	}
}

func TestEnvSource_Prefix_CaseInsensitive(t *testing.T) {
	p := envProviderFor(t, "APP_", []string{"app_host=h"})

	if v := p.Get("host"); v == nil || *v != "h" {
		t.Error("expected prefix match to ignore case")
	}
}

func TestEnvSource_DoubleUnderscoreBecomesDelimiter(t *testing.T) {
	p := envProviderFor(t, "", []string{"DATABASE__HOST=db"})

	if v := p.Get("database:host"); v == nil || *v != "db" {
		t.Error("expected '__' to map to the path delimiter")
	}
}

func TestEnvSource_ValueMayContainEquals(t *testing.T) {
	p := envProviderFor(t, "", []string{"CONN=a=b;c=d"})

	if v := p.Get("conn"); v == nil || *v != "a=b;c=d" {
		t.Error("expected value to keep embedded '=' characters")
	}
}

func TestEnvSource_SnapshotTakenAtLoad(t *testing.T) {
	entries := []string{"K=first"}
	p := NewEnvSource("").Environ(func() []string { return entries }).Build()

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	entries = []string{"K=second"}

	if v := p.Get("k"); v == nil || *v != "first" {
		t.Error("expected values from the snapshot taken at load time")
	}

	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if v := p.Get("k"); v == nil || *v != "second" {
		t.Error("expected reload to take a fresh snapshot")
	}
}
