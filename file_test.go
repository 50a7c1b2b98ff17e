package strata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestFileSource_Load_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"server": {"host": "localhost"}}`)

	root, err := NewRoot(context.Background(), NewFileSource(path).Build())
	if err != nil {
		t.Fatalf("NewRoot() error = %v", err)
	}

	if v := root.Get("server:host"); v == nil || *v != "localhost" {
		t.Error("expected flattened JSON value")
	}
}

func TestFileSource_Load_YAMLByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "server:\n  port: 9090\n")

	root, err := NewRoot(context.Background(), NewFileSource(path).Build())
	if err != nil {
		t.Fatalf("NewRoot() error = %v", err)
	}

	if v := root.Get("server:port"); v == nil || *v != "9090" {
		t.Error("expected YAML codec selected from extension")
	}
}

func TestFileSource_Load_MissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	_, err := NewRoot(context.Background(), NewFileSource(path).Build())
	if err == nil {
		t.Fatal("expected load failure for missing required file")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %T", err)
	}
}

func TestFileSource_Load_MissingOptionalFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	root, err := NewRoot(context.Background(),
		NewFileSource(path).Optional().Build())
	if err != nil {
		t.Fatalf("NewRoot() error = %v", err)
	}

	if v := root.Get("anything"); v != nil {
		t.Error("expected empty store for missing optional file")
	}
}

func TestFileSource_Load_InvalidDocumentFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{broken`)

	if _, err := NewRoot(context.Background(), NewFileSource(path).Build()); err == nil {
		t.Fatal("expected load failure for invalid document")
	}
}

func TestFileSource_Load_NonObjectRootFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `[1, 2, 3]`)

	if _, err := NewRoot(context.Background(), NewFileSource(path).Build()); err == nil {
		t.Fatal("expected malformed structural input to fail the load")
	}
}

func TestFileSource_NoWatch_TokenNeverChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{}`)

	p := NewFileSource(path).Build()
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if p.ReloadToken() != NeverChanges {
		t.Error("expected unwatched file provider to use NeverChanges")
	}
}

func TestFileSource_Watch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"k": "v1"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewFileSource(path).Watch().Debounce(10 * time.Millisecond)
	root, err := NewRoot(ctx, src.Build())
	if err != nil {
		t.Fatalf("NewRoot() error = %v", err)
	}
	if v := root.Get("k"); v == nil || *v != "v1" {
		t.Fatal("expected initial value")
	}

	fired := make(chan struct{}, 1)
	root.ReloadToken().Register(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	writeFile(t, path, `{"k": "v2"}`)

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for reload notification")
	}

	if v := root.Get("k"); v == nil || *v != "v2" {
		t.Error("expected reloaded value after file change")
	}
}

func TestFileSource_Watch_InvalidChangeKeepsPreviousStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"k": "good"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewFileSource(path).Watch().Debounce(10 * time.Millisecond)
	root, err := NewRoot(ctx, src.Build())
	if err != nil {
		t.Fatalf("NewRoot() error = %v", err)
	}

	fired := make(chan struct{}, 1)
	root.ReloadToken().Register(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	writeFile(t, path, `{broken`)

	select {
	case <-fired:
		t.Fatal("expected no notification for a failed reload")
	case <-time.After(300 * time.Millisecond):
	}

	if v := root.Get("k"); v == nil || *v != "good" {
		t.Error("expected previous store to be retained after failed reload")
	}
}

func TestFileSource_Watch_CoalescesRapidChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"k": "0"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := NewFileSource(path).Watch().Debounce(200 * time.Millisecond)
	root, err := NewRoot(ctx, src.Build())
	if err != nil {
		t.Fatalf("NewRoot() error = %v", err)
	}

	fired := make(chan struct{}, 8)
	var listen func()
	listen = func() {
		root.ReloadToken().Register(func() {
			fired <- struct{}{}
			listen()
		})
	}
	listen()

	// Rapid writes inside one debounce window.
	writeFile(t, path, `{"k": "1"}`)
	writeFile(t, path, `{"k": "2"}`)
	writeFile(t, path, `{"k": "3"}`)

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for debounced reload")
	}

	if v := root.Get("k"); v == nil || *v != "3" {
		t.Error("expected only the latest value after coalescing")
	}
}
