package strata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for file change
// processing. Changes arriving within this window are coalesced into
// a single reload.
const DefaultDebounce = 100 * time.Millisecond

// FileSource reads a configuration document from disk, decodes it
// with a codec chosen from the file extension, and flattens it into
// colon-path keys. With Watch enabled the provider reloads itself
// when the file changes and fires its reload token.
type FileSource struct {
	path     string
	codec    Codec
	optional bool
	watch    bool
	debounce time.Duration
	clock    clockz.Clock
}

// NewFileSource creates a source for the given path. The codec is
// detected from the extension (.json, .yaml, .yml), defaulting to
// JSON.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path:     path,
		codec:    codecForPath(path),
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
	}
}

// Codec overrides the codec used to decode the file.
func (s *FileSource) Codec(codec Codec) *FileSource {
	s.codec = codec
	return s
}

// Optional makes a missing file load as an empty store instead of
// failing.
func (s *FileSource) Optional() *FileSource {
	s.optional = true
	return s
}

// Watch enables autonomous reload: the provider watches the file and
// repopulates its store, then fires its reload token, whenever the
// file changes.
func (s *FileSource) Watch() *FileSource {
	s.watch = true
	return s
}

// Debounce sets the debounce duration for change processing.
// Default: 100ms.
func (s *FileSource) Debounce(d time.Duration) *FileSource {
	s.debounce = d
	return s
}

// Clock sets a custom clock for debounce timing. Use this with
// clockz.FakeClock for deterministic tests.
func (s *FileSource) Clock(clock clockz.Clock) *FileSource {
	s.clock = clock
	return s
}

// Build returns the provider for this source.
func (s *FileSource) Build() Provider {
	return &fileProvider{
		MapProvider: NewMapProvider("file:" + s.path),
		source:      s,
		notifier:    NewNotifier(),
	}
}

// Ensure FileSource implements Source.
var _ Source = (*FileSource)(nil)

// codecForPath picks a codec from the file extension.
func codecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

type fileProvider struct {
	*MapProvider
	source   *FileSource
	notifier *Notifier

	watchOnce sync.Once
}

// Load reads, decodes, and flattens the file into the store. The
// first Load of a watched source also starts the watch goroutine,
// which runs until the given context is canceled.
func (p *fileProvider) Load(ctx context.Context) error {
	if err := p.read(); err != nil {
		return err
	}
	if !p.source.watch {
		return nil
	}
	var watchErr error
	p.watchOnce.Do(func() {
		watchErr = p.startWatch(ctx)
	})
	return watchErr
}

// ReloadToken returns the provider's rotating token when watching,
// or NeverChanges when the source has no change detection.
func (p *fileProvider) ReloadToken() ChangeToken {
	if !p.source.watch {
		return NeverChanges
	}
	return p.notifier.Token()
}

// read fully repopulates the store from the file.
func (p *fileProvider) read() error {
	data, err := os.ReadFile(p.source.path)
	if err != nil {
		if os.IsNotExist(err) && p.source.optional {
			p.Replace(nil)
			return nil
		}
		return fmt.Errorf("failed to read file %s: %w", p.source.path, err)
	}

	var doc any
	if err := p.source.codec.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode file %s: %w", p.source.path, err)
	}
	values, err := flattenDocument(doc)
	if err != nil {
		return fmt.Errorf("file %s: %w", p.source.path, err)
	}
	p.Replace(values)
	return nil
}

// startWatch begins watching the file's directory. Watching the
// directory rather than the file survives editors that replace the
// file via rename, and covers optional files that do not exist yet.
func (p *fileProvider) startWatch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	dir := filepath.Dir(p.source.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	go p.watch(ctx, watcher)
	return nil
}

// watch processes file events with debouncing, then reloads the store
// and fires the reload token once per coalesced burst of changes.
func (p *fileProvider) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	base := filepath.Base(p.source.path)

	var (
		timer   clockz.Timer
		pending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			capitan.Emit(ctx, FileChanged,
				KeyPath.Field(p.source.path),
			)
			pending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = p.source.clock.NewTimer(p.source.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(p.source.debounce)
			}

		case <-timerC:
			if !pending {
				continue
			}
			pending = false
			p.reload(ctx)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Continue watching despite errors
		}
	}
}

// reload repopulates the store and fires the reload token. A failed
// read keeps the previous store and fires nothing.
func (p *fileProvider) reload(ctx context.Context) {
	if err := p.read(); err != nil {
		capitan.Emit(ctx, FileReloadFailed,
			KeyPath.Field(p.source.path),
			KeyError.Field(err.Error()),
		)
		return
	}
	p.notifier.NotifyChanged()
}
