// Package journal implements the filesystem entry source. It walks a
// journal directory for full scans and uses fsnotify to surface
// create, update and delete events while watching.
package journal

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.EntrySource = (*Source)(nil)

// defaultExtensions are the file types scanned when no override is given.
var defaultExtensions = []string{".md", ".markdown", ".txt"}

// Source reads journal entries from a directory tree.
type Source struct {
	rootPath   string
	extensions map[string]bool

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// Option configures a Source.
type Option func(*Source)

// WithExtensions overrides the file extensions the source scans.
// Extensions must include the leading dot.
func WithExtensions(exts []string) Option {
	return func(s *Source) {
		s.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			s.extensions[strings.ToLower(ext)] = true
		}
	}
}

// New creates a filesystem entry source rooted at rootPath.
func New(rootPath string, opts ...Option) *Source {
	s := &Source{
		rootPath:   rootPath,
		extensions: make(map[string]bool, len(defaultExtensions)),
	}
	for _, ext := range defaultExtensions {
		s.extensions[ext] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks the journal directory is readable.
func (s *Source) Validate(_ context.Context) error {
	info, err := os.Stat(s.rootPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("journal directory does not exist: %s", s.rootPath)
	}
	if err != nil {
		return fmt.Errorf("journal path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("journal path is not a directory: %s", s.rootPath)
	}
	return nil
}

// FullScan streams every entry under the journal directory. Both
// channels close when the scan finishes.
func (s *Source) FullScan(ctx context.Context) (<-chan domain.RawEntry, <-chan error) {
	entries := make(chan domain.RawEntry)
	errs := make(chan error, 1)

	go func() {
		defer close(entries)
		defer close(errs)

		if err := s.Validate(ctx); err != nil {
			errs <- err
			return
		}

		walkErr := filepath.WalkDir(s.rootPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}

			name := d.Name()
			if d.IsDir() {
				// Skip hidden directories entirely, but not the root
				if strings.HasPrefix(name, ".") && path != s.rootPath {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, ".") || !s.supported(path) {
				return nil
			}

			entry, err := s.readEntry(path)
			if err != nil {
				// A single unreadable file should not fail the scan
				logger.Warn("skipping unreadable entry %s: %v", path, err)
				return nil
			}

			select {
			case entries <- *entry:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		})

		// Cancellation is not a scan failure
		if walkErr != nil && ctx.Err() == nil {
			errs <- fmt.Errorf("scanning journal: %w", walkErr)
		}
	}()

	return entries, errs
}

// Watch emits change events for the journal directory until ctx is
// cancelled. The returned channel closes when watching stops.
func (s *Source) Watch(ctx context.Context) (<-chan domain.RawEntryChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("starting watch: %w", domain.ErrSourceClosed)
	}
	if err := s.Validate(ctx); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := addWatchDirs(watcher, s.rootPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching journal directories: %w", err)
	}
	s.watcher = watcher

	changes := make(chan domain.RawEntryChange)
	go s.watchLoop(ctx, watcher, changes)

	return changes, nil
}

// watchLoop translates fsnotify events into entry changes.
func (s *Source) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- domain.RawEntryChange) {
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			name := filepath.Base(event.Name)
			if strings.HasPrefix(name, ".") {
				continue
			}

			// New directories need to be added to the watch set
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warn("watching new directory %s: %v", event.Name, err)
					}
					continue
				}
			}

			if !s.supported(event.Name) {
				continue
			}

			change, ok := s.translate(event)
			if !ok {
				continue
			}

			select {
			case changes <- change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("journal watch error: %v", err)
		}
	}
}

// translate maps one fsnotify event to an entry change.
func (s *Source) translate(event fsnotify.Event) (domain.RawEntryChange, bool) {
	switch {
	case event.Op&fsnotify.Create != 0:
		entry, err := s.readEntry(event.Name)
		if err != nil {
			return domain.RawEntryChange{}, false
		}
		return domain.RawEntryChange{Type: domain.ChangeCreated, Entry: *entry}, true

	case event.Op&fsnotify.Write != 0:
		entry, err := s.readEntry(event.Name)
		if err != nil {
			return domain.RawEntryChange{}, false
		}
		return domain.RawEntryChange{Type: domain.ChangeUpdated, Entry: *entry}, true

	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// The file is gone; only the ID can be derived
		return domain.RawEntryChange{
			Type:  domain.ChangeDeleted,
			Entry: domain.RawEntry{ID: s.entryID(event.Name), Path: event.Name},
		}, true

	default:
		return domain.RawEntryChange{}, false
	}
}

// Close stops watching and releases resources. Close is idempotent.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		if err != nil {
			return fmt.Errorf("closing watcher: %w", err)
		}
	}
	return nil
}

// supported reports whether the path has a scanned extension.
func (s *Source) supported(path string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(path))]
}

// readEntry loads a file into a raw entry.
func (s *Source) readEntry(path string) (*domain.RawEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat entry: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entry: %w", err)
	}

	name := filepath.Base(path)
	return &domain.RawEntry{
		ID:           s.entryID(path),
		Path:         path,
		Title:        strings.TrimSuffix(name, filepath.Ext(name)),
		Text:         string(content),
		LastModified: info.ModTime().UTC(),
	}, nil
}

// entryID derives the stable entry ID from a path: the slash-separated
// path relative to the journal root. Re-reading the same file always
// yields the same ID.
func (s *Source) entryID(path string) string {
	rel, err := filepath.Rel(s.rootPath, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// addWatchDirs registers the root and every non-hidden subdirectory.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
