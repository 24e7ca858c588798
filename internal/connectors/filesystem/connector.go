// Package filesystem reads knowledge files from a local directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/core/ports/driven"
	"github.com/materials-advisor/advisor/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.FileSource = (*Connector)(nil)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("connector closed")

// Connector lists and watches the files directly inside a directory.
// Subdirectories and hidden entries are ignored.
type Connector struct {
	rootPath string

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// New creates a connector for rootPath.
func New(rootPath string) *Connector {
	return &Connector{rootPath: rootPath}
}

// Root returns the directory being read.
func (c *Connector) Root() string {
	return c.rootPath
}

// List returns the regular files in the root whose extension matches one of
// extensions, compared case-insensitively. Results are sorted by name.
func (c *Connector) List(ctx context.Context, extensions []string) ([]string, error) {
	if err := c.checkRoot(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(c.rootPath)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = true
	}

	var paths []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if len(wanted) > 0 && !wanted[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(c.rootPath, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

// Watch streams changes to files in the root until ctx is cancelled or
// Close is called. The returned channel is closed when watching stops.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.FileChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if err := c.checkRoot(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(c.rootPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.rootPath, err)
	}
	c.watcher = watcher

	changes := make(chan domain.FileChange)
	go c.watchLoop(ctx, watcher, changes)

	return changes, nil
}

func (c *Connector) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- domain.FileChange) {
	defer close(changes)
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			change := c.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error on %s: %v", c.rootPath, err)
		}
	}
}

// handleFsEvent maps a raw event to a change, or nil when the event is not
// interesting (directories, hidden files, permission changes).
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.FileChange {
	if isHidden(filepath.Base(event.Name)) {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return nil
	}

	if changeType != domain.ChangeDeleted {
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
	}

	return &domain.FileChange{Type: changeType, Path: event.Name}
}

// Close stops any active watch. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}

func (c *Connector) checkRoot() error {
	info, err := os.Stat(c.rootPath)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", c.rootPath)
	}
	return nil
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
