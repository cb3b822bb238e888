package schedule

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// LoadFunc supplies the current task set when the cache needs to re-derive.
type LoadFunc func() (Timeline, error)

// Cache memoizes a derived Timeline and invalidates it when the backing
// data file changes on disk. Mutations through the store should also call
// Invalidate directly; the watcher covers edits made outside the process.
type Cache struct {
	load    LoadFunc
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu    sync.Mutex
	tl    Timeline
	valid bool
}

// NewCache creates a cache over load. If dataPath is non-empty the file is
// watched and any write, create, rename or remove event drops the cached
// timeline.
func NewCache(dataPath string, load LoadFunc) (*Cache, error) {
	c := &Cache{
		load: load,
		done: make(chan struct{}),
	}

	if dataPath == "" {
		return c, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dataPath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dataPath, err)
	}

	c.watcher = watcher
	go c.eventLoop()

	return c, nil
}

// Get returns the cached timeline, re-deriving it if a change invalidated
// the previous result.
func (c *Cache) Get() (Timeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		return c.tl, nil
	}

	tl, err := c.load()
	if err != nil {
		return Timeline{}, err
	}

	c.tl = tl
	c.valid = true
	return tl, nil
}

// Invalidate drops the cached timeline so the next Get re-derives it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// Close stops the file watcher. Safe to call when no watcher was started.
func (c *Cache) Close() {
	if c.watcher == nil {
		return
	}
	close(c.done)
	_ = c.watcher.Close()
}

func (c *Cache) eventLoop() {
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				c.Invalidate()
				// Editors often replace the file; re-add so the watch
				// survives a rename.
				if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
					_ = c.watcher.Add(event.Name)
				}
			}

		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}

		case <-c.done:
			return
		}
	}
}
