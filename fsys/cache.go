// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsys

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrNotWhitelisted is returned by Cache.Get for a path outside the
// cache's whitelist, even if the file physically exists.
var ErrNotWhitelisted = errors.New("path not in whitelist")

// ErrNotFound is returned when a whitelisted file cannot be opened.
var ErrNotFound = errors.New("file not found")

// Entry is one cached file: the loaded value, the modification time
// observed when it was loaded, and the whitelisted path it came from.
// Entries are immutable once published; holders keep an entry alive
// after the cache has replaced it.
type Entry[V any] struct {
	Value        V
	LastModified time.Time
	Path         string
}

// Cache is a keyed, mtime-revalidated cache over whitelisted files.
// The loader runs under the cache mutex, so at most one load per
// cache executes at a time and a concurrent Get for the same path
// observes either the previous entry or the freshly loaded one.
type Cache[V any] struct {
	mu      sync.Mutex
	wl      *Whitelist
	load    func(path string) (V, error)
	entries map[string]*Entry[V]
}

// New creates a cache over the specified whitelist with the
// specified loader.
func New[V any](wl *Whitelist, load func(path string) (V, error)) *Cache[V] {

	return &Cache[V]{
		wl:      wl,
		load:    load,
		entries: make(map[string]*Entry[V]),
	}
}

// Get returns the cache entry for path, loading or reloading it if
// there is no entry yet or the file on disk is newer than the cached
// entry. Failed loads are not memoized.
func (c *Cache[V]) Get(path string) (*Entry[V], error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.wl.Contains(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotWhitelisted, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	modified := info.ModTime()

	if entry, ok := c.entries[path]; ok && !entry.LastModified.Before(modified) {
		return entry, nil
	}

	log.Debug("loading %s", path)
	value, err := c.load(path)
	if err != nil {
		return nil, err
	}

	entry := &Entry[V]{Value: value, LastModified: modified, Path: path}
	c.entries[path] = entry
	return entry, nil
}

// NewBinaryCache creates a cache of raw file contents over the
// specified whitelist.
func NewBinaryCache(wl *Whitelist) *Cache[[]byte] {

	return New(wl, ReadFile)
}
