// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsys restricts the engine's file access to a whitelist of
// enumerated paths and provides the keyed, mtime-revalidated caches
// that every asset loader goes through.
package fsys

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Whitelist is the set of absolute paths the engine may open.
// All methods may be called concurrently.
type Whitelist struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// NewWhitelist creates a whitelist populated from the specified roots.
// Each root is walked recursively as by Add.
func NewWhitelist(roots ...string) (*Whitelist, error) {

	wl := &Whitelist{paths: make(map[string]struct{})}
	for _, root := range roots {
		if err := wl.Add(root); err != nil {
			return nil, err
		}
	}
	return wl, nil
}

// Add recursively enumerates the regular files and symlinks under
// root and inserts their absolute paths into the whitelist.
func (wl *Whitelist) Add(root string) error {

	wl.mu.Lock()
	defer wl.mu.Unlock()

	return filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() && info.Mode()&fs.ModeSymlink == 0 {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		wl.paths[abs] = struct{}{}
		return nil
	})
}

// AddFile inserts a single path into the whitelist.
func (wl *Whitelist) AddFile(path string) error {

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	wl.mu.Lock()
	wl.paths[abs] = struct{}{}
	wl.mu.Unlock()
	return nil
}

// Contains reports whether path is in the whitelist.
// The path is canonicalized before the lookup so relative and
// absolute spellings of the same file agree.
func (wl *Whitelist) Contains(path string) bool {

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	wl.mu.Lock()
	_, ok := wl.paths[abs]
	wl.mu.Unlock()
	return ok
}

// ReadFile reads the whole file at path into a new byte buffer.
// This is the engine's sole file I/O entry point; callers are
// expected to have checked the whitelist first.
func ReadFile(path string) ([]byte, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	return data, nil
}
