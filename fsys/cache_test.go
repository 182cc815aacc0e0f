// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsys

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestWhitelist(t *testing.T) {

	dir := t.TempDir()
	inside := writeFile(t, dir, "model.glb", []byte("data"))
	sub := filepath.Join(dir, "textures")
	require.NoError(t, os.Mkdir(sub, 0755))
	nested := writeFile(t, sub, "skin.png", []byte("png"))

	outsideDir := t.TempDir()
	outside := writeFile(t, outsideDir, "secret.bin", []byte("no"))

	wl, err := NewWhitelist(dir)
	require.NoError(t, err)

	assert.True(t, wl.Contains(inside))
	assert.True(t, wl.Contains(nested))
	assert.False(t, wl.Contains(outside))
	// Directories themselves are not whitelisted.
	assert.False(t, wl.Contains(sub))
}

func TestWhitelistAddFile(t *testing.T) {

	dir := t.TempDir()
	path := writeFile(t, dir, "one.bin", []byte("1"))

	wl, err := NewWhitelist()
	require.NoError(t, err)
	assert.False(t, wl.Contains(path))
	require.NoError(t, wl.AddFile(path))
	assert.True(t, wl.Contains(path))
}

func TestCacheRejectsOutsideWhitelist(t *testing.T) {

	dir := t.TempDir()
	outside := writeFile(t, t.TempDir(), "exists.bin", []byte("data"))

	wl, err := NewWhitelist(dir)
	require.NoError(t, err)
	cache := NewBinaryCache(wl)

	// The file physically exists but is not whitelisted.
	_, err = cache.Get(outside)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotWhitelisted)
}

func TestCacheRevalidation(t *testing.T) {

	dir := t.TempDir()
	path := writeFile(t, dir, "asset.bin", []byte("one"))

	wl, err := NewWhitelist(dir)
	require.NoError(t, err)
	cache := NewBinaryCache(wl)

	first, err := cache.Get(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), first.Value)

	// Unchanged mtime returns the same entry.
	again, err := cache.Get(path)
	require.NoError(t, err)
	assert.Same(t, first, again)

	// Rewrite the file with a strictly newer mtime.
	require.NoError(t, os.WriteFile(path, []byte("two"), 0644))
	newer := first.LastModified.Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, newer, newer))

	second, err := cache.Get(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), second.Value)
	assert.False(t, second.LastModified.Before(newer))

	// The first holder still sees its original entry.
	assert.Equal(t, []byte("one"), first.Value)
}

func TestCacheLoadFailureNotMemoized(t *testing.T) {

	dir := t.TempDir()
	path := writeFile(t, dir, "flaky.bin", []byte("ok"))
	wl, err := NewWhitelist(dir)
	require.NoError(t, err)

	fail := true
	cache := New(wl, func(p string) ([]byte, error) {
		if fail {
			return nil, ErrNotFound
		}
		return ReadFile(p)
	})

	_, err = cache.Get(path)
	require.Error(t, err)

	fail = false
	entry, err := cache.Get(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), entry.Value)
}

func TestCacheConcurrentGet(t *testing.T) {

	dir := t.TempDir()
	path := writeFile(t, dir, "shared.bin", []byte("payload"))
	wl, err := NewWhitelist(dir)
	require.NoError(t, err)

	loads := 0
	cache := New(wl, func(p string) ([]byte, error) {
		loads++
		return ReadFile(p)
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := cache.Get(path)
			assert.NoError(t, err)
			assert.Equal(t, []byte("payload"), entry.Value)
		}()
	}
	wg.Wait()

	// The loader ran under the cache mutex, exactly once.
	assert.Equal(t, 1, loads)
}
