// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"github.com/PlayerLegend/moonburn-engine/fsys"
	"github.com/PlayerLegend/moonburn-engine/pixmap"
)

// Cache is the keyed, mtime-revalidated cache of parsed documents.
// Its loader pulls file bytes through the binary cache and images
// through the image cache; the lock order gltf -> image -> binary is
// acyclic, so cross-cache loads cannot deadlock.
type Cache struct {
	files *fsys.Cache[*GLTF]
}

// NewCache creates a document cache over the specified whitelist and
// lower-level caches.
func NewCache(wl *fsys.Whitelist, bin *fsys.Cache[[]byte], img *pixmap.RGBACache) *Cache {

	c := new(Cache)
	c.files = fsys.New(wl, func(path string) (*GLTF, error) {
		return Load(path, bin, img)
	})
	return c
}

// Get returns the cache entry for the document at path, reloading it
// when the file on disk is newer than the cached entry.
func (c *Cache) Get(path string) (*fsys.Entry[*GLTF], error) {

	return c.files.Get(path)
}
