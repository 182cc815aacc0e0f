// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gltfinfo loads glTF/GLB assets through the full cache stack,
// validates them and prints a structural summary. The exit code is
// nonzero when any asset fails to load.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PlayerLegend/moonburn-engine/conf"
	"github.com/PlayerLegend/moonburn-engine/fsys"
	"github.com/PlayerLegend/moonburn-engine/loader/gltf"
	"github.com/PlayerLegend/moonburn-engine/pixmap"
	"github.com/PlayerLegend/moonburn-engine/skel"
	"github.com/PlayerLegend/moonburn-engine/util/logger"
)

func main() {

	configPath := flag.String("config", "", "engine configuration file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config file] <asset.glb> [...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := conf.Default()
	if *configPath != "" {
		loaded, err := conf.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := logger.SetLevelByName(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	roots := cfg.AssetRoots
	for _, path := range flag.Args() {
		roots = append(roots, filepath.Dir(path))
	}
	wl, err := fsys.NewWhitelist(roots...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	binCache := fsys.NewBinaryCache(wl)
	imgCache := pixmap.NewRGBACache(wl)
	docCache := gltf.NewCache(wl, binCache, imgCache)

	for _, path := range flag.Args() {
		if err := describe(docCache, path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func describe(cache *gltf.Cache, path string) error {

	entry, err := cache.Get(path)
	if err != nil {
		return err
	}
	doc := entry.Value

	fmt.Printf("%s\n", path)
	fmt.Printf("  asset version %s", doc.Asset.Version)
	if doc.Asset.Generator != "" {
		fmt.Printf(" (%s)", doc.Asset.Generator)
	}
	fmt.Println()
	fmt.Printf("  %d buffers, %d buffer views, %d accessors\n",
		len(doc.Buffers), len(doc.BufferViews), len(doc.Accessors))
	fmt.Printf("  %d meshes, %d nodes, %d scenes, %d materials, %d textures\n",
		len(doc.Meshes), len(doc.Nodes), len(doc.Scenes), len(doc.Materials), len(doc.Textures))

	for i, bv := range doc.BufferViews {
		fmt.Printf("  bufferView %2d: offset %6d length %6d stride %d\n",
			i, bv.ByteOffset, bv.ByteLength, bv.ByteStride)
	}

	for _, skin := range doc.Skins {
		armature, err := skel.NewArmature(skin)
		if err != nil {
			return err
		}
		fmt.Printf("  skin %q: %d bones, root %q\n", skin.Name, len(armature.Bones), armature.RootName)
	}
	for _, ga := range doc.Animations {
		anim, err := skel.NewAnimation(ga)
		if err != nil {
			return err
		}
		fmt.Printf("  animation %q\n", anim.Name)
	}
	return nil
}
