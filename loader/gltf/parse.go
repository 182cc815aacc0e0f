// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/PlayerLegend/moonburn-engine/fsys"
	"github.com/PlayerLegend/moonburn-engine/jsonval"
	"github.com/PlayerLegend/moonburn-engine/pixmap"
)

// Load reads, frames and parses the glTF asset at path. The file
// bytes go through the binary cache, so path must be whitelisted.
// Plain JSON .gltf files are accepted alongside GLB containers.
// External buffer and image uris resolve relative to path through
// the same caches.
func Load(path string, binCache *fsys.Cache[[]byte], imgCache *pixmap.RGBACache) (*GLTF, error) {

	entry, err := binCache.Get(path)
	if err != nil {
		return nil, err
	}
	data := entry.Value

	if !IsGLB(data) {
		return Parse(path, data, nil, filepath.Dir(path), binCache, imgCache)
	}

	glb, err := ParseGLB(data)
	if err != nil {
		return nil, err
	}
	return Parse(path, glb.JSON, glb.Bin, filepath.Dir(path), binCache, imgCache)
}

// Parse builds a document graph from the JSON payload in jsonData
// and the BIN chunk in binData (which may be nil). The name tags
// source locations in errors; dir anchors external uris.
func Parse(name string, jsonData, binData []byte, dir string, binCache *fsys.Cache[[]byte], imgCache *pixmap.RGBACache) (*GLTF, error) {

	root, err := jsonval.Parse(name, jsonData)
	if err != nil {
		return nil, err
	}
	obj, err := root.Object()
	if err != nil {
		return nil, err
	}

	b := &builder{
		doc:      new(GLTF),
		bin:      binData,
		dir:      dir,
		binCache: binCache,
		imgCache: imgCache,
	}
	if err := b.build(obj); err != nil {
		return nil, err
	}
	return b.doc, nil
}

type builder struct {
	doc      *GLTF
	bin      []byte
	dir      string
	binCache *fsys.Cache[[]byte]
	imgCache *pixmap.RGBACache

	// Index lists recorded during node construction and resolved
	// to pointers once every array is built.
	nodeChildren [][]int
	nodeSkins    []int
}

// build populates the document arrays in dependency order, then
// resolves the node back-references.
func (b *builder) build(root *jsonval.Object) error {

	if v, ok := root.Get("asset"); ok {
		if err := b.parseAsset(v); err != nil {
			return err
		}
	}

	steps := []struct {
		key   string
		parse func(jsonval.Value) error
	}{
		{"buffers", b.parseBuffer},
		{"bufferViews", b.parseBufferView},
		{"accessors", b.parseAccessor},
		{"images", b.parseImage},
		{"samplers", b.parseSampler},
		{"textures", b.parseTexture},
		{"materials", b.parseMaterial},
		{"meshes", b.parseMesh},
		{"nodes", b.parseNode},
		{"skins", b.parseSkin},
		{"scenes", b.parseScene},
		{"animations", b.parseAnimation},
	}
	for _, step := range steps {
		v, ok := root.Get(step.key)
		if !ok {
			continue
		}
		items, err := v.Array()
		if err != nil {
			return err
		}
		log.Debug("parsing %d %s", len(items), step.key)
		for _, item := range items {
			if err := step.parse(item); err != nil {
				return err
			}
		}
	}

	return b.linkNodes()
}

// linkNodes resolves node children, parents and skins, and verifies
// that the node graph is a forest.
func (b *builder) linkNodes() error {

	for i, node := range b.doc.Nodes {
		for _, ci := range b.nodeChildren[i] {
			child, err := b.node(ci, jsonval.Location{})
			if err != nil {
				return err
			}
			if child.Parent != nil {
				return parseErrorAt(jsonval.Location{}, "node %d listed as a child of multiple nodes", ci)
			}
			if child == node {
				return parseErrorAt(jsonval.Location{}, "node %d lists itself as a child", ci)
			}
			child.Parent = node
			node.Children = append(node.Children, child)
		}
		if si := b.nodeSkins[i]; si >= 0 {
			if si >= len(b.doc.Skins) {
				return parseErrorAt(jsonval.Location{}, "skin index %d out of range", si)
			}
			node.Skin = b.doc.Skins[si]
		}
	}

	// Every node must be reachable from a parentless root, so a
	// parent ring cannot hide in the graph.
	reached := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		reached++
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, node := range b.doc.Nodes {
		if node.Parent == nil {
			walk(node)
		}
	}
	if reached != len(b.doc.Nodes) {
		return parseErrorAt(jsonval.Location{}, "node graph contains a cycle")
	}
	return nil
}

//
// JSON object field helpers. Required-field failures report the
// enclosing object's source location.
//

func object(v jsonval.Value) (*jsonval.Object, error) {

	return v.Object()
}

func reqMember(obj *jsonval.Object, key string) (jsonval.Value, error) {

	v, ok := obj.Get(key)
	if !ok {
		return jsonval.Value{}, parseErrorAt(obj.Loc(), "missing required field %q", key)
	}
	return v, nil
}

func reqInt(obj *jsonval.Object, key string) (int, error) {

	v, err := reqMember(obj, key)
	if err != nil {
		return 0, err
	}
	n, err := v.AsInt()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func optInt(obj *jsonval.Object, key string, def int) (int, error) {

	v, ok := obj.Get(key)
	if !ok {
		return def, nil
	}
	n, err := v.AsInt()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func reqString(obj *jsonval.Object, key string) (string, error) {

	v, err := reqMember(obj, key)
	if err != nil {
		return "", err
	}
	return v.Str()
}

func optString(obj *jsonval.Object, key string) (string, error) {

	v, ok := obj.Get(key)
	if !ok {
		return "", nil
	}
	return v.Str()
}

func optFloat(obj *jsonval.Object, key string, def float32) (float32, error) {

	v, ok := obj.Get(key)
	if !ok {
		return def, nil
	}
	f, err := v.AsFloat()
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

func optBool(obj *jsonval.Object, key string, def bool) (bool, error) {

	v, ok := obj.Get(key)
	if !ok {
		return def, nil
	}
	return v.BoolVal()
}

// optFloats reads a fixed-size float array member into dst.
func optFloats(obj *jsonval.Object, key string, dst []float32) error {

	v, ok := obj.Get(key)
	if !ok {
		return nil
	}
	items, err := v.Array()
	if err != nil {
		return err
	}
	if len(items) != len(dst) {
		return parseErrorAt(v.Loc(), "field %q must have %d elements, has %d", key, len(dst), len(items))
	}
	for i, item := range items {
		f, err := item.AsFloat()
		if err != nil {
			return err
		}
		dst[i] = float32(f)
	}
	return nil
}

//
// Index resolution. Every cross-reference is bounds-checked as it
// is resolved so the finished graph holds no dangling pointers.
//

func (b *builder) buffer(i int, loc jsonval.Location) (*Buffer, error) {

	if i < 0 || i >= len(b.doc.Buffers) {
		return nil, parseErrorAt(loc, "buffer index %d out of range", i)
	}
	return b.doc.Buffers[i], nil
}

func (b *builder) bufferView(i int, loc jsonval.Location) (*BufferView, error) {

	if i < 0 || i >= len(b.doc.BufferViews) {
		return nil, parseErrorAt(loc, "buffer view index %d out of range", i)
	}
	return b.doc.BufferViews[i], nil
}

func (b *builder) accessor(i int, loc jsonval.Location) (*Accessor, error) {

	if i < 0 || i >= len(b.doc.Accessors) {
		return nil, parseErrorAt(loc, "accessor index %d out of range", i)
	}
	return b.doc.Accessors[i], nil
}

func (b *builder) image(i int, loc jsonval.Location) (*Image, error) {

	if i < 0 || i >= len(b.doc.Images) {
		return nil, parseErrorAt(loc, "image index %d out of range", i)
	}
	return b.doc.Images[i], nil
}

func (b *builder) sampler(i int, loc jsonval.Location) (*Sampler, error) {

	if i < 0 || i >= len(b.doc.Samplers) {
		return nil, parseErrorAt(loc, "sampler index %d out of range", i)
	}
	return b.doc.Samplers[i], nil
}

func (b *builder) texture(i int, loc jsonval.Location) (*Texture, error) {

	if i < 0 || i >= len(b.doc.Textures) {
		return nil, parseErrorAt(loc, "texture index %d out of range", i)
	}
	return b.doc.Textures[i], nil
}

func (b *builder) material(i int, loc jsonval.Location) (*Material, error) {

	if i < 0 || i >= len(b.doc.Materials) {
		return nil, parseErrorAt(loc, "material index %d out of range", i)
	}
	return b.doc.Materials[i], nil
}

func (b *builder) mesh(i int, loc jsonval.Location) (*Mesh, error) {

	if i < 0 || i >= len(b.doc.Meshes) {
		return nil, parseErrorAt(loc, "mesh index %d out of range", i)
	}
	return b.doc.Meshes[i], nil
}

func (b *builder) node(i int, loc jsonval.Location) (*Node, error) {

	if i < 0 || i >= len(b.doc.Nodes) {
		return nil, parseErrorAt(loc, "node index %d out of range", i)
	}
	return b.doc.Nodes[i], nil
}

//
// Entity parsers, one per document array.
//

func (b *builder) parseAsset(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}
	version, err := reqString(obj, "version")
	if err != nil {
		return err
	}
	generator, err := optString(obj, "generator")
	if err != nil {
		return err
	}
	b.doc.Asset = Asset{Version: version, Generator: generator}
	return nil
}

func (b *builder) parseBuffer(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	buf := new(Buffer)
	if buf.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	if buf.URI, err = optString(obj, "uri"); err != nil {
		return err
	}
	if buf.ByteLength, err = optInt(obj, "byteLength", -1); err != nil {
		return err
	}

	switch {
	case buf.URI == "":
		// Bytes come from the GLB BIN chunk up to byteLength.
		if buf.ByteLength < 0 {
			buf.ByteLength = len(b.bin)
		}
		if buf.ByteLength > len(b.bin) {
			return parseErrorAt(v.Loc(), "buffer byteLength %d exceeds BIN chunk size %d", buf.ByteLength, len(b.bin))
		}
		buf.Data = b.bin[:buf.ByteLength]

	case isDataURL(buf.URI):
		data, err := decodeDataURL(buf.URI, v.Loc())
		if err != nil {
			return err
		}
		buf.Data = data

	default:
		if b.binCache == nil {
			return parseErrorAt(v.Loc(), "buffer uri %q requires a binary cache", buf.URI)
		}
		entry, err := b.binCache.Get(filepath.Join(b.dir, buf.URI))
		if err != nil {
			return err
		}
		buf.Data = entry.Value
	}

	if buf.ByteLength >= 0 && buf.ByteLength != len(buf.Data) {
		return parseErrorAt(v.Loc(), "buffer read %d bytes, expected %d", len(buf.Data), buf.ByteLength)
	}
	buf.ByteLength = len(buf.Data)

	b.doc.Buffers = append(b.doc.Buffers, buf)
	return nil
}

func (b *builder) parseBufferView(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	bv := new(BufferView)
	if bv.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	bi, err := reqInt(obj, "buffer")
	if err != nil {
		return err
	}
	if bv.Buffer, err = b.buffer(bi, v.Loc()); err != nil {
		return err
	}
	if bv.ByteOffset, err = optInt(obj, "byteOffset", 0); err != nil {
		return err
	}
	if bv.ByteLength, err = reqInt(obj, "byteLength"); err != nil {
		return err
	}
	if bv.ByteStride, err = optInt(obj, "byteStride", 0); err != nil {
		return err
	}

	target, err := optInt(obj, "target", 0)
	if err != nil {
		return err
	}
	switch BufferViewTarget(target) {
	case TARGET_UNSET, ARRAY_BUFFER, ELEMENT_ARRAY_BUFFER:
		bv.Target = BufferViewTarget(target)
	default:
		return parseErrorAt(v.Loc(), "unknown buffer view target %d", target)
	}

	if bv.ByteOffset < 0 || bv.ByteLength < 0 || bv.ByteOffset+bv.ByteLength > bv.Buffer.ByteLength {
		return parseErrorAt(v.Loc(), "buffer view range [%d, %d) outside buffer of %d bytes",
			bv.ByteOffset, bv.ByteOffset+bv.ByteLength, bv.Buffer.ByteLength)
	}

	b.doc.BufferViews = append(b.doc.BufferViews, bv)
	return nil
}

func componentTypeFromCode(code int, loc jsonval.Location) (ComponentType, error) {

	ct := ComponentType(code)
	switch ct {
	case BYTE, UNSIGNED_BYTE, SHORT, UNSIGNED_SHORT, UNSIGNED_INT, FLOAT:
		return ct, nil
	}
	return 0, parseErrorAt(loc, "unknown component type %d", code)
}

func (b *builder) parseSparse(v jsonval.Value) (*Sparse, error) {

	obj, err := object(v)
	if err != nil {
		return nil, err
	}

	sparse := new(Sparse)
	if sparse.Count, err = reqInt(obj, "count"); err != nil {
		return nil, err
	}

	iv, err := reqMember(obj, "indices")
	if err != nil {
		return nil, err
	}
	iobj, err := object(iv)
	if err != nil {
		return nil, err
	}
	bvi, err := reqInt(iobj, "bufferView")
	if err != nil {
		return nil, err
	}
	if sparse.Indices.BufferView, err = b.bufferView(bvi, iv.Loc()); err != nil {
		return nil, err
	}
	if sparse.Indices.ByteOffset, err = optInt(iobj, "byteOffset", 0); err != nil {
		return nil, err
	}
	ctCode, err := reqInt(iobj, "componentType")
	if err != nil {
		return nil, err
	}
	if sparse.Indices.ComponentType, err = componentTypeFromCode(ctCode, iv.Loc()); err != nil {
		return nil, err
	}
	switch sparse.Indices.ComponentType {
	case UNSIGNED_BYTE, UNSIGNED_SHORT, UNSIGNED_INT:
	default:
		return nil, parseErrorAt(iv.Loc(), "sparse indices must use an unsigned component type, have %d", ctCode)
	}

	vv, err := reqMember(obj, "values")
	if err != nil {
		return nil, err
	}
	vobj, err := object(vv)
	if err != nil {
		return nil, err
	}
	if bvi, err = reqInt(vobj, "bufferView"); err != nil {
		return nil, err
	}
	if sparse.Values.BufferView, err = b.bufferView(bvi, vv.Loc()); err != nil {
		return nil, err
	}
	if sparse.Values.ByteOffset, err = optInt(vobj, "byteOffset", 0); err != nil {
		return nil, err
	}

	return sparse, nil
}

func (b *builder) parseAccessor(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	ac := new(Accessor)
	if ac.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	bvi, err := reqInt(obj, "bufferView")
	if err != nil {
		return err
	}
	if ac.BufferView, err = b.bufferView(bvi, v.Loc()); err != nil {
		return err
	}
	if ac.ByteOffset, err = optInt(obj, "byteOffset", 0); err != nil {
		return err
	}

	ctCode, err := reqInt(obj, "componentType")
	if err != nil {
		return err
	}
	if ac.ComponentType, err = componentTypeFromCode(ctCode, v.Loc()); err != nil {
		return err
	}

	typeName, err := reqString(obj, "type")
	if err != nil {
		return err
	}
	ac.Type = AttributeType(typeName)
	if ac.Type.Components() == 0 {
		return parseErrorAt(v.Loc(), "unknown accessor type %q", typeName)
	}

	if ac.Count, err = reqInt(obj, "count"); err != nil {
		return err
	}
	if ac.Count < 0 {
		return parseErrorAt(v.Loc(), "negative accessor count %d", ac.Count)
	}
	if ac.Normalized, err = optBool(obj, "normalized", false); err != nil {
		return err
	}

	ac.ComponentSize = ac.ComponentType.Size()
	ac.Components = ac.Type.Components()
	ac.AttributeSize = ac.ComponentSize * ac.Components
	ac.Stride = ac.BufferView.ByteStride
	if ac.Stride == 0 {
		ac.Stride = ac.AttributeSize
	}

	if ac.Count > 0 {
		end := ac.ByteOffset + ac.Stride*(ac.Count-1) + ac.AttributeSize
		if ac.ByteOffset < 0 || end > ac.BufferView.ByteLength {
			return parseErrorAt(v.Loc(), "accessor range [%d, %d) outside buffer view of %d bytes",
				ac.ByteOffset, end, ac.BufferView.ByteLength)
		}
	}

	if sv, ok := obj.Get("sparse"); ok {
		if ac.Sparse, err = b.parseSparse(sv); err != nil {
			return err
		}
		if ac.Sparse.Count > ac.Count {
			return parseErrorAt(sv.Loc(), "sparse count %d exceeds accessor count %d", ac.Sparse.Count, ac.Count)
		}
		idx := ac.Sparse.Indices
		if idx.ByteOffset+ac.Sparse.Count*idx.ComponentType.Size() > idx.BufferView.ByteLength {
			return parseErrorAt(sv.Loc(), "sparse indices outside buffer view")
		}
		val := ac.Sparse.Values
		if val.ByteOffset+ac.Sparse.Count*ac.AttributeSize > val.BufferView.ByteLength {
			return parseErrorAt(sv.Loc(), "sparse values outside buffer view")
		}
	}

	b.doc.Accessors = append(b.doc.Accessors, ac)
	return nil
}

func (b *builder) parseImage(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	img := new(Image)
	if img.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	if img.MimeType, err = optString(obj, "mimeType"); err != nil {
		return err
	}
	if img.URI, err = optString(obj, "uri"); err != nil {
		return err
	}
	if bvv, ok := obj.Get("bufferView"); ok {
		bvi, err := bvv.AsInt()
		if err != nil {
			return err
		}
		if img.BufferView, err = b.bufferView(int(bvi), bvv.Loc()); err != nil {
			return err
		}
	}

	switch {
	case img.BufferView != nil:
		bv := img.BufferView
		data := bv.Buffer.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
		if img.Contents, err = pixmap.DecodePNG(data); err != nil {
			return err
		}
	case img.URI != "":
		if b.imgCache == nil {
			return parseErrorAt(v.Loc(), "image uri %q requires an image cache", img.URI)
		}
		entry, err := b.imgCache.Get(filepath.Join(b.dir, img.URI))
		if err != nil {
			return err
		}
		img.Contents = entry.Value
	default:
		return parseErrorAt(v.Loc(), "image has neither uri nor bufferView")
	}

	b.doc.Images = append(b.doc.Images, img)
	return nil
}

func (b *builder) parseSampler(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	s := new(Sampler)
	if s.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	if s.MagFilter, err = optInt(obj, "magFilter", LINEAR); err != nil {
		return err
	}
	if s.MinFilter, err = optInt(obj, "minFilter", LINEAR_MIPMAP_LINEAR); err != nil {
		return err
	}
	if s.WrapS, err = optInt(obj, "wrapS", REPEAT); err != nil {
		return err
	}
	if s.WrapT, err = optInt(obj, "wrapT", REPEAT); err != nil {
		return err
	}

	b.doc.Samplers = append(b.doc.Samplers, s)
	return nil
}

func (b *builder) parseTexture(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	t := new(Texture)
	if t.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	si, err := reqInt(obj, "source")
	if err != nil {
		return err
	}
	if t.Source, err = b.image(si, v.Loc()); err != nil {
		return err
	}
	smi, err := reqInt(obj, "sampler")
	if err != nil {
		return err
	}
	if t.Sampler, err = b.sampler(smi, v.Loc()); err != nil {
		return err
	}

	b.doc.Textures = append(b.doc.Textures, t)
	return nil
}

func (b *builder) parseTextureInfo(v jsonval.Value) (*TextureInfo, error) {

	obj, err := object(v)
	if err != nil {
		return nil, err
	}
	ti := new(TextureInfo)
	index, err := reqInt(obj, "index")
	if err != nil {
		return nil, err
	}
	if ti.Texture, err = b.texture(index, v.Loc()); err != nil {
		return nil, err
	}
	if ti.TexCoord, err = optInt(obj, "texCoord", 0); err != nil {
		return nil, err
	}
	return ti, nil
}

func (b *builder) parseMaterial(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	m := new(Material)
	if m.Name, err = optString(obj, "name"); err != nil {
		return err
	}

	if pv, ok := obj.Get("pbrMetallicRoughness"); ok {
		pobj, err := object(pv)
		if err != nil {
			return err
		}
		pbr := &PBRMetallicRoughness{
			MetallicFactor:  1,
			RoughnessFactor: 1,
		}
		factor := [4]float32{1, 1, 1, 1}
		if err = optFloats(pobj, "baseColorFactor", factor[:]); err != nil {
			return err
		}
		pbr.BaseColorFactor.FromArray(factor[:], 0)
		if tv, ok := pobj.Get("baseColorTexture"); ok {
			if pbr.BaseColorTexture, err = b.parseTextureInfo(tv); err != nil {
				return err
			}
		}
		if tv, ok := pobj.Get("metallicRoughnessTexture"); ok {
			if pbr.MetallicRoughnessTexture, err = b.parseTextureInfo(tv); err != nil {
				return err
			}
		}
		if pbr.MetallicFactor, err = optFloat(pobj, "metallicFactor", 1); err != nil {
			return err
		}
		if pbr.RoughnessFactor, err = optFloat(pobj, "roughnessFactor", 1); err != nil {
			return err
		}
		m.PBRMetallicRoughness = pbr
	}

	if tv, ok := obj.Get("normalTexture"); ok {
		ti, err := b.parseTextureInfo(tv)
		if err != nil {
			return err
		}
		tobj, _ := object(tv)
		scale, err := optFloat(tobj, "scale", 1)
		if err != nil {
			return err
		}
		m.NormalTexture = &NormalTextureInfo{TextureInfo: *ti, Scale: scale}
	}

	if tv, ok := obj.Get("occlusionTexture"); ok {
		ti, err := b.parseTextureInfo(tv)
		if err != nil {
			return err
		}
		tobj, _ := object(tv)
		strength, err := optFloat(tobj, "strength", 1)
		if err != nil {
			return err
		}
		m.OcclusionTexture = &OcclusionTextureInfo{TextureInfo: *ti, Strength: strength}
	}

	if tv, ok := obj.Get("emissiveTexture"); ok {
		if m.EmissiveTexture, err = b.parseTextureInfo(tv); err != nil {
			return err
		}
	}

	var emissive [3]float32
	if err = optFloats(obj, "emissiveFactor", emissive[:]); err != nil {
		return err
	}
	m.EmissiveFactor.FromArray(emissive[:], 0)

	mode, err := optString(obj, "alphaMode")
	if err != nil {
		return err
	}
	switch AlphaMode(mode) {
	case AlphaOpaque, AlphaMask, AlphaBlend:
		m.AlphaMode = AlphaMode(mode)
	case "":
		m.AlphaMode = AlphaOpaque
	default:
		return parseErrorAt(v.Loc(), "unknown alpha mode %q", mode)
	}

	if m.AlphaCutoff, err = optFloat(obj, "alphaCutoff", 0.5); err != nil {
		return err
	}
	if m.DoubleSided, err = optBool(obj, "doubleSided", false); err != nil {
		return err
	}

	b.doc.Materials = append(b.doc.Materials, m)
	return nil
}

// attributeAccessor resolves one named attribute of a primitive or
// morph target to its accessor, or nil when absent.
func (b *builder) attributeAccessor(obj *jsonval.Object, key string) (*Accessor, error) {

	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	i, err := v.AsInt()
	if err != nil {
		return nil, err
	}
	return b.accessor(int(i), v.Loc())
}

func (b *builder) parsePrimitive(v jsonval.Value) (Primitive, error) {

	var p Primitive

	obj, err := object(v)
	if err != nil {
		return p, err
	}

	av, err := reqMember(obj, "attributes")
	if err != nil {
		return p, err
	}
	aobj, err := object(av)
	if err != nil {
		return p, err
	}
	attribs := []struct {
		key string
		dst **Accessor
	}{
		{"POSITION", &p.Attributes.Position},
		{"NORMAL", &p.Attributes.Normal},
		{"TANGENT", &p.Attributes.Tangent},
		{"TEXCOORD_0", &p.Attributes.Texcoord0},
		{"TEXCOORD_1", &p.Attributes.Texcoord1},
		{"COLOR_0", &p.Attributes.Color0},
		{"JOINTS_0", &p.Attributes.Joints0},
		{"WEIGHTS_0", &p.Attributes.Weights0},
	}
	for _, attr := range attribs {
		if *attr.dst, err = b.attributeAccessor(aobj, attr.key); err != nil {
			return p, err
		}
	}

	if iv, ok := obj.Get("indices"); ok {
		i, err := iv.AsInt()
		if err != nil {
			return p, err
		}
		if p.Indices, err = b.accessor(int(i), iv.Loc()); err != nil {
			return p, err
		}
	}
	if mv, ok := obj.Get("material"); ok {
		i, err := mv.AsInt()
		if err != nil {
			return p, err
		}
		if p.Material, err = b.material(int(i), mv.Loc()); err != nil {
			return p, err
		}
	}
	if p.Mode, err = optInt(obj, "mode", TRIANGLES); err != nil {
		return p, err
	}

	if tv, ok := obj.Get("targets"); ok {
		targets, err := tv.Array()
		if err != nil {
			return p, err
		}
		for _, t := range targets {
			tobj, err := object(t)
			if err != nil {
				return p, err
			}
			var target MorphTarget
			if target.Position, err = b.attributeAccessor(tobj, "POSITION"); err != nil {
				return p, err
			}
			if target.Normal, err = b.attributeAccessor(tobj, "NORMAL"); err != nil {
				return p, err
			}
			if target.Tangent, err = b.attributeAccessor(tobj, "TANGENT"); err != nil {
				return p, err
			}
			p.Targets = append(p.Targets, target)
		}
	}

	return p, nil
}

func (b *builder) parseMesh(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	m := new(Mesh)
	if m.Name, err = optString(obj, "name"); err != nil {
		return err
	}

	pv, err := reqMember(obj, "primitives")
	if err != nil {
		return err
	}
	prims, err := pv.Array()
	if err != nil {
		return err
	}
	for _, p := range prims {
		prim, err := b.parsePrimitive(p)
		if err != nil {
			return err
		}
		m.Primitives = append(m.Primitives, prim)
	}

	b.doc.Meshes = append(b.doc.Meshes, m)
	return nil
}

func (b *builder) parseNode(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	n := new(Node)
	n.Transform.Identity()
	if n.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	if mv, ok := obj.Get("mesh"); ok {
		i, err := mv.AsInt()
		if err != nil {
			return err
		}
		if n.Mesh, err = b.mesh(int(i), mv.Loc()); err != nil {
			return err
		}
	}

	// Skins are built after nodes; remember the index for linkNodes.
	skin := -1
	if sv, ok := obj.Get("skin"); ok {
		i, err := sv.AsInt()
		if err != nil {
			return err
		}
		skin = int(i)
	}

	var children []int
	if cv, ok := obj.Get("children"); ok {
		items, err := cv.Array()
		if err != nil {
			return err
		}
		for _, item := range items {
			i, err := item.AsInt()
			if err != nil {
				return err
			}
			children = append(children, int(i))
		}
	}

	var translation [3]float32
	if err = optFloats(obj, "translation", translation[:]); err != nil {
		return err
	}
	n.Transform.Translation.FromArray(translation[:], 0)

	rotation := [4]float32{0, 0, 0, 1}
	if err = optFloats(obj, "rotation", rotation[:]); err != nil {
		return err
	}
	n.Transform.Rotation.FromArray(rotation[:], 0)

	scale := [3]float32{1, 1, 1}
	if err = optFloats(obj, "scale", scale[:]); err != nil {
		return err
	}
	n.Transform.Scale.FromArray(scale[:], 0)

	b.doc.Nodes = append(b.doc.Nodes, n)
	b.nodeChildren = append(b.nodeChildren, children)
	b.nodeSkins = append(b.nodeSkins, skin)
	return nil
}

func (b *builder) parseSkin(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	s := new(Skin)
	if s.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	if iv, ok := obj.Get("inverseBindMatrices"); ok {
		i, err := iv.AsInt()
		if err != nil {
			return err
		}
		if s.InverseBindMatrices, err = b.accessor(int(i), iv.Loc()); err != nil {
			return err
		}
	}
	if sv, ok := obj.Get("skeleton"); ok {
		i, err := sv.AsInt()
		if err != nil {
			return err
		}
		if s.Skeleton, err = b.node(int(i), sv.Loc()); err != nil {
			return err
		}
	}

	jv, err := reqMember(obj, "joints")
	if err != nil {
		return err
	}
	joints, err := jv.Array()
	if err != nil {
		return err
	}
	for _, j := range joints {
		i, err := j.AsInt()
		if err != nil {
			return err
		}
		node, err := b.node(int(i), j.Loc())
		if err != nil {
			return err
		}
		s.Joints = append(s.Joints, node)
	}

	b.doc.Skins = append(b.doc.Skins, s)
	return nil
}

func (b *builder) parseScene(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	s := new(Scene)
	if s.Name, err = optString(obj, "name"); err != nil {
		return err
	}
	if nv, ok := obj.Get("nodes"); ok {
		items, err := nv.Array()
		if err != nil {
			return err
		}
		for _, item := range items {
			i, err := item.AsInt()
			if err != nil {
				return err
			}
			node, err := b.node(int(i), item.Loc())
			if err != nil {
				return err
			}
			s.Nodes = append(s.Nodes, node)
		}
	}

	b.doc.Scenes = append(b.doc.Scenes, s)
	return nil
}

func (b *builder) parseAnimation(v jsonval.Value) error {

	obj, err := object(v)
	if err != nil {
		return err
	}

	a := new(Animation)
	if a.Name, err = optString(obj, "name"); err != nil {
		return err
	}

	sv, err := reqMember(obj, "samplers")
	if err != nil {
		return err
	}
	samplers, err := sv.Array()
	if err != nil {
		return err
	}
	for _, s := range samplers {
		sobj, err := object(s)
		if err != nil {
			return err
		}
		sampler := new(AnimationSampler)
		ii, err := reqInt(sobj, "input")
		if err != nil {
			return err
		}
		if sampler.Input, err = b.accessor(ii, s.Loc()); err != nil {
			return err
		}
		oi, err := reqInt(sobj, "output")
		if err != nil {
			return err
		}
		if sampler.Output, err = b.accessor(oi, s.Loc()); err != nil {
			return err
		}
		interp, err := optString(sobj, "interpolation")
		if err != nil {
			return err
		}
		switch Interpolation(interp) {
		case InterpolationStep, InterpolationLinear, InterpolationCubicSpline:
			sampler.Interpolation = Interpolation(interp)
		case "":
			sampler.Interpolation = InterpolationLinear
		default:
			return parseErrorAt(s.Loc(), "unknown interpolation %q", interp)
		}
		a.Samplers = append(a.Samplers, sampler)
	}

	cv, err := reqMember(obj, "channels")
	if err != nil {
		return err
	}
	channels, err := cv.Array()
	if err != nil {
		return err
	}
	for _, c := range channels {
		cobj, err := object(c)
		if err != nil {
			return err
		}
		var channel AnimationChannel
		si, err := reqInt(cobj, "sampler")
		if err != nil {
			return err
		}
		if si < 0 || si >= len(a.Samplers) {
			return parseErrorAt(c.Loc(), "animation sampler index %d out of range", si)
		}
		channel.Sampler = a.Samplers[si]

		tv, err := reqMember(cobj, "target")
		if err != nil {
			return err
		}
		tobj, err := object(tv)
		if err != nil {
			return err
		}
		if nv, ok := tobj.Get("node"); ok {
			i, err := nv.AsInt()
			if err != nil {
				return err
			}
			if channel.Target.Node, err = b.node(int(i), nv.Loc()); err != nil {
				return err
			}
		}
		path, err := reqString(tobj, "path")
		if err != nil {
			return err
		}
		switch ChannelPath(path) {
		case PathTranslation, PathRotation, PathScale:
			channel.Target.Path = ChannelPath(path)
		default:
			return parseErrorAt(tv.Loc(), "unknown channel path %q", path)
		}
		a.Channels = append(a.Channels, channel)
	}

	b.doc.Animations = append(b.doc.Animations, a)
	return nil
}

//
// Data URL support for embedded buffer payloads.
//

const dataURLPrefix = "data:"

func isDataURL(uri string) bool {

	return strings.HasPrefix(uri, dataURLPrefix)
}

// decodeDataURL decodes a data:[<mediatype>][;base64],<data> uri.
func decodeDataURL(uri string, loc jsonval.Location) ([]byte, error) {

	body := uri[len(dataURLPrefix):]
	parts := strings.SplitN(body, ",", 2)
	if len(parts) != 2 {
		return nil, parseErrorAt(loc, "data uri has no ',' separator")
	}
	meta := strings.Split(parts[0], ";")
	if len(meta) < 2 || meta[len(meta)-1] != "base64" {
		return nil, parseErrorAt(loc, "data uri encoding not supported: %q", parts[0])
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, parseErrorAt(loc, "data uri base64: %v", err)
	}
	return data, nil
}
