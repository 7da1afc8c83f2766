package framegraph

import (
	"fmt"

	"github.com/gogpu/framegraph/gpu"
)

// ResourceTable is the per-execution map from resource node to live GPU
// resource. Device passes request entries before running their bodies
// and release them afterwards; a lookup of a node that is not live is a
// bug in compilation or in the client's declarations and panics.
//
// The table exclusively owns its Owned entries and moves them back into
// the transient cache on release. Imported entries hold shared
// references that are dropped on release.
//
// Not safe for concurrent use.
type ResourceTable struct {
	resources map[Handle[ResourceNode]]liveResource
}

// NewResourceTable creates an empty resource table.
func NewResourceTable() *ResourceTable {
	return &ResourceTable{resources: make(map[Handle[ResourceNode]]liveResource)}
}

// Len returns the number of live resources.
func (t *ResourceTable) Len() int { return len(t.resources) }

// GetBuffer returns the live buffer at the reference's node index.
// Panics if the node is not live or holds a texture.
func (t *ResourceTable) GetBuffer(ref BufferRef) *TransientBuffer {
	res, ok := t.resources[ref.raw.Index]
	if !ok {
		panic(fmt.Sprintf("framegraph: resource %d is not live; missing request before use", ref.raw.Index.Index()))
	}
	if res.kind != kindBuffer {
		panic(fmt.Sprintf("framegraph: resource %d is a %s, not a buffer", ref.raw.Index.Index(), res.kind))
	}
	return res.buffer
}

// GetTexture returns the live texture at the reference's node index.
// Panics if the node is not live or holds a buffer.
func (t *ResourceTable) GetTexture(ref TextureRef) *TransientTexture {
	res, ok := t.resources[ref.raw.Index]
	if !ok {
		panic(fmt.Sprintf("framegraph: resource %d is not live; missing request before use", ref.raw.Index.Index()))
	}
	if res.kind != kindTexture {
		panic(fmt.Sprintf("framegraph: resource %d is a %s, not a texture", ref.raw.Index.Index(), res.kind))
	}
	return res.texture
}

// requestResource makes the requested node's resource live. Setup
// resources come from the cache when a pooled one matches the
// descriptor, otherwise from the device; imported resources pass
// through as shared references.
func (t *ResourceTable) requestResource(req resourceRequest, device gpu.Device, cache *TransientResourceCache) error {
	res := req.resource

	if res.imported {
		switch res.kind {
		case kindBuffer:
			t.resources[req.index] = sharedBuffer(res.impBuf)
		case kindTexture:
			t.resources[req.index] = sharedTexture(res.impTex)
		}
		return nil
	}

	switch res.kind {
	case kindBuffer:
		buf, ok := cache.GetBuffer(&res.bufDesc)
		if !ok {
			raw, err := device.CreateBuffer(&res.bufDesc)
			if err != nil {
				return fmt.Errorf("framegraph: create buffer %q: %w", res.bufDesc.Label, err)
			}
			buf = &TransientBuffer{Resource: raw, Desc: res.bufDesc}
			logger().Debug("framegraph: allocated transient buffer",
				"label", res.bufDesc.Label, "size", res.bufDesc.Size)
		}
		t.resources[req.index] = ownedBuffer(buf)
	case kindTexture:
		tex, ok := cache.GetTexture(&res.texDesc)
		if !ok {
			raw, err := device.CreateTexture(&res.texDesc)
			if err != nil {
				return fmt.Errorf("framegraph: create texture %q: %w", res.texDesc.Label, err)
			}
			tex = &TransientTexture{Resource: raw, Desc: res.texDesc.Clone()}
			logger().Debug("framegraph: allocated transient texture",
				"label", res.texDesc.Label,
				"width", res.texDesc.Size.Width, "height", res.texDesc.Size.Height)
		}
		t.resources[req.index] = ownedTexture(tex)
	}
	return nil
}

// releaseResource removes the node's entry. Owned resources return to
// the cache keyed by their descriptor; imported ones are dropped.
// Releasing a node that is not live is a no-op.
func (t *ResourceTable) releaseResource(rel resourceRelease, cache *TransientResourceCache) {
	res, ok := t.resources[rel.index]
	if !ok {
		return
	}
	delete(t.resources, rel.index)

	if !res.owned {
		return
	}
	switch res.kind {
	case kindBuffer:
		cache.InsertBuffer(res.buffer)
	case kindTexture:
		cache.InsertTexture(res.texture)
	}
}

// Reset drops every entry without touching the cache. Used when an
// execution aborts mid-frame; resources released this way are lost to
// the pool rather than recycled in an unknown state.
func (t *ResourceTable) Reset() {
	t.resources = make(map[Handle[ResourceNode]]liveResource)
}
