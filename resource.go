package framegraph

import (
	"github.com/gogpu/framegraph/gpu"
)

// Access tags a resource reference with the declared access direction.
// The tag selects the builder path only; at execution time reads and
// writes resolve identically through the resource table.
type Access uint8

const (
	// AccessRead marks a reference obtained through a builder read.
	AccessRead Access = iota

	// AccessWrite marks a reference obtained through a builder write.
	AccessWrite
)

// String returns the string representation of the access tag.
func (a Access) String() string {
	switch a {
	case AccessRead:
		return "Read"
	case AccessWrite:
		return "Write"
	default:
		return "Unknown"
	}
}

// resourceKind discriminates the two transient resource variants.
type resourceKind uint8

const (
	kindBuffer resourceKind = iota
	kindTexture
)

// String returns the string representation of the resource kind.
func (k resourceKind) String() string {
	switch k {
	case kindBuffer:
		return "buffer"
	case kindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// virtualResource is either a setup resource (descriptor only, allocated
// by the engine at request time) or an imported one (shared external
// resource passed through unchanged). The descriptor is always
// retrievable.
type virtualResource struct {
	kind     resourceKind
	imported bool

	bufDesc gpu.BufferDescriptor
	texDesc gpu.TextureDescriptor

	impBuf *TransientBuffer
	impTex *TransientTexture
}

func setupBuffer(desc gpu.BufferDescriptor) virtualResource {
	return virtualResource{kind: kindBuffer, bufDesc: desc}
}

func setupTexture(desc gpu.TextureDescriptor) virtualResource {
	return virtualResource{kind: kindTexture, texDesc: desc.Clone()}
}

func importedBuffer(buf *TransientBuffer) virtualResource {
	return virtualResource{kind: kindBuffer, imported: true, impBuf: buf, bufDesc: buf.Desc}
}

func importedTexture(tex *TransientTexture) virtualResource {
	return virtualResource{kind: kindTexture, imported: true, impTex: tex, texDesc: tex.Desc.Clone()}
}

// ResourceNode is a graph vertex representing one logical resource. It
// tracks the current write version and, after compilation, the pass
// range the resource is alive for.
type ResourceNode struct {
	index    Handle[ResourceNode]
	name     string
	version  uint32
	resource virtualResource

	// firstUse and lastUse are pass indices; -1 means unused. firstUse
	// is never cleared once set, and lastUse >= firstUse after compile.
	firstUse int
	lastUse  int
}

func newResourceNode(name string, index Handle[ResourceNode], res virtualResource) *ResourceNode {
	return &ResourceNode{
		index:    index,
		name:     name,
		resource: res,
		firstUse: -1,
		lastUse:  -1,
	}
}

// Name returns the node's resource name.
func (n *ResourceNode) Name() string { return n.name }

// Version returns the node's current write version.
func (n *ResourceNode) Version() uint32 { return n.version }

// FirstUse returns the index of the first pass using the node, or -1.
// Valid after compilation.
func (n *ResourceNode) FirstUse() int { return n.firstUse }

// LastUse returns the index of the last pass using the node, or -1.
// Valid after compilation.
func (n *ResourceNode) LastUse() int { return n.lastUse }

// newVersion bumps the write version. Called once per builder write.
func (n *ResourceNode) newVersion() { n.version++ }

// updateLifetime widens the node's live range to include the given pass.
func (n *ResourceNode) updateLifetime(pass Handle[PassNode]) {
	if n.firstUse < 0 {
		n.firstUse = pass.Index()
	}
	n.lastUse = pass.Index()
}

// raw returns the raw handle at the node's current version.
func (n *ResourceNode) raw() RawResourceHandle {
	return RawResourceHandle{Index: n.index, Version: n.version}
}

// resourceRequest asks the resource table to make a node's resource live.
type resourceRequest struct {
	index    Handle[ResourceNode]
	resource virtualResource
}

// resourceRelease asks the resource table to retire a node's resource.
type resourceRelease struct {
	index Handle[ResourceNode]
}

func (n *ResourceNode) request() resourceRequest {
	return resourceRequest{index: n.index, resource: n.resource}
}

func (n *ResourceNode) release() resourceRelease {
	return resourceRelease{index: n.index}
}

// BufferHandle is a versioned handle to a buffer resource node. It
// carries a copy of the descriptor so clients can inspect creation
// parameters without consulting the graph.
type BufferHandle struct {
	raw  RawResourceHandle
	desc gpu.BufferDescriptor
}

// Raw returns the handle's (index, version) pair.
func (h BufferHandle) Raw() RawResourceHandle { return h.raw }

// Desc returns the buffer descriptor captured at handle creation.
func (h BufferHandle) Desc() gpu.BufferDescriptor { return h.desc }

// TextureHandle is a versioned handle to a texture resource node.
type TextureHandle struct {
	raw  RawResourceHandle
	desc gpu.TextureDescriptor
}

// Raw returns the handle's (index, version) pair.
func (h TextureHandle) Raw() RawResourceHandle { return h.raw }

// Desc returns the texture descriptor captured at handle creation.
func (h TextureHandle) Desc() gpu.TextureDescriptor { return h.desc }

// BufferRef is a buffer reference produced by a builder read or write.
// It denotes the buffer at a specific point of its write timeline.
type BufferRef struct {
	raw    RawResourceHandle
	desc   gpu.BufferDescriptor
	access Access
}

// Raw returns the reference's (index, version) pair.
func (r BufferRef) Raw() RawResourceHandle { return r.raw }

// Desc returns the buffer descriptor.
func (r BufferRef) Desc() gpu.BufferDescriptor { return r.desc }

// Access returns the declared access direction.
func (r BufferRef) Access() Access { return r.access }

// TextureRef is a texture reference produced by a builder read or write.
type TextureRef struct {
	raw    RawResourceHandle
	desc   gpu.TextureDescriptor
	access Access
}

// Raw returns the reference's (index, version) pair.
func (r TextureRef) Raw() RawResourceHandle { return r.raw }

// Desc returns the texture descriptor.
func (r TextureRef) Desc() gpu.TextureDescriptor { return r.desc }

// Access returns the declared access direction.
func (r TextureRef) Access() Access { return r.access }

// BufferMaterial is an external object that can import its backing
// buffer into a frame graph on demand. Builder read/write-material calls
// use it to declare dependencies on host-owned resources without the
// caller importing them by hand.
type BufferMaterial interface {
	ImportBuffer(fg *FrameGraph) BufferHandle
}

// TextureMaterial is the texture analogue of BufferMaterial.
type TextureMaterial interface {
	ImportTexture(fg *FrameGraph) TextureHandle
}
