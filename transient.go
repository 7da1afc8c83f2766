package framegraph

import (
	"github.com/gogpu/framegraph/gpu"
)

// TransientBuffer pairs a live GPU buffer with the descriptor it was
// created from. The descriptor is the pooling key that lets the cache
// recycle the buffer across frames.
type TransientBuffer struct {
	Resource gpu.Buffer
	Desc     gpu.BufferDescriptor
}

// TransientTexture pairs a live GPU texture with its creation
// descriptor.
type TransientTexture struct {
	Resource gpu.Texture
	Desc     gpu.TextureDescriptor
}

// liveResource is an entry of the resource table: one live GPU resource
// together with its ownership. Owned resources were created (or pooled)
// by the engine and return to the cache on release; imported resources
// are shared with the host and are simply dropped.
type liveResource struct {
	kind  resourceKind
	owned bool

	buffer  *TransientBuffer
	texture *TransientTexture
}

func ownedBuffer(buf *TransientBuffer) liveResource {
	return liveResource{kind: kindBuffer, owned: true, buffer: buf}
}

func sharedBuffer(buf *TransientBuffer) liveResource {
	return liveResource{kind: kindBuffer, buffer: buf}
}

func ownedTexture(tex *TransientTexture) liveResource {
	return liveResource{kind: kindTexture, owned: true, texture: tex}
}

func sharedTexture(tex *TransientTexture) liveResource {
	return liveResource{kind: kindTexture, texture: tex}
}
