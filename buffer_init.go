package framegraph

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph/gpu"
)

// BufferInitDescriptor describes a buffer created from initial contents.
// The engine derives the allocation size from the contents, padded to
// the copy alignment the GPU requires.
type BufferInitDescriptor struct {
	Label    string
	Contents []byte
	Usage    gputypes.BufferUsage
}

// PaddedBufferSize returns size rounded up to the copy-buffer alignment.
// A zero size stays zero (empty init contents allocate nothing);
// otherwise the result is the smallest multiple of the alignment that is
// >= max(size, alignment).
func PaddedBufferSize(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	// Buffer sizes must be non-zero multiples of the copy alignment on
	// Vulkan, so round up and clamp to at least one alignment unit.
	alignMask := gpu.CopyBufferAlignment - 1
	padded := (size + alignMask) &^ alignMask
	if padded < gpu.CopyBufferAlignment {
		padded = gpu.CopyBufferAlignment
	}
	return padded
}

// Desc converts the init descriptor to a creation descriptor with a
// padded size. Init buffers are never mapped at creation; the host
// uploads contents through its queue after the graph allocates them.
func (d *BufferInitDescriptor) Desc() gpu.BufferDescriptor {
	return gpu.BufferDescriptor{
		Label:            d.Label,
		Size:             PaddedBufferSize(uint64(len(d.Contents))),
		Usage:            d.Usage,
		MappedAtCreation: false,
	}
}
