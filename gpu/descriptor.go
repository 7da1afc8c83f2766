package gpu

import "github.com/gogpu/gputypes"

// CopyBufferAlignment is the required alignment of buffer copy sizes and
// offsets, per the WebGPU specification.
const CopyBufferAlignment uint64 = 4

// BufferDescriptor describes buffer creation parameters.
//
// The frame graph also uses it as a pooling key: two buffers are
// interchangeable iff their descriptors compare equal, label included.
type BufferDescriptor struct {
	Label            string
	Size             uint64
	Usage            gputypes.BufferUsage
	MappedAtCreation bool
}

// TextureDescriptor describes texture creation parameters.
//
// Like BufferDescriptor it doubles as a pooling key; all fields,
// ViewFormats and Label included, participate in equality.
type TextureDescriptor struct {
	Label         string
	Size          gputypes.Extent3D
	MipLevelCount uint32
	SampleCount   uint32
	Dimension     gputypes.TextureDimension
	Format        gputypes.TextureFormat
	Usage         gputypes.TextureUsage
	ViewFormats   []gputypes.TextureFormat
}

// Equal reports whether two texture descriptors are structurally equal.
func (d *TextureDescriptor) Equal(other *TextureDescriptor) bool {
	if d.Label != other.Label ||
		d.Size != other.Size ||
		d.MipLevelCount != other.MipLevelCount ||
		d.SampleCount != other.SampleCount ||
		d.Dimension != other.Dimension ||
		d.Format != other.Format ||
		d.Usage != other.Usage ||
		len(d.ViewFormats) != len(other.ViewFormats) {
		return false
	}
	for i, f := range d.ViewFormats {
		if other.ViewFormats[i] != f {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the descriptor.
func (d *TextureDescriptor) Clone() TextureDescriptor {
	out := *d
	if d.ViewFormats != nil {
		out.ViewFormats = make([]gputypes.TextureFormat, len(d.ViewFormats))
		copy(out.ViewFormats, d.ViewFormats)
	}
	return out
}

// TextureViewDescriptor describes texture view creation parameters.
// The zero value requests the texture's default full view.
type TextureViewDescriptor struct {
	Label           string
	Format          gputypes.TextureFormat
	Dimension       gputypes.TextureViewDimension
	Aspect          gputypes.TextureAspect
	BaseMipLevel    uint32
	MipLevelCount   uint32
	BaseArrayLayer  uint32
	ArrayLayerCount uint32
}

// SamplerDescriptor describes sampler creation parameters.
type SamplerDescriptor struct {
	Label        string
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
	AddressModeW gputypes.AddressMode
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
	LodMinClamp  float32
	LodMaxClamp  float32
	Compare      gputypes.CompareFunction
	Anisotropy   uint16
}

// BindGroupDescriptor describes a bind group.
type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// BindGroupEntry describes a single resource binding in a bind group.
// Exactly one of Buffer, Sampler, TextureView or TextureViews must be
// set.
type BindGroupEntry struct {
	Binding uint32

	// Buffer binds the byte range Offset..Offset+Size of a buffer.
	// Size 0 binds to the end of the buffer.
	Buffer Buffer
	Offset uint64
	Size   uint64

	Sampler Sampler

	TextureView TextureView

	// TextureViews binds an array of texture views to one slot.
	TextureViews []TextureView
}

// RenderPassDescriptor describes a render pass.
type RenderPassDescriptor struct {
	Label                  string
	ColorAttachments       []RenderPassColorAttachment
	DepthStencilAttachment *RenderPassDepthStencilAttachment
}

// RenderPassColorAttachment describes a color attachment with its live
// texture views.
type RenderPassColorAttachment struct {
	View          TextureView
	ResolveTarget TextureView
	LoadOp        gputypes.LoadOp
	StoreOp       gputypes.StoreOp
	ClearValue    gputypes.Color
}

// RenderPassDepthStencilAttachment describes a depth/stencil attachment.
type RenderPassDepthStencilAttachment struct {
	View              TextureView
	DepthLoadOp       gputypes.LoadOp
	DepthStoreOp      gputypes.StoreOp
	DepthClearValue   float32
	DepthReadOnly     bool
	StencilLoadOp     gputypes.LoadOp
	StencilStoreOp    gputypes.StoreOp
	StencilClearValue uint32
	StencilReadOnly   bool
}
