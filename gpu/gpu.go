package gpu

import "github.com/gogpu/gputypes"

// Device creates GPU resources and command encoders.
//
// Implementations wrap a concrete GPU API (see backend/wgpu). All
// creation methods may fail; errors propagate to the caller unmodified.
//
// The frame graph calls Device from a single goroutine per execution;
// implementations need not add locking on its behalf.
type Device interface {
	// CreateBuffer creates a GPU buffer.
	CreateBuffer(desc *BufferDescriptor) (Buffer, error)

	// CreateTexture creates a GPU texture.
	CreateTexture(desc *TextureDescriptor) (Texture, error)

	// CreateSampler creates a texture sampler.
	CreateSampler(desc *SamplerDescriptor) (Sampler, error)

	// CreateBindGroup creates a bind group binding live resources to
	// shader-visible slots.
	CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error)

	// CreateCommandEncoder creates a single-use command encoder.
	CreateCommandEncoder(label string) (CommandEncoder, error)
}

// CommandEncoder records GPU commands for later submission.
//
// A command encoder is single-use: after Finish the encoder must not be
// used again. NOT safe for concurrent use.
type CommandEncoder interface {
	// BeginRenderPass begins a render pass. The returned encoder must be
	// ended with End before Finish is called.
	BeginRenderPass(desc *RenderPassDescriptor) (RenderPassEncoder, error)

	// BeginComputePass begins a compute pass.
	BeginComputePass(label string) (ComputePassEncoder, error)

	// Finish completes recording and returns the command buffer.
	Finish() (CommandBuffer, error)
}

// RenderPassEncoder records draw commands within a render pass.
//
// Commands execute on the GPU in recording order. NOT safe for
// concurrent use.
type RenderPassEncoder interface {
	// SetPipeline sets the active render pipeline.
	SetPipeline(pipeline RenderPipeline)

	// SetBindGroup binds a bind group to the given index.
	SetBindGroup(index uint32, group BindGroup, offsets []uint32)

	// SetVertexBuffer binds the byte range offset..offset+size of buffer
	// to the given vertex buffer slot. size 0 binds to the end of the
	// buffer. A backend whose API cannot express a range ending before
	// the end of the buffer must reject such a call rather than ignore
	// size (the wgpu backend rejects it; see ErrUnsupportedRange there).
	SetVertexBuffer(slot uint32, buffer Buffer, offset, size uint64)

	// SetIndexBuffer binds the byte range offset..offset+size of buffer
	// as the index buffer. size 0 binds to the end of the buffer; the
	// same sub-range rule as SetVertexBuffer applies.
	SetIndexBuffer(buffer Buffer, format gputypes.IndexFormat, offset, size uint64)

	// Draw draws primitives.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)

	// DrawIndexed draws indexed primitives.
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)

	// End ends the render pass.
	End() error
}

// ComputePassEncoder records dispatch commands within a compute pass.
//
// NOT safe for concurrent use.
type ComputePassEncoder interface {
	// SetPipeline sets the active compute pipeline.
	SetPipeline(pipeline ComputePipeline)

	// SetBindGroup binds a bind group to the given index.
	SetBindGroup(index uint32, group BindGroup, offsets []uint32)

	// Dispatch dispatches compute workgroups.
	Dispatch(x, y, z uint32)

	// End ends the compute pass.
	End() error
}

// Buffer represents a GPU buffer.
type Buffer interface {
	// Size returns the buffer size in bytes.
	Size() uint64

	// Usage returns the buffer's usage flags.
	Usage() gputypes.BufferUsage

	// Label returns the buffer's debug label.
	Label() string

	// Release destroys the buffer.
	Release()
}

// Texture represents a GPU texture.
type Texture interface {
	// Format returns the texture format.
	Format() gputypes.TextureFormat

	// CreateView creates a view into the texture. A nil descriptor
	// requests the default full view.
	CreateView(desc *TextureViewDescriptor) (TextureView, error)

	// Release destroys the texture.
	Release()
}

// TextureView represents a view into a texture.
type TextureView interface {
	// Release destroys the view.
	Release()
}

// Sampler represents a texture sampler.
type Sampler interface {
	// Release destroys the sampler.
	Release()
}

// BindGroup represents bound GPU resources for shader access.
type BindGroup interface {
	// Release destroys the bind group.
	Release()
}

// BindGroupLayout defines the structure of resource bindings. Opaque to
// the frame graph; constructed by the host alongside its pipelines.
type BindGroupLayout interface {
	// Release destroys the layout.
	Release()
}

// RenderPipeline is an opaque configured render pipeline.
type RenderPipeline any

// ComputePipeline is an opaque configured compute pipeline.
type ComputePipeline any

// CommandBuffer holds recorded GPU commands ready for submission.
// Opaque to the frame graph; the host submits it to its queue.
type CommandBuffer any
