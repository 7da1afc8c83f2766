package framegraph

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph/gpu"
)

// The render- and compute-pass command set. Each command is a typed
// record carrying its captured parameters; execution replays it verbatim
// against the live pass context.

type setRenderPipelineCommand struct {
	pipeline gpu.RenderPipeline
}

func (c *setRenderPipelineCommand) Execute(ctx *RenderPassContext) {
	ctx.SetRenderPipeline(c.pipeline)
}

type setVertexBufferCommand struct {
	slot   uint32
	buffer BufferRef
	offset uint64
	size   uint64
}

func (c *setVertexBufferCommand) Execute(ctx *RenderPassContext) {
	ctx.SetVertexBuffer(c.slot, c.buffer, c.offset, c.size)
}

type setIndexBufferCommand struct {
	buffer BufferRef
	format gputypes.IndexFormat
	offset uint64
	size   uint64
}

func (c *setIndexBufferCommand) Execute(ctx *RenderPassContext) {
	ctx.SetIndexBuffer(c.buffer, c.format, c.offset, c.size)
}

type setBindGroupCommand struct {
	index   uint32
	group   TransientBindGroup
	offsets []uint32
}

func (c *setBindGroupCommand) Execute(ctx *RenderPassContext) {
	ctx.SetBindGroup(c.index, &c.group, c.offsets)
}

type drawCommand struct {
	vertexCount   uint32
	instanceCount uint32
	firstVertex   uint32
	firstInstance uint32
}

func (c *drawCommand) Execute(ctx *RenderPassContext) {
	ctx.Draw(c.vertexCount, c.instanceCount, c.firstVertex, c.firstInstance)
}

type drawIndexedCommand struct {
	indexCount    uint32
	instanceCount uint32
	firstIndex    uint32
	baseVertex    int32
	firstInstance uint32
}

func (c *drawIndexedCommand) Execute(ctx *RenderPassContext) {
	ctx.DrawIndexed(c.indexCount, c.instanceCount, c.firstIndex, c.baseVertex, c.firstInstance)
}

type setComputePipelineCommand struct {
	pipeline gpu.ComputePipeline
}

func (c *setComputePipelineCommand) Execute(ctx *ComputePassContext) {
	ctx.SetComputePipeline(c.pipeline)
}

type setComputeBindGroupCommand struct {
	index   uint32
	group   TransientBindGroup
	offsets []uint32
}

func (c *setComputeBindGroupCommand) Execute(ctx *ComputePassContext) {
	ctx.SetBindGroup(c.index, &c.group, c.offsets)
}

type dispatchCommand struct {
	x, y, z uint32
}

func (c *dispatchCommand) Execute(ctx *ComputePassContext) {
	ctx.Dispatch(c.x, c.y, c.z)
}
