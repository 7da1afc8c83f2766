package framegraph

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph/gpu"
)

// The recording surface. The only way to mutate the graph is through the
// scoped builders below. Every Add* method runs the client callback with
// the builder's flush deferred, so the accumulated reads, writes and
// command bodies are committed to the graph on every exit path,
// including a panic inside the callback. Clients never call a finish
// method.

// PassNodeBuilder declares a pass's reads and writes and optionally
// attaches a pass body. Obtained through FrameGraph.AddPassNode or the
// richer builders that extend it.
type PassNodeBuilder struct {
	graph *FrameGraph
	name  string

	reads  []RawResourceHandle
	writes []RawResourceHandle
	pass   *Pass
}

// AddPassNode records a declare-only pass: reads and writes register
// lifetimes, but no commands run at execution time.
func (fg *FrameGraph) AddPassNode(name string, record func(*PassNodeBuilder)) {
	b := &PassNodeBuilder{graph: fg, name: name}
	defer b.finish()
	record(b)
}

// finish commits the accumulated state as a new pass node.
func (b *PassNodeBuilder) finish() {
	node := b.graph.addPassNode(b.name)
	node.reads = b.reads
	node.writes = b.writes
	node.pass = b.pass
	b.pass = nil
}

// setPass installs the pass body, labelling it with the pass name.
func (b *PassNodeBuilder) setPass(pass *Pass) {
	pass.label = b.name
	b.pass = pass
}

// ReadBuffer declares a read of the buffer at the handle's version and
// returns a read reference. Repeated reads of the same (index, version)
// are de-duplicated; reads at different versions are distinct entries.
func (b *PassNodeBuilder) ReadBuffer(h BufferHandle) BufferRef {
	b.addRead(h.raw)
	return BufferRef{raw: h.raw, desc: h.desc, access: AccessRead}
}

// ReadTexture declares a read of the texture at the handle's version.
func (b *PassNodeBuilder) ReadTexture(h TextureHandle) TextureRef {
	b.addRead(h.raw)
	return TextureRef{raw: h.raw, desc: h.desc.Clone(), access: AccessRead}
}

// WriteBuffer declares a write of the buffer. The node's version is
// bumped and the returned reference denotes the new version; every write
// produces a fresh version, even within one pass.
func (b *PassNodeBuilder) WriteBuffer(h BufferHandle) BufferRef {
	raw := b.addWrite(h.raw)
	return BufferRef{raw: raw, desc: h.desc, access: AccessWrite}
}

// WriteTexture declares a write of the texture, bumping its version.
func (b *PassNodeBuilder) WriteTexture(h TextureHandle) TextureRef {
	raw := b.addWrite(h.raw)
	return TextureRef{raw: raw, desc: h.desc.Clone(), access: AccessWrite}
}

// ReadBufferMaterial imports the material's buffer and declares a read.
func (b *PassNodeBuilder) ReadBufferMaterial(m BufferMaterial) BufferRef {
	return b.ReadBuffer(m.ImportBuffer(b.graph))
}

// WriteBufferMaterial imports the material's buffer and declares a
// write.
func (b *PassNodeBuilder) WriteBufferMaterial(m BufferMaterial) BufferRef {
	return b.WriteBuffer(m.ImportBuffer(b.graph))
}

// ReadTextureMaterial imports the material's texture and declares a
// read.
func (b *PassNodeBuilder) ReadTextureMaterial(m TextureMaterial) TextureRef {
	return b.ReadTexture(m.ImportTexture(b.graph))
}

// WriteTextureMaterial imports the material's texture and declares a
// write.
func (b *PassNodeBuilder) WriteTextureMaterial(m TextureMaterial) TextureRef {
	return b.WriteTexture(m.ImportTexture(b.graph))
}

func (b *PassNodeBuilder) addRead(raw RawResourceHandle) {
	for _, existing := range b.reads {
		if existing == raw {
			return
		}
	}
	b.reads = append(b.reads, raw)
}

func (b *PassNodeBuilder) addWrite(raw RawResourceHandle) RawResourceHandle {
	node := b.graph.resourceNode(raw.Index)
	node.newVersion()
	newRaw := RawResourceHandle{Index: raw.Index, Version: node.Version()}
	b.writes = append(b.writes, newRaw)
	return newRaw
}

// PassBuilder extends PassNodeBuilder with a pass body under
// construction. Obtained through FrameGraph.AddPass.
type PassBuilder struct {
	*PassNodeBuilder
	pass Pass
}

// AddPass records a pass with a command body. Commands pushed to the
// builder (directly or through a render/compute pass recorder) run in
// order when the compiled graph executes.
func (fg *FrameGraph) AddPass(name string, record func(*PassBuilder)) {
	nb := &PassNodeBuilder{graph: fg, name: name}
	pb := &PassBuilder{PassNodeBuilder: nb}
	// LIFO: the pass body is installed on the node builder first, then
	// the node builder commits the pass node.
	defer nb.finish()
	defer pb.finish()
	record(pb)
}

func (b *PassBuilder) finish() {
	pass := b.pass
	b.pass = Pass{}
	b.setPass(&pass)
}

// Push appends an arbitrary command to the pass body.
func (b *PassBuilder) Push(cmd PassCommand) {
	b.pass.Push(cmd)
}

// AddRenderPass records a render pass inside the pass body. The recorded
// render pass is appended to the body when the callback returns.
func (b *PassBuilder) AddRenderPass(name string, record func(*RenderPassBuilder)) {
	rb := &RenderPassBuilder{PassBuilder: b, renderPass: &RenderPass{}}
	rb.renderPass.setLabel(name)
	defer rb.finish()
	record(rb)
}

// AddComputePass records a compute pass inside the pass body.
func (b *PassBuilder) AddComputePass(name string, record func(*ComputePassBuilder)) {
	cb := &ComputePassBuilder{PassBuilder: b, computePass: &ComputePass{}}
	cb.computePass.setLabel(name)
	defer cb.finish()
	record(cb)
}

// RenderPassBuilder extends PassBuilder with an in-progress render pass.
// Reads and writes delegate to the enclosing pass; the Set*/Draw*
// methods record deferred commands executed against the live GPU render
// pass.
type RenderPassBuilder struct {
	*PassBuilder
	renderPass *RenderPass
}

func (b *RenderPassBuilder) finish() {
	b.Push(b.renderPass)
	b.renderPass = &RenderPass{}
}

// AddColorAttachment appends a color attachment to the render pass.
func (b *RenderPassBuilder) AddColorAttachment(a TransientColorAttachment) *RenderPassBuilder {
	b.renderPass.addColorAttachment(&a)
	return b
}

// SetDepthStencilAttachment installs the depth/stencil attachment.
func (b *RenderPassBuilder) SetDepthStencilAttachment(a TransientDepthStencilAttachment) *RenderPassBuilder {
	b.renderPass.setDepthStencilAttachment(&a)
	return b
}

// SetRenderPipeline records a pipeline bind.
func (b *RenderPassBuilder) SetRenderPipeline(p gpu.RenderPipeline) *RenderPassBuilder {
	b.renderPass.push(&setRenderPipelineCommand{pipeline: p})
	return b
}

// SetVertexBuffer records a vertex buffer bind of the byte range
// offset..offset+size at the given slot.
func (b *RenderPassBuilder) SetVertexBuffer(slot uint32, ref BufferRef, offset, size uint64) *RenderPassBuilder {
	b.renderPass.push(&setVertexBufferCommand{slot: slot, buffer: ref, offset: offset, size: size})
	return b
}

// SetIndexBuffer records an index buffer bind of the byte range
// offset..offset+size.
func (b *RenderPassBuilder) SetIndexBuffer(ref BufferRef, format gputypes.IndexFormat, offset, size uint64) *RenderPassBuilder {
	b.renderPass.push(&setIndexBufferCommand{buffer: ref, format: format, offset: offset, size: size})
	return b
}

// SetBindGroup records a bind-group bind. The group is materialised at
// execution time from the live resource table.
func (b *RenderPassBuilder) SetBindGroup(index uint32, group TransientBindGroup, offsets []uint32) *RenderPassBuilder {
	b.renderPass.push(&setBindGroupCommand{index: index, group: group, offsets: offsets})
	return b
}

// Draw records a draw.
func (b *RenderPassBuilder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) *RenderPassBuilder {
	b.renderPass.push(&drawCommand{
		vertexCount:   vertexCount,
		instanceCount: instanceCount,
		firstVertex:   firstVertex,
		firstInstance: firstInstance,
	})
	return b
}

// DrawIndexed records an indexed draw.
func (b *RenderPassBuilder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) *RenderPassBuilder {
	b.renderPass.push(&drawIndexedCommand{
		indexCount:    indexCount,
		instanceCount: instanceCount,
		firstIndex:    firstIndex,
		baseVertex:    baseVertex,
		firstInstance: firstInstance,
	})
	return b
}

// ComputePassBuilder extends PassBuilder with an in-progress compute
// pass.
type ComputePassBuilder struct {
	*PassBuilder
	computePass *ComputePass
}

func (b *ComputePassBuilder) finish() {
	b.Push(b.computePass)
	b.computePass = &ComputePass{}
}

// SetComputePipeline records a pipeline bind.
func (b *ComputePassBuilder) SetComputePipeline(p gpu.ComputePipeline) *ComputePassBuilder {
	b.computePass.push(&setComputePipelineCommand{pipeline: p})
	return b
}

// SetBindGroup records a bind-group bind.
func (b *ComputePassBuilder) SetBindGroup(index uint32, group TransientBindGroup, offsets []uint32) *ComputePassBuilder {
	b.computePass.push(&setComputeBindGroupCommand{index: index, group: group, offsets: offsets})
	return b
}

// Dispatch records a workgroup dispatch.
func (b *ComputePassBuilder) Dispatch(x, y, z uint32) *ComputePassBuilder {
	b.computePass.push(&dispatchCommand{x: x, y: y, z: z})
	return b
}
