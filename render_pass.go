package framegraph

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph/gpu"
)

// TransientColorAttachment is a color attachment whose views resolve
// against the resource table at execution time.
type TransientColorAttachment struct {
	View          TransientTextureView
	ResolveTarget *TransientTextureView
	LoadOp        gputypes.LoadOp
	StoreOp       gputypes.StoreOp
	ClearValue    gputypes.Color
}

func (a *TransientColorAttachment) materialize(ctx *PassContext) (gpu.RenderPassColorAttachment, error) {
	view, err := a.View.createView(ctx)
	if err != nil {
		return gpu.RenderPassColorAttachment{}, err
	}
	out := gpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     a.LoadOp,
		StoreOp:    a.StoreOp,
		ClearValue: a.ClearValue,
	}
	if a.ResolveTarget != nil {
		resolve, err := a.ResolveTarget.createView(ctx)
		if err != nil {
			return gpu.RenderPassColorAttachment{}, err
		}
		out.ResolveTarget = resolve
	}
	return out, nil
}

// TransientDepthStencilAttachment is the depth/stencil analogue of
// TransientColorAttachment.
type TransientDepthStencilAttachment struct {
	View              TransientTextureView
	DepthLoadOp       gputypes.LoadOp
	DepthStoreOp      gputypes.StoreOp
	DepthClearValue   float32
	DepthReadOnly     bool
	StencilLoadOp     gputypes.LoadOp
	StencilStoreOp    gputypes.StoreOp
	StencilClearValue uint32
	StencilReadOnly   bool
}

func (a *TransientDepthStencilAttachment) materialize(ctx *PassContext) (*gpu.RenderPassDepthStencilAttachment, error) {
	view, err := a.View.createView(ctx)
	if err != nil {
		return nil, err
	}
	return &gpu.RenderPassDepthStencilAttachment{
		View:              view,
		DepthLoadOp:       a.DepthLoadOp,
		DepthStoreOp:      a.DepthStoreOp,
		DepthClearValue:   a.DepthClearValue,
		DepthReadOnly:     a.DepthReadOnly,
		StencilLoadOp:     a.StencilLoadOp,
		StencilStoreOp:    a.StencilStoreOp,
		StencilClearValue: a.StencilClearValue,
		StencilReadOnly:   a.StencilReadOnly,
	}, nil
}

// RenderPassCommand is one deferred command recorded into a render pass.
type RenderPassCommand interface {
	Execute(ctx *RenderPassContext)
}

// RenderPassContext wraps the live GPU render pass together with the
// enclosing pass context during command execution.
type RenderPassContext struct {
	pass gpu.RenderPassEncoder
	ctx  *PassContext
}

// SetRenderPipeline sets the active pipeline on the live render pass.
func (c *RenderPassContext) SetRenderPipeline(p gpu.RenderPipeline) {
	c.pass.SetPipeline(p)
}

// SetVertexBuffer resolves the reference and binds the byte range
// offset..offset+size to the given slot. Size 0 binds to the end of the
// buffer; backends that cannot bind a shorter range reject the call (see
// gpu.RenderPassEncoder).
func (c *RenderPassContext) SetVertexBuffer(slot uint32, ref BufferRef, offset, size uint64) {
	buf := c.ctx.GetBuffer(ref)
	c.pass.SetVertexBuffer(slot, buf.Resource, offset, size)
}

// SetIndexBuffer resolves the reference and binds the byte range
// offset..offset+size as the index buffer, under the same sub-range rule
// as SetVertexBuffer.
func (c *RenderPassContext) SetIndexBuffer(ref BufferRef, format gputypes.IndexFormat, offset, size uint64) {
	buf := c.ctx.GetBuffer(ref)
	c.pass.SetIndexBuffer(buf.Resource, format, offset, size)
}

// SetBindGroup materialises the transient bind group and binds it.
func (c *RenderPassContext) SetBindGroup(index uint32, group *TransientBindGroup, offsets []uint32) {
	bg, err := group.createBindGroup(c.ctx)
	if err != nil {
		// Bind group creation fails on device errors or on an entry
		// with no resource; there is no way to continue the pass
		// without the bindings.
		panic(fmt.Sprintf("framegraph: materialize bind group %q: %v", group.Label, err))
	}
	c.pass.SetBindGroup(index, bg, offsets)
}

// Draw draws primitives.
func (c *RenderPassContext) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	c.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

// DrawIndexed draws indexed primitives.
func (c *RenderPassContext) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	c.pass.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

// RenderPass is a pass command holding a transient render-pass
// descriptor and an ordered list of render-pass commands. On execution
// it materialises the attachments, begins a GPU render pass and replays
// the commands in recording order.
type RenderPass struct {
	label           string
	colorAttachment []*TransientColorAttachment
	depthStencil    *TransientDepthStencilAttachment
	commands        []RenderPassCommand
}

// Label returns the render pass label.
func (r *RenderPass) Label() string { return r.label }

// setLabel names the render pass for debugging.
func (r *RenderPass) setLabel(label string) { r.label = label }

// addColorAttachment appends a color attachment.
func (r *RenderPass) addColorAttachment(a *TransientColorAttachment) {
	r.colorAttachment = append(r.colorAttachment, a)
}

// setDepthStencilAttachment installs the depth/stencil attachment.
func (r *RenderPass) setDepthStencilAttachment(a *TransientDepthStencilAttachment) {
	r.depthStencil = a
}

// push appends a command to the render pass body.
func (r *RenderPass) push(cmd RenderPassCommand) {
	r.commands = append(r.commands, cmd)
}

// Execute implements PassCommand.
func (r *RenderPass) Execute(ctx *PassContext) error {
	desc := gpu.RenderPassDescriptor{Label: r.label}
	for _, a := range r.colorAttachment {
		att, err := a.materialize(ctx)
		if err != nil {
			return err
		}
		desc.ColorAttachments = append(desc.ColorAttachments, att)
	}
	if r.depthStencil != nil {
		ds, err := r.depthStencil.materialize(ctx)
		if err != nil {
			return err
		}
		desc.DepthStencilAttachment = ds
	}

	pass, err := ctx.encoder.BeginRenderPass(&desc)
	if err != nil {
		return fmt.Errorf("framegraph: begin render pass %q: %w", r.label, err)
	}

	rctx := &RenderPassContext{pass: pass, ctx: ctx}
	for _, cmd := range r.commands {
		cmd.Execute(rctx)
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("framegraph: end render pass %q: %w", r.label, err)
	}
	return nil
}
