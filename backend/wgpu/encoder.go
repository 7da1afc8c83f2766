package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/framegraph/gpu"
)

// commandEncoder implements gpu.CommandEncoder over *wgpu.CommandEncoder.
type commandEncoder struct {
	enc *wgpu.CommandEncoder
}

func (e *commandEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) (gpu.RenderPassEncoder, error) {
	wdesc := wgpu.RenderPassDescriptor{Label: desc.Label}

	for _, ca := range desc.ColorAttachments {
		wca := wgpu.RenderPassColorAttachment{
			LoadOp:     ca.LoadOp,
			StoreOp:    ca.StoreOp,
			ClearValue: ca.ClearValue,
		}
		if ca.View != nil {
			view, ok := ca.View.(*wgpu.TextureView)
			if !ok {
				return nil, fmt.Errorf("wgpu: color attachment view is %T, want *wgpu.TextureView", ca.View)
			}
			wca.View = view
		}
		if ca.ResolveTarget != nil {
			resolve, ok := ca.ResolveTarget.(*wgpu.TextureView)
			if !ok {
				return nil, fmt.Errorf("wgpu: resolve target is %T, want *wgpu.TextureView", ca.ResolveTarget)
			}
			wca.ResolveTarget = resolve
		}
		wdesc.ColorAttachments = append(wdesc.ColorAttachments, wca)
	}

	if ds := desc.DepthStencilAttachment; ds != nil {
		wds := &wgpu.RenderPassDepthStencilAttachment{
			DepthLoadOp:       ds.DepthLoadOp,
			DepthStoreOp:      ds.DepthStoreOp,
			DepthClearValue:   ds.DepthClearValue,
			DepthReadOnly:     ds.DepthReadOnly,
			StencilLoadOp:     ds.StencilLoadOp,
			StencilStoreOp:    ds.StencilStoreOp,
			StencilClearValue: ds.StencilClearValue,
			StencilReadOnly:   ds.StencilReadOnly,
		}
		if ds.View != nil {
			view, ok := ds.View.(*wgpu.TextureView)
			if !ok {
				return nil, fmt.Errorf("wgpu: depth attachment view is %T, want *wgpu.TextureView", ds.View)
			}
			wds.View = view
		}
		wdesc.DepthStencilAttachment = wds
	}

	pass, err := e.enc.BeginRenderPass(&wdesc)
	if err != nil {
		return nil, err
	}
	return &renderPassEncoder{pass: pass}, nil
}

func (e *commandEncoder) BeginComputePass(label string) (gpu.ComputePassEncoder, error) {
	pass, err := e.enc.BeginComputePass(&wgpu.ComputePassDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &computePassEncoder{pass: pass}, nil
}

func (e *commandEncoder) Finish() (gpu.CommandBuffer, error) {
	return e.enc.Finish()
}

// renderPassEncoder implements gpu.RenderPassEncoder over
// *wgpu.RenderPassEncoder.
type renderPassEncoder struct {
	pass *wgpu.RenderPassEncoder
}

func (p *renderPassEncoder) SetPipeline(pipeline gpu.RenderPipeline) {
	wp, ok := pipeline.(*wgpu.RenderPipeline)
	if !ok {
		panic(fmt.Sprintf("wgpu: render pipeline is %T, want *wgpu.RenderPipeline", pipeline))
	}
	p.pass.SetPipeline(wp)
}

func (p *renderPassEncoder) SetBindGroup(index uint32, group gpu.BindGroup, offsets []uint32) {
	bg, ok := group.(*wgpu.BindGroup)
	if !ok {
		panic(fmt.Sprintf("wgpu: bind group is %T, want *wgpu.BindGroup", group))
	}
	p.pass.SetBindGroup(index, bg, offsets)
}

func (p *renderPassEncoder) SetVertexBuffer(slot uint32, buffer gpu.Buffer, offset, size uint64) {
	buf, ok := buffer.(*wgpu.Buffer)
	if !ok {
		panic(fmt.Sprintf("wgpu: vertex buffer is %T, want *wgpu.Buffer", buffer))
	}
	// wgpu's SetVertexBuffer has no size parameter: it binds from offset
	// to the end of the buffer. Silently ignoring a shorter range would
	// record wrong GPU state, so reject it instead.
	if !bindsToEnd(offset, size, buf.Size()) {
		panic(fmt.Sprintf("wgpu: %v: vertex buffer %q offset=%d size=%d (buffer size %d)",
			ErrUnsupportedRange, buf.Label(), offset, size, buf.Size()))
	}
	p.pass.SetVertexBuffer(slot, buf, offset)
}

func (p *renderPassEncoder) SetIndexBuffer(buffer gpu.Buffer, format gputypes.IndexFormat, offset, size uint64) {
	buf, ok := buffer.(*wgpu.Buffer)
	if !ok {
		panic(fmt.Sprintf("wgpu: index buffer is %T, want *wgpu.Buffer", buffer))
	}
	if !bindsToEnd(offset, size, buf.Size()) {
		panic(fmt.Sprintf("wgpu: %v: index buffer %q offset=%d size=%d (buffer size %d)",
			ErrUnsupportedRange, buf.Label(), offset, size, buf.Size()))
	}
	p.pass.SetIndexBuffer(buf, format, offset)
}

// bindsToEnd reports whether offset..offset+size covers the remainder of
// a buffer of the given size. Size 0 requests offset-to-end explicitly;
// a size that reaches exactly the end of the buffer is equivalent.
func bindsToEnd(offset, size, bufferSize uint64) bool {
	return size == 0 || offset+size == bufferSize
}

func (p *renderPassEncoder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *renderPassEncoder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *renderPassEncoder) End() error {
	return p.pass.End()
}

// computePassEncoder implements gpu.ComputePassEncoder over
// *wgpu.ComputePassEncoder.
type computePassEncoder struct {
	pass *wgpu.ComputePassEncoder
}

func (p *computePassEncoder) SetPipeline(pipeline gpu.ComputePipeline) {
	wp, ok := pipeline.(*wgpu.ComputePipeline)
	if !ok {
		panic(fmt.Sprintf("wgpu: compute pipeline is %T, want *wgpu.ComputePipeline", pipeline))
	}
	p.pass.SetPipeline(wp)
}

func (p *computePassEncoder) SetBindGroup(index uint32, group gpu.BindGroup, offsets []uint32) {
	bg, ok := group.(*wgpu.BindGroup)
	if !ok {
		panic(fmt.Sprintf("wgpu: bind group is %T, want *wgpu.BindGroup", group))
	}
	p.pass.SetBindGroup(index, bg, offsets)
}

func (p *computePassEncoder) Dispatch(x, y, z uint32) {
	p.pass.Dispatch(x, y, z)
}

func (p *computePassEncoder) End() error {
	return p.pass.End()
}

var (
	_ gpu.CommandEncoder     = (*commandEncoder)(nil)
	_ gpu.RenderPassEncoder  = (*renderPassEncoder)(nil)
	_ gpu.ComputePassEncoder = (*computePassEncoder)(nil)
)
