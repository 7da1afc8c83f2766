package framegraph

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph/gpu"
)

// In-memory GPU collaborators recording every call, shared by the
// package tests.

var errFakeDevice = errors.New("fake device failure")

type fakeDevice struct {
	buffersCreated  int
	texturesCreated int
	samplersCreated int
	bindGroups      int
	encoders        []*fakeEncoder

	failBuffers  bool
	failTextures bool
}

func (d *fakeDevice) CreateBuffer(desc *gpu.BufferDescriptor) (gpu.Buffer, error) {
	if d.failBuffers {
		return nil, errFakeDevice
	}
	d.buffersCreated++
	return &fakeBuffer{desc: *desc}, nil
}

func (d *fakeDevice) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	if d.failTextures {
		return nil, errFakeDevice
	}
	d.texturesCreated++
	return &fakeTexture{desc: desc.Clone()}, nil
}

func (d *fakeDevice) CreateSampler(desc *gpu.SamplerDescriptor) (gpu.Sampler, error) {
	d.samplersCreated++
	return &fakeSampler{}, nil
}

func (d *fakeDevice) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	d.bindGroups++
	return &fakeBindGroup{label: desc.Label, entries: len(desc.Entries)}, nil
}

func (d *fakeDevice) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	enc := &fakeEncoder{label: label}
	d.encoders = append(d.encoders, enc)
	return enc, nil
}

type fakeBuffer struct {
	desc     gpu.BufferDescriptor
	released bool
}

func (b *fakeBuffer) Size() uint64                { return b.desc.Size }
func (b *fakeBuffer) Usage() gputypes.BufferUsage { return b.desc.Usage }
func (b *fakeBuffer) Label() string               { return b.desc.Label }
func (b *fakeBuffer) Release()                    { b.released = true }

type fakeTexture struct {
	desc     gpu.TextureDescriptor
	views    int
	released bool
}

func (t *fakeTexture) Format() gputypes.TextureFormat { return t.desc.Format }

func (t *fakeTexture) CreateView(desc *gpu.TextureViewDescriptor) (gpu.TextureView, error) {
	t.views++
	return &fakeView{}, nil
}

func (t *fakeTexture) Release() { t.released = true }

type fakeView struct{ released bool }

func (v *fakeView) Release() { v.released = true }

type fakeSampler struct{ released bool }

func (s *fakeSampler) Release() { s.released = true }

type fakeBindGroup struct {
	label    string
	entries  int
	released bool
}

func (g *fakeBindGroup) Release() { g.released = true }

type fakeBindGroupLayout struct{}

func (l *fakeBindGroupLayout) Release() {}

type fakeCommandBuffer struct{ label string }

// fakeEncoder records operations in order into ops.
type fakeEncoder struct {
	label    string
	ops      []string
	finished bool
}

func (e *fakeEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) (gpu.RenderPassEncoder, error) {
	e.ops = append(e.ops, fmt.Sprintf("beginRenderPass %q colors=%d depth=%v",
		desc.Label, len(desc.ColorAttachments), desc.DepthStencilAttachment != nil))
	return &fakeRenderPass{enc: e}, nil
}

func (e *fakeEncoder) BeginComputePass(label string) (gpu.ComputePassEncoder, error) {
	e.ops = append(e.ops, fmt.Sprintf("beginComputePass %q", label))
	return &fakeComputePass{enc: e}, nil
}

func (e *fakeEncoder) Finish() (gpu.CommandBuffer, error) {
	e.finished = true
	return &fakeCommandBuffer{label: e.label}, nil
}

type fakeRenderPass struct{ enc *fakeEncoder }

func (p *fakeRenderPass) SetPipeline(pipeline gpu.RenderPipeline) {
	p.enc.ops = append(p.enc.ops, "setPipeline")
}

func (p *fakeRenderPass) SetBindGroup(index uint32, group gpu.BindGroup, offsets []uint32) {
	p.enc.ops = append(p.enc.ops, fmt.Sprintf("setBindGroup %d", index))
}

func (p *fakeRenderPass) SetVertexBuffer(slot uint32, buffer gpu.Buffer, offset, size uint64) {
	p.enc.ops = append(p.enc.ops, fmt.Sprintf("setVertexBuffer slot=%d label=%q offset=%d size=%d",
		slot, buffer.Label(), offset, size))
}

func (p *fakeRenderPass) SetIndexBuffer(buffer gpu.Buffer, format gputypes.IndexFormat, offset, size uint64) {
	p.enc.ops = append(p.enc.ops, fmt.Sprintf("setIndexBuffer label=%q offset=%d size=%d",
		buffer.Label(), offset, size))
}

func (p *fakeRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.enc.ops = append(p.enc.ops, fmt.Sprintf("draw %d %d %d %d",
		vertexCount, instanceCount, firstVertex, firstInstance))
}

func (p *fakeRenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.enc.ops = append(p.enc.ops, fmt.Sprintf("drawIndexed %d %d %d %d %d",
		indexCount, instanceCount, firstIndex, baseVertex, firstInstance))
}

func (p *fakeRenderPass) End() error {
	p.enc.ops = append(p.enc.ops, "endRenderPass")
	return nil
}

type fakeComputePass struct{ enc *fakeEncoder }

func (p *fakeComputePass) SetPipeline(pipeline gpu.ComputePipeline) {
	p.enc.ops = append(p.enc.ops, "setComputePipeline")
}

func (p *fakeComputePass) SetBindGroup(index uint32, group gpu.BindGroup, offsets []uint32) {
	p.enc.ops = append(p.enc.ops, fmt.Sprintf("setComputeBindGroup %d", index))
}

func (p *fakeComputePass) Dispatch(x, y, z uint32) {
	p.enc.ops = append(p.enc.ops, fmt.Sprintf("dispatch %d %d %d", x, y, z))
}

func (p *fakeComputePass) End() error {
	p.enc.ops = append(p.enc.ops, "endComputePass")
	return nil
}

var (
	_ gpu.Device             = (*fakeDevice)(nil)
	_ gpu.CommandEncoder     = (*fakeEncoder)(nil)
	_ gpu.RenderPassEncoder  = (*fakeRenderPass)(nil)
	_ gpu.ComputePassEncoder = (*fakeComputePass)(nil)
)

// test helpers

func testBufferDesc(label string, size uint64) gpu.BufferDescriptor {
	return gpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageVertex,
	}
}

func testTextureDesc(label string, width, height uint32) gpu.TextureDescriptor {
	return gpu.TextureDescriptor{
		Label:         label,
		Size:          gputypes.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	}
}
