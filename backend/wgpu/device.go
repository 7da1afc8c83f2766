package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu"

	"github.com/gogpu/framegraph/gpu"
)

// Adapter errors.
var (
	// ErrNilDevice is returned when NewDevice is called with nil.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrUnsupportedBinding is returned for bind group entries the wgpu
	// backend cannot express (texture view arrays).
	ErrUnsupportedBinding = errors.New("wgpu: unsupported bind group entry")

	// ErrUnsupportedRange names the rejection of vertex/index buffer
	// binds that cover less than the remainder of the buffer; wgpu's
	// render pass encoder can only bind from an offset to the end.
	ErrUnsupportedRange = errors.New("wgpu: sub-range buffer bind not supported")
)

// Device implements gpu.Device on top of a *wgpu.Device.
type Device struct {
	dev *wgpu.Device
}

// NewDevice wraps a wgpu device for use with the frame graph. The caller
// keeps ownership of the device and releases it after the frame graph is
// done with it.
func NewDevice(dev *wgpu.Device) (*Device, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	return &Device{dev: dev}, nil
}

// Raw returns the underlying wgpu device.
func (d *Device) Raw() *wgpu.Device { return d.dev }

// CreateBuffer implements gpu.Device.
func (d *Device) CreateBuffer(desc *gpu.BufferDescriptor) (gpu.Buffer, error) {
	buf, err := d.dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            desc.Label,
		Size:             desc.Size,
		Usage:            desc.Usage,
		MappedAtCreation: desc.MappedAtCreation,
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	tex, err := d.dev.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: desc.Size.DepthOrArrayLayers,
		},
		MipLevelCount: desc.MipLevelCount,
		SampleCount:   desc.SampleCount,
		Dimension:     desc.Dimension,
		Format:        desc.Format,
		Usage:         desc.Usage,
		ViewFormats:   desc.ViewFormats,
	})
	if err != nil {
		return nil, err
	}
	return &texture{tex: tex, dev: d.dev}, nil
}

// CreateSampler implements gpu.Device.
func (d *Device) CreateSampler(desc *gpu.SamplerDescriptor) (gpu.Sampler, error) {
	s, err := d.dev.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: desc.AddressModeW,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
		LodMinClamp:  desc.LodMinClamp,
		LodMaxClamp:  desc.LodMaxClamp,
		Compare:      desc.Compare,
		Anisotropy:   desc.Anisotropy,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateBindGroup implements gpu.Device.
func (d *Device) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	layout, ok := desc.Layout.(*wgpu.BindGroupLayout)
	if !ok {
		return nil, fmt.Errorf("wgpu: bind group %q: layout is %T, want *wgpu.BindGroupLayout", desc.Label, desc.Layout)
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(desc.Entries))
	for _, e := range desc.Entries {
		entry, err := convertBindGroupEntry(e)
		if err != nil {
			return nil, fmt.Errorf("wgpu: bind group %q: %w", desc.Label, err)
		}
		entries = append(entries, entry)
	}

	bg, err := d.dev.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return bg, nil
}

// CreateCommandEncoder implements gpu.Device.
func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	enc, err := d.dev.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &commandEncoder{enc: enc}, nil
}

func convertBindGroupEntry(e gpu.BindGroupEntry) (wgpu.BindGroupEntry, error) {
	out := wgpu.BindGroupEntry{Binding: e.Binding}

	switch {
	case e.Buffer != nil:
		buf, ok := e.Buffer.(*wgpu.Buffer)
		if !ok {
			return out, fmt.Errorf("binding %d: buffer is %T, want *wgpu.Buffer", e.Binding, e.Buffer)
		}
		out.Buffer = buf
		out.Offset = e.Offset
		out.Size = e.Size
	case e.Sampler != nil:
		s, ok := e.Sampler.(*wgpu.Sampler)
		if !ok {
			return out, fmt.Errorf("binding %d: sampler is %T, want *wgpu.Sampler", e.Binding, e.Sampler)
		}
		out.Sampler = s
	case e.TextureView != nil:
		v, ok := e.TextureView.(*wgpu.TextureView)
		if !ok {
			return out, fmt.Errorf("binding %d: view is %T, want *wgpu.TextureView", e.Binding, e.TextureView)
		}
		out.TextureView = v
	case len(e.TextureViews) > 0:
		// wgpu's BindGroupEntry binds a single view per slot.
		return out, fmt.Errorf("%w: binding %d is a texture view array", ErrUnsupportedBinding, e.Binding)
	}
	return out, nil
}

// texture wraps a wgpu texture together with its device so views can be
// created through the device API.
type texture struct {
	tex *wgpu.Texture
	dev *wgpu.Device
}

func (t *texture) Format() wgpu.TextureFormat { return t.tex.Format() }

func (t *texture) CreateView(desc *gpu.TextureViewDescriptor) (gpu.TextureView, error) {
	var wdesc *wgpu.TextureViewDescriptor
	if desc != nil {
		wdesc = &wgpu.TextureViewDescriptor{
			Label:           desc.Label,
			Format:          desc.Format,
			Dimension:       desc.Dimension,
			Aspect:          desc.Aspect,
			BaseMipLevel:    desc.BaseMipLevel,
			MipLevelCount:   desc.MipLevelCount,
			BaseArrayLayer:  desc.BaseArrayLayer,
			ArrayLayerCount: desc.ArrayLayerCount,
		}
	}
	view, err := t.dev.CreateTextureView(t.tex, wdesc)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (t *texture) Release() { t.tex.Release() }

// Raw returns the underlying wgpu texture of a frame-graph texture
// created by this backend.
func (t *texture) Raw() *wgpu.Texture { return t.tex }

// Unwrap converts command buffers returned by FrameGraph.Execute back to
// wgpu command buffers for queue submission. Buffers of a different
// backend are skipped.
func Unwrap(buffers []gpu.CommandBuffer) []*wgpu.CommandBuffer {
	out := make([]*wgpu.CommandBuffer, 0, len(buffers))
	for _, cb := range buffers {
		if wcb, ok := cb.(*wgpu.CommandBuffer); ok {
			out = append(out, wcb)
		}
	}
	return out
}

// Interface conformance checks.
var (
	_ gpu.Device      = (*Device)(nil)
	_ gpu.Buffer      = (*wgpu.Buffer)(nil)
	_ gpu.Texture     = (*texture)(nil)
	_ gpu.TextureView = (*wgpu.TextureView)(nil)
	_ gpu.Sampler     = (*wgpu.Sampler)(nil)
	_ gpu.BindGroup   = (*wgpu.BindGroup)(nil)
)
