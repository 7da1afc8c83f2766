package framegraph

import (
	"fmt"

	"github.com/gogpu/framegraph/gpu"
)

// TransientBindGroupBuffer binds the byte range Offset..Offset+Size of a
// transient buffer. Size 0 binds to the end of the buffer.
type TransientBindGroupBuffer struct {
	Buffer BufferRef
	Offset uint64
	Size   uint64
}

// TransientBindGroupTextureView binds a view of a transient texture,
// created on demand at materialisation time.
type TransientBindGroupTextureView struct {
	Texture  TextureRef
	ViewDesc gpu.TextureViewDescriptor
}

// TransientBindGroupEntry is one binding slot of a transient bind group.
// Exactly one of Buffer, Sampler, TextureView or TextureViewArray must
// be set.
type TransientBindGroupEntry struct {
	Binding uint32

	Buffer           *TransientBindGroupBuffer
	Sampler          gpu.Sampler
	TextureView      *TransientBindGroupTextureView
	TextureViewArray []TransientBindGroupTextureView
}

// resolve turns the transient entry into a live gpu.BindGroupEntry.
func (e *TransientBindGroupEntry) resolve(ctx *PassContext) (gpu.BindGroupEntry, error) {
	out := gpu.BindGroupEntry{Binding: e.Binding}

	switch {
	case e.Buffer != nil:
		buf := ctx.GetBuffer(e.Buffer.Buffer)
		out.Buffer = buf.Resource
		out.Offset = e.Buffer.Offset
		out.Size = e.Buffer.Size
	case e.Sampler != nil:
		out.Sampler = e.Sampler
	case e.TextureView != nil:
		tex := ctx.GetTexture(e.TextureView.Texture)
		view, err := tex.Resource.CreateView(&e.TextureView.ViewDesc)
		if err != nil {
			return out, fmt.Errorf("framegraph: bind group view of %q: %w", tex.Desc.Label, err)
		}
		out.TextureView = view
	case len(e.TextureViewArray) > 0:
		views := make([]gpu.TextureView, 0, len(e.TextureViewArray))
		for i := range e.TextureViewArray {
			b := &e.TextureViewArray[i]
			tex := ctx.GetTexture(b.Texture)
			view, err := tex.Resource.CreateView(&b.ViewDesc)
			if err != nil {
				return out, fmt.Errorf("framegraph: bind group view of %q: %w", tex.Desc.Label, err)
			}
			views = append(views, view)
		}
		out.TextureViews = views
	default:
		return out, fmt.Errorf("framegraph: bind group entry %d has no resource", e.Binding)
	}
	return out, nil
}

// TransientBindGroup describes a bind group over transient resources.
// Bind groups are materialised per execution and never cached: the
// underlying resources may be different GPU objects every frame.
type TransientBindGroup struct {
	Label   string
	Layout  gpu.BindGroupLayout
	Entries []TransientBindGroupEntry
}

// createBindGroup walks the entries, resolves each against the live
// resource table and asks the device for the bind group.
func (g *TransientBindGroup) createBindGroup(ctx *PassContext) (gpu.BindGroup, error) {
	entries := make([]gpu.BindGroupEntry, 0, len(g.Entries))
	for i := range g.Entries {
		entry, err := g.Entries[i].resolve(ctx)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	bg, err := ctx.device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:   g.Label,
		Layout:  g.Layout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("framegraph: create bind group %q: %w", g.Label, err)
	}
	return bg, nil
}
