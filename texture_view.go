package framegraph

import (
	"fmt"

	"github.com/gogpu/framegraph/gpu"
)

// TransientTextureView names a view into a transient texture. The view
// itself is created at execution time, once the texture is live in the
// resource table.
type TransientTextureView struct {
	Texture TextureRef
	Desc    gpu.TextureViewDescriptor
}

// createView resolves the texture through the resource table and asks
// the live texture for the view.
func (v *TransientTextureView) createView(ctx *PassContext) (gpu.TextureView, error) {
	tex := ctx.GetTexture(v.Texture)
	view, err := tex.Resource.CreateView(&v.Desc)
	if err != nil {
		return nil, fmt.Errorf("framegraph: create view of %q: %w", tex.Desc.Label, err)
	}
	return view, nil
}
