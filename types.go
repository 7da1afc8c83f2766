package framegraph

import "github.com/gogpu/framegraph/gpu"

// Descriptor aliases, re-exported for convenience so that typical
// client code only imports this package and gputypes.

// BufferDescriptor describes buffer creation parameters.
type BufferDescriptor = gpu.BufferDescriptor

// TextureDescriptor describes texture creation parameters.
type TextureDescriptor = gpu.TextureDescriptor

// TextureViewDescriptor describes texture view creation parameters.
type TextureViewDescriptor = gpu.TextureViewDescriptor

// SamplerDescriptor describes sampler creation parameters.
type SamplerDescriptor = gpu.SamplerDescriptor
