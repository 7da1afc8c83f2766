package framegraph

import (
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph/gpu"
)

// textureKey is the comparable pooling key for texture descriptors.
// TextureDescriptor itself is not comparable because of the ViewFormats
// slice, so the formats are folded into a string.
type textureKey struct {
	label         string
	size          gputypes.Extent3D
	mipLevelCount uint32
	sampleCount   uint32
	dimension     gputypes.TextureDimension
	format        gputypes.TextureFormat
	usage         gputypes.TextureUsage
	viewFormats   string
}

func textureKeyFor(desc *gpu.TextureDescriptor) textureKey {
	key := textureKey{
		label:         desc.Label,
		size:          desc.Size,
		mipLevelCount: desc.MipLevelCount,
		sampleCount:   desc.SampleCount,
		dimension:     desc.Dimension,
		format:        desc.Format,
		usage:         desc.Usage,
	}
	if len(desc.ViewFormats) > 0 {
		var sb strings.Builder
		for _, f := range desc.ViewFormats {
			sb.WriteString(strconv.FormatUint(uint64(f), 10))
			sb.WriteByte(',')
		}
		key.viewFormats = sb.String()
	}
	return key
}

// TransientResourceCache pools free engine-owned GPU resources across
// frames, keyed by descriptor. Two resources are interchangeable iff
// their descriptors compare equal; labels participate on purpose so
// debug names stay stable on reuse.
//
// Each descriptor maps to a LIFO stack: InsertBuffer then GetBuffer of
// the same descriptor yields the same underlying resource. The cache
// never allocates resources; it only holds what the resource table
// returns to it, and destroys them only when Release is called.
//
// Not safe for concurrent use.
type TransientResourceCache struct {
	buffers  map[gpu.BufferDescriptor][]*TransientBuffer
	textures map[textureKey][]*TransientTexture
}

// NewTransientResourceCache creates an empty cache.
func NewTransientResourceCache() *TransientResourceCache {
	return &TransientResourceCache{
		buffers:  make(map[gpu.BufferDescriptor][]*TransientBuffer),
		textures: make(map[textureKey][]*TransientTexture),
	}
}

// GetBuffer pops the most recently inserted free buffer of the given
// descriptor, or returns false if none is pooled.
func (c *TransientResourceCache) GetBuffer(desc *gpu.BufferDescriptor) (*TransientBuffer, bool) {
	stack := c.buffers[*desc]
	if len(stack) == 0 {
		return nil, false
	}
	buf := stack[len(stack)-1]
	c.buffers[*desc] = stack[:len(stack)-1]
	return buf, true
}

// InsertBuffer returns a free owned buffer to the pool.
func (c *TransientResourceCache) InsertBuffer(buf *TransientBuffer) {
	c.buffers[buf.Desc] = append(c.buffers[buf.Desc], buf)
}

// GetTexture pops the most recently inserted free texture of the given
// descriptor, or returns false if none is pooled.
func (c *TransientResourceCache) GetTexture(desc *gpu.TextureDescriptor) (*TransientTexture, bool) {
	key := textureKeyFor(desc)
	stack := c.textures[key]
	if len(stack) == 0 {
		return nil, false
	}
	tex := stack[len(stack)-1]
	c.textures[key] = stack[:len(stack)-1]
	return tex, true
}

// InsertTexture returns a free owned texture to the pool.
func (c *TransientResourceCache) InsertTexture(tex *TransientTexture) {
	key := textureKeyFor(&tex.Desc)
	c.textures[key] = append(c.textures[key], tex)
}

// BufferCount returns the number of pooled free buffers.
func (c *TransientResourceCache) BufferCount() int {
	n := 0
	for _, stack := range c.buffers {
		n += len(stack)
	}
	return n
}

// TextureCount returns the number of pooled free textures.
func (c *TransientResourceCache) TextureCount() int {
	n := 0
	for _, stack := range c.textures {
		n += len(stack)
	}
	return n
}

// Release destroys every pooled resource and empties the cache. Call it
// when tearing down the device the resources were created on.
func (c *TransientResourceCache) Release() {
	for _, stack := range c.buffers {
		for _, buf := range stack {
			buf.Resource.Release()
		}
	}
	for _, stack := range c.textures {
		for _, tex := range stack {
			tex.Resource.Release()
		}
	}
	c.buffers = make(map[gpu.BufferDescriptor][]*TransientBuffer)
	c.textures = make(map[textureKey][]*TransientTexture)
}
