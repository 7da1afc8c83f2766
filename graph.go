package framegraph

import (
	"github.com/gogpu/framegraph/gpu"
)

// FrameGraph is a per-frame declarative scheduler for GPU work. Clients
// record named passes declaring which logical resources they read and
// write; Compile derives resource lifetimes and a linear device-pass
// list; Execute requests transient resources, replays the recorded
// commands and recycles the resources through the transient cache.
//
// Lifecycle: recording -> compiled (Compile) -> executed (Execute) ->
// reset. Execute always resets the graph; only the cache passed in the
// ExecuteContext survives from frame to frame.
//
// Declaration order is execution order. The graph performs no
// topological reordering; ordering constraints between passes are
// satisfied by declaration discipline.
//
// Not safe for concurrent use.
type FrameGraph struct {
	resourceNodes []*ResourceNode
	passNodes     []*PassNode
	compiled      *compiledFrameGraph
	board         resourceBoard
}

// New creates an empty frame graph.
func New() *FrameGraph {
	return &FrameGraph{board: newResourceBoard()}
}

// ResourceNodeCount returns the number of declared resource nodes.
func (fg *FrameGraph) ResourceNodeCount() int { return len(fg.resourceNodes) }

// PassNodeCount returns the number of declared pass nodes.
func (fg *FrameGraph) PassNodeCount() int { return len(fg.passNodes) }

// PassNode returns the pass node at the given index.
func (fg *FrameGraph) PassNode(index int) *PassNode { return fg.passNodes[index] }

// ResourceNode returns the resource node at the given index.
func (fg *FrameGraph) ResourceNode(index int) *ResourceNode { return fg.resourceNodes[index] }

func (fg *FrameGraph) resourceNode(h Handle[ResourceNode]) *ResourceNode {
	return fg.resourceNodes[h.Index()]
}

func (fg *FrameGraph) passNode(h Handle[PassNode]) *PassNode {
	return fg.passNodes[h.Index()]
}

// addResourceNode appends a node and returns it.
func (fg *FrameGraph) addResourceNode(name string, res virtualResource) *ResourceNode {
	handle := NewHandle[ResourceNode](len(fg.resourceNodes))
	node := newResourceNode(name, handle, res)
	fg.resourceNodes = append(fg.resourceNodes, node)
	return node
}

// addPassNode appends a pass node and returns it.
func (fg *FrameGraph) addPassNode(name string) *PassNode {
	handle := NewHandle[PassNode](len(fg.passNodes))
	node := newPassNode(name, handle)
	fg.passNodes = append(fg.passNodes, node)
	return node
}

// CreateBuffer declares a new transient buffer and returns its handle at
// version 0. The name is informational only; the node is not placed on
// the resource board.
func (fg *FrameGraph) CreateBuffer(name string, desc gpu.BufferDescriptor) BufferHandle {
	node := fg.addResourceNode(name, setupBuffer(desc))
	return BufferHandle{raw: node.raw(), desc: desc}
}

// CreateTexture declares a new transient texture and returns its handle
// at version 0.
func (fg *FrameGraph) CreateTexture(name string, desc gpu.TextureDescriptor) TextureHandle {
	node := fg.addResourceNode(name, setupTexture(desc))
	return TextureHandle{raw: node.raw(), desc: desc.Clone()}
}

// GetOrCreateBuffer declares a named transient buffer, or returns the
// current handle of the node already registered under the name.
func (fg *FrameGraph) GetOrCreateBuffer(name string, desc gpu.BufferDescriptor) BufferHandle {
	if h, ok := fg.board.get(name); ok {
		node := fg.resourceNode(h)
		return BufferHandle{raw: node.raw(), desc: node.resource.bufDesc}
	}
	handle := fg.CreateBuffer(name, desc)
	fg.board.insert(name, handle.raw.Index)
	return handle
}

// GetOrCreateTexture declares a named transient texture, or returns the
// current handle of the node already registered under the name.
func (fg *FrameGraph) GetOrCreateTexture(name string, desc gpu.TextureDescriptor) TextureHandle {
	if h, ok := fg.board.get(name); ok {
		node := fg.resourceNode(h)
		return TextureHandle{raw: node.raw(), desc: node.resource.texDesc.Clone()}
	}
	handle := fg.CreateTexture(name, desc)
	fg.board.insert(name, handle.raw.Index)
	return handle
}

// ImportBuffer makes an externally owned buffer visible to the frame
// under the given name. Importing an already-registered name returns the
// existing node's current handle. Imported resources are shared: they
// are dropped on release and never enter the cache.
func (fg *FrameGraph) ImportBuffer(name string, buf *TransientBuffer) BufferHandle {
	if h, ok := fg.board.get(name); ok {
		node := fg.resourceNode(h)
		return BufferHandle{raw: node.raw(), desc: node.resource.bufDesc}
	}
	node := fg.addResourceNode(name, importedBuffer(buf))
	fg.board.insert(name, node.index)
	return BufferHandle{raw: node.raw(), desc: buf.Desc}
}

// ImportTexture makes an externally owned texture visible to the frame
// under the given name.
func (fg *FrameGraph) ImportTexture(name string, tex *TransientTexture) TextureHandle {
	if h, ok := fg.board.get(name); ok {
		node := fg.resourceNode(h)
		return TextureHandle{raw: node.raw(), desc: node.resource.texDesc.Clone()}
	}
	node := fg.addResourceNode(name, importedTexture(tex))
	fg.board.insert(name, node.index)
	return TextureHandle{raw: node.raw(), desc: tex.Desc.Clone()}
}

// BufferHandleByName returns the current handle of the named buffer
// node, if one is registered on the board.
func (fg *FrameGraph) BufferHandleByName(name string) (BufferHandle, bool) {
	h, ok := fg.board.get(name)
	if !ok {
		return BufferHandle{}, false
	}
	node := fg.resourceNode(h)
	if node.resource.kind != kindBuffer {
		return BufferHandle{}, false
	}
	return BufferHandle{raw: node.raw(), desc: node.resource.bufDesc}, true
}

// TextureHandleByName returns the current handle of the named texture
// node, if one is registered on the board.
func (fg *FrameGraph) TextureHandleByName(name string) (TextureHandle, bool) {
	h, ok := fg.board.get(name)
	if !ok {
		return TextureHandle{}, false
	}
	node := fg.resourceNode(h)
	if node.resource.kind != kindTexture {
		return TextureHandle{}, false
	}
	return TextureHandle{raw: node.raw(), desc: node.resource.texDesc.Clone()}, true
}

// computeResourceLifetimes sweeps the passes in declaration order,
// widening each touched node's live range, then appends every used node
// to its first-use pass's request set and its last-use pass's release
// set. Nodes never read or written stay unrequested.
func (fg *FrameGraph) computeResourceLifetimes() {
	for _, pass := range fg.passNodes {
		for _, raw := range pass.reads {
			fg.resourceNode(raw.Index).updateLifetime(pass.index)
		}
		for _, raw := range pass.writes {
			fg.resourceNode(raw.Index).updateLifetime(pass.index)
		}
	}

	for _, node := range fg.resourceNodes {
		if node.firstUse < 0 || node.lastUse < 0 {
			continue
		}
		first := fg.passNodes[node.firstUse]
		first.requests = append(first.requests, node.index)
		last := fg.passNodes[node.lastUse]
		last.releases = append(last.releases, node.index)
	}
}

// generateDevicePasses linearises the pass nodes into device passes in
// declaration order, moving each body out of its node.
func (fg *FrameGraph) generateDevicePasses() {
	passes := make([]devicePass, len(fg.passNodes))
	for i := range fg.passNodes {
		passes[i].extract(fg, NewHandle[PassNode](i))
	}
	fg.compiled = &compiledFrameGraph{devicePasses: passes}
}

// Compile derives resource lifetimes and the linear device-pass list.
// Compiling an empty graph is a no-op.
func (fg *FrameGraph) Compile() {
	if len(fg.passNodes) == 0 {
		return
	}

	fg.computeResourceLifetimes()
	fg.generateDevicePasses()

	logger().Debug("framegraph: compiled",
		"passes", len(fg.passNodes), "resources", len(fg.resourceNodes))
}

// Execute runs the compiled device passes in order and returns the
// finished command buffers for the host to submit. Without compiled
// state it returns nil. The graph resets itself afterwards on both the
// success and the error path; the cache in ctx is retained.
func (fg *FrameGraph) Execute(ctx *ExecuteContext) ([]gpu.CommandBuffer, error) {
	if fg.compiled == nil {
		return nil, nil
	}
	defer fg.Reset()

	if err := fg.compiled.execute(ctx); err != nil {
		ctx.table.Reset()
		return nil, err
	}

	out := ctx.commandBuffers
	ctx.commandBuffers = nil
	return out, nil
}

// Reset discards all recorded and compiled state. The transient cache
// lives in the ExecuteContext and is unaffected.
func (fg *FrameGraph) Reset() {
	fg.resourceNodes = nil
	fg.passNodes = nil
	fg.compiled = nil
	fg.board = newResourceBoard()
}
