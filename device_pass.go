package framegraph

import "github.com/gogpu/framegraph/gpu"

// devicePass is the compiled, linear projection of one pass node: its
// resolved request and release sets and the moved-out pass body.
type devicePass struct {
	name     string
	pass     *Pass
	requests []resourceRequest
	releases []resourceRelease
}

// extract fills the device pass from a pass node, cloning the
// request/release sets and taking ownership of the body.
func (d *devicePass) extract(fg *FrameGraph, index Handle[PassNode]) {
	node := fg.passNode(index)

	d.name = node.name
	d.requests = make([]resourceRequest, 0, len(node.requests))
	for _, h := range node.requests {
		d.requests = append(d.requests, fg.resourceNode(h).request())
	}
	d.releases = make([]resourceRelease, 0, len(node.releases))
	for _, h := range node.releases {
		d.releases = append(d.releases, fg.resourceNode(h).release())
	}
	d.pass = node.pass
	node.pass = nil
}

// execute requests this pass's resources, runs the body and releases.
// The release step runs even when the body fails so owned resources are
// not stranded outside the cache.
func (d *devicePass) execute(ctx *ExecuteContext) error {
	for _, req := range d.requests {
		if err := ctx.table.requestResource(req, ctx.Device, ctx.Cache); err != nil {
			d.releaseResources(ctx)
			return err
		}
	}

	var err error
	if d.pass != nil {
		err = d.pass.render(&ctx.commandBuffers, ctx.Device, ctx.table, ctx.Pipelines)
	}

	d.releaseResources(ctx)
	return err
}

func (d *devicePass) releaseResources(ctx *ExecuteContext) {
	for _, rel := range d.releases {
		ctx.table.releaseResource(rel, ctx.Cache)
	}
}

// compiledFrameGraph is the linear device-pass list produced by Compile.
type compiledFrameGraph struct {
	devicePasses []devicePass
}

func (c *compiledFrameGraph) execute(ctx *ExecuteContext) error {
	for i := range c.devicePasses {
		if err := c.devicePasses[i].execute(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteContext carries the collaborators of one graph execution: the
// device, the pipeline container and the cross-frame transient cache.
// The resource table and the command buffer list are per-execution state
// owned by the context.
type ExecuteContext struct {
	Device    gpu.Device
	Pipelines *PipelineContainer
	Cache     *TransientResourceCache

	table          *ResourceTable
	commandBuffers []gpu.CommandBuffer
}

// NewExecuteContext creates an execution context. A nil pipelines
// container is replaced by an empty one; the cache must be shared across
// frames by the caller to get pooling.
func NewExecuteContext(device gpu.Device, pipelines *PipelineContainer, cache *TransientResourceCache) *ExecuteContext {
	if pipelines == nil {
		pipelines = NewPipelineContainer()
	}
	if cache == nil {
		cache = NewTransientResourceCache()
	}
	return &ExecuteContext{
		Device:    device,
		Pipelines: pipelines,
		Cache:     cache,
		table:     NewResourceTable(),
	}
}

// Table returns the execution's resource table.
func (ctx *ExecuteContext) Table() *ResourceTable { return ctx.table }
