package framegraph

import "github.com/gogpu/framegraph/gpu"

// pipelineEntry holds one registered pipeline; exactly one field is set.
type pipelineEntry struct {
	render  gpu.RenderPipeline
	compute gpu.ComputePipeline
}

// PipelineContainer stores externally built pipelines under integer ids.
// The frame graph never creates pipelines; hosts register them once and
// pass the container to Execute, and recorded commands look them up by
// id at execution time.
//
// Not safe for concurrent mutation; registration is expected to happen
// at startup.
type PipelineContainer struct {
	pipelines []pipelineEntry
}

// NewPipelineContainer creates an empty container.
func NewPipelineContainer() *PipelineContainer {
	return &PipelineContainer{}
}

// AddRenderPipeline registers a render pipeline and returns its id.
func (c *PipelineContainer) AddRenderPipeline(p gpu.RenderPipeline) int {
	c.pipelines = append(c.pipelines, pipelineEntry{render: p})
	return len(c.pipelines) - 1
}

// AddComputePipeline registers a compute pipeline and returns its id.
func (c *PipelineContainer) AddComputePipeline(p gpu.ComputePipeline) int {
	c.pipelines = append(c.pipelines, pipelineEntry{compute: p})
	return len(c.pipelines) - 1
}

// RenderPipeline returns the render pipeline registered under id, or
// false if the id is unknown or names a compute pipeline.
func (c *PipelineContainer) RenderPipeline(id int) (gpu.RenderPipeline, bool) {
	if id < 0 || id >= len(c.pipelines) || c.pipelines[id].render == nil {
		return nil, false
	}
	return c.pipelines[id].render, true
}

// ComputePipeline returns the compute pipeline registered under id, or
// false if the id is unknown or names a render pipeline.
func (c *PipelineContainer) ComputePipeline(id int) (gpu.ComputePipeline, bool) {
	if id < 0 || id >= len(c.pipelines) || c.pipelines[id].compute == nil {
		return nil, false
	}
	return c.pipelines[id].compute, true
}
