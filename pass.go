package framegraph

import (
	"fmt"

	"github.com/gogpu/framegraph/gpu"
)

// PassCommand is one unit of recorded work inside a pass body. Commands
// own their captured state and may be handed between goroutines, but the
// engine executes them sequentially on the executing goroutine.
type PassCommand interface {
	Execute(ctx *PassContext) error
}

// PassContext is the execution context threaded through a device pass:
// the device, the pass's command encoder, the live resource table and
// the pipeline container.
type PassContext struct {
	device    gpu.Device
	encoder   gpu.CommandEncoder
	table     *ResourceTable
	pipelines *PipelineContainer
}

// Device returns the GPU device for the current execution.
func (ctx *PassContext) Device() gpu.Device { return ctx.device }

// Encoder returns the pass's command encoder. Generic pass commands use
// it to begin their own render or compute passes; gpu.CommandEncoder has
// no copy or clear commands.
func (ctx *PassContext) Encoder() gpu.CommandEncoder { return ctx.encoder }

// Table returns the live resource table.
func (ctx *PassContext) Table() *ResourceTable { return ctx.table }

// GetBuffer resolves a buffer reference to its live transient buffer.
// It panics if the resource is not live; that is a bug in compilation or
// in the client's read/write declarations.
func (ctx *PassContext) GetBuffer(ref BufferRef) *TransientBuffer {
	return ctx.table.GetBuffer(ref)
}

// GetTexture resolves a texture reference to its live transient texture.
// Panics on a missing resource, like GetBuffer.
func (ctx *PassContext) GetTexture(ref TextureRef) *TransientTexture {
	return ctx.table.GetTexture(ref)
}

// MustRenderPipeline returns the render pipeline registered under id.
// A missing id is a programming error and panics.
func (ctx *PassContext) MustRenderPipeline(id int) gpu.RenderPipeline {
	p, ok := ctx.pipelines.RenderPipeline(id)
	if !ok {
		panic(fmt.Sprintf("framegraph: no render pipeline with id %d", id))
	}
	return p
}

// MustComputePipeline returns the compute pipeline registered under id.
// A missing id is a programming error and panics.
func (ctx *PassContext) MustComputePipeline(id int) gpu.ComputePipeline {
	p, ok := ctx.pipelines.ComputePipeline(id)
	if !ok {
		panic(fmt.Sprintf("framegraph: no compute pipeline with id %d", id))
	}
	return p
}

// finish completes the pass's encoder into a command buffer.
func (ctx *PassContext) finish() (gpu.CommandBuffer, error) {
	return ctx.encoder.Finish()
}

// Pass is an ordered list of pass commands recorded under one pass node.
type Pass struct {
	label    string
	commands []PassCommand
}

// Label returns the pass label (the pass node name).
func (p *Pass) Label() string { return p.label }

// Push appends a command to the pass body.
func (p *Pass) Push(cmd PassCommand) {
	p.commands = append(p.commands, cmd)
}

// render creates an encoder labelled with the pass name, executes the
// recorded commands in order and appends the finished command buffer to
// out. Device errors abort the pass and propagate.
func (p *Pass) render(out *[]gpu.CommandBuffer, device gpu.Device, table *ResourceTable, pipelines *PipelineContainer) error {
	encoder, err := device.CreateCommandEncoder(p.label)
	if err != nil {
		return fmt.Errorf("framegraph: create encoder for pass %q: %w", p.label, err)
	}

	ctx := &PassContext{
		device:    device,
		encoder:   encoder,
		table:     table,
		pipelines: pipelines,
	}

	for _, cmd := range p.commands {
		if err := cmd.Execute(ctx); err != nil {
			return fmt.Errorf("framegraph: pass %q: %w", p.label, err)
		}
	}

	cb, err := ctx.finish()
	if err != nil {
		return fmt.Errorf("framegraph: finish pass %q: %w", p.label, err)
	}
	*out = append(*out, cb)
	return nil
}
