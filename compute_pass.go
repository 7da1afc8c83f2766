package framegraph

import (
	"fmt"

	"github.com/gogpu/framegraph/gpu"
)

// ComputePassCommand is one deferred command recorded into a compute
// pass.
type ComputePassCommand interface {
	Execute(ctx *ComputePassContext)
}

// ComputePassContext wraps the live GPU compute pass together with the
// enclosing pass context during command execution.
type ComputePassContext struct {
	pass gpu.ComputePassEncoder
	ctx  *PassContext
}

// SetComputePipeline sets the active pipeline on the live compute pass.
func (c *ComputePassContext) SetComputePipeline(p gpu.ComputePipeline) {
	c.pass.SetPipeline(p)
}

// SetBindGroup materialises the transient bind group and binds it.
func (c *ComputePassContext) SetBindGroup(index uint32, group *TransientBindGroup, offsets []uint32) {
	bg, err := group.createBindGroup(c.ctx)
	if err != nil {
		panic(fmt.Sprintf("framegraph: materialize bind group %q: %v", group.Label, err))
	}
	c.pass.SetBindGroup(index, bg, offsets)
}

// Dispatch dispatches compute workgroups.
func (c *ComputePassContext) Dispatch(x, y, z uint32) {
	c.pass.Dispatch(x, y, z)
}

// ComputePass is the compute analogue of RenderPass: a pass command
// replaying dispatch commands in recording order inside one GPU compute
// pass.
type ComputePass struct {
	label    string
	commands []ComputePassCommand
}

// Label returns the compute pass label.
func (r *ComputePass) Label() string { return r.label }

func (r *ComputePass) setLabel(label string) { r.label = label }

func (r *ComputePass) push(cmd ComputePassCommand) {
	r.commands = append(r.commands, cmd)
}

// Execute implements PassCommand.
func (r *ComputePass) Execute(ctx *PassContext) error {
	pass, err := ctx.encoder.BeginComputePass(r.label)
	if err != nil {
		return fmt.Errorf("framegraph: begin compute pass %q: %w", r.label, err)
	}

	cctx := &ComputePassContext{pass: pass, ctx: ctx}
	for _, cmd := range r.commands {
		cmd.Execute(cctx)
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("framegraph: end compute pass %q: %w", r.label, err)
	}
	return nil
}
