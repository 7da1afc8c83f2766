// Package framegraph is a per-frame declarative scheduler for GPU work.
//
// # Overview
//
// A frame is described as a set of named passes that declare which
// logical resources (buffers, textures) they read and write. The engine
// compiles the declaration into a linear sequence of device passes,
// transparently allocating transient GPU resources when a pass first
// needs them and recycling the allocations — across passes within a
// frame and across frames — through a descriptor-keyed cache.
//
// The frame cycle is record, compile, execute:
//
//	fg := framegraph.New()
//
//	var color framegraph.TextureRef
//	fg.AddPass("shadow", func(b *framegraph.PassBuilder) {
//	    shadow := fg.CreateTexture("shadow", shadowDesc)
//	    color = b.WriteTexture(shadow)
//	    b.AddRenderPass("shadow", func(rb *framegraph.RenderPassBuilder) {
//	        rb.AddColorAttachment(framegraph.TransientColorAttachment{
//	            View:    framegraph.TransientTextureView{Texture: color},
//	            LoadOp:  gputypes.LoadOpClear,
//	            StoreOp: gputypes.StoreOpStore,
//	        })
//	        rb.SetRenderPipeline(pipeline)
//	        rb.Draw(3, 1, 0, 0)
//	    })
//	})
//
//	fg.Compile()
//	buffers, err := fg.Execute(ctx)
//
// Execute returns the finished command buffers for the host to submit
// and resets the graph; only the transient cache in the ExecuteContext
// carries state to the next frame.
//
// # Resources and versions
//
// Handles are versioned: every builder write produces a new version of
// the same storage slot, and readers capture a specific (index, version)
// pair, so later writes do not alias an earlier reader's view. Resources
// are either created by the engine (pooled across frames) or imported
// from the host (shared for the frame, never pooled).
//
// # Ordering
//
// Declaration order is execution order; the engine performs no
// topological reordering and inserts no barriers. Recording and
// execution are single-threaded; the graph must not be mutated
// concurrently.
//
// The GPU itself is reached through the interfaces in the gpu
// subpackage; backend/wgpu adapts github.com/gogpu/wgpu to them.
package framegraph
