// Package wgpu adapts github.com/gogpu/wgpu to the frame graph's GPU
// collaborator interfaces.
//
// The host creates the wgpu instance, adapter and device as usual, then
// wraps the device:
//
//	device, err := wgpubackend.NewDevice(wgpuDevice)
//	if err != nil {
//	    return err
//	}
//	ctx := framegraph.NewExecuteContext(device, pipelines, cache)
//
// Command buffers returned by FrameGraph.Execute are *wgpu.CommandBuffer
// values; submit them with Unwrap:
//
//	queue.Submit(wgpubackend.Unwrap(buffers)...)
package wgpu
