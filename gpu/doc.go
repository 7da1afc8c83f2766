// Package gpu defines the GPU collaborator surface used by the frame graph.
//
// The frame graph never talks to a GPU API directly. Instead it drives the
// small interfaces in this package: Device creates resources and command
// encoders, CommandEncoder opens render and compute passes, and the pass
// encoders record draw/dispatch commands. Descriptor structs mirror the
// WebGPU descriptor shapes and use value types from
// github.com/gogpu/gputypes, so any WebGPU-flavoured implementation can
// satisfy them.
//
// The backend/wgpu package adapts github.com/gogpu/wgpu to these
// interfaces. Tests substitute in-memory fakes.
//
// Key principle: the frame graph RECEIVES the device from the host, it
// does not create one. Device selection, instance and adapter management
// belong to the host application.
package gpu
