// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package hostdevice resolves a GPU device shared by a host application
// into the frame graph's gpu.Device interface.
//
// Hosts built on gogpu expose their device through a
// gpucontext.DeviceProvider; passing that provider here lets the frame
// graph record against the same device the host renders with, without
// creating a second GPU instance.
package hostdevice

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	wgpulib "github.com/gogpu/wgpu"

	wgpubackend "github.com/gogpu/framegraph/backend/wgpu"
	"github.com/gogpu/framegraph/gpu"
)

// Common errors returned by Resolve.
var (
	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("hostdevice: nil DeviceProvider")

	// ErrNoDevice is returned when the provider has no device yet.
	ErrNoDevice = errors.New("hostdevice: provider returned no device")
)

// DeviceHandle is an alias for gpucontext.DeviceProvider, giving the
// frame graph a local name for the host-integration interface while
// staying compatible with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// Resolve turns a host device provider into a frame-graph device.
//
// Two provider shapes are supported: providers whose device already
// implements gpu.Device are passed through, and providers backed by a
// *wgpu.Device are wrapped in the wgpu backend adapter. Anything else is
// rejected with a descriptive error.
func Resolve(provider DeviceHandle) (gpu.Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	dev := provider.Device()
	if dev == nil {
		return nil, ErrNoDevice
	}

	if d, ok := any(dev).(gpu.Device); ok {
		return d, nil
	}
	if d, ok := any(dev).(*wgpulib.Device); ok {
		return wgpubackend.NewDevice(d)
	}
	return nil, fmt.Errorf("hostdevice: unsupported device type %T", dev)
}
