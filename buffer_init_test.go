package framegraph

import (
	"testing"

	"github.com/gogpu/gputypes"
)

// Invariant 7: padded(s) is the smallest multiple of the copy alignment
// >= max(s, alignment), and 0 stays 0.
func TestPaddedBufferSize(t *testing.T) {
	tests := []struct {
		size uint64
		want uint64
	}{
		{0, 0},
		{1, 4},
		{2, 4},
		{3, 4},
		{4, 4},
		{5, 8},
		{7, 8},
		{8, 8},
		{1023, 1024},
		{1024, 1024},
		{1025, 1028},
	}
	for _, tt := range tests {
		if got := PaddedBufferSize(tt.size); got != tt.want {
			t.Errorf("PaddedBufferSize(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestBufferInitDescriptor(t *testing.T) {
	init := BufferInitDescriptor{
		Label:    "quad",
		Contents: make([]byte, 6),
		Usage:    gputypes.BufferUsageVertex,
	}
	desc := init.Desc()

	if desc.Label != "quad" {
		t.Errorf("label = %q", desc.Label)
	}
	if desc.Size != 8 {
		t.Errorf("size = %d, want 8", desc.Size)
	}
	if desc.Usage != gputypes.BufferUsageVertex {
		t.Errorf("usage = %v", desc.Usage)
	}
	if desc.MappedAtCreation {
		t.Errorf("init buffers must not be mapped at creation")
	}

	empty := BufferInitDescriptor{Label: "empty", Usage: gputypes.BufferUsageUniform}
	if got := empty.Desc().Size; got != 0 {
		t.Errorf("empty contents size = %d, want 0", got)
	}
}
