package framegraph

import (
	"testing"
)

// Invariant 3: writes bump the version by exactly one, reads return the
// raw handle unchanged.
func TestWriteBumpsVersion(t *testing.T) {
	fg := New()
	h := fg.CreateBuffer("buf", testBufferDesc("buf", 64))

	fg.AddPass("A", func(b *PassBuilder) {
		r1 := b.ReadBuffer(h)
		if r1.Raw() != h.Raw() {
			t.Errorf("read changed the raw handle: %+v != %+v", r1.Raw(), h.Raw())
		}
		if r1.Access() != AccessRead {
			t.Errorf("read ref has access %v", r1.Access())
		}

		w1 := b.WriteBuffer(h)
		if w1.Raw().Version != h.Raw().Version+1 {
			t.Errorf("first write version = %d, want %d", w1.Raw().Version, h.Raw().Version+1)
		}
		if w1.Access() != AccessWrite {
			t.Errorf("write ref has access %v", w1.Access())
		}

		// A second write in the same pass bumps again.
		w2 := b.WriteBuffer(h)
		if w2.Raw().Version != w1.Raw().Version+1 {
			t.Errorf("second write version = %d, want %d", w2.Raw().Version, w1.Raw().Version+1)
		}
	})

	pass := fg.PassNode(0)
	if len(pass.Writes()) != 2 {
		t.Fatalf("writes = %d entries, want 2", len(pass.Writes()))
	}
	if pass.Writes()[0].Version != 1 || pass.Writes()[1].Version != 2 {
		t.Errorf("write versions = %d, %d; want 1, 2", pass.Writes()[0].Version, pass.Writes()[1].Version)
	}
}

// Invariant 4: reads are de-duplicated by exact raw handle, preserving
// insertion order; reads at different versions stay distinct.
func TestReadDeduplication(t *testing.T) {
	fg := New()
	a := fg.CreateBuffer("a", testBufferDesc("a", 64))
	b := fg.CreateBuffer("b", testBufferDesc("b", 64))

	fg.AddPass("A", func(pb *PassBuilder) {
		pb.ReadBuffer(a)
		pb.ReadBuffer(b)
		pb.ReadBuffer(a) // duplicate, dropped
	})

	pass := fg.PassNode(0)
	if len(pass.Reads()) != 2 {
		t.Fatalf("reads = %d entries, want 2", len(pass.Reads()))
	}
	if pass.Reads()[0].Index.Index() != 0 || pass.Reads()[1].Index.Index() != 1 {
		t.Errorf("reads out of insertion order: %v", pass.Reads())
	}
}

func TestReadsAtDifferentVersionsKeptSeparate(t *testing.T) {
	fg := New()
	h := fg.CreateBuffer("buf", testBufferDesc("buf", 64))

	var post BufferHandle
	fg.AddPass("writer", func(b *PassBuilder) {
		b.WriteBuffer(h)
		// The resource node tracks its current version.
		post = BufferHandle{raw: fg.ResourceNode(0).raw(), desc: h.desc}
	})
	fg.AddPass("reader", func(b *PassBuilder) {
		b.ReadBuffer(h)    // version 0
		b.ReadBuffer(post) // version 1
		b.ReadBuffer(h)    // duplicate of version 0, dropped
	})

	pass := fg.PassNode(1)
	if len(pass.Reads()) != 2 {
		t.Fatalf("reads = %d entries, want 2", len(pass.Reads()))
	}
	if pass.Reads()[0].Version != 0 || pass.Reads()[1].Version != 1 {
		t.Errorf("read versions = %d, %d; want 0, 1", pass.Reads()[0].Version, pass.Reads()[1].Version)
	}
}

// The builder contract: the pass node is committed on every exit path,
// including a panic inside the record callback.
func TestBuilderFlushesOnPanic(t *testing.T) {
	fg := New()
	h := fg.CreateBuffer("buf", testBufferDesc("buf", 64))

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected the panic to propagate")
			}
		}()
		fg.AddPass("doomed", func(b *PassBuilder) {
			b.WriteBuffer(h)
			panic("client bug")
		})
	}()

	if fg.PassNodeCount() != 1 {
		t.Fatalf("pass node not committed after panic")
	}
	pass := fg.PassNode(0)
	if pass.Name() != "doomed" {
		t.Errorf("pass name = %q", pass.Name())
	}
	if len(pass.Writes()) != 1 {
		t.Errorf("writes lost in panic flush: %v", pass.Writes())
	}
	if pass.pass == nil {
		t.Errorf("pass body not installed")
	}
}

func TestRenderPassBuilderFlushesOnPanic(t *testing.T) {
	fg := New()
	tex := fg.CreateTexture("tex", testTextureDesc("tex", 8, 8))

	func() {
		defer func() { _ = recover() }()
		fg.AddPass("p", func(b *PassBuilder) {
			out := b.WriteTexture(tex)
			b.AddRenderPass("rp", func(rb *RenderPassBuilder) {
				rb.AddColorAttachment(TransientColorAttachment{
					View: TransientTextureView{Texture: out},
				})
				rb.Draw(3, 1, 0, 0)
				panic("client bug")
			})
		})
	}()

	pass := fg.PassNode(0)
	if pass.pass == nil || len(pass.pass.commands) != 1 {
		t.Fatalf("render pass not flushed into the pass body")
	}
	rp, ok := pass.pass.commands[0].(*RenderPass)
	if !ok {
		t.Fatalf("command is %T, want *RenderPass", pass.pass.commands[0])
	}
	if rp.Label() != "rp" {
		t.Errorf("render pass label = %q", rp.Label())
	}
	if len(rp.commands) != 1 {
		t.Errorf("draw recorded before panic was lost")
	}
}

func TestPassNodeBuilderDeclaresLifetimesOnly(t *testing.T) {
	fg := New()
	h := fg.CreateBuffer("buf", testBufferDesc("buf", 64))

	fg.AddPassNode("declare", func(b *PassNodeBuilder) {
		b.ReadBuffer(h)
	})
	fg.Compile()

	device := &fakeDevice{}
	buffers, err := fg.Execute(NewExecuteContext(device, nil, NewTransientResourceCache()))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// No body, so no encoder and no command buffer.
	if len(buffers) != 0 {
		t.Errorf("declare-only pass produced %d command buffers", len(buffers))
	}
	if len(device.encoders) != 0 {
		t.Errorf("declare-only pass created an encoder")
	}
	// The lifetime still drove request/release: allocation happened.
	if device.buffersCreated != 1 {
		t.Errorf("expected the read to request an allocation, got %d", device.buffersCreated)
	}
}

func TestMaterialReadImportsOnDemand(t *testing.T) {
	fg := New()
	external := &TransientBuffer{
		Resource: &fakeBuffer{desc: testBufferDesc("mat", 128)},
		Desc:     testBufferDesc("mat", 128),
	}
	mat := &testBufferMaterial{name: "mat", buf: external}

	fg.AddPass("A", func(b *PassBuilder) {
		ref := b.ReadBufferMaterial(mat)
		if ref.Desc().Label != "mat" {
			t.Errorf("ref descriptor label = %q", ref.Desc().Label)
		}
	})
	fg.AddPass("B", func(b *PassBuilder) {
		b.WriteBufferMaterial(mat)
	})

	if fg.ResourceNodeCount() != 1 {
		t.Fatalf("material imported %d nodes, want 1", fg.ResourceNodeCount())
	}
	if mat.imports != 2 {
		t.Errorf("ImportBuffer called %d times, want 2", mat.imports)
	}
}

type testBufferMaterial struct {
	name    string
	buf     *TransientBuffer
	imports int
}

func (m *testBufferMaterial) ImportBuffer(fg *FrameGraph) BufferHandle {
	m.imports++
	return fg.ImportBuffer(m.name, m.buf)
}
