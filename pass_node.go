package framegraph

// PassNode is a graph vertex representing one declared pass: its
// read/write edges into the resource nodes, the request/release sets
// filled in by the compiler, and the recorded command body.
type PassNode struct {
	index Handle[PassNode]
	name  string

	// reads holds de-duplicated raw handles in declaration order.
	reads []RawResourceHandle

	// writes holds one raw handle per write, each at a fresh version.
	writes []RawResourceHandle

	// requests and releases are populated by the compiler only.
	requests []Handle[ResourceNode]
	releases []Handle[ResourceNode]

	pass *Pass
}

func newPassNode(name string, index Handle[PassNode]) *PassNode {
	return &PassNode{name: name, index: index}
}

// Name returns the pass name.
func (p *PassNode) Name() string { return p.name }

// Reads returns the pass's read edges in declaration order.
func (p *PassNode) Reads() []RawResourceHandle { return p.reads }

// Writes returns the pass's write edges in declaration order.
func (p *PassNode) Writes() []RawResourceHandle { return p.writes }

// Requests returns the resource nodes this pass requests. Valid after
// compilation.
func (p *PassNode) Requests() []Handle[ResourceNode] { return p.requests }

// Releases returns the resource nodes this pass releases. Valid after
// compilation.
func (p *PassNode) Releases() []Handle[ResourceNode] { return p.releases }
