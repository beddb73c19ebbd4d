package gmod

import (
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/location"
)

// Occurrence is one step of a Path: the node at that position plus its
// optional location (spec.md §3 GmodPath).
type Occurrence struct {
	NodeIndex   int
	Code        string
	Location    location.Location
	HasLocation bool
}

// String renders one occurrence as "code" or "code-location".
func (o Occurrence) String() string {
	if !o.HasLocation {
		return o.Code
	}
	return o.Code + "-" + o.Location.String()
}

// Path is an ordered sequence of node occurrences from (some ancestor of)
// the root down to an end node (spec.md §3/§4.5, C6). Length is always
// >= 1. Path is a value produced by Gmod's parsers; it is never mutated
// after construction.
type Path struct {
	gmod  *Gmod
	nodes []Occurrence
}

// Len returns the number of occurrences in the path.
func (p *Path) Len() int { return len(p.nodes) }

// At returns the occurrence at depth i.
func (p *Path) At(i int) Occurrence { return p.nodes[i] }

// End returns the path's final (deepest) occurrence.
func (p *Path) End() Occurrence { return p.nodes[len(p.nodes)-1] }

// EndNode returns the full GmodNode for the path's end occurrence.
func (p *Path) EndNode() GmodNode { return p.gmod.NodeFor(p.nodes[len(p.nodes)-1]) }

// NodeAt returns the full GmodNode at depth i.
func (p *Path) NodeAt(i int) GmodNode { return p.gmod.NodeFor(p.nodes[i]) }

// Gmod returns the Gmod that owns this path.
func (p *Path) Gmod() *Gmod { return p.gmod }

// Occurrences returns a copy of the path's occurrence sequence.
func (p *Path) Occurrences() []Occurrence {
	out := make([]Occurrence, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// FullPath returns the occurrence sequence from the GMOD root down to the
// path's end node, injecting any intermediate ancestors the stored path
// skipped over as bare (no-location) occurrences (spec.md §4.5).
func (p *Path) FullPath() []Occurrence {
	if len(p.nodes) == 0 {
		return nil
	}
	if p.nodes[0].Code == rootCode {
		return p.Occurrences()
	}

	root, ok := p.gmod.RootNode()
	if !ok {
		return p.Occurrences()
	}

	exists, between := p.gmod.PathExistsBetween([]string{root.Code()}, p.nodes[0].Code)
	if !exists {
		return p.Occurrences()
	}

	full := make([]Occurrence, 0, len(between)+len(p.nodes)+1)
	full = append(full, Occurrence{NodeIndex: p.gmod.rootIdx, Code: root.Code()})
	for _, code := range between {
		idx, ok := p.gmod.indexOf(code)
		if !ok {
			continue
		}
		full = append(full, Occurrence{NodeIndex: idx, Code: code})
	}
	full = append(full, p.nodes...)
	return full
}

// CommonNames returns, for each depth in the path, the display name drawn
// from that node's metadata: its CommonName if set, otherwise its Name,
// unless the immediate parent's NormalAssignmentNames map holds a non-empty
// entry for the node's code, in which case that entry wins (spec.md §4.5's
// "hardcoded rules in the source").
func (p *Path) CommonNames() []string {
	out := make([]string, len(p.nodes))
	for i, occ := range p.nodes {
		node := p.gmod.nodes[occ.NodeIndex]
		name := node.metadata.Name
		if node.metadata.CommonName != "" {
			name = node.metadata.CommonName
		}
		if i > 0 {
			parent := p.gmod.nodes[p.nodes[i-1].NodeIndex]
			if override, ok := parent.metadata.NormalAssignmentNames[occ.Code]; ok && override != "" {
				name = override
			}
		}
		out[i] = name
	}
	return out
}

// String renders the canonical "code1[-loc1]/code2[-loc2]/..." form.
func (p *Path) String() string {
	var b strings.Builder
	p.WriteTo(&b)
	return b.String()
}

// WriteTo appends the canonical rendering of p to b.
func (p *Path) WriteTo(b *strings.Builder) {
	for i, occ := range p.nodes {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(occ.String())
	}
}

// IsValid checks that parentNodes -> endNode forms a structurally valid
// chain: each consecutive pair must be a real parent-child edge in the
// owning Gmod (spec.md §4.5).
func (p *Path) IsValid(parentNodes []Occurrence, endNode Occurrence) bool {
	if len(parentNodes) == 0 {
		return true
	}
	chain := append(append([]Occurrence(nil), parentNodes...), endNode)
	for i := 1; i < len(chain); i++ {
		parent := p.gmod.nodes[chain[i-1].NodeIndex]
		if !parent.IsChild(chain[i].Code) {
			return false
		}
	}
	return true
}

// NewPath assembles a Path from an end occurrence and its ordered
// ancestor occurrences without re-walking linkage. Callers that haven't
// already checked ValidChain should do so first (cross-version path
// reconstruction, spec.md §4.9, is the one caller outside this package).
func NewPath(g *Gmod, parents []Occurrence, end Occurrence) *Path {
	nodes := make([]Occurrence, 0, len(parents)+1)
	nodes = append(nodes, parents...)
	nodes = append(nodes, end)
	return &Path{gmod: g, nodes: nodes}
}

// ValidChain reports whether parentNodes -> endNode forms a structurally
// valid chain within g, without requiring an existing Path receiver.
func ValidChain(g *Gmod, parentNodes []Occurrence, endNode Occurrence) bool {
	return (&Path{gmod: g}).IsValid(parentNodes, endNode)
}

// OccurrenceOf builds the Occurrence for node n within g, carrying n's
// location if it has one. It fails if n's code isn't registered in g.
func OccurrenceOf(g *Gmod, n GmodNode) (Occurrence, bool) {
	idx, ok := g.indexOf(n.code)
	if !ok {
		return Occurrence{}, false
	}
	occ := Occurrence{NodeIndex: idx, Code: n.code}
	if loc, has := n.Location(); has {
		occ.Location = loc
		occ.HasLocation = true
	}
	return occ, true
}
