package gmod

import (
	"fmt"
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/internal/chd"
	"github.com/ronan-fesselier/vista-sdk-go/location"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// pathWalkLimit bounds the depth-first search PathExistsBetween performs,
// matching spec.md §4.4's "depth-limited DAG walk". The GMOD is a few
// thousand nodes deep at most, so a limit this generous only ever triggers
// on a cyclic or malformed resource file.
const pathWalkLimit = 4096

// Gmod is the frozen, per-VIS-version container of GmodNode values
// (spec.md §3/§4.4, C5). All nodes live in a single arena slice; edges
// between them are arena indices, never pointers.
type Gmod struct {
	visVersion visversion.VisVersion
	nodes      []GmodNode
	dict       *chd.Dictionary[int] // code -> arena index
	rootIdx    int
}

// Build constructs a Gmod from a GmodDto: every node is instantiated, then
// every edge is resolved and verified to reference existing codes
// (spec.md §4.4).
func Build(v visversion.VisVersion, d dto.Gmod) (*Gmod, error) {
	g := &Gmod{visVersion: v, rootIdx: -1}

	codeToIdx := make(map[string]int, len(d.Nodes))
	g.nodes = make([]GmodNode, len(d.Nodes))
	for i, n := range d.Nodes {
		if _, dup := codeToIdx[n.Code]; dup {
			return nil, fmt.Errorf("gmod: duplicate node code %q", n.Code)
		}
		codeToIdx[n.Code] = i
		g.nodes[i] = GmodNode{
			code:       n.Code,
			visVersion: v,
			childSet:   make(map[string]bool),
			metadata: Metadata{
				Category:              n.Category,
				Type:                  n.Type,
				Name:                  n.Name,
				CommonName:            derefOr(n.CommonName, ""),
				Definition:            derefOr(n.Definition, ""),
				CommonDefinition:      derefOr(n.CommonDefinition, ""),
				InstallSubstructure:   n.InstallSubstructure,
				NormalAssignmentNames: n.NormalAssignmentNames,
			},
		}
		if n.Code == rootCode {
			g.rootIdx = i
		}
	}

	for _, e := range d.Edges {
		pi, ok := codeToIdx[e.ParentCode]
		if !ok {
			return nil, fmt.Errorf("gmod: edge references unknown parent code %q", e.ParentCode)
		}
		ci, ok := codeToIdx[e.ChildCode]
		if !ok {
			return nil, fmt.Errorf("gmod: edge references unknown child code %q", e.ChildCode)
		}
		child := g.nodes[ci]
		g.nodes[pi].children = append(g.nodes[pi].children, childRef{
			index:    ci,
			code:     child.code,
			category: child.metadata.Category,
			typ:      child.metadata.Type,
		})
		g.nodes[pi].childSet[e.ChildCode] = true
		g.nodes[ci].parents = append(g.nodes[ci].parents, pi)
	}

	pairs := make([]chd.Pair[int], len(d.Nodes))
	for i, n := range g.nodes {
		pairs[i] = chd.Pair[int]{Key: n.code, Value: i}
	}
	g.dict = chd.Build(pairs)

	return g, nil
}

func derefOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// VisVersion returns the VIS version this Gmod was built for.
func (g *Gmod) VisVersion() visversion.VisVersion { return g.visVersion }

// RootNode returns the GMOD root node ("VE").
func (g *Gmod) RootNode() (GmodNode, bool) {
	if g.rootIdx < 0 {
		return GmodNode{}, false
	}
	return g.nodes[g.rootIdx], true
}

// TryGetNode looks up a node by code.
func (g *Gmod) TryGetNode(code string) (GmodNode, bool) {
	idx, ok := g.dict.Lookup(code)
	if !ok {
		return GmodNode{}, false
	}
	return g.nodes[idx], true
}

func (g *Gmod) indexOf(code string) (int, bool) {
	return g.dict.Lookup(code)
}

// ProductType returns n's product-type child node (the node GmodNode.cpp's
// productType() exposes), resolved against this Gmod's arena, if n has the
// function-category/single-PRODUCT-TYPE-child shape that relationship
// requires.
func (g *Gmod) ProductType(n GmodNode) (GmodNode, bool) {
	c, ok := n.productTypeChild()
	if !ok {
		return GmodNode{}, false
	}
	return g.nodes[c.index], true
}

// NodeFor resolves an Occurrence back to its full GmodNode, carrying the
// occurrence's location if it has one (an occurrence's location is
// attached at parse time, never stored on the arena node itself).
func (g *Gmod) NodeFor(o Occurrence) GmodNode {
	n := g.nodes[o.NodeIndex]
	if o.HasLocation {
		n = n.WithLocation(o.Location)
	}
	return n
}

// PathExistsBetween performs a depth-limited forward walk from the last
// element of startParents looking for target. On success it returns the
// intermediate node codes encountered along the discovered path,
// excluding startParents' last element and excluding target itself
// (spec.md §4.4, used by the path-repair step of §4.9).
func (g *Gmod) PathExistsBetween(startParents []string, target string) (exists bool, remaining []string) {
	if len(startParents) == 0 {
		return false, nil
	}
	startCode := startParents[len(startParents)-1]
	startIdx, ok := g.indexOf(startCode)
	if !ok {
		return false, nil
	}
	targetIdx, ok := g.indexOf(target)
	if !ok {
		return false, nil
	}
	if startIdx == targetIdx {
		return true, nil
	}

	type frame struct {
		idx  int
		path []int
	}
	visited := make(map[int]bool)
	stack := []frame{{idx: startIdx}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[top.idx] {
			continue
		}
		visited[top.idx] = true
		if len(top.path) >= pathWalkLimit {
			continue
		}

		for _, c := range g.nodes[top.idx].children {
			if c.index == targetIdx {
				out := make([]string, len(top.path))
				for i, pi := range top.path {
					out[i] = g.nodes[pi].code
				}
				return true, out
			}
			if visited[c.index] {
				continue
			}
			nextPath := append(append([]int(nil), top.path...), c.index)
			stack = append(stack, frame{idx: c.index, path: nextPath})
		}
	}
	return false, nil
}

// TryParsePath parses a slash-separated sequence of "code[-location]"
// segments into a validated Path, verifying parent-child linkage between
// consecutive steps but without requiring the sequence to start at the
// root (spec.md §4.4).
func (g *Gmod) TryParsePath(s string, locGrammar *location.Grammar) (*Path, error) {
	return g.parsePath(s, locGrammar, false)
}

// TryParseFullPath is TryParsePath but additionally requires the sequence
// to begin at "VE" and every step to be a declared child of the previous
// one (spec.md §4.4).
func (g *Gmod) TryParseFullPath(s string, locGrammar *location.Grammar) (*Path, error) {
	return g.parsePath(s, locGrammar, true)
}

func (g *Gmod) parsePath(s string, locGrammar *location.Grammar, full bool) (*Path, error) {
	segments := strings.Split(s, "/")
	if len(segments) == 0 || (len(segments) == 1 && segments[0] == "") {
		return nil, fmt.Errorf("gmod: empty path")
	}

	occurrences := make([]Occurrence, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("gmod: empty path segment")
		}
		code, locStr, hasLocStr := strings.Cut(seg, "-")

		idx, ok := g.indexOf(code)
		if !ok {
			return nil, fmt.Errorf("gmod: unknown node code %q", code)
		}

		occ := Occurrence{NodeIndex: idx, Code: code}
		if hasLocStr {
			if locGrammar == nil {
				return nil, fmt.Errorf("gmod: segment %q carries a location but no Locations grammar was supplied", seg)
			}
			loc, err := locGrammar.Parse(locStr)
			if err != nil {
				return nil, fmt.Errorf("gmod: segment %q: %w", seg, err)
			}
			occ.Location = loc
			occ.HasLocation = true
		}
		occurrences = append(occurrences, occ)
	}

	if full {
		if occurrences[0].Code != rootCode {
			return nil, fmt.Errorf("gmod: full path must start at %q, got %q", rootCode, occurrences[0].Code)
		}
	}

	for i := 1; i < len(occurrences); i++ {
		parent := g.nodes[occurrences[i-1].NodeIndex]
		child := occurrences[i]
		if !parent.IsChild(child.Code) {
			return nil, fmt.Errorf("gmod: %q is not a child of %q", child.Code, parent.code)
		}
	}

	return &Path{gmod: g, nodes: occurrences}, nil
}
