package gmod

import (
	"testing"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

func sampleDto() dto.Gmod {
	return dto.Gmod{
		VisVersion: "3-4a",
		Nodes: []dto.GmodNode{
			{Code: "VE", Category: "ASSET", Type: "TYPE", Name: "Vessel"},
			{Code: "400a", Category: "ASSET FUNCTION", Type: "GROUP", Name: "Propulsion"},
			{Code: "411.1", Category: "ASSET FUNCTION", Type: "LEAF", Name: "Engine"},
			{Code: "411.1i", Category: "ASSET FUNCTION", Type: "COMPOSITION", Name: "Engine set"},
		},
		Edges: []dto.GmodChildEdge{
			{ParentCode: "VE", ChildCode: "400a"},
			{ParentCode: "400a", ChildCode: "411.1"},
			{ParentCode: "400a", ChildCode: "411.1i"},
		},
	}
}

func TestBuildResolvesEdgesAndRoot(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	root, ok := g.RootNode()
	if !ok || root.Code() != "VE" {
		t.Fatalf("RootNode() = %+v, %v", root, ok)
	}

	if !root.IsChild("400a") {
		t.Fatal("400a should be a child of VE")
	}
	if root.IsChild("411.1") {
		t.Fatal("411.1 should not be a direct child of VE")
	}
}

func TestBuildRejectsUnknownEdgeCode(t *testing.T) {
	d := sampleDto()
	d.Edges = append(d.Edges, dto.GmodChildEdge{ParentCode: "VE", ChildCode: "nope"})
	if _, err := Build(visversion.V3_4a, d); err == nil {
		t.Fatal("expected an error for an edge referencing an unknown child code")
	}
}

func TestTryGetNode(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, ok := g.TryGetNode("411.1"); !ok {
		t.Fatal("expected to find 411.1")
	}
	if _, ok := g.TryGetNode("missing"); ok {
		t.Fatal("did not expect to find a node for an unknown code")
	}
}

func TestPathExistsBetweenFindsIntermediate(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	exists, remaining := g.PathExistsBetween([]string{"VE"}, "411.1")
	if !exists {
		t.Fatal("expected a path from VE to 411.1")
	}
	if len(remaining) != 1 || remaining[0] != "400a" {
		t.Fatalf("remaining = %v, want [400a]", remaining)
	}
}

func TestPathExistsBetweenNoPath(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	exists, _ := g.PathExistsBetween([]string{"411.1"}, "411.1i")
	if exists {
		t.Fatal("411.1 and 411.1i are siblings, expected no path between them")
	}
}

func TestTryParsePathValidatesLinkage(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p, err := g.TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}
	if p.Len() != 2 || p.End().Code != "411.1" {
		t.Fatalf("unexpected path shape: %+v", p.Occurrences())
	}

	if _, err := g.TryParsePath("400a/411.1i/nope", nil); err == nil {
		t.Fatal("expected an error parsing a path with an unknown code")
	}

	if _, err := g.TryParsePath("VE/411.1", nil); err == nil {
		t.Fatal("411.1 is not a direct child of VE, expected a linkage error")
	}
}

func TestTryParseFullPathRequiresRoot(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := g.TryParseFullPath("400a/411.1", nil); err == nil {
		t.Fatal("expected full path parsing to require starting at VE")
	}

	p, err := g.TryParseFullPath("VE/400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParseFullPath: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
}

func TestNodeCategorizationPredicates(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	composition, _ := g.TryGetNode("411.1i")
	if !composition.IsFunctionComposition() {
		t.Error("411.1i should be a function composition")
	}
	if !composition.IsIndividualizable(false, false) {
		t.Error("411.1i ends in 'i', expected individualizable even outside a set")
	}

	leaf, _ := g.TryGetNode("411.1")
	if !leaf.IsLeafNode() {
		t.Error("411.1 should be a leaf node")
	}
	if !leaf.IsIndividualizable(false, false) {
		t.Error("a plain leaf node should be individualizable")
	}

	asset, _ := g.TryGetNode("VE")
	if !asset.IsAsset() {
		t.Error("VE should be categorized as an asset")
	}
}
