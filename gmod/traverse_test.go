package gmod

import (
	"testing"

	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

func TestTraverseVisitsEveryNode(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var codes []string
	g.Traverse(func(parents []GmodNode, node GmodNode) TraversalHandlerResult {
		codes = append(codes, node.Code())
		return TraversalContinue
	})

	want := map[string]bool{"VE": true, "400a": true, "411.1": true, "411.1i": true}
	if len(codes) != len(want) {
		t.Fatalf("visited %v, want one visit per %v", codes, want)
	}
	for _, c := range codes {
		if !want[c] {
			t.Errorf("unexpected code %q visited", c)
		}
	}
}

func TestTraverseSkipSubtreePrunesChildren(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var codes []string
	g.Traverse(func(parents []GmodNode, node GmodNode) TraversalHandlerResult {
		codes = append(codes, node.Code())
		if node.Code() == "400a" {
			return TraversalSkipSubtree
		}
		return TraversalContinue
	})

	for _, c := range codes {
		if c == "411.1" || c == "411.1i" {
			t.Fatalf("visited %v, expected 400a's children to be pruned", codes)
		}
	}
}

func TestTraverseStopEndsWalkImmediately(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var codes []string
	g.Traverse(func(parents []GmodNode, node GmodNode) TraversalHandlerResult {
		codes = append(codes, node.Code())
		return TraversalStop
	})

	if len(codes) != 1 || codes[0] != "VE" {
		t.Fatalf("codes = %v, want just [VE]", codes)
	}
}

func TestTraverseReportsParentPath(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var gotParents []string
	g.Traverse(func(parents []GmodNode, node GmodNode) TraversalHandlerResult {
		if node.Code() == "411.1" {
			for _, p := range parents {
				gotParents = append(gotParents, p.Code())
			}
		}
		return TraversalContinue
	})

	if len(gotParents) != 2 || gotParents[0] != "VE" || gotParents[1] != "400a" {
		t.Fatalf("parents of 411.1 = %v, want [VE 400a]", gotParents)
	}
}

func TestTraverseFromStartsAtGivenNode(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var codes []string
	ok := g.TraverseFrom("400a", func(parents []GmodNode, node GmodNode) TraversalHandlerResult {
		codes = append(codes, node.Code())
		return TraversalContinue
	})
	if !ok {
		t.Fatal("expected TraverseFrom(400a) to find its start node")
	}
	if len(codes) != 3 || codes[0] != "400a" {
		t.Fatalf("codes = %v, want [400a 411.1 411.1i] in some order starting at 400a", codes)
	}

	if g.TraverseFrom("missing", func(parents []GmodNode, node GmodNode) TraversalHandlerResult {
		return TraversalContinue
	}) {
		t.Fatal("expected TraverseFrom to report false for an unknown code")
	}
}
