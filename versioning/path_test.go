package versioning

import (
	"testing"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

func TestConvertPathAppliesCodeRenameDirectly(t *testing.T) {
	gmods, vn := renameFixture(t)

	p, err := gmods[visversion.V3_4a].TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}

	converted, err := vn.ConvertPath(visversion.V3_4a, p, visversion.V3_5a, gmods)
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}
	if converted == nil {
		t.Fatal("expected a convertible path")
	}
	if got, want := converted.String(), "VE/400a/411.2"; got != want {
		t.Fatalf("converted.String() = %q, want %q", got, want)
	}
}

// insertedAncestorFixture models a new intermediate node ("400b") spliced
// between VE and 400a in 3-5a, with every source code unchanged: a path
// built node-by-node from the unconverted codes no longer forms a direct
// parent chain, forcing the backward-walk repair in convertPathInternal.
func insertedAncestorFixture(t *testing.T) (testGmods, *Versioning) {
	t.Helper()

	v34a, err := gmod.Build(visversion.V3_4a, dto.Gmod{
		VisVersion: "3-4a",
		Nodes: []dto.GmodNode{
			{Code: "VE", Category: "ASSET", Type: "TYPE", Name: "Vessel"},
			{Code: "400a", Category: "ASSET FUNCTION", Type: "GROUP", Name: "Propulsion"},
			{Code: "411.1", Category: "ASSET FUNCTION", Type: "LEAF", Name: "Engine"},
		},
		Edges: []dto.GmodChildEdge{
			{ParentCode: "VE", ChildCode: "400a"},
			{ParentCode: "400a", ChildCode: "411.1"},
		},
	})
	if err != nil {
		t.Fatalf("Build 3-4a: %v", err)
	}

	v35a, err := gmod.Build(visversion.V3_5a, dto.Gmod{
		VisVersion: "3-5a",
		Nodes: []dto.GmodNode{
			{Code: "VE", Category: "ASSET", Type: "TYPE", Name: "Vessel"},
			{Code: "400b", Category: "ASSET FUNCTION", Type: "GROUP", Name: "Propulsion systems"},
			{Code: "400a", Category: "ASSET FUNCTION", Type: "GROUP", Name: "Propulsion"},
			{Code: "411.1", Category: "ASSET FUNCTION", Type: "LEAF", Name: "Engine"},
		},
		Edges: []dto.GmodChildEdge{
			{ParentCode: "VE", ChildCode: "400b"},
			{ParentCode: "400b", ChildCode: "400a"},
			{ParentCode: "400a", ChildCode: "411.1"},
		},
	})
	if err != nil {
		t.Fatalf("Build 3-5a: %v", err)
	}

	vn, err := Build(dto.GmodVersioning{
		Tables: map[string]dto.VersioningTargetTable{
			"3-5a": {},
		},
	})
	if err != nil {
		t.Fatalf("versioning.Build: %v", err)
	}

	return testGmods{visversion.V3_4a: v34a, visversion.V3_5a: v35a}, vn
}

func TestConvertPathSplicesInsertedAncestor(t *testing.T) {
	gmods, vn := insertedAncestorFixture(t)

	p, err := gmods[visversion.V3_4a].TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}

	converted, err := vn.ConvertPath(visversion.V3_4a, p, visversion.V3_5a, gmods)
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}
	if converted == nil {
		t.Fatal("expected a convertible path")
	}
	if got, want := converted.String(), "VE/400b/400a/411.1"; got != want {
		t.Fatalf("converted.String() = %q, want %q", got, want)
	}
}

func TestConvertPathIsMemoized(t *testing.T) {
	gmods, vn := renameFixture(t)

	p, err := gmods[visversion.V3_4a].TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}

	first, err := vn.ConvertPath(visversion.V3_4a, p, visversion.V3_5a, gmods)
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}

	key := cacheKey{sourceVersion: visversion.V3_4a, sourcePath: p.String(), targetVersion: visversion.V3_5a}
	cached, convertible, found := vn.cache.get(key)
	if !found || !convertible {
		t.Fatal("expected the first conversion to populate the cache")
	}
	if cached.String() != first.String() {
		t.Fatalf("cached path %q != returned path %q", cached.String(), first.String())
	}
}

func TestConvertPathRejectsEmptyPath(t *testing.T) {
	_, vn := renameFixture(t)
	if _, err := vn.ConvertPath(visversion.V3_4a, nil, visversion.V3_5a, testGmods{}); err == nil {
		t.Fatal("expected an error converting a nil path")
	}
}
