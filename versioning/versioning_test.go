package versioning

import (
	"testing"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// testGmods is a minimal GmodSource backed by a fixed map, standing in for
// the façade's per-version lazy cache.
type testGmods map[visversion.VisVersion]*gmod.Gmod

func (m testGmods) Gmod(v visversion.VisVersion) (*gmod.Gmod, bool) {
	g, ok := m[v]
	return g, ok
}

// renameFixture models a single node code rename between 3-4a and 3-5a:
// "411.1" -> "411.2", with the rest of the tree unchanged.
func renameFixture(t *testing.T) (testGmods, *Versioning) {
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
			{Code: "400a", Category: "ASSET FUNCTION", Type: "GROUP", Name: "Propulsion"},
			{Code: "411.2", Category: "ASSET FUNCTION", Type: "LEAF", Name: "Engine"},
		},
		Edges: []dto.GmodChildEdge{
			{ParentCode: "VE", ChildCode: "400a"},
			{ParentCode: "400a", ChildCode: "411.2"},
		},
	})
	if err != nil {
		t.Fatalf("Build 3-5a: %v", err)
	}

	vn, err := Build(renameFixtureDto())
	if err != nil {
		t.Fatalf("versioning.Build: %v", err)
	}

	return testGmods{visversion.V3_4a: v34a, visversion.V3_5a: v35a}, vn
}

// renameFixtureDto is the GmodVersioningDto half of renameFixture, split
// out so snapshot tests can rebuild a fresh Versioning from the same
// table without needing a live *Versioning to copy from.
func renameFixtureDto() dto.GmodVersioning {
	target := "411.2"
	return dto.GmodVersioning{
		Tables: map[string]dto.VersioningTargetTable{
			"3-5a": {
				"411.1": dto.VersioningNodeConversion{TargetCode: &target},
			},
		},
	}
}

func TestBuildParsesTargetVersionTables(t *testing.T) {
	_, vn := renameFixture(t)
	if _, ok := vn.tables[visversion.V3_5a]["411.1"]; !ok {
		t.Fatal("expected a conversion table entry for 411.1 under 3-5a")
	}
}

func TestBuildRejectsUnrecognizedTargetVersion(t *testing.T) {
	_, err := Build(dto.GmodVersioning{
		Tables: map[string]dto.VersioningTargetTable{
			"9-9z": {},
		},
	})
	if err == nil {
		t.Fatal("expected an error for an unrecognized target version token")
	}
}
