package gmod

import (
	"testing"

	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

func TestPathStringRoundTrip(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p, err := g.TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}
	if got, want := p.String(), "400a/411.1"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFullPathInjectsMissingRoot(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p, err := g.TryParsePath("411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}

	full := p.FullPath()
	codes := make([]string, len(full))
	for i, occ := range full {
		codes[i] = occ.Code
	}

	want := []string{"VE", "400a", "411.1"}
	if len(codes) != len(want) {
		t.Fatalf("FullPath codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("FullPath codes = %v, want %v", codes, want)
		}
	}
}

func TestFullPathAlreadyRootedIsUnchanged(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p, err := g.TryParseFullPath("VE/400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParseFullPath: %v", err)
	}

	full := p.FullPath()
	if len(full) != 3 || full[0].Code != "VE" {
		t.Fatalf("FullPath() = %+v, want a 3-step path starting at VE", full)
	}
}

func TestCommonNamesUsesOverride(t *testing.T) {
	d := sampleDto()
	for i := range d.Nodes {
		if d.Nodes[i].Code == "400a" {
			d.Nodes[i].NormalAssignmentNames = map[string]string{"411.1": "Main engine"}
		}
	}
	g, err := Build(visversion.V3_4a, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p, err := g.TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}

	names := p.CommonNames()
	if len(names) != 2 || names[1] != "Main engine" {
		t.Fatalf("CommonNames() = %v, want override on the second entry", names)
	}
}

func TestIsValidChecksLinkage(t *testing.T) {
	g, err := Build(visversion.V3_4a, sampleDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	p, err := g.TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}

	parents := p.Occurrences()[:1]
	end := p.Occurrences()[1]
	if !p.IsValid(parents, end) {
		t.Fatal("400a -> 411.1 is a real edge, expected IsValid to succeed")
	}

	badEnd := Occurrence{Code: "400a"}
	if p.IsValid(parents, badEnd) {
		t.Fatal("400a is not its own child, expected IsValid to fail")
	}
}
