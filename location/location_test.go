package location

import (
	"testing"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
)

func testGrammar() *Grammar {
	return Build(dto.Locations{
		VisVersion: "3-4a",
		RelativeLocations: []dto.LocationRelativeLocation{
			{Code: "P", Name: "Port"},
			{Code: "S", Name: "Starboard"},
			{Code: "C", Name: "Centre"},
			{Code: "U", Name: "Upper"},
			{Code: "L", Name: "Lower"},
		},
	})
}

func TestParseCanonicalRoundTrip(t *testing.T) {
	g := testGrammar()

	cases := []string{"11", "P", "UP", "PU", "11P"}
	for _, c := range cases {
		loc, err := g.Parse(c)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", c, err)
		}
		loc2, err := g.Parse(loc.String())
		if err != nil {
			t.Fatalf("re-parsing canonical form %q failed: %v", loc.String(), err)
		}
		if !loc.Equal(loc2) {
			t.Fatalf("canonical form %q did not round-trip", loc.String())
		}
	}
}

func TestParseSortsLettersAlphabetically(t *testing.T) {
	g := testGrammar()
	loc, err := g.Parse("UP")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if loc.String() != "PU" {
		t.Fatalf("Parse(UP).String() = %q, want %q", loc.String(), "PU")
	}
}

func TestParseRejectsUnknownLetter(t *testing.T) {
	g := testGrammar()
	if _, err := g.Parse("Z"); err == nil {
		t.Fatal("expected error for unrecognized letter")
	}
}

func TestParseRejectsDuplicateGroup(t *testing.T) {
	g := testGrammar()
	if _, err := g.Parse("PS"); err == nil {
		t.Fatal("expected error for two letters from the same group")
	}
}

func TestParseRejectsWhitespace(t *testing.T) {
	g := testGrammar()
	for _, s := range []string{"", " ", " P", "P "} {
		if _, err := g.Parse(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestMultipleDigitGroups(t *testing.T) {
	g := testGrammar()
	loc, err := g.Parse("11P22")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if loc.String() != "11P22" {
		t.Fatalf("String() = %q, want %q", loc.String(), "11P22")
	}
}
