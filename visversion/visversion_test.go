package visversion

import "testing"

func TestParseAcceptsBothSeparators(t *testing.T) {
	for _, s := range []string{"3-4a", "3.4a", "vis-3-4a", "vis-3.4a"} {
		v, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
		if v != V3_4a {
			t.Fatalf("Parse(%q) = %v, want V3_4a", s, v)
		}
	}
}

func TestParseUnrecognized(t *testing.T) {
	if _, err := Parse("9-9z"); err == nil {
		t.Fatal("expected error for unrecognized version")
	}
}

func TestSuccessorChain(t *testing.T) {
	v := V3_4a
	for _, want := range []VisVersion{V3_5a, V3_6a, V3_7a, V3_8a} {
		next, ok := v.Successor()
		if !ok || next != want {
			t.Fatalf("Successor of %v = (%v, %v), want (%v, true)", v, next, ok, want)
		}
		v = next
	}
	if _, ok := v.Successor(); ok {
		t.Fatal("expected no successor past the latest version")
	}
}

func TestCompareOrdering(t *testing.T) {
	if V3_4a.Compare(V3_8a) >= 0 {
		t.Fatal("V3_4a should sort before V3_8a")
	}
	if V3_8a.Compare(V3_4a) <= 0 {
		t.Fatal("V3_8a should sort after V3_4a")
	}
	if V3_5a.Compare(V3_5a) != 0 {
		t.Fatal("a version should compare equal to itself")
	}
}

func TestLatest(t *testing.T) {
	if Latest() != V3_8a {
		t.Fatalf("Latest() = %v, want V3_8a", Latest())
	}
}
