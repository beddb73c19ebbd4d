package universalid

import (
	"testing"

	"github.com/ronan-fesselier/vista-sdk-go/codebook"
	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/localid"
	"github.com/ronan-fesselier/vista-sdk-go/location"
	"github.com/ronan-fesselier/vista-sdk-go/parseerrors"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

type stubResolver struct {
	v   visversion.VisVersion
	g   *gmod.Gmod
	cbs *codebook.Codebooks
}

func (r *stubResolver) Gmod(v visversion.VisVersion) (*gmod.Gmod, bool) {
	if v != r.v {
		return nil, false
	}
	return r.g, true
}

func (r *stubResolver) Codebooks(v visversion.VisVersion) (*codebook.Codebooks, bool) {
	if v != r.v {
		return nil, false
	}
	return r.cbs, true
}

func (r *stubResolver) Locations(visversion.VisVersion) (*location.Grammar, bool) {
	return nil, false
}

func newStubResolver(t *testing.T) *stubResolver {
	t.Helper()
	g, err := gmod.Build(visversion.V3_4a, dto.Gmod{
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
		t.Fatalf("gmod.Build: %v", err)
	}
	cbs := codebook.NewCodebooks(dto.Codebooks{
		VisVersion: "3-4a",
		Codebooks: []dto.Codebook{
			{Name: string(codebook.Quantity), Values: dto.CodebookValues{"misc": {"temperature"}}},
		},
	})
	return &stubResolver{v: visversion.V3_4a, g: g, cbs: cbs}
}

func buildLocalBuilder(t *testing.T, r *stubResolver) localid.Builder {
	t.Helper()
	path, err := r.g.TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}
	tag, ok := r.cbs.TryCreateTag(codebook.Quantity, "temperature")
	if !ok {
		t.Fatal("expected to create a quantity tag")
	}
	return localid.NewBuilder().
		WithVisVersion(visversion.V3_4a).
		WithItems(localid.NewItems(path, nil)).
		WithMetadataTag(tag)
}

func TestUniversalIdBuilderValidity(t *testing.T) {
	r := newStubResolver(t)
	lb := buildLocalBuilder(t, r)

	imo, err := New(9074729)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b := NewBuilder()
	if b.IsValid() {
		t.Fatal("an empty builder should not be valid")
	}

	b = b.WithImoNumber(imo).WithLocalID(lb)
	if !b.IsValid() {
		t.Fatal("a builder with both halves set should be valid")
	}

	id, err := Build(b)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if id.ImoNumber().Int() != 9074729 {
		t.Fatalf("ImoNumber() = %v", id.ImoNumber())
	}
}

func TestUniversalIdStringAndParseRoundTrip(t *testing.T) {
	r := newStubResolver(t)
	lb := buildLocalBuilder(t, r)
	imo, _ := New(9074729)

	b := NewBuilder().WithImoNumber(imo).WithLocalID(lb)
	s := b.String()

	if got, want := s[:len(namingEntity)], namingEntity; got != want {
		t.Fatalf("String() prefix = %q, want %q", got, want)
	}

	parsed, errs := TryParseWithErrors(s, r)
	if !errs.IsEmpty() {
		t.Fatalf("TryParseWithErrors(%q) = %v", s, errs.String())
	}
	if !parsed.IsValid() {
		t.Fatal("round-tripped builder should be valid")
	}
	gotImo, _ := parsed.ImoNumber()
	if gotImo.Int() != 9074729 {
		t.Fatalf("ImoNumber() = %v", gotImo)
	}
}

func TestTryParseRejectsMissingBoundary(t *testing.T) {
	r := newStubResolver(t)
	if _, ok := TryParse("data.dnv.com/IMO9074729", r); ok {
		t.Fatal("expected failure without a /dnv-v boundary")
	}
}

func TestTryParseRejectsWrongNamingEntity(t *testing.T) {
	r := newStubResolver(t)
	lb := buildLocalBuilder(t, r)
	imo, _ := New(9074729)
	s := NewBuilder().WithImoNumber(imo).WithLocalID(lb).String()

	wrongHost := "other.example.com" + s[len(namingEntity):]
	_, errs := TryParseWithErrors(wrongHost, r)
	if !errs.HasError(parseerrors.KindNamingEntity) {
		t.Fatalf("TryParseWithErrors(%q) errors = %v, want a NamingEntity error", wrongHost, errs.String())
	}

	noHost := s[len(namingEntity):]
	_, errs = TryParseWithErrors(noHost, r)
	if !errs.HasError(parseerrors.KindNamingEntity) {
		t.Fatalf("TryParseWithErrors(%q) errors = %v, want a NamingEntity error", noHost, errs.String())
	}
}
