package versioning

import (
	"testing"

	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

func TestConvertNodeAppliesCodeRename(t *testing.T) {
	gmods, vn := renameFixture(t)

	source, ok := gmods[visversion.V3_4a].TryGetNode("411.1")
	if !ok {
		t.Fatal("expected to find 411.1 in the 3-4a gmod")
	}

	converted, ok := vn.ConvertNode(visversion.V3_4a, source, visversion.V3_5a, gmods)
	if !ok {
		t.Fatal("expected 411.1 to convert to 3-5a")
	}
	if converted.Code() != "411.2" {
		t.Fatalf("converted.Code() = %q, want %q", converted.Code(), "411.2")
	}
}

func TestConvertNodeUnchangedCodePassesThrough(t *testing.T) {
	gmods, vn := renameFixture(t)

	source, ok := gmods[visversion.V3_4a].TryGetNode("400a")
	if !ok {
		t.Fatal("expected to find 400a in the 3-4a gmod")
	}

	converted, ok := vn.ConvertNode(visversion.V3_4a, source, visversion.V3_5a, gmods)
	if !ok {
		t.Fatal("expected 400a to convert to 3-5a")
	}
	if converted.Code() != "400a" {
		t.Fatalf("converted.Code() = %q, want %q", converted.Code(), "400a")
	}
}

func TestConvertNodeFailsWhenTargetMissing(t *testing.T) {
	gmods, vn := renameFixture(t)

	source, ok := gmods[visversion.V3_4a].TryGetNode("411.1")
	if !ok {
		t.Fatal("expected to find 411.1 in the 3-4a gmod")
	}

	delete(gmods, visversion.V3_5a)
	if _, ok := vn.ConvertNode(visversion.V3_4a, source, visversion.V3_5a, gmods); ok {
		t.Fatal("expected conversion to fail once the target gmod is unavailable")
	}
}
