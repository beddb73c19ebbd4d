package universalid

import (
	"fmt"
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/localid"
	"github.com/ronan-fesselier/vista-sdk-go/parseerrors"
)

// namingEntity is the fixed host portion of a Universal ID's string form
// (UniversalIdBuilder::namingEntity).
const namingEntity = "data.dnv.com"

// Builder is the immutable fluent aggregate over (ImoNumber?,
// LocalIdBuilder?) spec.md §4.8 describes.
type Builder struct {
	imo      ImoNumber
	hasImo   bool
	local    localid.Builder
	hasLocal bool
}

// NewBuilder returns the empty builder.
func NewBuilder() Builder {
	return Builder{}
}

// WithImoNumber returns a copy of b with the IMO number set.
func (b Builder) WithImoNumber(n ImoNumber) Builder {
	b.imo = n
	b.hasImo = true
	return b
}

// WithoutImoNumber returns a copy of b with no IMO number set.
func (b Builder) WithoutImoNumber() Builder {
	b.imo = ImoNumber{}
	b.hasImo = false
	return b
}

// ImoNumber returns the set IMO number, if any.
func (b Builder) ImoNumber() (ImoNumber, bool) { return b.imo, b.hasImo }

// WithLocalID returns a copy of b with the LocalIdBuilder set.
func (b Builder) WithLocalID(l localid.Builder) Builder {
	b.local = l
	b.hasLocal = true
	return b
}

// WithoutLocalID returns a copy of b with no LocalIdBuilder set.
func (b Builder) WithoutLocalID() Builder {
	b.local = localid.Builder{}
	b.hasLocal = false
	return b
}

// LocalID returns the set LocalIdBuilder, if any.
func (b Builder) LocalID() (localid.Builder, bool) { return b.local, b.hasLocal }

// IsValid reports spec.md §4.8's "both present and LocalIdBuilder.is_valid".
func (b Builder) IsValid() bool {
	return b.hasImo && b.hasLocal && b.local.IsValid()
}

// String renders "data.dnv.com/IMO<digits>" followed by the Local ID
// string, when both halves are set.
func (b Builder) String() string {
	var sb strings.Builder
	sb.WriteString(namingEntity)
	if b.hasImo {
		sb.WriteByte('/')
		sb.WriteString(b.imo.String())
	}
	if b.hasLocal {
		sb.WriteString(b.local.String())
	}
	return sb.String()
}

// UniversalId is the frozen pair (ImoNumber, LocalId) spec.md §3 defines.
type UniversalId struct {
	imo   ImoNumber
	local localid.LocalID
}

// Build freezes b into a UniversalId, failing if b is not valid.
func Build(b Builder) (UniversalId, error) {
	if !b.IsValid() {
		return UniversalId{}, fmt.Errorf("universalid: builder is not valid: %s", b.String())
	}
	local, err := localid.Build(b.local)
	if err != nil {
		return UniversalId{}, fmt.Errorf("universalid: %w", err)
	}
	return UniversalId{imo: b.imo, local: local}, nil
}

// ImoNumber returns the wrapped IMO number.
func (id UniversalId) ImoNumber() ImoNumber { return id.imo }

// LocalID returns the wrapped Local ID.
func (id UniversalId) LocalID() localid.LocalID { return id.local }

// String renders "data.dnv.com/IMO<digits>" + the Local ID string
// (spec.md §3).
func (id UniversalId) String() string {
	return namingEntity + "/" + id.imo.String() + id.local.String()
}

// TryParseWithErrors locates the "/dnv-v" boundary marking the start of
// the embedded Local ID string; everything before it is the IMO portion,
// everything from that slash on is parsed as a Local ID (spec.md §4.8).
func TryParseWithErrors(s string, resolver localid.Resolver) (Builder, parseerrors.Errors) {
	var errs parseerrors.Errors
	b := NewBuilder()

	idx := strings.Index(s, "/dnv-v")
	if idx < 0 {
		errs.Add(parseerrors.KindFormatting, "universal id string does not contain a \"/dnv-v\" boundary")
		return b, errs
	}

	prefix := s[:idx]
	localSeg := s[idx:]

	if !strings.HasPrefix(prefix, namingEntity) {
		errs.Add(parseerrors.KindNamingEntity, fmt.Sprintf("universal id prefix is not %q: %q", namingEntity, prefix))
	}
	prefix = strings.TrimPrefix(prefix, namingEntity)
	prefix = strings.TrimPrefix(prefix, "/")
	if imo, ok := TryParseImoNumber(prefix); ok {
		b = b.WithImoNumber(imo)
	} else {
		errs.Add(parseerrors.KindIMONumber, fmt.Sprintf("invalid IMO number segment %q", prefix))
	}

	localBuilder, localErrs := localid.TryParseWithErrors(localSeg, resolver)
	for _, e := range localErrs.Entries() {
		errs.Add(e.Kind, e.Message)
	}
	if localErrs.IsEmpty() {
		b = b.WithLocalID(localBuilder)
	}

	return b, errs
}

// TryParse is TryParseWithErrors, returning ok instead of the errors.
func TryParse(s string, resolver localid.Resolver) (Builder, bool) {
	b, errs := TryParseWithErrors(s, resolver)
	return b, errs.IsEmpty()
}
