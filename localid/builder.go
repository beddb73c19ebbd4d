package localid

import (
	"fmt"
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/codebook"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// namingRule is the fixed Local ID naming-rule literal spec.md §4.6
// requires every builder-rendered string to carry.
const namingRule = "dnv-v2"

// metaOrder is codebook.MetaTagOrder, the canonical emission order for the
// eight directly-supported builder tag slots (spec.md §4.6/§4.7).
var metaOrder = codebook.MetaTagOrder

// Builder is the immutable fluent aggregate spec.md §4.6 describes: every
// With*/Without* method returns a new Builder value, leaving the receiver
// untouched (mirroring LocalIdBuilder's move-returning API in the
// original, adapted to Go value semantics).
type Builder struct {
	visVersion    visversion.VisVersion
	hasVisVersion bool

	items Items

	tags map[codebook.Name]codebook.MetadataTag

	verbose bool
}

// NewBuilder returns the empty builder.
func NewBuilder() Builder {
	return Builder{tags: make(map[codebook.Name]codebook.MetadataTag)}
}

// WithVisVersion returns a copy of b with the VIS version set.
func (b Builder) WithVisVersion(v visversion.VisVersion) Builder {
	b.visVersion = v
	b.hasVisVersion = true
	b.tags = cloneTags(b.tags)
	return b
}

// WithoutVisVersion returns a copy of b with no VIS version set.
func (b Builder) WithoutVisVersion() Builder {
	b.visVersion = visversion.Unknown
	b.hasVisVersion = false
	b.tags = cloneTags(b.tags)
	return b
}

// VisVersion returns the set VIS version, if any.
func (b Builder) VisVersion() (visversion.VisVersion, bool) { return b.visVersion, b.hasVisVersion }

// WithItems returns a copy of b with its LocalIdItems replaced.
func (b Builder) WithItems(items Items) Builder {
	b.items = items
	b.tags = cloneTags(b.tags)
	return b
}

// Items returns the builder's current LocalIdItems.
func (b Builder) Items() Items { return b.items }

// WithVerboseMode returns a copy of b with the verbose flag set.
func (b Builder) WithVerboseMode(verbose bool) Builder {
	b.verbose = verbose
	b.tags = cloneTags(b.tags)
	return b
}

// VerboseMode reports whether b renders verbose ~name segments.
func (b Builder) VerboseMode() bool { return b.verbose }

// WithMetadataTag returns a copy of b with tag set for its own
// CodebookName, overwriting any previously-set tag for that name.
func (b Builder) WithMetadataTag(tag codebook.MetadataTag) Builder {
	b.tags = cloneTags(b.tags)
	b.tags[tag.Name()] = tag
	return b
}

// WithoutMetadataTag returns a copy of b with the tag for name removed.
func (b Builder) WithoutMetadataTag(name codebook.Name) Builder {
	b.tags = cloneTags(b.tags)
	delete(b.tags, name)
	return b
}

// MetadataTag returns the tag set for name, if any.
func (b Builder) MetadataTag(name codebook.Name) (codebook.MetadataTag, bool) {
	t, ok := b.tags[name]
	return t, ok
}

// MetadataTags returns every set tag, in canonical emission order.
func (b Builder) MetadataTags() []codebook.MetadataTag {
	out := make([]codebook.MetadataTag, 0, len(b.tags))
	for _, name := range metaOrder {
		if t, ok := b.tags[name]; ok {
			out = append(out, t)
		}
	}
	return out
}

func cloneTags(tags map[codebook.Name]codebook.MetadataTag) map[codebook.Name]codebook.MetadataTag {
	out := make(map[codebook.Name]codebook.MetadataTag, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

// IsValid reports whether b satisfies spec.md §3's Validity rule: a VIS
// version set, a present and non-empty primary item, and at least one
// metadata tag.
func (b Builder) IsValid() bool {
	if !b.hasVisVersion {
		return false
	}
	primary, ok := b.items.PrimaryItem()
	if !ok || primary == nil || primary.Len() == 0 {
		return false
	}
	return len(b.tags) > 0
}

// IsEmpty reports spec.md §3's Emptiness rule: no version, no items, no
// tags.
func (b Builder) IsEmpty() bool {
	_, hasPrimary := b.items.PrimaryItem()
	_, hasSecondary := b.items.SecondaryItem()
	return !b.hasVisVersion && !hasPrimary && !hasSecondary && len(b.tags) == 0
}

// String renders the canonical Local ID form (spec.md §4.6). Calling
// String on an invalid builder still renders whatever is set; callers
// that need a guaranteed-valid string should go through Build instead.
func (b Builder) String() string {
	var sb strings.Builder
	sb.WriteByte('/')
	sb.WriteString(namingRule)
	sb.WriteByte('/')
	if b.hasVisVersion {
		sb.WriteString("vis-")
		sb.WriteString(b.visVersion.String())
		sb.WriteByte('/')
	}

	b.items.appendTo(&sb, b.verbose)

	sb.WriteString("meta")
	for _, name := range metaOrder {
		if tag, ok := b.tags[name]; ok {
			sb.WriteByte('/')
			sb.WriteString(tag.String())
		}
	}

	return sb.String()
}

// LocalID wraps a validated, non-empty Builder (spec.md §3).
type LocalID struct {
	builder Builder
}

// Build freezes b into a LocalID, failing if b is not valid.
func Build(b Builder) (LocalID, error) {
	if !b.IsValid() {
		return LocalID{}, fmt.Errorf("localid: builder is not valid: %s", b.String())
	}
	return LocalID{builder: b}, nil
}

// Builder returns the frozen builder state.
func (id LocalID) Builder() Builder { return id.builder }

// String renders the Local ID's canonical form.
func (id LocalID) String() string { return id.builder.String() }
