package codebook

import "fmt"

// MetadataTag is an immutable (name, value, is_custom) triple (spec.md §3).
// Comparing tags across differing Name values is a programming error, not
// a representable result, so Equal panics on a name mismatch rather than
// returning false -- matching spec.md's "comparing across names is a
// programming error".
type MetadataTag struct {
	name     Name
	value    string
	isCustom bool
}

// NewMetadataTag constructs a tag directly. Prefer Codebook.CreateTag,
// which enforces the value rules for name; this constructor exists for
// callers (e.g. the Local-ID parser) that have already validated value
// against the matching codebook and only need the tuple.
func NewMetadataTag(name Name, value string, isCustom bool) MetadataTag {
	return MetadataTag{name: name, value: value, isCustom: isCustom}
}

// Name returns the codebook this tag belongs to.
func (t MetadataTag) Name() Name { return t.name }

// Value returns the tag's value.
func (t MetadataTag) Value() string { return t.value }

// IsCustom reports whether the value was not a standard value of its
// codebook.
func (t MetadataTag) IsCustom() bool { return t.isCustom }

// prefixChar is '-' for standard values, '~' for custom values.
func (t MetadataTag) prefixChar() byte {
	if t.isCustom {
		return '~'
	}
	return '-'
}

// String renders "<prefix><sep><value>", e.g. "qty-temperature" or
// "detail~custom.value".
func (t MetadataTag) String() string {
	return fmt.Sprintf("%s%c%s", t.name.Prefix(), t.prefixChar(), t.value)
}

// AppendTo writes the tag's rendered form followed by sep (default "/" at
// call sites) into b.
func (t MetadataTag) AppendTo(b *[]byte, sep byte) {
	*b = append(*b, t.name.Prefix()...)
	*b = append(*b, t.prefixChar())
	*b = append(*b, t.value...)
	*b = append(*b, sep)
}

// Equal compares two tags. Panics if the tags belong to different
// codebooks (spec.md §3: comparing across names is a programming error).
func (t MetadataTag) Equal(other MetadataTag) bool {
	if t.name != other.name {
		panic(fmt.Sprintf("codebook: cannot compare MetadataTag values across names %q and %q", t.name, other.name))
	}
	return t.value == other.value && t.isCustom == other.isCustom
}
