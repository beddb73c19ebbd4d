// Package codebook implements the eleven fixed VIS vocabularies
// (spec.md §4.3, C4), tag creation, and the position validation grammar.
package codebook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/internal/iso"
)

// Codebook is one named, fixed vocabulary: a set of standard values, a
// value -> group mapping, the raw group -> values data, and the derived
// set of group names (spec.md §3).
type Codebook struct {
	name      Name
	standard  map[string]bool
	groupOf   map[string]string
	groups    map[string]bool
	raw       dto.CodebookValues
	groupList []string
}

// NewCodebook constructs a Codebook from one entry of a CodebooksDto.
func NewCodebook(name Name, values dto.CodebookValues) *Codebook {
	cb := &Codebook{
		name:     name,
		standard: make(map[string]bool),
		groupOf:  make(map[string]string),
		groups:   make(map[string]bool),
		raw:      values,
	}
	for group, vals := range values {
		cb.groups[group] = true
		cb.groupList = append(cb.groupList, group)
		for _, v := range vals {
			cb.standard[v] = true
			cb.groupOf[v] = group
		}
	}
	return cb
}

// Name returns the codebook's name.
func (cb *Codebook) Name() Name { return cb.name }

// HasStandardValue reports whether v is a standard value of this
// codebook. For Position, any decimal-integer string also counts as
// standard (spec.md §3 invariant).
func (cb *Codebook) HasStandardValue(v string) bool {
	if cb.standard[v] {
		return true
	}
	if cb.name == Position {
		if _, err := strconv.Atoi(v); err == nil {
			return true
		}
	}
	return false
}

// HasGroup reports whether g is one of this codebook's derived group
// names.
func (cb *Codebook) HasGroup(g string) bool {
	return cb.groups[g]
}

// Groups returns the derived group names.
func (cb *Codebook) Groups() []string {
	out := make([]string, len(cb.groupList))
	copy(out, cb.groupList)
	return out
}

// StandardValues returns every standard value, across all groups.
func (cb *Codebook) StandardValues() []string {
	out := make([]string, 0, len(cb.standard))
	for v := range cb.standard {
		out = append(out, v)
	}
	return out
}

// RawData returns the underlying group -> values table, preserved for
// iteration (spec.md §3).
func (cb *Codebook) RawData() dto.CodebookValues {
	return cb.raw
}

// TryCreateTag validates v against this codebook's rules and returns the
// resulting tag, or false if v is empty/whitespace; for Position, if
// ValidatePosition rates it worse than Custom; for Detail, if it fails the
// ISO character rules; for every other codebook, if it is not a standard
// value and fails the ISO character rules.
func (cb *Codebook) TryCreateTag(v string) (MetadataTag, bool) {
	if strings.TrimSpace(v) == "" {
		return MetadataTag{}, false
	}

	switch cb.name {
	case Position:
		if result := cb.ValidatePosition(v); result != Valid && result != Custom {
			return MetadataTag{}, false
		}
		return NewMetadataTag(cb.name, v, !cb.HasStandardValue(v)), true

	case Detail:
		if !iso.IsString(v) {
			return MetadataTag{}, false
		}
		return NewMetadataTag(cb.name, v, !cb.HasStandardValue(v)), true

	default:
		if cb.HasStandardValue(v) {
			return NewMetadataTag(cb.name, v, false), true
		}
		if !iso.IsString(v) {
			return MetadataTag{}, false
		}
		return NewMetadataTag(cb.name, v, true), true
	}
}

// CreateTag is TryCreateTag but returns an error instead of a bool.
func (cb *Codebook) CreateTag(v string) (MetadataTag, error) {
	tag, ok := cb.TryCreateTag(v)
	if !ok {
		return MetadataTag{}, fmt.Errorf("codebook %s: cannot create tag from value %q", cb.name, v)
	}
	return tag, nil
}
