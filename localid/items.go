// Package localid implements the Local ID builder and one-pass parser
// (spec.md §4.6/§4.7, C7).
package localid

import (
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/internal/iso"
)

// Items is a primary GmodPath (required for a valid Local ID) plus an
// optional secondary path (spec.md §3 LocalIdItems).
type Items struct {
	primary      *gmod.Path
	secondary    *gmod.Path
	hasPrimary   bool
	hasSecondary bool
}

// NewItems builds an Items from a required primary path and an optional
// secondary path.
func NewItems(primary *gmod.Path, secondary *gmod.Path) Items {
	it := Items{}
	if primary != nil {
		it.primary = primary
		it.hasPrimary = true
	}
	if secondary != nil {
		it.secondary = secondary
		it.hasSecondary = true
	}
	return it
}

// PrimaryItem returns the primary path, if set.
func (it Items) PrimaryItem() (*gmod.Path, bool) { return it.primary, it.hasPrimary }

// SecondaryItem returns the secondary path, if set.
func (it Items) SecondaryItem() (*gmod.Path, bool) { return it.secondary, it.hasSecondary }

// IsEmpty reports whether neither path is set.
func (it Items) IsEmpty() bool { return !it.hasPrimary && !it.hasSecondary }

// WithPrimary returns a copy of it with the primary path replaced. This is
// the "dual-path resolution" spec.md §9 flags as ambiguous between the
// source's move-construct-by-replacing-primary and
// move-construct-by-replacing-secondary overloads: we take the stricter
// reading and require the replaced path to be non-nil, since a LocalId
// without a primary item is never valid (spec.md §3 Validity).
func (it Items) WithPrimary(p *gmod.Path) Items {
	if p == nil {
		panic("localid: WithPrimary requires a non-nil path")
	}
	it.primary = p
	it.hasPrimary = true
	return it
}

// WithSecondary returns a copy of it with the secondary path replaced or
// cleared (pass nil to clear).
func (it Items) WithSecondary(p *gmod.Path) Items {
	it.secondary = p
	it.hasSecondary = p != nil
	return it
}

// String renders the items in canonical Local ID path-segment form.
func (it Items) String() string {
	var b strings.Builder
	it.appendTo(&b, false)
	s := b.String()
	if len(s) > 1 && strings.HasSuffix(s, "/") {
		s = s[:len(s)-1]
	}
	return s
}

// appendTo renders the primary and secondary path segments (and, in
// verbose mode, the ~name segments derived from each path's common
// names), matching LocalIdItems::append's layout.
func (it Items) appendTo(b *strings.Builder, verbose bool) {
	if it.hasPrimary && it.primary.Len() > 0 {
		b.WriteString(it.primary.String())
		b.WriteByte('/')
	}
	if it.hasSecondary {
		b.WriteString("sec/")
		b.WriteString(it.secondary.String())
		b.WriteByte('/')
	}
	if !verbose {
		return
	}
	if it.hasPrimary && it.primary.Len() > 0 {
		for _, name := range it.primary.CommonNames() {
			b.WriteByte('~')
			appendCommonName(b, name)
			b.WriteByte('/')
		}
	}
	if it.hasSecondary {
		prefix := "~for."
		for _, name := range it.secondary.CommonNames() {
			b.WriteString(prefix)
			if prefix != "~" {
				prefix = "~"
			}
			appendCommonName(b, name)
			b.WriteByte('/')
		}
	}
}

// appendCommonName renders a display name into its verbose-segment form:
// lowercased, '/' dropped, non-ISO characters and runs of whitespace collapsed to a
// single '.', consecutive '.' collapsed (LocalIdItems::appendCommonName).
func appendCommonName(b *strings.Builder, name string) {
	var prev byte
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch == '/' {
			continue
		}
		var cur byte
		switch {
		case ch == ' ':
			cur = '.'
		case !iso.IsByte(ch):
			cur = '.'
		default:
			cur = toLower(ch)
		}
		if cur == '.' && prev == '.' {
			continue
		}
		b.WriteByte(cur)
		prev = cur
	}
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
