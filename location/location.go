// Package location parses and validates the location suffixes that can be
// attached to a GMOD node occurrence (spec.md §4.2, C3).
package location

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/parseerrors"
)

// Location is an immutable, canonically-formed location value. Equality is
// by canonical string form (spec.md §3).
type Location struct {
	value string
}

// String returns the canonical string form.
func (l Location) String() string {
	return l.value
}

// IsZero reports whether l is the unset zero value (no location).
func (l Location) IsZero() bool {
	return l.value == ""
}

// Equal reports string-form equality.
func (l Location) Equal(other Location) bool {
	return l.value == other.value
}

// Grammar is the immutable, per-VIS-version location grammar built from a
// LocationsDto: a set of legal single-letter codes, each assigned to
// exactly one mutually-exclusive group.
type Grammar struct {
	visVersion string
	groupOf    map[byte]string // legal letter -> its group name
}

// Build constructs a Grammar from a LocationsDto. Each letter code in the
// DTO must be exactly one byte; Build panics otherwise, since a malformed
// resource file is a data-provider bug outside this package's contract
// (spec.md §1 excludes DTO loading, so DTOs reaching here are assumed
// already well-formed by the caller).
func Build(d dto.Locations) *Grammar {
	g := &Grammar{
		visVersion: d.VisVersion,
		groupOf:    make(map[byte]string),
	}
	for group, codes := range groupsFromDto(d) {
		for _, code := range codes {
			if len(code) != 1 {
				panic(fmt.Sprintf("location: group %q has non-single-letter code %q", group, code))
			}
			g.groupOf[code[0]] = group
		}
	}
	return g
}

// groupsFromDto normalizes the two ways a LocationsDto can carry its
// letter groups: an explicit Groups table (group name -> codes), or a flat
// RelativeLocations list whose letters are sorted into the side (P, C, S),
// vertical (U, M, L), transverse (I, O) and longitudinal (F, A) groups; any
// other letter in that list forms a singleton group of its own.
func groupsFromDto(d dto.Locations) map[string][]string {
	relativeGroups := map[string]string{
		"P": "side", "C": "side", "S": "side",
		"U": "vertical", "M": "vertical", "L": "vertical",
		"I": "transverse", "O": "transverse",
		"F": "longitudinal", "A": "longitudinal",
	}
	out := make(map[string][]string)
	for _, rl := range d.RelativeLocations {
		group, ok := relativeGroups[rl.Code]
		if !ok {
			group = rl.Code
		}
		out[group] = append(out[group], rl.Code)
	}
	for _, g := range d.Groups {
		out[g.Name] = append(out[g.Name], g.Code)
	}
	return out
}

// VisVersion returns the VIS version this grammar was built for.
func (g *Grammar) VisVersion() string {
	return g.visVersion
}

// token is one parsed unit of a location string, either a digit run or a
// single legal letter.
type token struct {
	isDigits bool
	digits   string
	letter   byte
	group    string
}

// Parse validates s against the grammar and returns its canonical Location.
func (g *Grammar) Parse(s string) (Location, error) {
	loc, errs := g.TryParseWithErrors(s)
	if !errs.IsEmpty() {
		return Location{}, fmt.Errorf("location: %s", errs.String())
	}
	return loc, nil
}

// TryParse is Parse without the error value.
func (g *Grammar) TryParse(s string) (Location, bool) {
	loc, errs := g.TryParseWithErrors(s)
	return loc, errs.IsEmpty()
}

// TryParseWithErrors parses s, returning every grammar violation found.
func (g *Grammar) TryParseWithErrors(s string) (Location, parseerrors.Errors) {
	var errs parseerrors.Errors

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		errs.Add(parseerrors.KindLocationInvalid, "location is empty")
		return Location{}, errs
	}
	if trimmed != s {
		errs.Add(parseerrors.KindLocationInvalid, "location has leading or trailing whitespace")
		return Location{}, errs
	}

	var tokens []token
	usedGroups := make(map[string]bool)

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			tokens = append(tokens, token{isDigits: true, digits: s[i:j]})
			i = j

		default:
			group, ok := g.groupOf[c]
			if !ok {
				errs.Add(parseerrors.KindLocationInvalid, fmt.Sprintf("unrecognized location letter %q", string(c)))
				return Location{}, errs
			}
			if usedGroups[group] {
				errs.Add(parseerrors.KindLocationInvalid, fmt.Sprintf("group %q used more than once", group))
				return Location{}, errs
			}
			usedGroups[group] = true
			tokens = append(tokens, token{letter: c, group: group})
			i++
		}
	}

	canon := canonicalize(tokens)
	return Location{value: canon}, errs
}

// canonicalize rebuilds the string form with digit runs kept at their
// parsed position, and any consecutive run of letters between digit runs
// sorted alphabetically -- matching the ordering rule the position grammar
// (codebook package) applies to non-numeric parts.
func canonicalize(tokens []token) string {
	var b strings.Builder
	i := 0
	for i < len(tokens) {
		if tokens[i].isDigits {
			b.WriteString(tokens[i].digits)
			i++
			continue
		}
		start := i
		for i < len(tokens) && !tokens[i].isDigits {
			i++
		}
		letters := make([]byte, 0, i-start)
		for _, t := range tokens[start:i] {
			letters = append(letters, t.letter)
		}
		sort.Slice(letters, func(a, b int) bool { return letters[a] < letters[b] })
		b.Write(letters)
	}
	return b.String()
}
