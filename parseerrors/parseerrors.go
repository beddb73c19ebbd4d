// Package parseerrors defines the ordered, accumulating error collection
// every parser in this module reports through (spec.md §3 ParsingErrors,
// §7 error kinds).
package parseerrors

import "strings"

// Kind is one of the stable, codebook-independent error identifiers from
// spec.md §7.
type Kind string

const (
	KindNamingRule      Kind = "NamingRule"
	KindVisVersion      Kind = "VisVersion"
	KindPrimaryItem     Kind = "PrimaryItem"
	KindSecondaryItem   Kind = "SecondaryItem"
	KindItemDescription Kind = "ItemDescription"
	KindEmptyState      Kind = "EmptyState"
	KindFormatting      Kind = "Formatting"
	KindCompleteness    Kind = "Completeness"
	KindNamingEntity    Kind = "NamingEntity"
	KindIMONumber       Kind = "IMONumber"
	KindLocationInvalid Kind = "LocationInvalid"
)

// MetaKind builds the `Meta<Tag>` kind for a given codebook tag name, e.g.
// MetaKind("Quantity") -> "MetaQuantity".
func MetaKind(tag string) Kind {
	return Kind("Meta" + tag)
}

// Entry is one (kind, message) pair.
type Entry struct {
	Kind    Kind
	Message string
}

// Errors is an ordered, append-only collection of Entry. The zero value is
// a valid empty collection.
type Errors struct {
	entries []Entry
}

// Empty is the dedicated empty singleton spec.md §3 calls for. Callers
// must not mutate it; Add on a copy is safe since Errors is a value type
// whose append always allocates a fresh backing slice when starting from
// nil.
var Empty = Errors{}

// Add appends a new entry.
func (e *Errors) Add(kind Kind, message string) {
	e.entries = append(e.entries, Entry{Kind: kind, Message: message})
}

// IsEmpty reports whether no errors were recorded.
func (e Errors) IsEmpty() bool {
	return len(e.entries) == 0
}

// Len returns the number of recorded errors.
func (e Errors) Len() int {
	return len(e.entries)
}

// Entries returns the recorded entries in recording order. The returned
// slice must not be mutated by the caller.
func (e Errors) Entries() []Entry {
	return e.entries
}

// HasError reports whether any entry has the given kind.
func (e Errors) HasError(kind Kind) bool {
	for _, entry := range e.entries {
		if entry.Kind == kind {
			return true
		}
	}
	return false
}

// priority ranks the base kinds from most to least severe, following the
// order the parsers themselves check them in: a NamingRule failure means
// nothing downstream of it could even be attempted, while a Completeness
// failure is reported only after every earlier stage already passed.
// Per-tag Meta<Name> kinds rank alongside Completeness.
var priority = map[Kind]int{
	KindNamingRule:      0,
	KindVisVersion:      1,
	KindPrimaryItem:     2,
	KindSecondaryItem:   3,
	KindItemDescription: 4,
	KindEmptyState:      5,
	KindFormatting:      6,
	KindNamingEntity:    7,
	KindIMONumber:       8,
	KindLocationInvalid: 9,
	KindCompleteness:    10,
}

func rank(kind Kind) int {
	if r, ok := priority[kind]; ok {
		return r
	}
	return priority[KindCompleteness]
}

// HasErrorOrWorse reports whether any recorded entry has kind, or a kind
// ranked more severe than it.
func (e Errors) HasErrorOrWorse(kind Kind) bool {
	threshold := rank(kind)
	for _, entry := range e.entries {
		if rank(entry.Kind) <= threshold {
			return true
		}
	}
	return false
}

// Equal reports whether two Errors have identical contents in order,
// matching spec.md §3's "equality is by contents".
func (e Errors) Equal(other Errors) bool {
	if len(e.entries) != len(other.entries) {
		return false
	}
	for i := range e.entries {
		if e.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

// String renders a human-readable, newline-joined summary.
func (e Errors) String() string {
	if e.IsEmpty() {
		return ""
	}
	var b strings.Builder
	for i, entry := range e.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(entry.Kind))
		b.WriteString(": ")
		b.WriteString(entry.Message)
	}
	return b.String()
}
