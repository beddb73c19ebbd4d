package vis

import "github.com/ronan-fesselier/vista-sdk-go/internal/iso"

// IsISOByte reports whether b is a valid ISO 19848 unreserved character
// (spec.md §4.10's is_iso_string(c)).
func IsISOByte(b byte) bool { return iso.IsByte(b) }

// IsISOString reports whether s is non-empty and every byte passes
// IsISOByte (spec.md §4.10's is_iso_string(s)).
func IsISOString(s string) bool { return iso.IsString(s) }

// MatchISOLocalIDString is IsISOString extended to additionally permit
// '/', the one extra character a Local ID string carries as a path
// separator.
func MatchISOLocalIDString(s string) bool { return iso.MatchLocalIDString(s) }
