// Package iso implements the ISO 19848 unreserved character-class checks
// that the codebook, GMOD and Local-ID grammars validate custom values
// against.
package iso

// IsByte reports whether b is in the ISO 19848 unreserved alphabet:
// 0-9, A-Z, a-z, '-', '.', '_', '~'.
func IsByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b == '-' || b == '.' || b == '_' || b == '~':
		return true
	default:
		return false
	}
}

// IsByteLocalID is IsByte extended with '/', the one extra character the
// Local-ID grammar permits (path segment separators).
func IsByteLocalID(b byte) bool {
	return b == '/' || IsByte(b)
}

// IsString reports whether every byte of s passes IsByte.
func IsString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsByte(s[i]) {
			return false
		}
	}
	return true
}

// MatchLocalIDString reports whether every byte of s passes IsByteLocalID.
func MatchLocalIDString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsByteLocalID(s[i]) {
			return false
		}
	}
	return true
}
