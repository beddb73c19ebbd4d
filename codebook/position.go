package codebook

import (
	"sort"
	"strconv"
	"strings"
)

// PositionValidationResult is the outcome of validating a Position
// codebook value against the position grammar (spec.md §4.3).
type PositionValidationResult int

const (
	Invalid PositionValidationResult = iota
	InvalidOrder
	InvalidGrouping
	Custom
	Valid
)

func (r PositionValidationResult) String() string {
	switch r {
	case Invalid:
		return "Invalid"
	case InvalidOrder:
		return "InvalidOrder"
	case InvalidGrouping:
		return "InvalidGrouping"
	case Custom:
		return "Custom"
	case Valid:
		return "Valid"
	default:
		return "Unknown"
	}
}

// severity ranks results from worst (Invalid) to best (Valid) so "worst
// of" comparisons in the grammar steps reduce to a numeric max.
func severity(r PositionValidationResult) int {
	switch r {
	case Invalid:
		return 4
	case InvalidOrder:
		return 3
	case InvalidGrouping:
		return 2
	case Custom:
		return 1
	default: // Valid
		return 0
	}
}

func worse(a, b PositionValidationResult) PositionValidationResult {
	if severity(a) >= severity(b) {
		return a
	}
	return b
}

// DefaultGroupName is the sentinel group name exempting the values it
// contains from the duplicate-group-assignment check (spec.md §4.3 step 9).
const DefaultGroupName = "DEFAULT_GROUP"

// ValidatePosition runs the position grammar (spec.md §4.3) against s,
// using cb (which must be the Position codebook) for standard-value and
// group lookups.
func (cb *Codebook) ValidatePosition(s string) PositionValidationResult {
	if cb.name != Position {
		panic("codebook: ValidatePosition called on a non-Position codebook")
	}
	return validatePositionPart(cb, s, true)
}

// validatePositionPart implements steps 1-10. top is true only for the
// outermost call, which is the only level allowed to run the order and
// grouping checks (steps 8-9) across the full hyphen-split token list.
func validatePositionPart(cb *Codebook, s string, top bool) PositionValidationResult {
	if strings.TrimSpace(s) == "" {
		return Invalid
	}
	if !isISOPositionString(s) {
		return Invalid
	}
	if strings.TrimSpace(s) != s {
		return Invalid
	}
	if cb.standard[s] {
		return Valid
	}
	if isDecimalInteger(s) {
		return Valid
	}
	if !strings.Contains(s, "-") {
		return Custom
	}

	parts := strings.Split(s, "-")
	worstPart := Valid
	for _, p := range parts {
		worstPart = worse(worstPart, validatePositionPart(cb, p, false))
	}
	if !top {
		return worstPart
	}
	if severity(worstPart) >= severity(InvalidGrouping) {
		// a sub-part was already Invalid; order/grouping checks below only
		// ever relax or hold severity, never lower it, so short-circuit.
		return worstPart
	}

	orderResult := checkOrder(parts)
	result := worse(worstPart, orderResult)

	allPartsValid := true
	for _, p := range parts {
		if validatePositionPart(cb, p, false) != Valid {
			allPartsValid = false
			break
		}
	}
	if allPartsValid {
		result = worse(result, checkGrouping(cb, parts))
	}

	return result
}

func checkOrder(parts []string) PositionValidationResult {
	numericIdx := -1
	for i, p := range parts {
		if isNumericPart(p) {
			if i != len(parts)-1 {
				return InvalidOrder
			}
			numericIdx = i
		}
	}

	nonNumeric := parts
	if numericIdx >= 0 {
		nonNumeric = parts[:numericIdx]
	}
	sorted := append([]string(nil), nonNumeric...)
	sort.Strings(sorted)
	for i := range nonNumeric {
		if nonNumeric[i] != sorted[i] {
			return InvalidOrder
		}
	}
	return Valid
}

func checkGrouping(cb *Codebook, parts []string) PositionValidationResult {
	groups := make([]string, len(parts))
	hasDefault := false
	for i, p := range parts {
		if isNumericPart(p) {
			groups[i] = "<number>"
			continue
		}
		g := cb.groupOf[p]
		if g == DefaultGroupName {
			hasDefault = true
		}
		groups[i] = g
	}
	if hasDefault {
		return Valid
	}

	seen := make(map[string]bool)
	for _, g := range groups {
		if seen[g] {
			return InvalidGrouping
		}
		seen[g] = true
	}
	return Valid
}

func isDecimalInteger(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// isNumericPart is the broader "numeric part" predicate the order and
// grouping checks (steps 8-9) use: any part starting with a digit, not
// only a fully decimal-integer part. This is what makes a mixed token
// like "12a" count as a numeric part that must sort last, even though it
// fails the strict decimal-integer check used for standard-value
// validity (step 5).
func isNumericPart(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isISOPositionString(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		isISO := (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') ||
			b == '-' || b == '.' || b == '_' || b == '~'
		if !isISO {
			return false
		}
	}
	return true
}
