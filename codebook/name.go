package codebook

// Name is one of the eleven fixed codebook identifiers (spec.md §3).
type Name string

const (
	Quantity            Name = "Quantity"
	Content             Name = "Content"
	Calculation         Name = "Calculation"
	State               Name = "State"
	Command             Name = "Command"
	Type                Name = "Type"
	FunctionalServices  Name = "FunctionalServices"
	MaintenanceCategory Name = "MaintenanceCategory"
	ActivityType        Name = "ActivityType"
	Position            Name = "Position"
	Detail              Name = "Detail"
)

// All enumerates every codebook name in the canonical Local-ID metadata
// tag emission order, followed by the three codebooks spec.md §3 names
// but that never appear directly in a Local ID (spec.md §4.7).
var All = []Name{
	Quantity, Content, Calculation, State, Command, Type, Position, Detail,
	FunctionalServices, MaintenanceCategory, ActivityType,
}

// MetaTagOrder is the canonical order metadata tags are emitted in a
// Local-ID string (spec.md §4.7).
var MetaTagOrder = []Name{
	Quantity, Content, Calculation, State, Command, Type, Position, Detail,
}

// prefixes maps each codebook to its long wire-format prefix (spec.md §6).
var prefixes = map[Name]string{
	Quantity:            "qty",
	Content:             "cnt",
	Calculation:         "calc",
	State:               "state",
	Command:             "cmd",
	Type:                "type",
	Position:            "pos",
	Detail:              "detail",
	FunctionalServices:  "funct.svc",
	MaintenanceCategory: "maint.cat",
	ActivityType:        "act.type",
}

// shortPrefixes maps the shortened prefix forms the parser tolerates to
// their codebook name (spec.md §6: "short forms also accepted").
var shortPrefixes = map[string]Name{
	"q":   Quantity,
	"c":   Content,
	"cal": Calculation,
	"s":   State,
	"t":   Type,
	"d":   Detail,
}

// Prefix returns the long wire-format prefix for name.
func (n Name) Prefix() string {
	return prefixes[n]
}

// NameFromPrefix maps either a long or short wire-format prefix back to
// its codebook Name.
func NameFromPrefix(prefix string) (Name, bool) {
	for n, p := range prefixes {
		if p == prefix {
			return n, true
		}
	}
	if n, ok := shortPrefixes[prefix]; ok {
		return n, true
	}
	return "", false
}

// IsValid reports whether n is one of the eleven fixed codebook names.
func (n Name) IsValid() bool {
	_, ok := prefixes[n]
	return ok
}
