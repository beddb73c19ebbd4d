// Package dto defines the data-transfer shapes the VIS core consumes but
// never loads itself. Per spec.md §1/§6, JSON loading of resource files is
// an external collaborator's job: callers obtain these structs however
// they like (embedded JSON, a network fetch, a test fixture literal) and
// hand them to the builders in gmod, codebook, location and versioning.
package dto

// GmodNode is one node entry of a GmodDto.
type GmodNode struct {
	Code                  string            `json:"code" yaml:"code"`
	Category              string            `json:"category" yaml:"category"`
	Type                  string            `json:"type" yaml:"type"`
	Name                  string            `json:"name" yaml:"name"`
	CommonName            *string           `json:"commonName,omitempty" yaml:"commonName,omitempty"`
	Definition            *string           `json:"definition,omitempty" yaml:"definition,omitempty"`
	CommonDefinition      *string           `json:"commonDefinition,omitempty" yaml:"commonDefinition,omitempty"`
	InstallSubstructure   *bool             `json:"installSubstructure,omitempty" yaml:"installSubstructure,omitempty"`
	NormalAssignmentNames map[string]string `json:"normalAssignmentNames,omitempty" yaml:"normalAssignmentNames,omitempty"`
}

// GmodChildEdge is one parent/child relationship entry of a GmodDto.
type GmodChildEdge struct {
	ParentCode string `json:"parentCode" yaml:"parentCode"`
	ChildCode  string `json:"childCode" yaml:"childCode"`
}

// Gmod is the resource DTO a Gmod is built from (spec.md §6).
type Gmod struct {
	VisVersion string          `json:"visVersion" yaml:"visVersion"`
	Nodes      []GmodNode      `json:"items" yaml:"items"`
	Edges      []GmodChildEdge `json:"relations" yaml:"relations"`
}

// CodebookValues is one codebook's group->values table, as loaded from the
// resource file: a group name maps to the ordered list of standard values
// it contains.
type CodebookValues map[string][]string

// Codebook is one named codebook entry of a CodebooksDto.
type Codebook struct {
	Name   string         `json:"name" yaml:"name"`
	Values CodebookValues `json:"values" yaml:"values"`
}

// Codebooks is the resource DTO Codebooks is built from.
type Codebooks struct {
	VisVersion string     `json:"visVersion" yaml:"visVersion"`
	Codebooks  []Codebook `json:"codebooks" yaml:"codebooks"`
}

// LocationGroup is one recognized letter token for a Locations grammar.
type LocationGroup struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// LocationRelativeLocation is a legal single-letter location code, distinct
// from the grouped letters above (matching the source grammar's split
// between "relative locations" -- side/position/transverse/vertical letters
// -- and general letter groups).
type LocationRelativeLocation struct {
	Code       string `json:"code" yaml:"code"`
	Name       string `json:"name" yaml:"name"`
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// Locations is the resource DTO Locations is built from.
type Locations struct {
	VisVersion        string                     `json:"visVersion" yaml:"visVersion"`
	Groups            []LocationGroup            `json:"groups" yaml:"groups"`
	RelativeLocations []LocationRelativeLocation `json:"items" yaml:"items"`
}

// VersioningAssignmentChange describes a normal- or product-selection
// assignment added or removed by a single node conversion.
type VersioningAssignmentChange struct {
	OldAssignment *string `json:"oldAssignment,omitempty" yaml:"oldAssignment,omitempty"`
	NewAssignment *string `json:"newAssignment,omitempty" yaml:"newAssignment,omitempty"`
}

// VersioningNodeConversion is one source_code -> conversion record within a
// single target version's table (spec.md §4.9).
type VersioningNodeConversion struct {
	TargetCode       *string                    `json:"targetCode,omitempty" yaml:"targetCode,omitempty"`
	OldAssignment    *string                    `json:"oldAssignment,omitempty" yaml:"oldAssignment,omitempty"`
	NewAssignment    *string                    `json:"newAssignment,omitempty" yaml:"newAssignment,omitempty"`
	DeleteAssignment bool                       `json:"deleteAssignment,omitempty" yaml:"deleteAssignment,omitempty"`
	Operations       []string                   `json:"operations,omitempty" yaml:"operations,omitempty"`
	Assignment       VersioningAssignmentChange `json:"-" yaml:"-"`
}

// VersioningTargetTable is the source_code -> conversion map for one
// target VIS version.
type VersioningTargetTable map[string]VersioningNodeConversion

// GmodVersioning is the resource DTO GmodVersioning is built from: a
// mapping target_version -> {source_code -> NodeConversion}.
type GmodVersioning struct {
	Tables map[string]VersioningTargetTable `json:"versioningTables" yaml:"versioningTables"`
}
