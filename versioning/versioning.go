// Package versioning implements cross-VIS-version conversion of GmodNode,
// GmodPath and Local ID values (spec.md §4.9, C9).
package versioning

import (
	"fmt"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/location"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// GmodSource resolves a built Gmod by VIS version, the one collaborator
// Versioning needs from the caller. The façade that will eventually wire
// everything together (vis.VIS) satisfies this structurally, matching the
// Resolver-interface split already used between localid and its caller.
type GmodSource interface {
	Gmod(v visversion.VisVersion) (*gmod.Gmod, bool)
}

// nodeConversion is one source-code entry of a single target version's
// conversion table (GmodVersioning::GmodNodeConversion).
type nodeConversion struct {
	targetCode    string
	hasTargetCode bool
}

// versioningTable maps a source node code to its conversion record for one
// target VIS version.
type versioningTable map[string]nodeConversion

// Versioning is the frozen, per-VIS-version-pair conversion table plus the
// process-wide path-conversion memoization cache (spec.md §4.9).
type Versioning struct {
	tables map[visversion.VisVersion]versioningTable // keyed by target version
	cache  *pathCache

	snapshotPath string
	lockFactory  FileLockFactory
	locGrammar   *location.Grammar
}

// Build constructs a Versioning from a GmodVersioningDto: one table per
// target version, each mapping a source code to its optional replacement
// code (spec.md §4.9; the "old/new assignment" and "operations" fields the
// original DTO also carries are metadata about *why* a code changed and
// aren't needed to perform the conversion itself, so only TargetCode is
// read here).
func Build(d dto.GmodVersioning) (*Versioning, error) {
	v := &Versioning{
		tables: make(map[visversion.VisVersion]versioningTable, len(d.Tables)),
		cache:  newPathCache(),
	}
	for verStr, table := range d.Tables {
		ver, err := visversion.Parse(verStr)
		if err != nil {
			return nil, fmt.Errorf("versioning: unrecognized target version %q: %w", verStr, err)
		}
		vt := make(versioningTable, len(table))
		for code, conv := range table {
			nc := nodeConversion{}
			if conv.TargetCode != nil && *conv.TargetCode != "" {
				nc.targetCode = *conv.TargetCode
				nc.hasTargetCode = true
			}
			vt[code] = nc
		}
		v.tables[ver] = vt
	}
	return v, nil
}
