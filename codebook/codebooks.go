package codebook

import (
	"fmt"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
)

// Codebooks is the fixed array of all eleven Codebook instances for one
// VIS version (spec.md §4.3).
type Codebooks struct {
	visVersion string
	byName     map[Name]*Codebook
}

// NewCodebooks constructs Codebooks from a CodebooksDto.
func NewCodebooks(d dto.Codebooks) *Codebooks {
	cbs := &Codebooks{
		visVersion: d.VisVersion,
		byName:     make(map[Name]*Codebook, len(All)),
	}
	for _, entry := range d.Codebooks {
		name := Name(entry.Name)
		cbs.byName[name] = NewCodebook(name, entry.Values)
	}
	// Every fixed codebook name always resolves, even if the DTO omitted
	// it (an empty vocabulary is a valid, if useless, codebook).
	for _, n := range All {
		if _, ok := cbs.byName[n]; !ok {
			cbs.byName[n] = NewCodebook(n, dto.CodebookValues{})
		}
	}
	return cbs
}

// VisVersion returns the VIS version these codebooks were built for.
func (cbs *Codebooks) VisVersion() string { return cbs.visVersion }

// Codebook returns the Codebook for name.
func (cbs *Codebooks) Codebook(name Name) *Codebook {
	return cbs.byName[name]
}

// TryCreateTag is Codebook(name).TryCreateTag(value), guarding against an
// invalid name.
func (cbs *Codebooks) TryCreateTag(name Name, value string) (MetadataTag, bool) {
	cb, ok := cbs.byName[name]
	if !ok {
		return MetadataTag{}, false
	}
	return cb.TryCreateTag(value)
}

// CreateTag is TryCreateTag with an error instead of a bool.
func (cbs *Codebooks) CreateTag(name Name, value string) (MetadataTag, error) {
	tag, ok := cbs.TryCreateTag(name, value)
	if !ok {
		return MetadataTag{}, fmt.Errorf("codebooks: cannot create tag %s=%q", name, value)
	}
	return tag, nil
}

// All iterates every codebook in All() order, calling fn with each.
func (cbs *Codebooks) All(fn func(*Codebook)) {
	for _, n := range All {
		fn(cbs.byName[n])
	}
}
