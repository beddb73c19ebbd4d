package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/vis"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// dirResourceProvider implements vis.ResourceProvider by reading one JSON
// file per artifact from a resource directory, named the way the
// upstream ISO 19848 resource bundles are: gmod-vis-<version>.json,
// codebooks-vis-<version>.json, locations-vis-<version>.json,
// gmod-versioning.json. JSON decoding itself is the "external
// collaborator" concern spec.md §1 carves the core away from; this
// provider is the CLI's own small collaborator, not part of the core.
type dirResourceProvider struct {
	dir string
}

func newDirResourceProvider(dir string) *dirResourceProvider {
	return &dirResourceProvider{dir: dir}
}

func (p *dirResourceProvider) readJSON(name string, v interface{}) error {
	path := filepath.Join(p.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("visctl: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("visctl: parsing %s: %w", path, err)
	}
	return nil
}

func (p *dirResourceProvider) GmodDto(v visversion.VisVersion) (dto.Gmod, error) {
	var d dto.Gmod
	err := p.readJSON(fmt.Sprintf("gmod-vis-%s.json", v.String()), &d)
	return d, err
}

func (p *dirResourceProvider) CodebooksDto(v visversion.VisVersion) (dto.Codebooks, error) {
	var d dto.Codebooks
	err := p.readJSON(fmt.Sprintf("codebooks-vis-%s.json", v.String()), &d)
	return d, err
}

func (p *dirResourceProvider) LocationsDto(v visversion.VisVersion) (dto.Locations, error) {
	var d dto.Locations
	err := p.readJSON(fmt.Sprintf("locations-vis-%s.json", v.String()), &d)
	return d, err
}

func (p *dirResourceProvider) GmodVersioningDto() (dto.GmodVersioning, error) {
	var d dto.GmodVersioning
	err := p.readJSON("gmod-versioning.json", &d)
	return d, err
}

var _ vis.ResourceProvider = (*dirResourceProvider)(nil)
