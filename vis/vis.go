// Package vis is the process-wide façade spec.md §4.10 describes: a
// lazily-populated, concurrency-safe cache of the built artifacts (Gmod,
// Codebooks, Locations, GmodVersioning) layered over whatever
// ResourceProvider the caller supplies, plus the conversion and
// ISO-string convenience methods that sit on top of them.
package vis

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ronan-fesselier/vista-sdk-go/codebook"
	"github.com/ronan-fesselier/vista-sdk-go/dto"
	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/localid"
	"github.com/ronan-fesselier/vista-sdk-go/location"
	"github.com/ronan-fesselier/vista-sdk-go/versioning"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// ResourceProvider is the one seam spec.md §1 carves out of the core: it
// supplies the raw DTOs, however the caller obtains them (embedded JSON,
// a network fetch, a test fixture literal). VIS never reads a file or
// opens a socket itself.
type ResourceProvider interface {
	GmodDto(v visversion.VisVersion) (dto.Gmod, error)
	CodebooksDto(v visversion.VisVersion) (dto.Codebooks, error)
	LocationsDto(v visversion.VisVersion) (dto.Locations, error)
	GmodVersioningDto() (dto.GmodVersioning, error)
}

type versionCache[T any] struct {
	once  sync.Once
	value *T
	err   error
}

// VIS is the façade: one per process, typically, though nothing here
// prevents running several side by side against different providers
// (tests do exactly that).
type VIS struct {
	provider ResourceProvider
	logger   *slog.Logger

	gmodMu    sync.Mutex
	gmods     map[visversion.VisVersion]*versionCache[gmod.Gmod]
	cbMu      sync.Mutex
	codebooks map[visversion.VisVersion]*versionCache[codebook.Codebooks]
	locMu     sync.Mutex
	locations map[visversion.VisVersion]*versionCache[location.Grammar]

	versioningOnce  sync.Once
	versioningValue *versioning.Versioning
	versioningErr   error
}

// New returns a VIS façade backed by provider. A nil logger disables
// cache-build logging; otherwise every first-build of a version's
// artifact is logged at debug level with a per-call operation id
// (grounded on the teacher's practice of tagging long-running
// operations with a correlation UUID).
func New(provider ResourceProvider, logger *slog.Logger) *VIS {
	return &VIS{
		provider:  provider,
		logger:    logger,
		gmods:     make(map[visversion.VisVersion]*versionCache[gmod.Gmod]),
		codebooks: make(map[visversion.VisVersion]*versionCache[codebook.Codebooks]),
		locations: make(map[visversion.VisVersion]*versionCache[location.Grammar]),
	}
}

// Versions lists every supported VIS version in release order.
func (v *VIS) Versions() []visversion.VisVersion { return visversion.All }

// LatestVersion is the most recent supported version.
func (v *VIS) LatestVersion() visversion.VisVersion { return visversion.Latest() }

func (v *VIS) logBuild(op string, version visversion.VisVersion) {
	if v.logger == nil {
		return
	}
	v.logger.Debug("vis: building cached artifact",
		"op", op,
		"vis_version", version.String(),
		"op_id", uuid.NewString(),
	)
}

func cacheFor[T any](mu *sync.Mutex, m map[visversion.VisVersion]*versionCache[T], version visversion.VisVersion) *versionCache[T] {
	mu.Lock()
	defer mu.Unlock()
	c, ok := m[version]
	if !ok {
		c = &versionCache[T]{}
		m[version] = c
	}
	return c
}

// Gmod returns the lazily-built, cached Gmod for version.
func (v *VIS) Gmod(version visversion.VisVersion) (*gmod.Gmod, error) {
	c := cacheFor(&v.gmodMu, v.gmods, version)
	c.once.Do(func() {
		v.logBuild("gmod", version)
		d, err := v.provider.GmodDto(version)
		if err != nil {
			c.err = fmt.Errorf("vis: loading gmod dto for %s: %w", version, err)
			return
		}
		g, err := gmod.Build(version, d)
		if err != nil {
			c.err = fmt.Errorf("vis: building gmod for %s: %w", version, err)
			return
		}
		c.value = g
	})
	return c.value, c.err
}

// Codebooks returns the lazily-built, cached Codebooks for version.
func (v *VIS) Codebooks(version visversion.VisVersion) (*codebook.Codebooks, error) {
	c := cacheFor(&v.cbMu, v.codebooks, version)
	c.once.Do(func() {
		v.logBuild("codebooks", version)
		d, err := v.provider.CodebooksDto(version)
		if err != nil {
			c.err = fmt.Errorf("vis: loading codebooks dto for %s: %w", version, err)
			return
		}
		c.value = codebook.NewCodebooks(d)
	})
	return c.value, c.err
}

// Locations returns the lazily-built, cached location grammar for version.
func (v *VIS) Locations(version visversion.VisVersion) (*location.Grammar, error) {
	c := cacheFor(&v.locMu, v.locations, version)
	c.once.Do(func() {
		v.logBuild("locations", version)
		d, err := v.provider.LocationsDto(version)
		if err != nil {
			c.err = fmt.Errorf("vis: loading locations dto for %s: %w", version, err)
			return
		}
		c.value = location.Build(d)
	})
	return c.value, c.err
}

// GmodVersioning returns the lazily-built, cached cross-version
// conversion tables. Unlike Gmod/Codebooks/Locations this isn't
// per-version: the resource file covers every target version's table in
// one DTO.
func (v *VIS) GmodVersioning() (*versioning.Versioning, error) {
	v.versioningOnce.Do(func() {
		if v.logger != nil {
			v.logger.Debug("vis: building cached artifact", "op", "gmod_versioning", "op_id", uuid.NewString())
		}
		d, err := v.provider.GmodVersioningDto()
		if err != nil {
			v.versioningErr = fmt.Errorf("vis: loading gmod versioning dto: %w", err)
			return
		}
		vn, err := versioning.Build(d)
		if err != nil {
			v.versioningErr = fmt.Errorf("vis: building gmod versioning: %w", err)
			return
		}
		v.versioningValue = vn
	})
	return v.versioningValue, v.versioningErr
}

// GmodDto returns the raw DTO for version, uncached beyond whatever the
// provider itself does.
func (v *VIS) GmodDto(version visversion.VisVersion) (dto.Gmod, error) {
	return v.provider.GmodDto(version)
}

// CodebooksDto returns the raw DTO for version.
func (v *VIS) CodebooksDto(version visversion.VisVersion) (dto.Codebooks, error) {
	return v.provider.CodebooksDto(version)
}

// LocationsDto returns the raw DTO for version.
func (v *VIS) LocationsDto(version visversion.VisVersion) (dto.Locations, error) {
	return v.provider.LocationsDto(version)
}

// GmodsMap is the batch variant of Gmod: builds (or fetches from cache)
// every version in versions, returning the first error encountered.
func (v *VIS) GmodsMap(versions []visversion.VisVersion) (map[visversion.VisVersion]*gmod.Gmod, error) {
	out := make(map[visversion.VisVersion]*gmod.Gmod, len(versions))
	for _, ver := range versions {
		g, err := v.Gmod(ver)
		if err != nil {
			return nil, err
		}
		out[ver] = g
	}
	return out, nil
}

// CodebooksMap is the batch variant of Codebooks.
func (v *VIS) CodebooksMap(versions []visversion.VisVersion) (map[visversion.VisVersion]*codebook.Codebooks, error) {
	out := make(map[visversion.VisVersion]*codebook.Codebooks, len(versions))
	for _, ver := range versions {
		cb, err := v.Codebooks(ver)
		if err != nil {
			return nil, err
		}
		out[ver] = cb
	}
	return out, nil
}

// LocationsMap is the batch variant of Locations.
func (v *VIS) LocationsMap(versions []visversion.VisVersion) (map[visversion.VisVersion]*location.Grammar, error) {
	out := make(map[visversion.VisVersion]*location.Grammar, len(versions))
	for _, ver := range versions {
		g, err := v.Locations(ver)
		if err != nil {
			return nil, err
		}
		out[ver] = g
	}
	return out, nil
}

// gmodSource adapts VIS to versioning.GmodSource, so conversion shortcuts
// can reuse the façade's own cache instead of re-resolving a Gmod
// themselves.
type gmodSource struct {
	v *VIS
}

func (s gmodSource) Gmod(ver visversion.VisVersion) (*gmod.Gmod, bool) {
	g, err := s.v.Gmod(ver)
	return g, err == nil
}

// resolver adapts VIS to localid.Resolver: the parser's seam wants a
// found/not-found bool, while the façade's own accessors surface the
// load/build error directly so callers can tell "unknown version" apart
// from "version is fine, its resource file is broken".
type resolver struct {
	v *VIS
}

func (r resolver) Gmod(ver visversion.VisVersion) (*gmod.Gmod, bool) {
	g, err := r.v.Gmod(ver)
	return g, err == nil
}

func (r resolver) Codebooks(ver visversion.VisVersion) (*codebook.Codebooks, bool) {
	cb, err := r.v.Codebooks(ver)
	return cb, err == nil
}

func (r resolver) Locations(ver visversion.VisVersion) (*location.Grammar, bool) {
	g, err := r.v.Locations(ver)
	return g, err == nil
}

// Resolver returns v adapted to localid.Resolver, for passing to
// localid.TryParse / localid.TryParseWithErrors.
func (v *VIS) Resolver() localid.Resolver {
	return resolver{v}
}

// ConvertNode converts n from sourceVersion to targetVersion using the
// façade's cached GmodVersioning tables and Gmod cache.
func (v *VIS) ConvertNode(sourceVersion visversion.VisVersion, n gmod.GmodNode, targetVersion visversion.VisVersion) (gmod.GmodNode, bool, error) {
	vn, err := v.GmodVersioning()
	if err != nil {
		return gmod.GmodNode{}, false, err
	}
	converted, ok := vn.ConvertNode(sourceVersion, n, targetVersion, gmodSource{v})
	return converted, ok, nil
}

// ConvertPath converts sourcePath from sourceVersion to targetVersion
// using the façade's cached GmodVersioning tables and Gmod cache.
func (v *VIS) ConvertPath(sourceVersion visversion.VisVersion, sourcePath *gmod.Path, targetVersion visversion.VisVersion) (*gmod.Path, error) {
	vn, err := v.GmodVersioning()
	if err != nil {
		return nil, err
	}
	return vn.ConvertPath(sourceVersion, sourcePath, targetVersion, gmodSource{v})
}

// ConvertLocalID converts source to targetVersion using the façade's
// cached GmodVersioning tables and Gmod cache.
func (v *VIS) ConvertLocalID(source localid.Builder, targetVersion visversion.VisVersion) (localid.Builder, error) {
	vn, err := v.GmodVersioning()
	if err != nil {
		return localid.Builder{}, err
	}
	return vn.ConvertLocalID(source, targetVersion, gmodSource{v})
}
