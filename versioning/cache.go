package versioning

import (
	"sync"

	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// cacheKey identifies one path conversion: (source version, source path
// string, target version), per spec.md §4.9.
type cacheKey struct {
	sourceVersion visversion.VisVersion
	sourcePath    string
	targetVersion visversion.VisVersion
}

type cacheValue struct {
	path        *gmod.Path
	convertible bool
}

// pathCache is the process-wide path-conversion memoization cache
// (internal::PathConversionCache), a single mutex-guarded map rather than
// the teacher's fan-out concurrency primitives: every write here is a
// cheap single-entry insert, never a batch needing worker-pool fan-out.
type pathCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheValue
}

func newPathCache() *pathCache {
	return &pathCache{entries: make(map[cacheKey]cacheValue)}
}

func (c *pathCache) get(k cacheKey) (path *gmod.Path, convertible bool, found bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, found := c.entries[k]
	return v.path, v.convertible, found
}

func (c *pathCache) put(k cacheKey, path *gmod.Path, convertible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = cacheValue{path: path, convertible: convertible}
}

func (c *pathCache) snapshot() []snapshotEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]snapshotEntry, 0, len(c.entries))
	for k, v := range c.entries {
		e := snapshotEntry{
			SourceVersion: k.sourceVersion.String(),
			SourcePath:    k.sourcePath,
			TargetVersion: k.targetVersion.String(),
			Convertible:   v.convertible,
		}
		if v.convertible && v.path != nil {
			e.TargetPath = v.path.String()
		}
		out = append(out, e)
	}
	return out
}
