package versioning

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/ronan-fesselier/vista-sdk-go/location"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// FileLock is the locking seam an on-disk cache snapshot writes through,
// mirroring the teacher's FileLock/FlockWrapper split so the snapshot's
// lock can be swapped for a mock in tests without touching the
// filesystem.
type FileLock interface {
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory creates a FileLock for a given path.
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockWrapper wraps github.com/gofrs/flock behind the FileLock interface.
type FlockWrapper struct {
	flock *flock.Flock
}

// TryLockContext implements FileLock.
func (f *FlockWrapper) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	return f.flock.TryLockContext(ctx, retryInterval)
}

// Unlock implements FileLock.
func (f *FlockWrapper) Unlock() error {
	return f.flock.Unlock()
}

// FlockFactory is the default FileLockFactory, backed by real file locks.
type FlockFactory struct{}

// New implements FileLockFactory.
func (FlockFactory) New(path string) FileLock {
	return &FlockWrapper{flock: flock.New(path)}
}

// snapshotEntry is one cached conversion result as persisted to disk.
type snapshotEntry struct {
	SourceVersion string `yaml:"sourceVersion"`
	SourcePath    string `yaml:"sourcePath"`
	TargetVersion string `yaml:"targetVersion"`
	TargetPath    string `yaml:"targetPath,omitempty"`
	Convertible   bool   `yaml:"convertible"`
}

type snapshotFile struct {
	Entries []snapshotEntry `yaml:"entries"`
}

const snapshotLockTimeout = 5 * time.Second

// EnableSnapshot configures v to read from and write to an on-disk cache
// snapshot at path, guarded by a lock obtained through lf. locGrammar is
// needed to re-parse persisted target path strings that carry a location
// segment; pass nil if the GMOD in use never attaches locations.
//
// This is pure performance scaffolding around the already-correct
// in-memory cache (spec.md §5 permits "bounded or unbounded" with no
// ordering contract) -- a Versioning that never calls EnableSnapshot never
// touches the filesystem.
func (v *Versioning) EnableSnapshot(path string, lf FileLockFactory, locGrammar *location.Grammar) {
	v.snapshotPath = path
	v.lockFactory = lf
	v.locGrammar = locGrammar
}

// LoadSnapshot reads a previously-saved snapshot file into v's in-memory
// cache, resolving each persisted target path string against gmods. A
// missing snapshot file is not an error. Entries whose version tokens or
// target path strings no longer parse are skipped rather than failing the
// whole load, since a snapshot surviving a GMOD resource upgrade is
// expected to go stale entry-by-entry.
func (v *Versioning) LoadSnapshot(gmods GmodSource) error {
	if v.snapshotPath == "" {
		return nil
	}

	unlock, err := v.lockSnapshot()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := os.ReadFile(v.snapshotPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var sf snapshotFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return err
	}

	for _, e := range sf.Entries {
		sourceVersion, err := visversion.Parse(e.SourceVersion)
		if err != nil {
			continue
		}
		targetVersion, err := visversion.Parse(e.TargetVersion)
		if err != nil {
			continue
		}
		key := cacheKey{sourceVersion: sourceVersion, sourcePath: e.SourcePath, targetVersion: targetVersion}

		if !e.Convertible {
			v.cache.put(key, nil, false)
			continue
		}

		targetGmod, ok := gmods.Gmod(targetVersion)
		if !ok {
			continue
		}
		p, err := targetGmod.TryParseFullPath(e.TargetPath, v.locGrammar)
		if err != nil {
			continue
		}
		v.cache.put(key, p, true)
	}
	return nil
}

// SaveSnapshot writes v's current in-memory cache to the configured
// snapshot path.
func (v *Versioning) SaveSnapshot() error {
	if v.snapshotPath == "" {
		return nil
	}

	unlock, err := v.lockSnapshot()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := yaml.Marshal(snapshotFile{Entries: v.cache.snapshot()})
	if err != nil {
		return err
	}
	return os.WriteFile(v.snapshotPath, data, 0o644)
}

func (v *Versioning) lockSnapshot() (func(), error) {
	lock := v.lockFactory.New(v.snapshotPath + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), snapshotLockTimeout)
	defer cancel()

	ok, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("versioning: could not acquire the snapshot file lock")
	}
	return func() { _ = lock.Unlock() }, nil
}
