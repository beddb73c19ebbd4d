package versioning

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// noopLock is a FileLock that always succeeds immediately, standing in
// for a real flock.Flock in tests that don't want to touch an actual
// advisory lock.
type noopLock struct{}

func (noopLock) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	return true, nil
}
func (noopLock) Unlock() error { return nil }

type noopLockFactory struct{}

func (noopLockFactory) New(path string) FileLock { return noopLock{} }

func TestSnapshotRoundTrip(t *testing.T) {
	gmods, vn := renameFixture(t)

	p, err := gmods[visversion.V3_4a].TryParsePath("400a/411.1", nil)
	if err != nil {
		t.Fatalf("TryParsePath: %v", err)
	}
	if _, err := vn.ConvertPath(visversion.V3_4a, p, visversion.V3_5a, gmods); err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}

	dir := t.TempDir()
	snapPath := filepath.Join(dir, "versioning-cache.yaml")
	vn.EnableSnapshot(snapPath, noopLockFactory{}, nil)

	if err := vn.SaveSnapshot(); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if _, err := os.Stat(snapPath); err != nil {
		t.Fatalf("expected a snapshot file to exist: %v", err)
	}

	fresh, err := Build(renameFixtureDto())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fresh.EnableSnapshot(snapPath, noopLockFactory{}, nil)
	if err := fresh.LoadSnapshot(gmods); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	key := cacheKey{sourceVersion: visversion.V3_4a, sourcePath: p.String(), targetVersion: visversion.V3_5a}
	cached, convertible, found := fresh.cache.get(key)
	if !found || !convertible {
		t.Fatal("expected the loaded snapshot to repopulate the cache")
	}
	if got, want := cached.String(), "VE/400a/411.2"; got != want {
		t.Fatalf("cached.String() = %q, want %q", got, want)
	}
}

func TestLoadSnapshotMissingFileIsNotAnError(t *testing.T) {
	_, vn := renameFixture(t)
	vn.EnableSnapshot(filepath.Join(t.TempDir(), "does-not-exist.yaml"), noopLockFactory{}, nil)
	if err := vn.LoadSnapshot(testGmods{}); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
}

func TestDisabledSnapshotIsNoop(t *testing.T) {
	_, vn := renameFixture(t)
	if err := vn.SaveSnapshot(); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := vn.LoadSnapshot(testGmods{}); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
}
