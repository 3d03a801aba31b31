package persistence

import (
	"bytes"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/bnema/wm/internal/tree"
	"github.com/bnema/wm/internal/wmerr"
)

// checksumSuffix names the sidecar file holding a snapshot's blake2b-256
// digest, checked before every restore so a truncated or corrupted
// snapshot is refused instead of silently misloading (spec.md §5's
// restart path: "the container tree is serialized to a well-known path
// beforehand and restored at startup").
const checksumSuffix = ".blake2b"

// WriteSnapshot serializes t and writes it to path, alongside a sidecar
// file carrying its blake2b-256 checksum. The snapshot is written to a
// temp file and renamed into place so a crash mid-write never leaves a
// partially-written snapshot at path.
func WriteSnapshot(t *tree.Tree, path string) error {
	data, err := t.Serialize()
	if err != nil {
		return wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: serialize tree")
	}
	sum := blake2b.Sum256(data)

	if err := writeAtomic(path, data); err != nil {
		return err
	}
	if err := writeAtomic(path+checksumSuffix, sum[:]); err != nil {
		return err
	}
	return nil
}

// ReadSnapshot reads the tree snapshot at path, verifying its checksum
// sidecar before deserializing. A mismatched or missing checksum is a
// ResourceUnavailable (fatal per spec.md §7) — a corrupt snapshot restored
// silently would violate every tree invariant checked afterward.
func ReadSnapshot(path string) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: read snapshot %s", path)
	}
	wantSum, err := os.ReadFile(path + checksumSuffix)
	if err != nil {
		return nil, wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: read checksum for %s", path)
	}
	gotSum := blake2b.Sum256(data)
	if !bytes.Equal(gotSum[:], wantSum) {
		return nil, wmerr.New(wmerr.KindResourceUnavailable, "persistence: snapshot %s failed checksum verification", path)
	}

	t := tree.New(nil)
	if err := t.Deserialize(data); err != nil {
		return nil, wmerr.Wrap(wmerr.KindInvariant, err, "persistence: deserialize snapshot %s", path)
	}
	return t, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: create snapshot directory")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: create temp snapshot file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: write snapshot data")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: close temp snapshot file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return wmerr.Wrap(wmerr.KindResourceUnavailable, err, "persistence: rename snapshot into place")
	}
	return nil
}
