// Package persist saves and restores calculator state as a single binary
// blob: the arena's live object bytes plus the root set (value stack,
// directory, editor buffer), matching the calculator's persistence
// contract ("a single binary blob of the heap plus roots; loading
// restores reachable objects verbatim, no versioning promised across
// incompatible tag additions"). Modeled on surge's DiskCache — a
// schema-versioned msgpack payload validated by a content hash before
// use — but persisting to a single named file rather than a
// content-addressed cache directory, since there is exactly one save
// slot per calculator state, not one per compiled module.
package persist

import (
	"crypto/sha256"
	"errors"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion increments when Payload's shape changes incompatibly.
const schemaVersion uint16 = 1

// ErrSchemaMismatch indicates a saved blob was written by an incompatible
// version of this package.
var ErrSchemaMismatch = errors.New("persist: incompatible schema version")

// ErrCorrupt indicates a saved blob's content hash does not match its
// payload.
var ErrCorrupt = errors.New("persist: content hash mismatch")

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

// Payload is the on-disk representation of a saved calculator state.
type Payload struct {
	Schema uint16

	// HeapBytes is the arena's live-object region, copied verbatim; on
	// load it becomes the new arena's initial content (objects are
	// self-describing, so no separate index is needed to re-walk them).
	HeapBytes []byte

	// Roots holds, for each named root collection, the byte offsets (into
	// HeapBytes) of the objects it references — Value Stack, Directory
	// tree, Editor buffer, Clipboard, History, Return/Loop stack.
	Roots map[string][]int

	Hash Digest
}

func digestOf(heap []byte, roots map[string][]int) Digest {
	h := sha256.New()
	h.Write(heap)
	for _, name := range sortedKeys(roots) {
		h.Write([]byte(name))
		for _, off := range roots[name] {
			var b [8]byte
			putUint64(b[:], uint64(off))
			h.Write(b[:])
		}
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// Build constructs a Payload from heap bytes and named root offset lists,
// computing its content hash.
func Build(heap []byte, roots map[string][]int) Payload {
	return Payload{
		Schema:    schemaVersion,
		HeapBytes: heap,
		Roots:     roots,
		Hash:      digestOf(heap, roots),
	}
}

// Save serializes p to path via msgpack, using a temp-file-then-rename to
// keep a crash from ever leaving a partially-written save file, the same
// atomic-replace discipline surge's DiskCache.Put uses.
func Save(path string, p Payload) error {
	dir, name := splitDir(path)
	f, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&p); err != nil {
		f.Close()
		os.Remove(tmpName)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// Load reads and validates a Payload from path.
func Load(path string) (Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return Payload{}, err
	}
	defer f.Close()

	var p Payload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&p); err != nil {
		return Payload{}, err
	}
	if p.Schema != schemaVersion {
		return Payload{}, ErrSchemaMismatch
	}
	if digestOf(p.HeapBytes, p.Roots) != p.Hash {
		return Payload{}, ErrCorrupt
	}
	return p, nil
}

func splitDir(path string) (dir, base string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i], path[i+1:]
		}
	}
	return ".", path
}
