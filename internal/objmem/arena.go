package objmem

import (
	"errors"
	"sort"
)

// ErrOutOfMemory is surfaced as a recoverable evaluation error that must
// leave the value stack and editor intact; callers retry after freeing
// roots rather than aborting state.
var ErrOutOfMemory = errors.New("out of memory")

// Arena is a single bump-allocated heap with a scratchpad region growing
// down from the top, mirroring surge's Heap (monotonic handles, a
// map-backed object table) but storing objects as dense contiguous bytes
// so mark-compact can slide them without per-field fixups.
type Arena struct {
	buf        []byte
	objTop     int // end of the live-object region
	scratchTop int // start of the scratchpad region (shrinks as it grows)
	handles    *HandleTable
	gcCount    int
}

// NewArena creates an Arena with the given total byte capacity.
func NewArena(capacity int) *Arena {
	return &Arena{
		buf:        make([]byte, capacity),
		objTop:     0,
		scratchTop: capacity,
		handles:    newHandleTable(),
	}
}

// Len returns the number of bytes currently occupied by live objects.
func (a *Arena) Len() int { return a.objTop }

// GCCount reports how many compactions have run, for diagnostics and
// tests.
func (a *Arena) GCCount() int { return a.gcCount }

// Alloc copies obj (a complete, self-describing tagged object) into the
// arena and returns a strong handle to it. It compacts and retries once
// if there is not enough room.
func (a *Arena) Alloc(obj []byte) (Handle, error) {
	if off, ok := a.tryAlloc(obj); ok {
		return a.handles.register(kindObject, off, len(obj)), nil
	}
	a.GC()
	if off, ok := a.tryAlloc(obj); ok {
		return a.handles.register(kindObject, off, len(obj)), nil
	}
	return 0, ErrOutOfMemory
}

func (a *Arena) tryAlloc(obj []byte) (int, bool) {
	if a.objTop+len(obj) > a.scratchTop {
		return 0, false
	}
	off := a.objTop
	copy(a.buf[off:off+len(obj)], obj)
	a.objTop += len(obj)
	return off, true
}

// Bytes returns the raw object bytes referenced by h. The slice is only
// valid until the next Alloc/GC/Scratch call, matching the "re-read
// through your handles after any potentially-allocating call" discipline.
func (a *Arena) Bytes(h Handle) []byte {
	e := a.handles.lookup(h)
	if e.kind != kindObject {
		panic("objmem: handle does not reference an arena object")
	}
	return a.buf[e.offset : e.offset+e.size]
}

// Tag reports the tag of the object h references.
func (a *Arena) Tag(h Handle) Tag {
	tag, _, err := ObjectSize(a.Bytes(h))
	if err != nil {
		panic("objmem: corrupt object: " + err.Error())
	}
	return tag
}

// Release drops h. The object it referenced becomes eligible for
// reclamation on the next GC if no other handle keeps it alive.
func (a *Arena) Release(h Handle) { a.handles.Release(h) }

// Retain registers a second strong handle to the same bytes as h, used
// when a value is duplicated onto the value stack (push-by-copy of a
// handle rather than the underlying bytes).
func (a *Arena) Retain(h Handle) Handle {
	e := a.handles.lookup(h)
	return a.handles.register(e.kind, e.offset, e.size)
}

type liveRange struct {
	offset int
	size   int
}

// GC performs a mark-compact pass: every live handle is a root (per the
// handle contract, there is no separate reachability walk beyond the
// registered handles themselves, since composite objects embed their
// children's bytes inline rather than referencing them indirectly), so
// marking is simply "the union of registered object ranges". Compaction
// slides those ranges toward the base in offset order and rewrites every
// handle's offset through the resulting mapping.
func (a *Arena) GC() {
	a.gcCount++

	seen := make(map[int]liveRange)
	for _, e := range a.handles.entries {
		if e.kind != kindObject {
			continue
		}
		seen[e.offset] = liveRange{offset: e.offset, size: e.size}
	}
	ranges := make([]liveRange, 0, len(seen))
	for _, r := range seen {
		ranges = append(ranges, r)
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].offset < ranges[j].offset })

	mapping := make(map[int]int, len(ranges))
	write := 0
	for _, r := range ranges {
		if r.offset != write {
			copy(a.buf[write:write+r.size], a.buf[r.offset:r.offset+r.size])
		}
		mapping[r.offset] = write
		write += r.size
	}
	a.objTop = write

	for h, e := range a.handles.entries {
		if e.kind != kindObject {
			continue
		}
		if newOff, ok := mapping[e.offset]; ok {
			e.offset = newOff
			a.handles.entries[h] = e
		}
	}
}
