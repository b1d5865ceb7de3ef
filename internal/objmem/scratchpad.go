package objmem

import "errors"

// ErrScratchUnderflow indicates a Free call that does not match the most
// recent outstanding Allocate, violating the scratchpad's LIFO discipline.
var ErrScratchUnderflow = errors.New("scratchpad free does not match last allocation")

// scratchFrame tracks one outstanding scratchpad allocation so Free can
// verify LIFO ordering instead of trusting the caller blindly.
type scratchFrame struct {
	size int
}

// Scratchpad is the transient workspace at the top of the arena used for
// string-rendering buffers and in-place arithmetic scratch. It grows
// downward from the arena's capacity; the live-object region grows up
// from zero, so the two regions collide only when the arena is full.
type Scratchpad struct {
	arena  *Arena
	frames []scratchFrame
}

// NewScratchpad binds a Scratchpad to the given arena.
func NewScratchpad(a *Arena) *Scratchpad { return &Scratchpad{arena: a} }

// Allocate reserves nbytes at the top of the scratchpad and returns a
// byte-range handle to it plus the raw slice to write into.
func (s *Scratchpad) Allocate(nbytes int) (Handle, []byte, error) {
	if s.arena.scratchTop-nbytes < s.arena.objTop {
		s.arena.GC()
		if s.arena.scratchTop-nbytes < s.arena.objTop {
			return 0, nil, ErrOutOfMemory
		}
	}
	s.arena.scratchTop -= nbytes
	off := s.arena.scratchTop
	s.frames = append(s.frames, scratchFrame{size: nbytes})
	h := s.arena.handles.register(kindScratchRange, off, nbytes)
	return h, s.arena.buf[off : off+nbytes], nil
}

// Free releases the most recent scratchpad allocation referenced by h.
// Allocations must be freed in LIFO order, matching the contract that
// "callers pair each allocation with a matching free, LIFO".
func (s *Scratchpad) Free(h Handle) error {
	e := s.arena.handles.lookup(h)
	if e.kind != kindScratchRange {
		return errors.New("objmem: handle is not a scratchpad range")
	}
	if len(s.frames) == 0 || e.offset != s.arena.scratchTop {
		return ErrScratchUnderflow
	}
	top := s.frames[len(s.frames)-1]
	if top.size != e.size {
		return ErrScratchUnderflow
	}
	s.frames = s.frames[:len(s.frames)-1]
	s.arena.scratchTop += e.size
	s.arena.handles.Release(h)
	return nil
}

// Bytes returns the live scratch bytes referenced by h.
func (s *Scratchpad) Bytes(h Handle) []byte {
	e := s.arena.handles.lookup(h)
	if e.kind != kindScratchRange {
		panic("objmem: handle does not reference a scratchpad range")
	}
	return s.arena.buf[e.offset : e.offset+e.size]
}

// Freeze promotes the bytes referenced by h, which the caller has written
// as a complete tagged object, into a real heap object and frees the
// scratchpad range, in one step — "the scratchpad may also be frozen into
// a real object at its current size".
func (s *Scratchpad) Freeze(h Handle) (Handle, error) {
	bytes := append([]byte(nil), s.Bytes(h)...)
	if err := s.Free(h); err != nil {
		return 0, err
	}
	return s.arena.Alloc(bytes)
}
