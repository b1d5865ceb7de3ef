package objmem

import "testing"

func TestEncodeSmallIntRoundTrip(t *testing.T) {
	obj := EncodeSmallInt(false, 42)
	tag, size, err := ObjectSize(obj)
	if err != nil {
		t.Fatal(err)
	}
	if tag != TagIntPos {
		t.Errorf("tag = %v, want TagIntPos", tag)
	}
	if size != len(obj) {
		t.Errorf("size = %d, want %d", size, len(obj))
	}
}

func TestEncodeAtomRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	obj := EncodeAtom(TagBigPos, payload)
	got, err := PayloadBytes(obj)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %v, want %v", got, payload)
	}
}

func TestEncodeCompositeChildren(t *testing.T) {
	a := EncodeSmallInt(false, 1)
	b := EncodeSmallInt(false, 2)
	c := EncodeSmallInt(true, 3)
	composite := EncodeComposite(TagProgram, [][]byte{a, b, c})

	_, size, err := ObjectSize(composite)
	if err != nil {
		t.Fatal(err)
	}
	if size != len(composite) {
		t.Errorf("composite size = %d, want %d", size, len(composite))
	}

	children, err := CompositeChildren(composite)
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 3 {
		t.Fatalf("got %d children, want 3", len(children))
	}
	for i, want := range [][]byte{a, b, c} {
		if string(children[i]) != string(want) {
			t.Errorf("child %d mismatch", i)
		}
	}
}

func TestEncodePairRoundTrip(t *testing.T) {
	num := EncodeSmallInt(false, 3)
	den := EncodeSmallInt(false, 4)
	pair := EncodePair(TagFractionPos, num, den)

	a, b, err := PairChildren(pair)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(num) || string(b) != string(den) {
		t.Errorf("pair children mismatch")
	}
}

func TestArenaAllocAndRelease(t *testing.T) {
	arena := NewArena(1024)
	obj := EncodeSmallInt(false, 7)
	h, err := arena.Alloc(obj)
	if err != nil {
		t.Fatal(err)
	}
	if string(arena.Bytes(h)) != string(obj) {
		t.Errorf("arena bytes mismatch")
	}
	arena.Release(h)
	if arena.handles.Live(h) {
		t.Errorf("handle still live after release")
	}
}

func TestArenaGCCompactsUnreferencedObjects(t *testing.T) {
	arena := NewArena(1024)
	keep, err := arena.Alloc(EncodeSmallInt(false, 1))
	if err != nil {
		t.Fatal(err)
	}
	drop, err := arena.Alloc(EncodeSmallInt(false, 2))
	if err != nil {
		t.Fatal(err)
	}
	before := arena.Len()
	arena.Release(drop)
	arena.GC()
	if arena.Len() >= before {
		t.Errorf("GC did not shrink live region: before=%d after=%d", before, arena.Len())
	}
	if string(arena.Bytes(keep)) != string(EncodeSmallInt(false, 1)) {
		t.Errorf("surviving handle corrupted after compaction")
	}
}

func TestArenaGCUpdatesHandleAfterSlide(t *testing.T) {
	arena := NewArena(1024)
	first, _ := arena.Alloc(EncodeSmallInt(false, 10))
	second, _ := arena.Alloc(EncodeSmallInt(false, 20))
	arena.Release(first)
	arena.GC()
	if string(arena.Bytes(second)) != string(EncodeSmallInt(false, 20)) {
		t.Errorf("handle not correctly relocated by compaction")
	}
}

func TestArenaRetainSharesBytes(t *testing.T) {
	arena := NewArena(1024)
	h, _ := arena.Alloc(EncodeSmallInt(false, 99))
	h2 := arena.Retain(h)
	if h == h2 {
		t.Fatalf("Retain must return a distinct handle")
	}
	arena.Release(h)
	if string(arena.Bytes(h2)) != string(EncodeSmallInt(false, 99)) {
		t.Errorf("retained handle lost its bytes after sibling release")
	}
}

func TestScratchpadLIFO(t *testing.T) {
	arena := NewArena(1024)
	pad := NewScratchpad(arena)
	h1, b1, err := pad.Allocate(8)
	if err != nil {
		t.Fatal(err)
	}
	copy(b1, []byte("abcdefgh"))
	h2, b2, err := pad.Allocate(4)
	if err != nil {
		t.Fatal(err)
	}
	copy(b2, []byte("wxyz"))

	if err := pad.Free(h1); err == nil {
		t.Fatalf("freeing non-top scratch allocation should fail")
	}
	if err := pad.Free(h2); err != nil {
		t.Fatalf("freeing top allocation failed: %v", err)
	}
	if err := pad.Free(h1); err != nil {
		t.Fatalf("freeing now-top allocation failed: %v", err)
	}
}

func TestScratchpadFreeze(t *testing.T) {
	arena := NewArena(1024)
	pad := NewScratchpad(arena)
	obj := EncodeSmallInt(false, 55)
	h, buf, err := pad.Allocate(len(obj))
	if err != nil {
		t.Fatal(err)
	}
	copy(buf, obj)
	frozen, err := pad.Freeze(h)
	if err != nil {
		t.Fatal(err)
	}
	if string(arena.Bytes(frozen)) != string(obj) {
		t.Errorf("frozen object bytes mismatch")
	}
}

func TestSnapshotRestoreUndoesAllocations(t *testing.T) {
	arena := NewArena(1024)
	kept, err := arena.Alloc(EncodeSmallInt(false, 1))
	if err != nil {
		t.Fatal(err)
	}
	snap := arena.Save()

	if _, err := arena.Alloc(EncodeSmallInt(false, 2)); err != nil {
		t.Fatal(err)
	}
	if _, err := arena.Alloc(EncodeSmallInt(false, 3)); err != nil {
		t.Fatal(err)
	}

	arena.Restore(snap)

	if !arena.handles.Live(kept) {
		t.Errorf("restore dropped a handle that predates the snapshot")
	}
	if string(arena.Bytes(kept)) != string(EncodeSmallInt(false, 1)) {
		t.Errorf("restore corrupted pre-snapshot object")
	}
}

func TestObjectSizeRejectsTruncatedBuffer(t *testing.T) {
	obj := EncodeAtom(TagSymbol, []byte("xyz"))
	if _, _, err := ObjectSize(obj[:len(obj)-1]); err == nil {
		t.Errorf("expected error on truncated object")
	}
}
