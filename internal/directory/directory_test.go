package directory

import "testing"

func TestStoreAndRecall(t *testing.T) {
	root := NewRoot()
	root.Store("X", 42)
	h, err := root.Recall("X")
	if err != nil {
		t.Fatal(err)
	}
	if h != 42 {
		t.Errorf("got %v, want 42", h)
	}
}

func TestRecallUndefinedFails(t *testing.T) {
	root := NewRoot()
	if _, err := root.Recall("Y"); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCdCreatesChildAndShadowsParent(t *testing.T) {
	root := NewRoot()
	root.Store("X", 1)
	sub := root.Cd("SUB")
	sub.Store("X", 2)

	h, err := sub.Recall("X")
	if err != nil {
		t.Fatal(err)
	}
	if h != 2 {
		t.Errorf("child binding should shadow parent: got %v", h)
	}

	parent, err := sub.Updir()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := parent.Recall("X")
	if err != nil {
		t.Fatal(err)
	}
	if h2 != 1 {
		t.Errorf("parent binding unaffected by child: got %v", h2)
	}
}

func TestUpdirAtRootFails(t *testing.T) {
	root := NewRoot()
	if _, err := root.Updir(); err != ErrRootUpdir {
		t.Errorf("got %v, want ErrRootUpdir", err)
	}
}

func TestPurgeRemovesOnlyFromCurrentDirectory(t *testing.T) {
	root := NewRoot()
	root.Store("X", 1)
	sub := root.Cd("SUB")
	sub.Store("X", 2)
	sub.Purge("X")

	h, err := sub.Recall("X")
	if err != nil {
		t.Fatal(err)
	}
	if h != 1 {
		t.Errorf("purge in child should reveal parent binding: got %v", h)
	}
}

func TestRecallAllInnermostWins(t *testing.T) {
	root := NewRoot()
	root.Store("X", 1)
	root.Store("Y", 9)
	sub := root.Cd("SUB")
	sub.Store("X", 2)

	all := sub.RecallAll()
	if all["X"] != 2 {
		t.Errorf("RecallAll: X = %v, want 2 (innermost)", all["X"])
	}
	if all["Y"] != 9 {
		t.Errorf("RecallAll: Y = %v, want 9 (inherited)", all["Y"])
	}
}

func TestPathRendersFromRoot(t *testing.T) {
	root := NewRoot()
	if root.Path() != "/" {
		t.Errorf("root path = %q, want /", root.Path())
	}
	sub := root.Cd("A").Cd("B")
	if sub.Path() != "/A/B" {
		t.Errorf("sub path = %q, want /A/B", sub.Path())
	}
}
