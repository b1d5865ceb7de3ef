// Package directory implements the named hierarchical symbol->object
// mapping the evaluator uses for global variable lookup: store,
// recall_all, purge, cd, updir. Grounded on the same map-keyed-by-name
// shape surge's internal/project uses for its module tree, generalized
// from a filesystem-rooted module graph to an in-memory tree the
// evaluator can mutate.
package directory

import (
	"errors"
	"strings"

	"db48x/internal/objmem"
)

// ErrNotFound indicates a symbol has no binding reachable from the
// current directory.
var ErrNotFound = errors.New("undefined name")

// ErrRootUpdir indicates updir was called while already at the root.
var ErrRootUpdir = errors.New("already at the root directory")

// Directory is one node in the hierarchical tree: a set of symbol
// bindings plus named child directories.
type Directory struct {
	name     string
	parent   *Directory
	vars     map[string]objmem.Handle
	children map[string]*Directory
}

// NewRoot creates the root of a directory tree.
func NewRoot() *Directory {
	return &Directory{vars: make(map[string]objmem.Handle), children: make(map[string]*Directory)}
}

// Store binds name to h in this directory, replacing any prior binding.
func (d *Directory) Store(name string, h objmem.Handle) {
	d.vars[name] = h
}

// Recall looks up name starting at this directory and walking up through
// parents (lexical-scope-style shadowing: a local binding hides an outer
// one of the same name).
func (d *Directory) Recall(name string) (objmem.Handle, error) {
	for cur := d; cur != nil; cur = cur.parent {
		if h, ok := cur.vars[name]; ok {
			return h, nil
		}
	}
	return 0, ErrNotFound
}

// RecallAll returns every binding visible from this directory, innermost
// first, without walking further up once a name has already been seen.
func (d *Directory) RecallAll() map[string]objmem.Handle {
	out := make(map[string]objmem.Handle)
	for cur := d; cur != nil; cur = cur.parent {
		for name, h := range cur.vars {
			if _, seen := out[name]; !seen {
				out[name] = h
			}
		}
	}
	return out
}

// Purge removes name's binding from this directory only (not parents).
func (d *Directory) Purge(name string) {
	delete(d.vars, name)
}

// Cd descends into (creating if absent) the named child directory and
// returns it.
func (d *Directory) Cd(name string) *Directory {
	if child, ok := d.children[name]; ok {
		return child
	}
	child := &Directory{
		name:     name,
		parent:   d,
		vars:     make(map[string]objmem.Handle),
		children: make(map[string]*Directory),
	}
	d.children[name] = child
	return child
}

// Updir returns the parent directory.
func (d *Directory) Updir() (*Directory, error) {
	if d.parent == nil {
		return nil, ErrRootUpdir
	}
	return d.parent, nil
}

// Path renders the directory's path from the root, "/" separated, root
// itself rendering as "/".
func (d *Directory) Path() string {
	var parts []string
	for cur := d; cur.parent != nil; cur = cur.parent {
		parts = append([]string{cur.name}, parts...)
	}
	return "/" + strings.Join(parts, "/")
}
