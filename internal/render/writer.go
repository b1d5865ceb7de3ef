// Package render formats numbers and command names for display: digit
// grouping, decimal/exponent marks, and case style, reading its
// configuration from an explicit settings.Settings value rather than a
// package-level global — per the design note that global mutable
// singletons should be modeled as explicit context. Grounded on
// original_source/src/renderer.cc's writer contract ("put(byte),
// put(unicode codepoint), printf") and on surge's internal/ui/progress.go
// for the go-runewidth-based width accounting used to size output.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer is the renderer's output sink: a byte, a Unicode codepoint, or
// a formatted string at a time.
type Writer interface {
	PutByte(b byte)
	PutRune(r rune)
	Printf(format string, args ...any)
}

// Buffer is a Writer backed by an in-memory strings.Builder.
type Buffer struct {
	b strings.Builder
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer { return &Buffer{} }

func (w *Buffer) PutByte(b byte) { w.b.WriteByte(b) }
func (w *Buffer) PutRune(r rune) { w.b.WriteRune(r) }
func (w *Buffer) Printf(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
}

// String returns the accumulated output.
func (w *Buffer) String() string { return w.b.String() }

// DisplayWidth returns the terminal column width of s, accounting for
// wide (e.g. CJK) and zero-width runes before truncating a label to fit
// a fixed column budget.
func DisplayWidth(s string) int { return runewidth.StringWidth(s) }

// Truncate shortens s to fit within width display columns, appending
// suffix when truncation actually occurs.
func Truncate(s string, width int, suffix string) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= runewidth.StringWidth(suffix) {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width-runewidth.StringWidth(suffix), suffix)
}
