package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"db48x/internal/settings"
)

// Renderer formats numeric text and command names according to a
// Settings value, writing to a Writer.
type Renderer struct {
	w Writer
	s settings.Settings
}

// New returns a Renderer writing to w under settings s.
func New(w Writer, s settings.Settings) *Renderer { return &Renderer{w: w, s: s} }

// Mantissa writes intPart[.fracPart], grouping digits per
// spacing_mantissa (integer side, grouped from the decimal point
// outward to the left) and spacing_fraction (fraction side, grouped
// from the decimal point outward to the right), using the configured
// digit-separator and decimal-mark codepoints.
func (r *Renderer) Mantissa(neg bool, intPart, fracPart string) {
	if neg {
		r.w.PutByte('-')
	}
	r.w.Printf("%s", groupFromRight(intPart, r.s.SpacingMantissa, r.s.Space))
	if fracPart != "" {
		r.w.PutRune(r.s.DecimalMark)
		r.w.Printf("%s", groupFromLeft(fracPart, r.s.SpacingFraction, r.s.Space))
	}
}

// Exponent writes the exponent mark followed by a signed exponent, e.g.
// "E+12" — omitted entirely when exp is zero.
func (r *Renderer) Exponent(exp int) {
	if exp == 0 {
		return
	}
	r.w.PutRune(r.s.ExponentMark)
	if exp >= 0 {
		r.w.PutByte('+')
	}
	r.w.Printf("%d", exp)
}

// Based writes a based number's digit string grouped by
// spacing_based and separated by space_based, followed by the base
// suffix letter (b/o/d/h).
func (r *Renderer) Based(digits string, base int) {
	r.w.Printf("%s", groupFromRight(digits, r.s.SpacingBased, r.s.SpaceBased))
	r.w.PutRune(baseSuffix(base))
}

func baseSuffix(base int) rune {
	switch base {
	case 2:
		return 'b'
	case 8:
		return 'o'
	case 16:
		return 'h'
	default:
		return 'd'
	}
}

// CommandName renders a command's canonical (long, capitalized) spelling
// under the configured case style.
func (r *Renderer) CommandName(canonical string) string {
	switch r.s.CaseStyle {
	case settings.CaseLower:
		return cases.Lower(language.Und).String(canonical)
	case settings.CaseUpper:
		return cases.Upper(language.Und).String(canonical)
	case settings.CaseCapitalize:
		return capitalizeWord(canonical)
	case settings.CaseLong:
		return canonical
	default:
		return canonical
	}
}

func capitalizeWord(s string) string {
	if s == "" {
		return s
	}
	title := cases.Title(language.Und).String(strings.ToLower(s))
	return title
}
