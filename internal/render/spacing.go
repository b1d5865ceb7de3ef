package render

import "strings"

// groupFromRight inserts sep every size digits counting from the
// rightmost digit, the ordinary thousands-separator direction used for
// an integer mantissa or a based-number's digits.
func groupFromRight(digits string, size int, sep rune) string {
	if size <= 0 || len(digits) <= size {
		return digits
	}
	var b strings.Builder
	rem := len(digits) % size
	if rem == 0 {
		rem = size
	}
	b.WriteString(digits[:rem])
	for i := rem; i < len(digits); i += size {
		b.WriteRune(sep)
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}

// groupFromLeft inserts sep every size digits counting from the
// leftmost digit, the direction a fractional mantissa is grouped in
// ("from the decimal point outward" on the fraction side means away
// from the point, i.e. left to right).
func groupFromLeft(digits string, size int, sep rune) string {
	if size <= 0 || len(digits) <= size {
		return digits
	}
	var b strings.Builder
	for i := 0; i < len(digits); i += size {
		if i > 0 {
			b.WriteRune(sep)
		}
		end := i + size
		if end > len(digits) {
			end = len(digits)
		}
		b.WriteString(digits[i:end])
	}
	return b.String()
}
