package bignum

import (
	"fmt"
	"strings"
)

// FormatUint renders a Uint in decimal.
func FormatUint(u Uint) string {
	m := trim(u.Mag)
	if len(m) == 0 {
		return "0"
	}

	const chunk = 10000 // largest power of ten fitting comfortably below 2^16

	cur := Uint{Mag: m}
	var parts []uint16
	for !cur.IsZero() {
		q, r, err := divModSmallU16(cur, chunk)
		if err != nil {
			return "<format-error>"
		}
		parts = append(parts, r)
		cur = q
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d", parts[len(parts)-1]))
	for i := len(parts) - 2; i >= 0; i-- {
		sb.WriteString(fmt.Sprintf("%04d", parts[i]))
	}
	return sb.String()
}

func divModSmallU16(u Uint, d uint16) (q Uint, r uint16, err error) {
	m := trim(u.Mag)
	if len(m) == 0 {
		return Uint{}, 0, nil
	}
	out := make([]byte, len(m))
	var rem uint32
	for i := len(m) - 1; i >= 0; i-- {
		cur := rem<<8 | uint32(m[i])
		out[i] = byte(cur / uint32(d))
		rem = cur % uint32(d)
	}
	return Uint{Mag: trim(out)}, uint16(rem), nil
}

// FormatInt renders an Int in decimal, with a leading '-' if negative.
func FormatInt(i Int) string {
	m := trim(i.Mag)
	if len(m) == 0 {
		return "0"
	}
	s := FormatUint(Uint{Mag: m})
	if i.Neg {
		return "-" + s
	}
	return s
}

// digitAlphabet supplies the characters for bases up to 16.
const digitAlphabet = "0123456789ABCDEF"

// FormatBased renders a magnitude in the given base (2, 8, 10, or 16),
// without the leading '#' or trailing base suffix — the renderer layer
// adds those along with digit-group spacing.
func FormatBased(u Uint, base int) string {
	m := trim(u.Mag)
	if len(m) == 0 {
		return "0"
	}
	if base == 16 {
		return formatHex(m)
	}
	var digits []byte
	cur := Uint{Mag: m}
	b := byte(base)
	for !cur.IsZero() {
		q, r, _ := UintDivModSmall(cur, b)
		digits = append(digits, digitAlphabet[r])
		cur = q
	}
	// digits were accumulated least-significant first; reverse.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

func formatHex(m []byte) string {
	var sb strings.Builder
	for i := len(m) - 1; i >= 0; i-- {
		sb.WriteByte(digitAlphabet[m[i]>>4])
		sb.WriteByte(digitAlphabet[m[i]&0xf])
	}
	s := strings.TrimLeft(sb.String(), "0")
	if s == "" {
		return "0"
	}
	return s
}
