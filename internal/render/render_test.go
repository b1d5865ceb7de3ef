package render

import (
	"testing"

	"db48x/internal/settings"
)

func TestGroupFromRightThousands(t *testing.T) {
	if got := groupFromRight("1234567", 3, ' '); got != "1 234 567" {
		t.Errorf("groupFromRight = %q", got)
	}
	if got := groupFromRight("12", 3, ' '); got != "12" {
		t.Errorf("groupFromRight short input changed: %q", got)
	}
}

func TestGroupFromLeftFraction(t *testing.T) {
	if got := groupFromLeft("1234567", 3, ' '); got != "123 456 7" {
		t.Errorf("groupFromLeft = %q", got)
	}
}

func TestMantissaWithGrouping(t *testing.T) {
	s := settings.Default()
	buf := NewBuffer()
	r := New(buf, s)
	r.Mantissa(false, "1234567", "89")
	if got := buf.String(); got != "1 234 567.89" {
		t.Errorf("Mantissa = %q", got)
	}
}

func TestMantissaNegative(t *testing.T) {
	s := settings.Default()
	buf := NewBuffer()
	r := New(buf, s)
	r.Mantissa(true, "5", "")
	if got := buf.String(); got != "-5" {
		t.Errorf("Mantissa = %q", got)
	}
}

func TestExponentOmittedWhenZero(t *testing.T) {
	s := settings.Default()
	buf := NewBuffer()
	r := New(buf, s)
	r.Exponent(0)
	if got := buf.String(); got != "" {
		t.Errorf("Exponent(0) wrote %q, want nothing", got)
	}
}

func TestExponentPositiveAndNegative(t *testing.T) {
	s := settings.Default()
	buf := NewBuffer()
	New(buf, s).Exponent(12)
	if got := buf.String(); got != "E+12" {
		t.Errorf("Exponent(12) = %q", got)
	}

	buf2 := NewBuffer()
	New(buf2, s).Exponent(-3)
	if got := buf2.String(); got != "E-3" {
		t.Errorf("Exponent(-3) = %q", got)
	}
}

func TestBasedGroupingAndSuffix(t *testing.T) {
	s := settings.Default()
	buf := NewBuffer()
	New(buf, s).Based("11110000", 2)
	if got := buf.String(); got != "1111 0000b" {
		t.Errorf("Based = %q", got)
	}
}

func TestCommandNameCaseStyles(t *testing.T) {
	cases := []struct {
		style settings.CaseStyle
		want  string
	}{
		{settings.CaseLower, "sqrt"},
		{settings.CaseUpper, "SQRT"},
		{settings.CaseCapitalize, "Sqrt"},
		{settings.CaseLong, "SQRT"},
	}
	for _, c := range cases {
		s := settings.Default()
		s.CaseStyle = c.style
		r := New(NewBuffer(), s)
		if got := r.CommandName("SQRT"); got != c.want {
			t.Errorf("CommandName(%v) = %q, want %q", c.style, got, c.want)
		}
	}
}

func TestTruncateAddsSuffix(t *testing.T) {
	if got := Truncate("hello world", 8, "..."); DisplayWidth(got) > 8 {
		t.Errorf("Truncate exceeded width: %q", got)
	}
}
