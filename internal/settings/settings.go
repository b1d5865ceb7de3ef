// Package settings loads and holds the Settings object the core reads:
// display base, word size, bignum size ceiling, digit spacing, and the
// marks used when rendering numbers. Loaded from TOML the way surge's
// internal/project decodes surge.toml's [package]/[modules] sections —
// here a single [calculator] table.
package settings

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// CaseStyle selects how command names render.
type CaseStyle string

const (
	CaseLower      CaseStyle = "lower"
	CaseUpper      CaseStyle = "upper"
	CaseCapitalize CaseStyle = "capitalize"
	CaseLong       CaseStyle = "long"
)

// Settings is the enumerated configuration the evaluator, bignum engine,
// and renderer all read.
type Settings struct {
	Base      int `toml:"base"`      // display base for based numbers: 2, 8, 10, 16
	WordSize  int `toml:"wordsize"`  // bits; based-number results are masked to this width
	MaxBignum int `toml:"maxbignum"` // max bits allowed for a bignum arithmetic result

	SpacingMantissa int `toml:"spacing_mantissa"`
	SpacingFraction int `toml:"spacing_fraction"`
	SpacingBased    int `toml:"spacing_based"`

	Space      rune `toml:"-"`
	SpaceBased rune `toml:"-"`

	DecimalMark  rune `toml:"-"`
	ExponentMark rune `toml:"-"`

	CaseStyle CaseStyle `toml:"case_style"`

	SpaceCP      int `toml:"space_codepoint"`
	SpaceBasedCP int `toml:"space_based_codepoint"`
	DecimalCP    int `toml:"decimal_mark_codepoint"`
	ExponentCP   int `toml:"exponent_mark_codepoint"`
}

// Default returns the calculator's factory settings.
func Default() Settings {
	s := Settings{
		Base:            10,
		WordSize:        64,
		MaxBignum:       1 << 20,
		SpacingMantissa: 3,
		SpacingFraction: 3,
		SpacingBased:    4,
		CaseStyle:       CaseUpper,
		SpaceCP:         ' ',
		SpaceBasedCP:    ' ',
		DecimalCP:       '.',
		ExponentCP:      'E',
	}
	s.resolveRunes()
	return s
}

func (s *Settings) resolveRunes() {
	s.Space = rune(s.SpaceCP)
	s.SpaceBased = rune(s.SpaceBasedCP)
	s.DecimalMark = rune(s.DecimalCP)
	s.ExponentMark = rune(s.ExponentCP)
}

type fileFormat struct {
	Calculator Settings `toml:"calculator"`
}

// Load decodes a TOML settings file, falling back to Default for any
// field left unset.
func Load(path string) (Settings, error) {
	s := Default()
	var raw fileFormat
	raw.Calculator = s
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("calculator") {
		return s, nil
	}
	out := raw.Calculator
	out.resolveRunes()
	return out, nil
}

// Save writes s to path as a [calculator] TOML table.
func Save(path string, s Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := toml.NewEncoder(f)
	return enc.Encode(fileFormat{Calculator: s})
}

// Validate checks that the settings are in range, returning a descriptive
// error naming the offending field.
func (s Settings) Validate() error {
	switch s.Base {
	case 2, 8, 10, 16:
	default:
		return fmt.Errorf("base must be one of 2, 8, 10, 16, got %d", s.Base)
	}
	if s.WordSize <= 0 || s.WordSize > 4096 {
		return fmt.Errorf("wordsize out of range: %d", s.WordSize)
	}
	if s.MaxBignum <= 0 {
		return fmt.Errorf("maxbignum must be positive, got %d", s.MaxBignum)
	}
	return nil
}

// WordBytes returns the based-number mask width in bytes, ⌈w/8⌉.
func (s Settings) WordBytes() int { return (s.WordSize + 7) / 8 }
