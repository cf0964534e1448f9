package typography

import (
	"fmt"
	"math"
	"slices"
)

// Unit is the CSS length unit rhythm values are expressed in.
type Unit string

const (
	UnitRem Unit = "rem"
	UnitPx  Unit = "px"
)

// Config holds the base values every rhythm and scale length is derived from.
type Config struct {
	BaseFontSize     float64  `mapstructure:"baseFontSize" yaml:"baseFontSize"`     // px (default 14)
	ScaleRatio       float64  `mapstructure:"scaleRatio" yaml:"scaleRatio"`         // modular scale ratio, must be > 1 (default 3)
	BaseLineHeight   float64  `mapstructure:"baseLineHeight" yaml:"baseLineHeight"` // multiplier of BaseFontSize (default 1.8)
	HeaderFontFamily []string `mapstructure:"headerFontFamily" yaml:"headerFontFamily"`
	BodyFontFamily   []string `mapstructure:"bodyFontFamily" yaml:"bodyFontFamily"`

	RhythmUnit     Unit     `mapstructure:"rhythmUnit" yaml:"rhythmUnit"`         // "rem" (default) or "px"
	MinLinePadding *float64 `mapstructure:"minLinePadding" yaml:"minLinePadding"` // px above and below a line of text; nil means 2, 0 is kept
	HeaderWeight   string   `mapstructure:"headerWeight" yaml:"headerWeight"`
	BodyWeight     string   `mapstructure:"bodyWeight" yaml:"bodyWeight"`
	BoldWeight     string   `mapstructure:"boldWeight" yaml:"boldWeight"`
	HeaderColor    string   `mapstructure:"headerColor" yaml:"headerColor"`
	BodyColor      string   `mapstructure:"bodyColor" yaml:"bodyColor"`
}

// DefaultConfig returns the settings the blog ships with.
func DefaultConfig() Config {
	return Config{
		BaseFontSize:     14,
		ScaleRatio:       3,
		BaseLineHeight:   1.8,
		HeaderFontFamily: []string{"Alegreya", "Times", "serif"},
		BodyFontFamily:   []string{"Actor", "Helvetica Neue", "sans-serif"},
		RhythmUnit:       UnitRem,
		MinLinePadding:   LinePadding(2),
		HeaderWeight:     "900",
		BodyWeight:       "normal",
		BoldWeight:       "bold",
		HeaderColor:      "inherit",
		BodyColor:        "hsla(0,0%,0%,0.9)",
	}
}

// LinePadding returns a MinLinePadding value of px.
func LinePadding(px float64) *float64 {
	return &px
}

// withDefaults fills the presentational fields left empty. The numeric base
// values are not defaulted: a zero font size is a configuration mistake.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RhythmUnit == "" {
		c.RhythmUnit = d.RhythmUnit
	}
	pad := *d.MinLinePadding
	if c.MinLinePadding != nil {
		pad = *c.MinLinePadding
	}
	c.MinLinePadding = &pad
	if c.HeaderWeight == "" {
		c.HeaderWeight = d.HeaderWeight
	}
	if c.BodyWeight == "" {
		c.BodyWeight = d.BodyWeight
	}
	if c.BoldWeight == "" {
		c.BoldWeight = d.BoldWeight
	}
	if c.HeaderColor == "" {
		c.HeaderColor = d.HeaderColor
	}
	if c.BodyColor == "" {
		c.BodyColor = d.BodyColor
	}
	c.HeaderFontFamily = slices.Clone(c.HeaderFontFamily)
	c.BodyFontFamily = slices.Clone(c.BodyFontFamily)
	return c
}

func (c Config) validate() error {
	if !finite(c.BaseFontSize) || c.BaseFontSize <= 0 {
		return &ConfigError{Field: "baseFontSize", Value: c.BaseFontSize, Reason: "must be greater than 0"}
	}
	if !finite(c.ScaleRatio) || c.ScaleRatio <= 1 {
		return &ConfigError{Field: "scaleRatio", Value: c.ScaleRatio, Reason: "must be greater than 1"}
	}
	if !finite(c.BaseLineHeight) || c.BaseLineHeight <= 0 {
		return &ConfigError{Field: "baseLineHeight", Value: c.BaseLineHeight, Reason: "must be greater than 0"}
	}
	if pad := *c.MinLinePadding; !finite(pad) || pad < 0 {
		return &ConfigError{Field: "minLinePadding", Value: pad, Reason: "must not be negative"}
	}
	switch c.RhythmUnit {
	case UnitRem, UnitPx:
	default:
		return &ConfigError{Field: "rhythmUnit", Value: c.RhythmUnit, Reason: fmt.Sprintf("must be %q or %q", UnitRem, UnitPx)}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
