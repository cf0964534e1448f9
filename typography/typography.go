// Package typography derives vertical rhythm and modular scale lengths from a
// small set of base font settings.
//
// A Typography value is immutable once built, so one instance can be shared by
// every renderer without locking. Initialize builds the process-wide instance
// at startup; New builds an unshared one.
package typography

import (
	"math"
	"strconv"
	"sync"
)

// Length is a CSS length.
type Length struct {
	Value float64
	Unit  Unit
}

// String formats l for use in a style attribute, rounded to five decimals.
func (l Length) String() string {
	v := math.Round(l.Value*1e5) / 1e5
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + string(l.Unit)
}

// ScaleResult is the font size and line height for one step of the modular scale.
type ScaleResult struct {
	// FontSizeRatio is ScaleRatio^step, relative to the base font size.
	FontSizeRatio float64
	// LineHeightRatio is Lines × BaseLineHeight, relative to the base font size.
	LineHeightRatio float64
	// Lines is the number of base lines (in half-line steps) the text occupies.
	Lines float64

	FontSize   Length
	LineHeight Length
}

// Typography computes rhythm and scale lengths for one Config.
type Typography struct {
	cfg          Config
	lineHeightPx float64
	padPx        float64
}

// New validates cfg and returns a Typography for it.
func New(cfg Config) (*Typography, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Typography{
		cfg:          cfg,
		lineHeightPx: cfg.BaseFontSize * cfg.BaseLineHeight,
		padPx:        *cfg.MinLinePadding,
	}, nil
}

var process struct {
	mu   sync.Mutex
	typo *Typography
}

// Initialize builds the process-wide Typography. Only the first successful
// call constructs it; later calls return the existing instance and ignore cfg.
// A failed call leaves the process uninitialized.
func Initialize(cfg Config) (*Typography, error) {
	process.mu.Lock()
	defer process.mu.Unlock()
	if process.typo != nil {
		return process.typo, nil
	}
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	process.typo = t
	return t, nil
}

// Default returns the instance built by Initialize, or nil.
func Default() *Typography {
	process.mu.Lock()
	defer process.mu.Unlock()
	return process.typo
}

// Config returns a copy of the validated configuration.
func (t *Typography) Config() Config {
	return t.cfg.withDefaults()
}

// Rhythm returns multiplier base lines as a length. Negative multipliers
// yield negative lengths, which are valid margin offsets.
func (t *Typography) Rhythm(multiplier float64) Length {
	return t.fromPx(t.lineHeightPx * multiplier)
}

// Scale returns the font size ScaleRatio^step times the base font size and the
// smallest half-line multiple of the base line height that fits it.
func (t *Typography) Scale(step float64) ScaleResult {
	ratio := math.Pow(t.cfg.ScaleRatio, step)
	fontPx := ratio * t.cfg.BaseFontSize
	lines := t.linesFor(fontPx)
	return ScaleResult{
		FontSizeRatio:   ratio,
		LineHeightRatio: lines * t.cfg.BaseLineHeight,
		Lines:           lines,
		FontSize:        t.fromPx(fontPx),
		LineHeight:      t.Rhythm(lines),
	}
}

// Px converts l to pixels against the base font size.
func (t *Typography) Px(l Length) float64 {
	if l.Unit == UnitRem {
		return l.Value * t.cfg.BaseFontSize
	}
	return l.Value
}

func (t *Typography) linesFor(fontPx float64) float64 {
	lines := math.Ceil(2*fontPx/t.lineHeightPx) / 2
	if lines*t.lineHeightPx-fontPx < 2*t.padPx {
		lines += 0.5
	}
	return lines
}

func (t *Typography) fromPx(px float64) Length {
	if t.cfg.RhythmUnit == UnitPx {
		return Length{Value: px, Unit: UnitPx}
	}
	return Length{Value: px / t.cfg.BaseFontSize, Unit: UnitRem}
}
