package ifs

import (
	"math"

	"github.com/matzehuels/chaostower/pkg/errors"
	"github.com/matzehuels/chaostower/pkg/geometry"
)

// AffineMap holds the six coefficients of a 2-D affine transform. Their meaning
// depends on the Mode the map is used with.
type AffineMap struct {
	A, B, C, D, E, F float64
}

// Coefficients returns the coefficients in order.
func (m AffineMap) Coefficients() [6]float64 {
	return [6]float64{m.A, m.B, m.C, m.D, m.E, m.F}
}

// Finite reports whether every coefficient is finite.
func (m AffineMap) Finite() bool {
	for _, c := range m.Coefficients() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Apply maps p using the regular reading. Z is carried through.
func (m AffineMap) Apply(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
		Z: p.Z,
	}
}

// TransformSet is an ordered list of maps.
type TransformSet []AffineMap

// Mode selects how AffineMap coefficients are read.
type Mode int

const (
	// Regular reads (a, b, c, d, e, f) as x' = a·x + b·y + c, y' = d·x + e·y + f.
	Regular Mode = iota
	// Alternate reads (a, b, c, d, e, f) as x' = a·x + b·y + e, y' = c·x + d·y + f.
	Alternate
)

// String returns the mode name used in configuration.
func (m Mode) String() string {
	switch m {
	case Regular:
		return "regular"
	case Alternate:
		return "alternate"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name. "borke" is accepted as an alias of "alternate".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "regular":
		return Regular, nil
	case "alternate", "borke":
		return Alternate, nil
	default:
		return 0, errors.Configuration("unknown coefficient ordering %q (must be regular or alternate)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != Regular && m != Alternate {
		return nil, errors.Configuration("unknown coefficient ordering %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// canonical rewrites maps read under mode into the regular reading.
func canonical(maps TransformSet, mode Mode) (TransformSet, error) {
	out := make(TransformSet, len(maps))
	switch mode {
	case Regular:
		copy(out, maps)
	case Alternate:
		for i, m := range maps {
			out[i] = AffineMap{A: m.A, B: m.B, C: m.E, D: m.C, E: m.D, F: m.F}
		}
	default:
		return nil, errors.Configuration("unknown coefficient ordering %d", int(mode))
	}
	return out, nil
}
