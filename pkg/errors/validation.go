package errors

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// MaxSteps bounds the iteration count accepted at the input boundary.
// The engines themselves accept any non-negative count.
const MaxSteps = 5_000_000

// ratioPartRegex matches one side of a "p/q" fraction. Both sides are bounded
// so the exact rational arithmetic stays cheap.
var ratioPartRegex = regexp.MustCompile(`^[+-]?[0-9]{1,18}$`)

// ParseFraction parses a jump fraction given as a rational ("2/3") or a decimal ("0.5").
// Whitespace around the value is ignored. Non-finite results are rejected.
func ParseFraction(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, New(ErrCodeInvalidInput, "fraction cannot be empty")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return 0, New(ErrCodeInvalidInput, "fraction contains invalid control characters")
		}
	}
	var f float64
	if num, den, isRatio := strings.Cut(s, "/"); isRatio {
		if !ratioPartRegex.MatchString(num) || !ratioPartRegex.MatchString(den) {
			return 0, New(ErrCodeInvalidInput, "invalid fraction: %q", s)
		}
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return 0, New(ErrCodeInvalidInput, "invalid fraction: %q", s)
		}
		f, _ = r.Float64()
	} else {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, New(ErrCodeInvalidInput, "invalid fraction: %q", s)
		}
		f = v
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, New(ErrCodeInvalidInput, "fraction must be finite: %q", s)
	}
	return f, nil
}

// ValidateJump checks that a jump fraction is finite and non-negative.
func ValidateJump(jump float64) error {
	if math.IsNaN(jump) || math.IsInf(jump, 0) {
		return New(ErrCodeInvalidInput, "jump must be finite, got %v", jump)
	}
	if jump < 0 {
		return New(ErrCodeInvalidInput, "jump must be non-negative, got %v", jump)
	}
	return nil
}

// ValidatePolygon checks that a polygon has at least three vertices.
func ValidatePolygon(n int) error {
	if n < 3 {
		return New(ErrCodeInvalidInput, "polygon needs at least 3 vertices, got %d", n)
	}
	return nil
}

// ValidateOffset checks a rule offset against the polygon size.
// A symmetric rule mirrors the offset, so it may reach at most half way round.
func ValidateOffset(offset, polygon int, symmetric bool) error {
	limit := float64(polygon)
	if symmetric {
		limit /= 2
	}
	if math.Abs(float64(offset)) > limit {
		return New(ErrCodeInvalidInput, "offset %d out of range for a %d-gon (max %g)", offset, polygon, limit)
	}
	return nil
}

// ValidateSteps checks an iteration count.
func ValidateSteps(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "steps must be non-negative, got %d", n)
	}
	if n > MaxSteps {
		return New(ErrCodeInvalidInput, "steps too large (max %d), got %d", MaxSteps, n)
	}
	return nil
}

// presetNameRegex matches preset identifiers such as "sierpt" or "my-fern_2".
var presetNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidatePresetName validates a preset identifier. Names are lowercase and
// at most 64 characters so they can be used as file names and URL segments.
func ValidatePresetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPreset, "preset name too long (max 64 characters)")
	}
	if !presetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPreset, "invalid preset name: %q", name)
	}
	return nil
}
