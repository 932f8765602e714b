package ifs

import (
	"strconv"
	"strings"

	"github.com/matzehuels/chaostower/pkg/errors"
)

// ParseMaps reads a transform set from text. Maps are separated by newlines or
// semicolons; each map is six numbers separated by commas or whitespace. Blank
// lines and lines starting with '#' are ignored.
//
//	0, 0, 0, 0.16, 0, 0
//	0.85, 0.04, -0.04, 0.85, 0, 1.6
func ParseMaps(text string) (TransformSet, error) {
	var maps TransformSet
	for n, line := range splitRecords(text) {
		vals, err := parseNumbers(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "map %d", n+1)
		}
		if len(vals) != 6 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "map %d has %d coefficients, want 6", n+1, len(vals))
		}
		maps = append(maps, AffineMap{A: vals[0], B: vals[1], C: vals[2], D: vals[3], E: vals[4], F: vals[5]})
	}
	if len(maps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no maps given")
	}
	return maps, nil
}

// ParseProbabilities reads a probability vector: numbers separated by commas,
// semicolons or whitespace.
func ParseProbabilities(text string) ([]float64, error) {
	vals, err := parseNumbers(strings.ReplaceAll(text, ";", ","))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "probabilities")
	}
	if len(vals) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no probabilities given")
	}
	return vals, nil
}

// FormatMaps renders maps in the format ParseMaps reads.
func FormatMaps(maps TransformSet) string {
	var b strings.Builder
	for i, m := range maps {
		if i > 0 {
			b.WriteByte('\n')
		}
		for k, c := range m.Coefficients() {
			if k > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatFloat(c))
		}
	}
	return b.String()
}

func splitRecords(text string) []string {
	var out []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ';' }) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '[' || r == ']'
	})
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := errors.ParseFraction(f)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
