package ifs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chaostower/pkg/errors"
)

func TestParseMaps(t *testing.T) {
	text := `
# fern, alternate ordering
0, 0, 0, 0.16, 0, 0
0.85 0.04 -0.04 0.85 0 1.6; [0.2, -0.26, 0.23, 0.22, 0, 1.6]
-0.15,0.28,0.26,0.24,0,11/25
`
	maps, err := ParseMaps(text)
	require.NoError(t, err)
	require.Equal(t, fern.Maps, maps)
}

func TestParseMapsErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"only comments", "# nothing\n\n"},
		{"short map", "1, 2, 3, 4, 5"},
		{"long map", "1, 2, 3, 4, 5, 6, 7"},
		{"not a number", "1, 2, x, 4, 5, 6"},
		{"overflowing coefficient", "1e1000000, 0, 0, 1, 0, 0"},
		{"infinite coefficient", "1, 0, 0, inf, 0, 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMaps(tt.text)
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
		})
	}
}

func TestParseProbabilities(t *testing.T) {
	got, err := ParseProbabilities("1/3; 1/3, 1/3")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.InDelta(t, 1.0/3, got[0], 1e-15)

	got, err = ParseProbabilities("[0.01 0.85 0.07 0.07]")
	require.NoError(t, err)
	require.Equal(t, []float64{0.01, 0.85, 0.07, 0.07}, got)

	_, err = ParseProbabilities("  ")
	require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	_, err = ParseProbabilities("0.5, half")
	require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	_, err = ParseProbabilities("1e1000000, 0")
	require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestFormatMapsRoundTrips(t *testing.T) {
	text := FormatMaps(fern.Maps)
	require.Equal(t, "0, 0, 0, 0.16, 0, 0\n0.85, 0.04, -0.04, 0.85, 0, 1.6\n0.2, -0.26, 0.23, 0.22, 0, 1.6\n-0.15, 0.28, 0.26, 0.24, 0, 0.44", text)

	back, err := ParseMaps(text)
	require.NoError(t, err)
	require.Equal(t, fern.Maps, back)
}
