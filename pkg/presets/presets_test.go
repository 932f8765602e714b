package presets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chaostower/pkg/errors"
)

func TestBuiltinPresetsAreValid(t *testing.T) {
	s := Builtin()
	require.Len(t, s.Chaos, 7)
	require.Len(t, s.IFS, 6)
	for _, p := range s.Chaos {
		require.NoError(t, p.Validate(), p.Name)
	}
	for _, p := range s.IFS {
		require.NoError(t, p.Validate(), p.Name)
	}
}

func TestBuiltinIsACopy(t *testing.T) {
	a := Builtin()
	a.Chaos[0].Polygon = 99
	require.Equal(t, 3, Builtin().Chaos[0].Polygon)
}

func TestLookup(t *testing.T) {
	s := Builtin()

	p, err := s.ChaosPreset("XTREME")
	require.NoError(t, err)
	require.Equal(t, 200, p.Polygon)
	require.Equal(t, "7/8", p.Jump)
	require.True(t, p.Center)
	require.Equal(t, 200_000, p.Steps)

	f, err := s.IFSPreset("fern")
	require.NoError(t, err)
	require.Equal(t, "alternate", f.Mode)

	_, err = s.ChaosPreset("nope")
	require.True(t, errors.Is(err, errors.ErrCodeNotFound))
	require.Contains(t, err.Error(), "sierpt")

	_, err = s.IFSPreset("nope")
	require.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestMerge(t *testing.T) {
	user := Set{
		Chaos: []Chaos{
			{Name: "sierpt", Polygon: 3, Jump: "0.6"},
			{Name: "pentaflake", Polygon: 5, Jump: "0.618", Center: true},
		},
	}
	merged := Builtin().Merge(user)

	p, err := merged.ChaosPreset("sierpt")
	require.NoError(t, err)
	require.Equal(t, "0.6", p.Jump)

	_, err = merged.ChaosPreset("pentaflake")
	require.NoError(t, err)
	require.Len(t, merged.Chaos, 8)
	require.Equal(t, "1/2", Builtin().Chaos[0].Jump)
}

func TestChaosValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Chaos
		code errors.Code
	}{
		{"bad name", Chaos{Name: "Bad Name", Polygon: 3, Jump: "1/2"}, errors.ErrCodeInvalidPreset},
		{"small polygon", Chaos{Name: "a", Polygon: 2, Jump: "1/2"}, errors.ErrCodeInvalidPreset},
		{"bad jump", Chaos{Name: "a", Polygon: 3, Jump: "half"}, errors.ErrCodeInvalidPreset},
		{"negative jump", Chaos{Name: "a", Polygon: 3, Jump: "-1/2"}, errors.ErrCodeInvalidPreset},
		{"negative window", Chaos{Name: "a", Polygon: 3, Jump: "1/2", Window: -1}, errors.ErrCodeInvalidPreset},
		{"offset too large", Chaos{Name: "a", Polygon: 4, Jump: "1/2", Offset: 3, Symmetric: true}, errors.ErrCodeInvalidPreset},
		{"negative steps", Chaos{Name: "a", Polygon: 3, Jump: "1/2", Steps: -1}, errors.ErrCodeInvalidPreset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestDecode(t *testing.T) {
	text := `
[[chaos_preset]]
name = "pentaflake"
polygon = 5
jump = "0.618"
center = true

[[ifs_preset]]
name = "cross"
maps = "0.5,0,0,0,0.5,0; 0.5,0,0.5,0,0.5,0"
probabilities = "1/2, 1/2"
mode = "regular"
steps = 5000
`
	s, err := Decode(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, []Chaos{{Name: "pentaflake", Polygon: 5, Jump: "0.618", Center: true}}, s.Chaos)
	require.Len(t, s.IFS, 1)
	require.Equal(t, 5000, s.IFS[0].Steps)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code errors.Code
	}{
		{"syntax", "[[chaos_preset]\nname=", errors.ErrCodeInvalidFormat},
		{"unknown field", "[[chaos_preset]]\nname = \"a\"\npolygon = 3\njump = \"1/2\"\ncolour = \"red\"", errors.ErrCodeInvalidFormat},
		{"invalid preset", "[[chaos_preset]]\nname = \"a\"\npolygon = 1\njump = \"1/2\"", errors.ErrCodeInvalidPreset},
		{"missing maps", "[[ifs_preset]]\nname = \"b\"", errors.ErrCodeInvalidPreset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.text))
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[chaos_preset]]\nname = \"tri\"\npolygon = 3\njump = \"1/2\"\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"tri"}, s.ChaosNames())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, errors.Is(err, errors.ErrCodeNotFound))
}
