package presets

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chaostower/pkg/errors"
)

// Decode reads presets from TOML:
//
//	[[chaos_preset]]
//	name = "pentaflake"
//	polygon = 5
//	jump = "0.618"
//	center = true
//
//	[[ifs_preset]]
//	name = "cross"
//	maps = "0.5,0,0,0,0.5,0; 0.5,0,0.5,0,0.5,0"
//	probabilities = "1/2, 1/2"
//	mode = "regular"
//
// Every preset is validated; the first failure is returned.
func Decode(r io.Reader) (Set, error) {
	var s Set
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode presets")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Set{}, errors.New(errors.ErrCodeInvalidFormat, "unknown preset field %q", undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// Load reads presets from a TOML file.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeNotFound, err, "open presets %s", path)
	}
	defer f.Close()
	return Decode(f)
}
