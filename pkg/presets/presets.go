// Package presets holds named parameter sets for both engines.
//
// Built-in presets reproduce well-known figures: the Sierpinski triangle and
// carpet, the Vicsek fractal and rule-constrained squares for the chaos game;
// Barnsley's fern, a dragon, a spiral, a leaf and others for the IFS. Users add
// their own in TOML (see [Load]).
package presets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/chaostower/pkg/errors"
)

// Chaos is a named chaos-game parameter set. Jump is kept as text so that
// fractions like "2/3" survive round trips through files and flags.
type Chaos struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description,omitempty"`
	Polygon     int    `toml:"polygon" json:"polygon"`
	Jump        string `toml:"jump" json:"jump"`
	Midpoints   bool   `toml:"midpoints" json:"midpoints,omitempty"`
	Center      bool   `toml:"center" json:"center,omitempty"`
	Window      int    `toml:"window" json:"window,omitempty"`
	Offset      int    `toml:"offset" json:"offset,omitempty"`
	Symmetric   bool   `toml:"symmetric" json:"symmetric,omitempty"`
	Steps       int    `toml:"steps" json:"steps,omitempty"`
}

// Validate checks a user-supplied chaos preset.
func (p Chaos) Validate() error {
	if err := errors.ValidatePresetName(p.Name); err != nil {
		return err
	}
	if err := errors.ValidatePolygon(p.Polygon); err != nil {
		return presetErr(p.Name, err)
	}
	jump, err := errors.ParseFraction(p.Jump)
	if err != nil {
		return presetErr(p.Name, err)
	}
	if err := errors.ValidateJump(jump); err != nil {
		return presetErr(p.Name, err)
	}
	if p.Window < 0 {
		return presetErr(p.Name, fmt.Errorf("window must be non-negative, got %d", p.Window))
	}
	if err := errors.ValidateOffset(p.Offset, p.Polygon, p.Symmetric); err != nil {
		return presetErr(p.Name, err)
	}
	if err := errors.ValidateSteps(p.Steps); err != nil {
		return presetErr(p.Name, err)
	}
	return nil
}

// IFS is a named iterated-function-system parameter set. Maps and
// Probabilities use the text formats read by ifs.ParseMaps and
// ifs.ParseProbabilities.
type IFS struct {
	Name          string `toml:"name" json:"name"`
	Description   string `toml:"description" json:"description,omitempty"`
	Maps          string `toml:"maps" json:"maps"`
	Probabilities string `toml:"probabilities" json:"probabilities"`
	Mode          string `toml:"mode" json:"mode"`
	Steps         int    `toml:"steps" json:"steps,omitempty"`
}

// Validate checks names and step count; maps and probabilities are checked when
// the preset is parsed into an engine configuration.
func (p IFS) Validate() error {
	if err := errors.ValidatePresetName(p.Name); err != nil {
		return err
	}
	if strings.TrimSpace(p.Maps) == "" || strings.TrimSpace(p.Probabilities) == "" {
		return presetErr(p.Name, fmt.Errorf("maps and probabilities are required"))
	}
	if err := errors.ValidateSteps(p.Steps); err != nil {
		return presetErr(p.Name, err)
	}
	return nil
}

func presetErr(name string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidPreset, err, "preset %q: %s", name, errors.UserMessage(err))
}

// Set is a collection of presets of both kinds.
type Set struct {
	Chaos []Chaos `toml:"chaos_preset" json:"chaos"`
	IFS   []IFS   `toml:"ifs_preset" json:"ifs"`
}

// Validate checks every preset in s and returns the first failure.
func (s Set) Validate() error {
	for _, p := range s.Chaos {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, p := range s.IFS {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Builtin returns a fresh copy of the built-in presets.
func Builtin() Set {
	return Set{Chaos: slices.Clone(builtinChaos), IFS: slices.Clone(builtinIFS)}
}

// Merge returns s with other's presets added. A preset in other replaces one of
// the same kind and name in s.
func (s Set) Merge(other Set) Set {
	out := Set{Chaos: slices.Clone(s.Chaos), IFS: slices.Clone(s.IFS)}
	for _, p := range other.Chaos {
		if i := slices.IndexFunc(out.Chaos, func(q Chaos) bool { return q.Name == p.Name }); i >= 0 {
			out.Chaos[i] = p
		} else {
			out.Chaos = append(out.Chaos, p)
		}
	}
	for _, p := range other.IFS {
		if i := slices.IndexFunc(out.IFS, func(q IFS) bool { return q.Name == p.Name }); i >= 0 {
			out.IFS[i] = p
		} else {
			out.IFS = append(out.IFS, p)
		}
	}
	return out
}

// ChaosPreset looks up a chaos preset by name, case-insensitively.
func (s Set) ChaosPreset(name string) (Chaos, error) {
	for _, p := range s.Chaos {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Chaos{}, errors.New(errors.ErrCodeNotFound, "unknown chaos preset %q (available: %s)",
		name, strings.Join(s.ChaosNames(), ", "))
}

// IFSPreset looks up an IFS preset by name, case-insensitively.
func (s Set) IFSPreset(name string) (IFS, error) {
	for _, p := range s.IFS {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return IFS{}, errors.New(errors.ErrCodeNotFound, "unknown ifs preset %q (available: %s)",
		name, strings.Join(s.IFSNames(), ", "))
}

func (s Set) ChaosNames() []string {
	names := make([]string, len(s.Chaos))
	for i, p := range s.Chaos {
		names[i] = p.Name
	}
	return names
}

func (s Set) IFSNames() []string {
	names := make([]string, len(s.IFS))
	for i, p := range s.IFS {
		names[i] = p.Name
	}
	return names
}
