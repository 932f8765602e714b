// Package pipeline turns user-facing options into engine runs.
//
// It is shared by the CLI and the HTTP server so both resolve presets, apply
// defaults, validate input and use the cache the same way.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.RunChaos(ctx, pipeline.ChaosOptions{Preset: "sierpc", N: 50_000})
//	if err != nil {
//	    return err
//	}
//	points := res.Sequence.Points
//
// Sequences are cached under a key covering every parameter except N, together
// with the state of the random source after the last step. A later request that
// differs only in N is served by extending, truncating or regenerating the
// cached sequence (see package incremental); in every case the result equals a
// fresh run with the same seed.
package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chaostower/pkg/chaos"
	"github.com/matzehuels/chaostower/pkg/errors"
	"github.com/matzehuels/chaostower/pkg/geometry"
	"github.com/matzehuels/chaostower/pkg/ifs"
	"github.com/matzehuels/chaostower/pkg/presets"
	"github.com/matzehuels/chaostower/pkg/rule"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultRadius is the circumradius of generated polygons.
	DefaultRadius = 1.0

	// DefaultPolygon is the vertex count used when neither a preset nor a
	// polygon is given.
	DefaultPolygon = 3

	// DefaultMode is the IFS coefficient ordering used when none is given.
	DefaultMode = "regular"
)

// Engine names, also used as cache key namespaces.
const (
	EngineChaos = "chaos"
	EngineIFS   = "ifs"
)

// Point dump formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ValidFormats is the set of supported point dump formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatCSV:  true,
}

// ValidateFormat checks that a point dump format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, csv)", format)
	}
	return nil
}

// =============================================================================
// Chaos Game Options
// =============================================================================

// ChaosOptions configures a chaos-game run. N counts points, start point
// included, so N = 1 returns only the start point.
//
// When Preset is set, the preset fills every field left at its zero value
// unless that field was marked explicit with MarkExplicit. Decoding from JSON
// marks every key present in the object.
type ChaosOptions struct {
	Preset     string  `json:"preset,omitempty"`
	Polygon    int     `json:"polygon,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
	Uncentered bool    `json:"uncentered,omitempty"`
	Jump       string  `json:"jump,omitempty"`
	Midpoints  bool    `json:"midpoints,omitempty"`
	Center     bool    `json:"center,omitempty"`
	Window     int     `json:"window,omitempty"`
	Offset     int     `json:"offset,omitempty"`
	Symmetric  bool    `json:"symmetric,omitempty"`
	N          int     `json:"n,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`
	StartX     float64 `json:"start_x,omitempty"`
	StartY     float64 `json:"start_y,omitempty"`
	Refresh    bool    `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	jump      float64
	validated bool
	explicit  map[string]bool
}

// MarkExplicit records fields, by JSON name, whose value was chosen by the
// caller. ApplyPreset leaves them alone even when they hold a zero value.
func (o *ChaosOptions) MarkExplicit(fields ...string) {
	if o.explicit == nil {
		o.explicit = make(map[string]bool, len(fields))
	}
	for _, f := range fields {
		o.explicit[strings.ToLower(f)] = true
	}
}

func (o *ChaosOptions) isExplicit(field string) bool { return o.explicit[field] }

// UnmarshalJSON decodes strictly and marks every present key as explicit.
func (o *ChaosOptions) UnmarshalJSON(data []byte) error {
	type plain ChaosOptions
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode((*plain)(o)); err != nil {
		return err
	}
	for k := range keys {
		o.MarkExplicit(k)
	}
	return nil
}

// ApplyPreset fills zero-valued fields from p, skipping explicit ones.
func (o *ChaosOptions) ApplyPreset(p presets.Chaos) {
	if o.Polygon == 0 && !o.isExplicit("polygon") {
		o.Polygon = p.Polygon
	}
	if o.Jump == "" && !o.isExplicit("jump") {
		o.Jump = p.Jump
	}
	if !o.isExplicit("midpoints") {
		o.Midpoints = o.Midpoints || p.Midpoints
	}
	if !o.isExplicit("center") {
		o.Center = o.Center || p.Center
	}
	if o.Window == 0 && !o.isExplicit("window") {
		o.Window = p.Window
	}
	if o.Offset == 0 && !o.isExplicit("offset") {
		o.Offset = p.Offset
	}
	if !o.isExplicit("symmetric") {
		o.Symmetric = o.Symmetric || p.Symmetric
	}
	if o.N == 0 && !o.isExplicit("n") {
		o.N = p.Steps
	}
}

// ValidateAndSetDefaults resolves the preset from set, applies defaults and
// validates every field. It is idempotent.
func (o *ChaosOptions) ValidateAndSetDefaults(set presets.Set) error {
	if o.validated {
		return nil
	}
	if o.Preset != "" {
		p, err := set.ChaosPreset(o.Preset)
		if err != nil {
			return err
		}
		o.ApplyPreset(p)
	}

	if o.Polygon == 0 {
		o.Polygon = DefaultPolygon
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Jump == "" {
		o.Jump = presets.DefaultJump
	}
	if o.N == 0 {
		o.N = presets.DefaultChaosSteps
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidatePolygon(o.Polygon); err != nil {
		return err
	}
	if math.IsNaN(o.Radius) || math.IsInf(o.Radius, 0) || o.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "radius must be positive, got %v", o.Radius)
	}
	jump, err := errors.ParseFraction(o.Jump)
	if err != nil {
		return err
	}
	if err := errors.ValidateJump(jump); err != nil {
		return err
	}
	o.jump = jump
	if o.Window < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "window must be non-negative, got %d", o.Window)
	}
	if err := errors.ValidateOffset(o.Offset, o.Polygon, o.Symmetric); err != nil {
		return err
	}
	if err := validateN(o.N); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Config builds the engine configuration. Options must be validated first.
func (o *ChaosOptions) Config() (chaos.Config, error) {
	if !o.validated {
		return chaos.Config{}, errors.New(errors.ErrCodeInternal, "chaos options not validated")
	}
	vs, err := geometry.RegularPolygon(o.Polygon, o.Radius, !o.Uncentered)
	if err != nil {
		return chaos.Config{}, err
	}
	if o.Midpoints {
		vs = geometry.StackMidpoints(vs)
	}
	if o.Center {
		vs = geometry.StackCenter(vs)
	}
	cfg := chaos.Config{
		Vertices: vs,
		Jump:     geometry.Broadcast(o.jump, len(vs)),
		Start:    geometry.Pt(o.StartX, o.StartY),
		Rule:     o.Rule(),
	}
	return cfg, cfg.Validate()
}

// Rule returns the selection rule described by the options.
func (o *ChaosOptions) Rule() rule.Rule {
	return rule.New(o.Window, o.Offset, o.Symmetric)
}

// Vertices returns the number of vertices after midpoint and center stacking.
func (o *ChaosOptions) Vertices() int {
	n := o.Polygon
	if o.Midpoints {
		n *= 2
	}
	if o.Center {
		n++
	}
	return n
}

// chaosKey lists every parameter that affects the sequence except its length.
type chaosKey struct {
	Polygon    int
	Radius     float64
	Uncentered bool
	Jump       float64
	Midpoints  bool
	Center     bool
	Rule       rule.Rule
	Seed       uint64
	Start      [2]float64
}

func (o *ChaosOptions) keyParams() chaosKey {
	return chaosKey{
		Polygon:    o.Polygon,
		Radius:     o.Radius,
		Uncentered: o.Uncentered,
		Jump:       o.jump,
		Midpoints:  o.Midpoints,
		Center:     o.Center,
		Rule:       o.Rule(),
		Seed:       o.Seed,
		Start:      [2]float64{o.StartX, o.StartY},
	}
}

// =============================================================================
// IFS Options
// =============================================================================

// IFSOptions configures an IFS run. Maps and Probabilities use the text forms
// read by ifs.ParseMaps and ifs.ParseProbabilities.
type IFSOptions struct {
	Preset        string  `json:"preset,omitempty"`
	Maps          string  `json:"maps,omitempty"`
	Probabilities string  `json:"probabilities,omitempty"`
	Mode          string  `json:"mode,omitempty"`
	N             int     `json:"n,omitempty"`
	Seed          uint64  `json:"seed,omitempty"`
	StartX        float64 `json:"start_x,omitempty"`
	StartY        float64 `json:"start_y,omitempty"`
	Refresh       bool    `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	cfg       ifs.Config
	validated bool
}

// ApplyPreset fills zero-valued fields from p. Maps and probabilities always
// come together.
func (o *IFSOptions) ApplyPreset(p presets.IFS) {
	if o.Maps == "" {
		o.Maps = p.Maps
		o.Probabilities = p.Probabilities
	}
	if o.Mode == "" {
		o.Mode = p.Mode
	}
	if o.N == 0 {
		o.N = p.Steps
	}
}

// ValidateAndSetDefaults resolves the preset, applies defaults and parses the
// maps, probabilities and mode. It is idempotent.
func (o *IFSOptions) ValidateAndSetDefaults(set presets.Set) error {
	if o.validated {
		return nil
	}
	if o.Preset != "" {
		p, err := set.IFSPreset(o.Preset)
		if err != nil {
			return err
		}
		o.ApplyPreset(p)
	}

	if o.Maps == "" || o.Probabilities == "" {
		return errors.New(errors.ErrCodeInvalidInput, "maps and probabilities are required (or choose a preset)")
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.N == 0 {
		o.N = presets.DefaultIFSSteps
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	maps, err := ifs.ParseMaps(o.Maps)
	if err != nil {
		return err
	}
	probs, err := ifs.ParseProbabilities(o.Probabilities)
	if err != nil {
		return err
	}
	mode, err := ifs.ParseMode(o.Mode)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "mode %q: must be regular or alternate", o.Mode)
	}
	if err := validateN(o.N); err != nil {
		return err
	}

	o.cfg = ifs.Config{
		Maps:          maps,
		Probabilities: probs,
		Mode:          mode,
		Start:         geometry.Pt(o.StartX, o.StartY),
	}
	o.validated = true
	return nil
}

// Config returns the parsed engine configuration. Options must be validated first.
func (o *IFSOptions) Config() (ifs.Config, error) {
	if !o.validated {
		return ifs.Config{}, errors.New(errors.ErrCodeInternal, "ifs options not validated")
	}
	return o.cfg, o.cfg.Validate()
}

type ifsKey struct {
	Maps          ifs.TransformSet
	Probabilities []float64
	Mode          ifs.Mode
	Seed          uint64
	Start         [2]float64
}

func (o *IFSOptions) keyParams() ifsKey {
	return ifsKey{
		Maps:          o.cfg.Maps,
		Probabilities: o.cfg.Probabilities,
		Mode:          o.cfg.Mode,
		Seed:          o.Seed,
		Start:         [2]float64{o.StartX, o.StartY},
	}
}

func validateN(n int) error {
	if n < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "n must be at least 1, got %d", n)
	}
	if err := errors.ValidateSteps(n - 1); err != nil {
		return fmt.Errorf("n: %w", err)
	}
	return nil
}
