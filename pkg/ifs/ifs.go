package ifs

import (
	"math"
	"slices"
	"sort"

	"github.com/matzehuels/chaostower/pkg/errors"
	"github.com/matzehuels/chaostower/pkg/geometry"
	"github.com/matzehuels/chaostower/pkg/random"
)

// ProbabilityTolerance is how far the probabilities may sum from 1.
const ProbabilityTolerance = 1e-6

// Config holds everything that determines an IFS run except its length and its
// random source.
type Config struct {
	Maps          TransformSet   `json:"maps"`
	Probabilities []float64      `json:"probabilities"`
	Mode          Mode           `json:"mode"`
	Start         geometry.Point `json:"start"`
}

// Validate checks the transform set and probability vector.
func (c Config) Validate() error {
	if len(c.Maps) == 0 {
		return errors.Configuration("transform set is empty")
	}
	if len(c.Probabilities) != len(c.Maps) {
		return errors.Configuration("probability vector has %d entries, transform set has %d",
			len(c.Probabilities), len(c.Maps))
	}
	if c.Mode != Regular && c.Mode != Alternate {
		return errors.Configuration("unknown coefficient ordering %d", int(c.Mode))
	}
	var sum float64
	for i, p := range c.Probabilities {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return errors.Configuration("probability[%d] must be finite and non-negative, got %v", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > ProbabilityTolerance {
		return errors.Configuration("probabilities sum to %v, want 1", sum)
	}
	for i, m := range c.Maps {
		if !m.Finite() {
			return errors.Configuration("map %d has non-finite coefficients", i)
		}
	}
	if !c.Start.Finite() {
		return errors.Configuration("start point is not finite")
	}
	return nil
}

// Sequence is the output of a run: Points[0] is the start point and Choices[k] is
// the map applied to produce Points[k+1].
type Sequence struct {
	Config  Config           `json:"config"`
	Points  []geometry.Point `json:"points"`
	Choices []int            `json:"choices"`
}

// Len returns the number of points.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Steps returns the number of iterations that produced the sequence.
func (s *Sequence) Steps() int { return len(s.Choices) }

// Last returns the final point.
func (s *Sequence) Last() geometry.Point { return s.Points[len(s.Points)-1] }

// Truncate returns the first n points as a new sequence, n clamped to [1, Len()].
func (s *Sequence) Truncate(n int) *Sequence {
	n = max(1, min(n, len(s.Points)))
	return &Sequence{
		Config:  s.Config,
		Points:  slices.Clip(s.Points[:n]),
		Choices: slices.Clip(s.Choices[:n-1]),
	}
}

// Chooser draws transform indices by inverse-CDF sampling.
type Chooser struct {
	cdf []float64
}

// NewChooser builds a chooser from non-negative weights. The weights are
// normalised by their sum, so the last cumulative value is exactly 1.
func NewChooser(weights []float64) (*Chooser, error) {
	if len(weights) == 0 {
		return nil, errors.Configuration("no weights")
	}
	cdf := make([]float64, len(weights))
	var sum float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, errors.Configuration("weight[%d] must be finite and non-negative, got %v", i, w)
		}
		sum += w
		cdf[i] = sum
	}
	if sum <= 0 {
		return nil, errors.Configuration("weights sum to zero")
	}
	for i := range cdf {
		cdf[i] /= sum
	}
	cdf[len(cdf)-1] = 1
	return &Chooser{cdf: cdf}, nil
}

// Index maps a uniform u in [0, 1) to the first index whose cumulative weight exceeds u.
// Zero-weight entries are never returned.
func (c *Chooser) Index(u float64) int {
	i := sort.Search(len(c.cdf), func(k int) bool { return c.cdf[k] > u })
	if i == len(c.cdf) {
		i--
	}
	return i
}

// Draw draws an index with src.
func (c *Chooser) Draw(src random.Source) int {
	return c.Index(src.Float64())
}

// Walker advances an IFS run one step at a time.
type Walker struct {
	maps    TransformSet // regular reading
	chooser *Chooser
	src     random.Source
	current geometry.Point
	step    int
}

// NewWalker validates cfg and returns a walker positioned at cfg.Start.
func NewWalker(cfg Config, src random.Source) (*Walker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.Configuration("random source is nil")
	}
	maps, err := canonical(cfg.Maps, cfg.Mode)
	if err != nil {
		return nil, err
	}
	chooser, err := NewChooser(cfg.Probabilities)
	if err != nil {
		return nil, err
	}
	return &Walker{maps: maps, chooser: chooser, src: src, current: cfg.Start}, nil
}

// Current returns the walker's current point.
func (w *Walker) Current() geometry.Point { return w.current }

// Next applies one randomly chosen map. It returns ok=false when the result is not
// finite; the walker does not move.
func (w *Walker) Next() (p geometry.Point, index int, ok bool) {
	i := w.chooser.Draw(w.src)
	p = w.maps[i].Apply(w.current)
	if !p.Finite() {
		return p, i, false
	}
	w.current = p
	w.step++
	return p, i, true
}

// Generate runs steps iterations from cfg.Start and returns steps+1 points.
// The start point is included; callers that want only the attractor drop it.
func Generate(cfg Config, steps int, src random.Source) (*Sequence, error) {
	if steps < 0 {
		return nil, errors.Configuration("steps must be non-negative, got %d", steps)
	}
	w, err := NewWalker(cfg, src)
	if err != nil {
		return nil, err
	}
	seq := &Sequence{
		Config:  cfg,
		Points:  make([]geometry.Point, 1, steps+1),
		Choices: make([]int, 0, steps),
	}
	seq.Points[0] = cfg.Start
	if err := run(w, seq, steps); err != nil {
		return nil, err
	}
	return seq, nil
}

// Resume continues seq for extra more steps from its last point. seq is not modified.
func Resume(seq *Sequence, extra int, src random.Source) (*Sequence, error) {
	if seq == nil || len(seq.Points) == 0 {
		return nil, errors.Configuration("cannot resume an empty sequence")
	}
	if len(seq.Choices) != len(seq.Points)-1 {
		return nil, errors.Configuration("sequence has %d points but %d choices", len(seq.Points), len(seq.Choices))
	}
	if extra < 0 {
		return nil, errors.Configuration("steps must be non-negative, got %d", extra)
	}
	w, err := NewWalker(seq.Config, src)
	if err != nil {
		return nil, err
	}
	w.current = seq.Last()
	w.step = len(seq.Points) - 1

	out := &Sequence{
		Config:  seq.Config,
		Points:  make([]geometry.Point, len(seq.Points), len(seq.Points)+extra),
		Choices: make([]int, len(seq.Choices), len(seq.Choices)+extra),
	}
	copy(out.Points, seq.Points)
	copy(out.Choices, seq.Choices)
	if err := run(w, out, extra); err != nil {
		return nil, err
	}
	return out, nil
}

func run(w *Walker, seq *Sequence, steps int) error {
	for k := 0; k < steps; k++ {
		p, i, ok := w.Next()
		if !ok {
			return errors.Numeric(w.step+1, p.X, p.Y, slices.Clone(seq.Points))
		}
		seq.Points = append(seq.Points, p)
		seq.Choices = append(seq.Choices, i)
	}
	return nil
}
