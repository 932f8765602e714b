package chaos

import (
	"math"
	"slices"

	"github.com/matzehuels/chaostower/pkg/errors"
	"github.com/matzehuels/chaostower/pkg/geometry"
	"github.com/matzehuels/chaostower/pkg/random"
	"github.com/matzehuels/chaostower/pkg/rule"
)

// Config holds everything that determines a chaos-game run except its length and
// its random source.
type Config struct {
	Vertices geometry.VertexSet  `json:"vertices"`
	Jump     geometry.JumpVector `json:"jump"`
	Start    geometry.Point      `json:"start"`
	Rule     rule.Rule           `json:"rule"`
}

// Validate checks the invariants the loop relies on.
func (c Config) Validate() error {
	if len(c.Vertices) == 0 {
		return errors.Configuration("vertex set is empty")
	}
	if len(c.Jump) != len(c.Vertices) {
		return errors.Configuration("jump vector has %d entries, vertex set has %d", len(c.Jump), len(c.Vertices))
	}
	for i, j := range c.Jump {
		if math.IsNaN(j) || math.IsInf(j, 0) || j < 0 {
			return errors.Configuration("jump[%d] must be finite and non-negative, got %v", i, j)
		}
	}
	for i, v := range c.Vertices {
		if !v.Finite() {
			return errors.Configuration("vertex %d is not finite", i)
		}
	}
	if !c.Start.Finite() {
		return errors.Configuration("start point is not finite")
	}
	return c.Rule.Validate(len(c.Vertices))
}

// Sequence is the output of a run: Points[0] is the start point and Choices[k] is
// the vertex drawn to produce Points[k+1].
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

// Truncate returns the first n points as a new sequence. The result shares no
// mutable capacity with s. n is clamped to [1, Len()].
func (s *Sequence) Truncate(n int) *Sequence {
	n = max(1, min(n, len(s.Points)))
	return &Sequence{
		Config:  s.Config,
		Points:  slices.Clip(s.Points[:n]),
		Choices: slices.Clip(s.Choices[:n-1]),
	}
}

// Walker advances a chaos-game run one step at a time. It owns its rule state;
// callers must not share a Walker between goroutines.
type Walker struct {
	cfg     Config
	state   *rule.State
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
	st, err := cfg.Rule.Start(len(cfg.Vertices))
	if err != nil {
		return nil, err
	}
	return &Walker{cfg: cfg, state: st, src: src, current: cfg.Start}, nil
}

// Current returns the walker's current point.
func (w *Walker) Current() geometry.Point { return w.current }

// Next performs one step and returns the new point and the vertex drawn.
// It returns ok=false when the new point is not finite; the walker does not move.
func (w *Walker) Next() (p geometry.Point, vertex int, ok bool) {
	i := w.state.Draw(w.src)
	p = w.current.Lerp(w.cfg.Vertices[i], w.cfg.Jump[i])
	if !p.Finite() {
		return p, i, false
	}
	w.current = p
	w.step++
	return p, i, true
}

// Generate runs steps iterations of the chaos game from cfg.Start and returns
// steps+1 points.
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

// Resume continues seq for extra more steps. The rule history is rebuilt from the
// trailing choices of seq, so the continuation behaves like an uninterrupted run
// given the same random source state. seq itself is not modified.
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
	w.step = seq.Steps()
	w.state.Seed(seq.Choices)

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
