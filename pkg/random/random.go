// Package random provides the random-draw capability injected into the engines.
//
// Engines never touch global random state. Every run receives its own [Source];
// the same source state reproduces the same output bit for bit.
//
//	src := random.New(42)             // seeded PCG, state can be saved and restored
//	src := random.Script([]int{0, 1}) // scripted draws for tests
package random

import (
	"math/rand/v2"

	"github.com/matzehuels/chaostower/pkg/errors"
)

// Source supplies uniform random draws.
// Implementations are not safe for concurrent use; each run owns its source.
type Source interface {
	// IntN returns a uniform integer in [0, n). n is always > 0.
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// PCG is a deterministic Source backed by math/rand/v2's PCG generator.
// Its state can be captured with State and resumed with Restore.
type PCG struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// New creates a PCG source seeded with seed.
func New(seed uint64) *PCG {
	pcg := rand.NewPCG(seed, 0)
	return &PCG{pcg: pcg, r: rand.New(pcg)}
}

// IntN returns a uniform integer in [0, n).
func (s *PCG) IntN(n int) int { return s.r.IntN(n) }

// Float64 returns a uniform float in [0, 1).
func (s *PCG) Float64() float64 { return s.r.Float64() }

// State returns the generator state.
func (s *PCG) State() ([]byte, error) {
	return s.pcg.MarshalBinary()
}

// Restore creates a PCG source from a state previously returned by State.
func Restore(state []byte) (*PCG, error) {
	pcg := new(rand.PCG)
	if err := pcg.UnmarshalBinary(state); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "restore random state")
	}
	return &PCG{pcg: pcg, r: rand.New(pcg)}, nil
}

// Scripted replays fixed draws. IntN returns the next scripted integer modulo n;
// Float64 returns the next scripted float. Both scripts wrap around when exhausted.
type Scripted struct {
	ints   []int
	floats []float64
	i, f   int
}

// Script returns a Scripted source drawing ints in order.
func Script(ints []int) *Scripted {
	return &Scripted{ints: ints}
}

// ScriptFloats returns a Scripted source drawing floats in order.
func ScriptFloats(floats []float64) *Scripted {
	return &Scripted{floats: floats}
}

// IntN returns the next scripted integer reduced into [0, n), or 0 when there is no script.
func (s *Scripted) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.i%len(s.ints)]
	s.i++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Float64 returns the next scripted float, or 0 when there is no script.
func (s *Scripted) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.f%len(s.floats)]
	s.f++
	return v
}

var (
	_ Source = (*PCG)(nil)
	_ Source = (*Scripted)(nil)
)
