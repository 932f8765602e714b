package rule

import (
	"strconv"

	"github.com/matzehuels/chaostower/pkg/errors"
	"github.com/matzehuels/chaostower/pkg/random"
)

// Rule is an immutable selection-rule configuration.
type Rule struct {
	Window    int  `json:"window" toml:"window"`
	Offset    int  `json:"offset" toml:"offset"`
	Symmetric bool `json:"symmetric" toml:"symmetric"`
}

// New returns a rule remembering window choices.
func New(window, offset int, symmetric bool) Rule {
	return Rule{Window: window, Offset: offset, Symmetric: symmetric}
}

// NoRule returns the rule under which every vertex is always eligible.
func NoRule() Rule { return Rule{} }

// IsNone reports whether r never excludes anything.
func (r Rule) IsNone() bool { return r.Window == 0 }

// perChoice returns how many distinct indices one remembered choice excludes in an n-gon.
func (r Rule) perChoice(n int) int {
	if !r.Symmetric {
		return 1
	}
	if mod(r.Offset, n) == mod(-r.Offset, n) {
		return 1
	}
	return 2
}

const (
	// MaxWindow bounds the number of choices a rule may remember.
	MaxWindow = 64

	// maxHistories bounds the histories explored when deciding whether a rule
	// can run out of eligible indices.
	maxHistories = 4096
)

// Validate checks r against a vertex set of size n. It fails when the window is
// negative or above MaxWindow, or when some reachable history leaves no index
// eligible.
func (r Rule) Validate(n int) error {
	if n <= 0 {
		return errors.Configuration("rule needs a non-empty vertex set")
	}
	if r.Window < 0 {
		return errors.Configuration("rule window must be non-negative, got %d", r.Window)
	}
	if r.Window > MaxWindow {
		return errors.Configuration("rule window %d exceeds the maximum of %d", r.Window, MaxWindow)
	}
	// A full history excludes at most Window*perChoice indices.
	if r.Window <= (n-1)/r.perChoice(n) {
		return nil
	}
	stalls, err := r.stalls(n)
	if err != nil {
		return err
	}
	if stalls {
		return errors.Configuration("rule (window=%d, offset=%d, symmetric=%v) can exclude all %d vertices",
			r.Window, r.Offset, r.Symmetric, n)
	}
	return nil
}

// stalls reports whether a history reachable from the empty one leaves no
// eligible index. The rule is invariant under rotating every index by the same
// amount, so histories are explored up to rotation.
func (r Rule) stalls(n int) (bool, error) {
	seen := map[string]bool{"": true}
	queue := [][]int{nil}
	var eligible []int
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]

		eligible = r.appendEligible(eligible[:0], n, h)
		if len(eligible) == 0 {
			return true, nil
		}
		for _, i := range eligible {
			next := rotated(recent(append(append([]int(nil), h...), i), r.Window), n)
			key := historyKey(next)
			if seen[key] {
				continue
			}
			if len(seen) >= maxHistories {
				return false, errors.Configuration(
					"rule (window=%d, offset=%d, symmetric=%v) has too many histories to verify on %d vertices",
					r.Window, r.Offset, r.Symmetric, n)
			}
			seen[key] = true
			queue = append(queue, next)
		}
	}
	return false, nil
}

// rotated shifts h so that its oldest entry is 0.
func rotated(h []int, n int) []int {
	out := make([]int, len(h))
	for k, v := range h {
		out[k] = mod(v-h[0], n)
	}
	return out
}

func historyKey(h []int) string {
	b := make([]byte, 0, 4*len(h))
	for _, v := range h {
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, ',')
	}
	return string(b)
}

// excludes reports whether index i is excluded by the remembered choice h.
func (r Rule) excludes(h, i, n int) bool {
	if mod(h+r.Offset, n) == i {
		return true
	}
	return r.Symmetric && mod(h-r.Offset, n) == i
}

// Eligible returns the indices in [0, n) not excluded by history. Only the most
// recent Window entries of history (last element = most recent) are considered.
// With an empty history every index is eligible.
func (r Rule) Eligible(n int, history ...int) []int {
	return r.appendEligible(make([]int, 0, n), n, recent(history, r.Window))
}

func (r Rule) appendEligible(dst []int, n int, history []int) []int {
	for i := 0; i < n; i++ {
		ok := true
		for _, h := range history {
			if r.excludes(h, i, n) {
				ok = false
				break
			}
		}
		if ok {
			dst = append(dst, i)
		}
	}
	return dst
}

// Start validates r for n vertices and returns a fresh State.
func (r Rule) Start(n int) (*State, error) {
	if err := r.Validate(n); err != nil {
		return nil, err
	}
	return &State{
		rule:     r,
		n:        n,
		ring:     make([]int, r.Window),
		eligible: make([]int, 0, n),
	}, nil
}

func recent(history []int, window int) []int {
	if window <= 0 {
		return nil
	}
	if len(history) > window {
		return history[len(history)-window:]
	}
	return history
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

// State is the per-run history of a Rule: a ring buffer of the last Window choices.
type State struct {
	rule     Rule
	n        int
	ring     []int
	head     int // next write position
	size     int
	eligible []int // scratch, reused across draws
	scratch  []int
}

// Rule returns the rule this state belongs to.
func (s *State) Rule() Rule { return s.rule }

// Reset clears the history.
func (s *State) Reset() {
	s.head, s.size = 0, 0
}

// Push records choice i as the most recent one.
func (s *State) Push(i int) {
	if len(s.ring) == 0 {
		return
	}
	s.ring[s.head] = i
	s.head = (s.head + 1) % len(s.ring)
	if s.size < len(s.ring) {
		s.size++
	}
}

// Seed replaces the history with the trailing choices of a previous run.
func (s *State) Seed(choices []int) {
	s.Reset()
	for _, c := range recent(choices, len(s.ring)) {
		s.Push(c)
	}
}

// History returns the remembered choices, oldest first.
func (s *State) History() []int {
	out := make([]int, s.size)
	return s.history(out)
}

func (s *State) history(out []int) []int {
	out = out[:s.size]
	start := s.head - s.size
	if start < 0 {
		start += len(s.ring)
	}
	for k := 0; k < s.size; k++ {
		out[k] = s.ring[(start+k)%len(s.ring)]
	}
	return out
}

// Eligible returns the indices eligible for the next draw. The returned slice is
// reused by the next call.
func (s *State) Eligible() []int {
	if s.size == 0 {
		s.eligible = s.rule.appendEligible(s.eligible[:0], s.n, nil)
		return s.eligible
	}
	if cap(s.scratch) < s.size {
		s.scratch = make([]int, s.size)
	}
	s.eligible = s.rule.appendEligible(s.eligible[:0], s.n, s.history(s.scratch[:s.size]))
	return s.eligible
}

// Draw picks an eligible index uniformly with src and records it.
func (s *State) Draw(src random.Source) int {
	if s.rule.IsNone() {
		return src.IntN(s.n)
	}
	el := s.Eligible()
	i := el[src.IntN(len(el))]
	s.Push(i)
	return i
}
