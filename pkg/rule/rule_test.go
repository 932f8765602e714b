package rule

import (
	"slices"
	"testing"

	"github.com/matzehuels/chaostower/pkg/errors"
	"github.com/matzehuels/chaostower/pkg/random"
)

func all(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestNoRuleAlwaysAll(t *testing.T) {
	r := NoRule()
	for n := 1; n < 10; n++ {
		for _, history := range [][]int{nil, {0}, {1, 2}, {0, 0, 0, 0}} {
			if got := r.Eligible(n, history...); !slices.Equal(got, all(n)) {
				t.Errorf("NoRule().Eligible(%d, %v) = %v, want all", n, history, got)
			}
		}
	}
}

func TestFirstDrawAllEligible(t *testing.T) {
	r := New(2, 1, true)
	if got := r.Eligible(6); !slices.Equal(got, all(6)) {
		t.Errorf("Eligible with empty history = %v, want all", got)
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		n       int
		history []int
		want    []int
	}{
		{"no repeat", New(1, 0, false), 4, []int{2}, []int{0, 1, 3}},
		{"no opposite", New(1, 2, false), 4, []int{1}, []int{0, 1, 2}},
		{"offset wraps", New(1, 3, false), 4, []int{3}, []int{0, 1, 3}},
		{"negative offset", New(1, -1, false), 4, []int{0}, []int{0, 1, 2}},
		{"symmetric neighbours", New(1, 1, true), 5, []int{0}, []int{0, 2, 3}},
		{"symmetric half turn", New(1, 2, true), 4, []int{0}, []int{0, 1, 3}},
		{"window of two", New(2, 0, false), 4, []int{1, 3}, []int{0, 2}},
		{"only recent window counts", New(1, 0, false), 4, []int{0, 1, 3}, []int{0, 1, 2}},
		{"asymmetric window two", New(2, -1, false), 4, []int{2, 0}, []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Eligible(tt.n, tt.history...); !slices.Equal(got, tt.want) {
				t.Errorf("Eligible(%d, %v) = %v, want %v", tt.n, tt.history, got, tt.want)
			}
		})
	}
}

func TestLastChoiceExcluded(t *testing.T) {
	for w := 1; w < 4; w++ {
		r := New(w, 0, false)
		for n := w + 1; n < 9; n++ {
			for last := 0; last < n; last++ {
				if slices.Contains(r.Eligible(n, last), last) {
					t.Errorf("window=%d n=%d: last choice %d should be excluded", w, n, last)
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		n       int
		wantErr bool
	}{
		{"no rule", NoRule(), 3, false},
		{"no repeat triangle", New(1, 0, false), 3, false},
		{"window one below n", New(3, 0, false), 4, false},
		{"window equals n", New(4, 0, false), 4, true},
		{"symmetric neighbours never stall", New(2, 1, true), 4, false},
		{"symmetric neighbours on a pentagon", New(2, 1, true), 5, false},
		{"long window without repeats", New(4, 0, false), 5, false},
		{"window beyond n that never stalls", New(6, 2, false), 4, false},
		{"window beyond n without repeats", New(5, 0, false), 4, true},
		{"single vertex", New(1, 0, false), 1, true},
		{"huge window", New(1<<62, 1, true), 4, true},
		{"window above maximum", New(MaxWindow+1, 2, false), 4, true},
		{"symmetric half turn counts once", New(2, 2, true), 4, false},
		{"symmetric zero offset counts once", New(2, 0, true), 3, false},
		{"negative window", New(-1, 0, false), 4, true},
		{"empty vertex set", NoRule(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("Validate error code = %v, want %v", errors.GetCode(err), errors.ErrCodeConfiguration)
			}
			if _, startErr := tt.rule.Start(tt.n); (startErr != nil) != tt.wantErr {
				t.Errorf("Start(%d) error = %v, wantErr %v", tt.n, startErr, tt.wantErr)
			}
		})
	}
}

func TestDrawNeverStallsOnAcceptedRules(t *testing.T) {
	rules := []Rule{New(2, 1, true), New(6, 2, false), New(3, -1, false)}
	for _, r := range rules {
		st, err := r.Start(4)
		if err != nil {
			t.Fatalf("%+v: %v", r, err)
		}
		src := random.New(17)
		for i := 0; i < 20000; i++ {
			if len(st.Eligible()) == 0 {
				t.Fatalf("%+v: no eligible vertex after %d draws (history %v)", r, i, st.History())
			}
			st.Draw(src)
		}
	}
}

func TestStateRingBuffer(t *testing.T) {
	st, err := New(3, 0, false).Start(8)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []int{1, 2, 3, 4, 5} {
		st.Push(c)
	}
	if got := st.History(); !slices.Equal(got, []int{3, 4, 5}) {
		t.Errorf("History() = %v, want [3 4 5]", got)
	}
	if got := st.Eligible(); !slices.Equal(got, []int{0, 1, 2, 6, 7}) {
		t.Errorf("Eligible() = %v, want [0 1 2 6 7]", got)
	}

	st.Reset()
	if got := st.History(); len(got) != 0 {
		t.Errorf("History() after Reset = %v, want empty", got)
	}

	st.Seed([]int{7, 6, 5, 4})
	if got := st.History(); !slices.Equal(got, []int{6, 5, 4}) {
		t.Errorf("History() after Seed = %v, want [6 5 4]", got)
	}
}

func TestStateNoRuleKeepsNothing(t *testing.T) {
	st, err := NoRule().Start(3)
	if err != nil {
		t.Fatal(err)
	}
	st.Push(1)
	if got := st.History(); len(got) != 0 {
		t.Errorf("History() = %v, want empty", got)
	}
}

func TestDrawRespectsRule(t *testing.T) {
	st, err := New(1, 0, false).Start(3)
	if err != nil {
		t.Fatal(err)
	}
	src := random.New(99)

	prev := -1
	for i := 0; i < 5000; i++ {
		c := st.Draw(src)
		if c == prev {
			t.Fatalf("draw %d repeated vertex %d", i, c)
		}
		if c < 0 || c >= 3 {
			t.Fatalf("draw %d out of range: %d", i, c)
		}
		prev = c
	}
}

func TestDrawScripted(t *testing.T) {
	st, err := New(1, 0, false).Start(4)
	if err != nil {
		t.Fatal(err)
	}
	// Draw indexes into the eligible set, not the vertex set.
	src := random.Script([]int{0, 0, 0, 2})
	got := []int{st.Draw(src), st.Draw(src), st.Draw(src), st.Draw(src)}
	want := []int{0, 1, 0, 3}
	if !slices.Equal(got, want) {
		t.Errorf("draws = %v, want %v", got, want)
	}
}
