package nfa

import "testing"

func TestBuilder(t *testing.T) {
	b := NewBuilder()

	s0 := b.NewState()
	s1 := b.NewState()
	if s0.ID != 0 || s1.ID != 1 {
		t.Fatalf("state ids must be sequential; got: %v, %v", s0.ID, s1.ID)
	}

	s0.AddTransition('a', s1.ID)
	s0.AddEpsilonTransition(s1.ID)
	if len(s0.Transitions) != 2 {
		t.Fatalf("unexpected transition count; want: %v, got: %v", 2, len(s0.Transitions))
	}
	if s0.Transitions[0].Epsilon || s0.Transitions[0].Label != 'a' {
		t.Fatalf("the first transition must consume 'a'")
	}
	if !s0.Transitions[1].Epsilon {
		t.Fatalf("the second transition must be an ε-transition")
	}

	if b.State(s1.ID) != s1 {
		t.Fatalf("State must resolve ids to their states")
	}

	automaton := b.Automaton(s0.ID)
	if automaton.Initial != s0.ID || len(automaton.States) != 2 {
		t.Fatalf("unexpected automaton snapshot")
	}
}

// Builders own their id spaces, so interleaved constructions never share a
// counter.
func TestBuilder_independentIDSpaces(t *testing.T) {
	b1 := NewBuilder()
	b2 := NewBuilder()

	b1.NewState()
	b1.NewState()
	s := b2.NewState()
	if s.ID != 0 {
		t.Fatalf("a fresh builder must start at id 0; got: %v", s.ID)
	}
	if b1.StateCount() != 2 || b2.StateCount() != 1 {
		t.Fatalf("unexpected state counts; got: %v, %v", b1.StateCount(), b2.StateCount())
	}
}
