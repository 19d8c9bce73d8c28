package nfa

import "github.com/OscarTapiaS/proyecto-compilador/spec"

type StateID int

func (id StateID) Int() int {
	return int(id)
}

// Transition connects a state to a target state. A transition either consumes
// a single input byte or is an ε-transition consuming nothing.
type Transition struct {
	Label   byte
	Epsilon bool
	To      StateID
}

// Accept annotates a final state with the token kind it recognizes and the
// priority of the rule that produced it. A lower priority value wins.
type Accept struct {
	Kind     spec.KindName
	Priority int
}

type State struct {
	ID          StateID
	Transitions []*Transition
	Accept      *Accept
}

func (s *State) AddTransition(label byte, to StateID) {
	s.Transitions = append(s.Transitions, &Transition{
		Label: label,
		To:    to,
	})
}

func (s *State) AddEpsilonTransition(to StateID) {
	s.Transitions = append(s.Transitions, &Transition{
		Epsilon: true,
		To:      to,
	})
}

// Fragment is a partial automaton with a single entry and a single exit
// state. Thompson construction guarantees the start state has no incoming
// transitions and the end state has no outgoing transitions within the
// fragment.
type Fragment struct {
	Start StateID
	End   StateID
}

// Builder allocates automaton states. Each builder owns its own id space, so
// concurrent constructions never share a counter.
type Builder struct {
	states []*State
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) NewState() *State {
	s := &State{
		ID: StateID(len(b.states)),
	}
	b.states = append(b.states, s)
	return s
}

func (b *Builder) State(id StateID) *State {
	return b.states[id]
}

func (b *Builder) StateCount() int {
	return len(b.states)
}

// Automaton snapshots the builder's states into an NFA rooted at start.
func (b *Builder) Automaton(start StateID) *NFA {
	return &NFA{
		States:  b.states,
		Initial: start,
	}
}

// NFA is a nondeterministic automaton over 8-bit input. States reference each
// other by id, so the structure stays acyclic for the garbage collector even
// though the automaton graph is not.
type NFA struct {
	States  []*State
	Initial StateID
}
