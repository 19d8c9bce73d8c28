package dfa

import "github.com/OscarTapiaS/proyecto-compilador/spec"

type StateID int

func (id StateID) Int() int {
	return int(id)
}

// State is a deterministic automaton state. Missing entries in Next mean the
// automaton rejects on that input. A final state carries the kind and
// priority of the rule it accepts for; the priority tie-break is resolved at
// construction time, never during scanning.
type State struct {
	ID       StateID
	Next     map[byte]StateID
	Final    bool
	Kind     spec.KindName
	Priority int
}

type DFA struct {
	States  []*State
	Initial StateID
}

func (d *DFA) State(id StateID) *State {
	return d.States[id]
}

func (d *DFA) StateCount() int {
	return len(d.States)
}

// alphabet returns every input byte some state has a transition on, in
// ascending order.
func (d *DFA) alphabet() []byte {
	var member [256]bool
	for _, s := range d.States {
		for c := range s.Next {
			member[c] = true
		}
	}
	var chars []byte
	for c := 0; c < 256; c++ {
		if member[c] {
			chars = append(chars, byte(c))
		}
	}
	return chars
}
