package dfa

import (
	"encoding/binary"
	"sort"

	"github.com/OscarTapiaS/proyecto-compilador/lexical/nfa"
)

// GenDFA converts an NFA into a DFA by subset construction. Every DFA state
// corresponds to an ε-closed set of NFA states; the accept annotation of a
// DFA state is that of the accepting member with the lowest priority value.
func GenDFA(automaton *nfa.NFA, alphabet []byte) *DFA {
	d := &DFA{}
	key2ID := map[string]StateID{}
	var origins [][]nfa.StateID

	intern := func(origin []nfa.StateID) StateID {
		key := originKey(origin)
		if id, ok := key2ID[key]; ok {
			return id
		}
		id := StateID(len(d.States))
		key2ID[key] = id
		origins = append(origins, origin)
		s := &State{
			ID:   id,
			Next: map[byte]StateID{},
		}
		for _, nid := range origin {
			acc := automaton.States[nid].Accept
			if acc == nil {
				continue
			}
			if !s.Final || acc.Priority < s.Priority {
				s.Final = true
				s.Kind = acc.Kind
				s.Priority = acc.Priority
			}
		}
		d.States = append(d.States, s)
		return id
	}

	d.Initial = intern(epsilonClosure(automaton, []nfa.StateID{automaton.Initial}))

	for unchecked := StateID(0); unchecked.Int() < len(d.States); unchecked++ {
		origin := origins[unchecked]
		for _, c := range alphabet {
			moved := move(automaton, origin, c)
			if len(moved) == 0 {
				continue
			}
			next := intern(epsilonClosure(automaton, moved))
			d.States[unchecked].Next[c] = next
		}
	}

	return d
}

// epsilonClosure returns the least superset of seed closed under
// ε-transitions, as a sorted id sequence.
func epsilonClosure(automaton *nfa.NFA, seed []nfa.StateID) []nfa.StateID {
	closure := map[nfa.StateID]struct{}{}
	unchecked := make([]nfa.StateID, 0, len(seed))
	for _, id := range seed {
		closure[id] = struct{}{}
		unchecked = append(unchecked, id)
	}
	for len(unchecked) > 0 {
		id := unchecked[len(unchecked)-1]
		unchecked = unchecked[:len(unchecked)-1]
		for _, tr := range automaton.States[id].Transitions {
			if !tr.Epsilon {
				continue
			}
			if _, known := closure[tr.To]; known {
				continue
			}
			closure[tr.To] = struct{}{}
			unchecked = append(unchecked, tr.To)
		}
	}

	ids := make([]nfa.StateID, 0, len(closure))
	for id := range closure {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// move returns the targets reachable from origin by consuming c.
func move(automaton *nfa.NFA, origin []nfa.StateID, c byte) []nfa.StateID {
	moved := map[nfa.StateID]struct{}{}
	for _, id := range origin {
		for _, tr := range automaton.States[id].Transitions {
			if tr.Epsilon || tr.Label != c {
				continue
			}
			moved[tr.To] = struct{}{}
		}
	}
	ids := make([]nfa.StateID, 0, len(moved))
	for id := range moved {
		ids = append(ids, id)
	}
	return ids
}

// originKey canonicalizes a sorted origin set into a map key.
func originKey(origin []nfa.StateID) string {
	b := make([]byte, len(origin)*4)
	for i, id := range origin {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(id))
	}
	return string(b)
}
