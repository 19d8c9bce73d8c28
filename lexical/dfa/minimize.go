package dfa

import "sort"

// Minimize collapses equivalent states with the table-filling algorithm. Two
// states are distinguishable when exactly one is final, when both are final
// for different kinds, or when some input leads them to distinguishable
// successors (a present transition against a missing one counts). The
// resulting automaton accepts the same language and reports the same kind at
// every prefix.
func Minimize(d *DFA) *DFA {
	n := len(d.States)
	marked := make([][]bool, n)
	for i := range marked {
		marked[i] = make([]bool, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p, q := d.States[i], d.States[j]
			if p.Final != q.Final || (p.Final && p.Kind != q.Kind) {
				marked[i][j] = true
			}
		}
	}

	alphabet := d.alphabet()
	for {
		more := false
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if marked[i][j] {
					continue
				}
				if distinguishable(d.States[i], d.States[j], alphabet, marked) {
					marked[i][j] = true
					more = true
				}
			}
		}
		if !more {
			break
		}
	}

	classes := newClassSet(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !marked[i][j] {
				classes.union(i, j)
			}
		}
	}

	return rebuild(d, classes)
}

func distinguishable(p, q *State, alphabet []byte, marked [][]bool) bool {
	for _, c := range alphabet {
		tp, okp := p.Next[c]
		tq, okq := q.Next[c]
		if okp != okq {
			return true
		}
		if !okp || tp == tq {
			continue
		}
		i, j := tp.Int(), tq.Int()
		if i > j {
			i, j = j, i
		}
		if marked[i][j] {
			return true
		}
	}
	return false
}

// classSet is a union-find over state ids used to gather the equivalence
// classes left unmarked by the table-filling pass.
type classSet struct {
	parent []int
}

func newClassSet(n int) *classSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &classSet{parent: parent}
}

func (cs *classSet) find(i int) int {
	for cs.parent[i] != i {
		cs.parent[i] = cs.parent[cs.parent[i]]
		i = cs.parent[i]
	}
	return i
}

func (cs *classSet) union(i, j int) {
	ri, rj := cs.find(i), cs.find(j)
	if ri == rj {
		return
	}
	if ri > rj {
		ri, rj = rj, ri
	}
	cs.parent[rj] = ri
}

// rebuild lifts states and transitions class-to-class. Classes are numbered
// by their smallest member so the construction is deterministic; the class
// containing the original start state becomes the new start state.
func rebuild(d *DFA, classes *classSet) *DFA {
	reps := map[int][]int{}
	for i := range d.States {
		r := classes.find(i)
		reps[r] = append(reps[r], i)
	}

	roots := make([]int, 0, len(reps))
	for r := range reps {
		roots = append(roots, r)
	}
	sort.Ints(roots)

	class2ID := map[int]StateID{}
	for i, r := range roots {
		class2ID[r] = StateID(i)
	}

	min := &DFA{
		Initial: class2ID[classes.find(d.Initial.Int())],
	}
	for _, r := range roots {
		members := reps[r]
		s := &State{
			ID:   class2ID[r],
			Next: map[byte]StateID{},
		}
		for c, to := range d.States[members[0]].Next {
			s.Next[c] = class2ID[classes.find(to.Int())]
		}
		for _, m := range members {
			ms := d.States[m]
			if !ms.Final {
				continue
			}
			if !s.Final || ms.Priority < s.Priority {
				s.Final = true
				s.Kind = ms.Kind
				s.Priority = ms.Priority
			}
		}
		min.States = append(min.States, s)
	}

	return min
}
