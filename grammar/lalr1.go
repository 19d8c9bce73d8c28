package grammar

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

// lalrItem is a consolidated item of a merged state: one record per
// (production, dot) core carrying the union of the member states' lookaheads.
type lalrItem struct {
	core         lrItemCoreID
	prod         productionID
	dot          int
	dottedSymbol symbol.Symbol
	initial      bool
	reducible    bool
	lookAhead    map[symbol.Symbol]struct{}
}

type lalrState struct {
	num   stateNum
	items []*lalrItem
	next  map[symbol.Symbol]stateNum
}

type lalr1Automaton struct {
	states  []*lalrState
	initial stateNum
}

// genLALR1Automaton merges the canonical LR(1) collection by kernel: states
// whose kernels project to the same (production, dot) set become one LALR
// state whose items union the lookaheads. Transitions lift group-to-group;
// this is well-defined because same-kernel states transition to same-kernel
// states.
func genLALR1Automaton(lr1 *lr1Automaton) (*lalr1Automaton, error) {
	group := make([]stateNum, len(lr1.states))
	kernel2Group := map[kernelID]stateNum{}
	var groups [][]*lrState
	for _, state := range lr1.states {
		g, known := kernel2Group[state.kernelID]
		if !known {
			g = stateNum(len(groups))
			kernel2Group[state.kernelID] = g
			groups = append(groups, nil)
		}
		group[state.num] = g
		groups[g] = append(groups[g], state)
	}

	automaton := &lalr1Automaton{
		initial: group[lr1.initial.Int()],
	}

	for g, members := range groups {
		merged := &lalrState{
			num:  stateNum(g),
			next: map[symbol.Symbol]stateNum{},
		}

		core2Item := map[lrItemCoreID]*lalrItem{}
		for _, member := range members {
			for _, item := range member.items {
				consolidated, ok := core2Item[item.core]
				if !ok {
					consolidated = &lalrItem{
						core:         item.core,
						prod:         item.prod,
						dot:          item.dot,
						dottedSymbol: item.dottedSymbol,
						initial:      item.initial,
						reducible:    item.reducible,
						lookAhead:    map[symbol.Symbol]struct{}{},
					}
					core2Item[item.core] = consolidated
					merged.items = append(merged.items, consolidated)
				}
				consolidated.lookAhead[item.lookAhead] = struct{}{}
			}

			for sym, to := range member.next {
				toGroup := group[to.Int()]
				if prev, exist := merged.next[sym]; exist && prev != toGroup {
					return nil, fmt.Errorf("merged states disagree on a transition; state: %v, symbol: %v", g, sym)
				}
				merged.next[sym] = toGroup
			}
		}

		sort.Slice(merged.items, func(i, j int) bool {
			return bytes.Compare(merged.items[i].core[:], merged.items[j].core[:]) < 0
		})

		automaton.states = append(automaton.states, merged)
	}

	return automaton, nil
}
