package grammar

import (
	"fmt"
	"sort"

	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

// lrState is one state of the canonical LR(1) collection: the closed item
// set, its identity, and the transitions leaving it.
type lrState struct {
	id       lrStateID
	kernelID kernelID
	num      stateNum
	items    []*lrItem
	next     map[symbol.Symbol]stateNum
}

type lr1Automaton struct {
	states  []*lrState
	initial stateNum
}

// genLR1Automaton builds the canonical collection of LR(1) item sets,
// starting from closure({[<start> →・S, <eof>]}) and saturating transitions
// over every grammar symbol. States are reused by item-set equality.
func genLR1Automaton(g *Grammar, first *firstSet) (*lr1Automaton, error) {
	automaton := &lr1Automaton{
		initial: stateNumInitial,
	}

	id2Num := map[lrStateID]stateNum{}

	intern := func(items []*lrItem) (stateNum, bool) {
		id := genLRStateID(items)
		if num, known := id2Num[id]; known {
			return num, false
		}
		num := stateNum(len(automaton.states))
		id2Num[id] = num
		automaton.states = append(automaton.states, &lrState{
			id:       id,
			kernelID: genKernelID(items),
			num:      num,
			items:    items,
			next:     map[symbol.Symbol]stateNum{},
		})
		return num, true
	}

	{
		startProds, _ := g.prods.findByLHS(symbol.SymbolStart)
		if len(startProds) == 0 {
			return nil, fmt.Errorf("an augmented start production was not found")
		}
		initialItem, err := newLRItem(startProds[0], 0, symbol.SymbolEOF)
		if err != nil {
			return nil, err
		}
		items, err := genLR1Closure([]*lrItem{initialItem}, g.prods, first)
		if err != nil {
			return nil, err
		}
		intern(items)
	}

	for unchecked := stateNumInitial; unchecked.Int() < len(automaton.states); unchecked = unchecked.next() {
		state := automaton.states[unchecked]
		for _, sym := range dottedSymbols(state.items) {
			kernel, err := genNextKernel(state.items, sym, g.prods)
			if err != nil {
				return nil, err
			}
			items, err := genLR1Closure(kernel, g.prods, first)
			if err != nil {
				return nil, err
			}
			num, _ := intern(items)
			state.next[sym] = num
		}
	}

	return automaton, nil
}

// genLR1Closure saturates an item set: for every [A → α・Bβ, a] with B
// non-terminal and every production B → γ, it adds [B →・γ, t] for each
// terminal t in FIRST(βa).
func genLR1Closure(kernel []*lrItem, prods *productionSet, first *firstSet) ([]*lrItem, error) {
	var items []*lrItem
	knownItems := map[lrItemID]struct{}{}
	var uncheckedItems []*lrItem
	for _, item := range kernel {
		if _, known := knownItems[item.id]; known {
			continue
		}
		knownItems[item.id] = struct{}{}
		items = append(items, item)
		uncheckedItems = append(uncheckedItems, item)
	}

	for len(uncheckedItems) > 0 {
		item := uncheckedItems[len(uncheckedItems)-1]
		uncheckedItems = uncheckedItems[:len(uncheckedItems)-1]

		if !item.dottedSymbol.IsNonTerminal() {
			continue
		}

		prod, ok := prods.findByID(item.prod)
		if !ok {
			return nil, fmt.Errorf("production not found: %v", item.prod)
		}

		// FIRST(βa): the tail after the dotted symbol, then the item's own
		// lookahead when the tail derives ε.
		fst, err := first.find(prod, item.dot+1)
		if err != nil {
			return nil, err
		}
		lookAheads := make([]symbol.Symbol, 0, len(fst.symbols)+1)
		for sym := range fst.symbols {
			lookAheads = append(lookAheads, sym)
		}
		if fst.empty {
			lookAheads = append(lookAheads, item.lookAhead)
		}

		ps, _ := prods.findByLHS(item.dottedSymbol)
		for _, p := range ps {
			for _, la := range lookAheads {
				newItem, err := newLRItem(p, 0, la)
				if err != nil {
					return nil, err
				}
				if _, known := knownItems[newItem.id]; known {
					continue
				}
				knownItems[newItem.id] = struct{}{}
				items = append(items, newItem)
				uncheckedItems = append(uncheckedItems, newItem)
			}
		}
	}

	return items, nil
}

// genNextKernel advances the dot over sym in every item that expects it,
// keeping lookaheads. The result is the kernel of GOTO(state, sym).
func genNextKernel(items []*lrItem, sym symbol.Symbol, prods *productionSet) ([]*lrItem, error) {
	var kernel []*lrItem
	for _, item := range items {
		if item.dottedSymbol != sym {
			continue
		}
		prod, ok := prods.findByID(item.prod)
		if !ok {
			return nil, fmt.Errorf("production not found: %v", item.prod)
		}
		advanced, err := newLRItem(prod, item.dot+1, item.lookAhead)
		if err != nil {
			return nil, err
		}
		kernel = append(kernel, advanced)
	}
	return kernel, nil
}

// dottedSymbols lists the distinct symbols appearing after a dot, sorted so
// that state generation is deterministic.
func dottedSymbols(items []*lrItem) []symbol.Symbol {
	symSet := map[symbol.Symbol]struct{}{}
	for _, item := range items {
		if item.dottedSymbol.IsNil() {
			continue
		}
		symSet[item.dottedSymbol] = struct{}{}
	}
	syms := make([]symbol.Symbol, 0, len(symSet))
	for sym := range symSet {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}
