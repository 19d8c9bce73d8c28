package grammar

import (
	"fmt"
	"sort"

	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
	ActionTypeError  = ActionType("error")
)

// actionEntry packs an action into one integer: 0 is the empty cell, a
// negative value shifts to state -n, and a positive value reduces the
// production with that number. Reducing the augmented start production is the
// accept action. State 0 is never a shift target (only the initial state has
// a kernel with every dot at 0), so the encoding is unambiguous.
type actionEntry int

const actionEntryEmpty = actionEntry(0)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(state * -1)
}

func newReduceActionEntry(prod productionNum) actionEntry {
	return actionEntry(prod)
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

func (e actionEntry) describe() (ActionType, stateNum, productionNum) {
	if e == actionEntryEmpty {
		return ActionTypeError, stateNumInitial, productionNumNil
	}
	if e < 0 {
		return ActionTypeShift, stateNum(e * -1), productionNumNil
	}
	if productionNum(e) == productionNumStart {
		return ActionTypeAccept, stateNumInitial, productionNumStart
	}
	return ActionTypeReduce, stateNumInitial, productionNum(e)
}

type goToEntry uint

const goToEntryEmpty = goToEntry(0)

func newGoToEntry(state stateNum) goToEntry {
	return goToEntry(state + 1)
}

func (e goToEntry) describe() (stateNum, bool) {
	if e == goToEntryEmpty {
		return stateNumInitial, false
	}
	return stateNum(e - 1), true
}

type ConflictKind string

const (
	ConflictKindShiftReduce  = ConflictKind("shift/reduce")
	ConflictKindReduceReduce = ConflictKind("reduce/reduce")
)

// Conflict records a parsing-table cell two actions competed for. The action
// written first stays in the table; conflicts are diagnostics, not errors.
type Conflict struct {
	State  int
	Symbol string
	Kind   ConflictKind
}

func (c *Conflict) String() string {
	return fmt.Sprintf("state %v: %v conflict on %v", c.State, c.Kind, c.Symbol)
}

// ParsingTable is an immutable LALR(1) ACTION/GOTO table plus the production
// metadata the driver needs to reduce.
type ParsingTable struct {
	actionTable      []actionEntry
	goToTable        []goToEntry
	stateCount       int
	terminalCount    int
	nonTerminalCount int
	initialState     stateNum

	// lhsSymbols and altSymbolCounts are indexed by production number.
	lhsSymbols      []symbol.Symbol
	altSymbolCounts []int

	symTab    *symbol.SymbolTable
	conflicts []*Conflict
}

func (t *ParsingTable) InitialState() int {
	return t.initialState.Int()
}

func (t *ParsingTable) StateCount() int {
	return t.stateCount
}

func (t *ParsingTable) SymbolTable() *symbol.SymbolTable {
	return t.symTab
}

func (t *ParsingTable) Conflicts() []*Conflict {
	return t.conflicts
}

// Action looks up the ACTION cell for a terminal. The second return value is
// the target state for a shift, the third the production number for a
// reduce.
func (t *ParsingTable) Action(state int, term symbol.Symbol) (ActionType, int, int) {
	ty, next, prod := t.actionTable[state*t.terminalCount+term.Num().Int()].describe()
	return ty, next.Int(), prod.Int()
}

// GoTo looks up the GOTO cell for a non-terminal.
func (t *ParsingTable) GoTo(state int, nt symbol.Symbol) (int, bool) {
	next, ok := t.goToTable[state*t.nonTerminalCount+nt.Num().Int()].describe()
	return next.Int(), ok
}

// Production returns the lhs symbol and rhs length of a production by
// number.
func (t *ParsingTable) Production(num int) (symbol.Symbol, int, bool) {
	if num <= 0 || num >= len(t.lhsSymbols) || t.lhsSymbols[num].IsNil() {
		return symbol.SymbolNil, 0, false
	}
	return t.lhsSymbols[num], t.altSymbolCounts[num], true
}

func (t *ParsingTable) readAction(state stateNum, term symbol.SymbolNum) actionEntry {
	return t.actionTable[state.Int()*t.terminalCount+term.Int()]
}

func (t *ParsingTable) writeAction(state stateNum, term symbol.SymbolNum, act actionEntry) {
	t.actionTable[state.Int()*t.terminalCount+term.Int()] = act
}

func (t *ParsingTable) writeGoTo(state stateNum, sym symbol.Symbol, nextState stateNum) {
	t.goToTable[state.Int()*t.nonTerminalCount+sym.Num().Int()] = newGoToEntry(nextState)
}

// BuildParsingTable builds the LALR(1) table for a grammar: FIRST sets, the
// canonical LR(1) collection, the kernel merge, and the ACTION/GOTO fill.
func BuildParsingTable(g *Grammar) (*ParsingTable, error) {
	first, err := genFirstSet(g.prods)
	if err != nil {
		return nil, err
	}
	lr1, err := genLR1Automaton(g, first)
	if err != nil {
		return nil, err
	}
	lalr, err := genLALR1Automaton(lr1)
	if err != nil {
		return nil, err
	}

	b := &tableBuilder{
		automaton: lalr,
		prods:     g.prods,
		symTab:    g.symTab,
	}
	return b.build()
}

type tableBuilder struct {
	automaton *lalr1Automaton
	prods     *productionSet
	symTab    *symbol.SymbolTable
}

func (b *tableBuilder) build() (*ParsingTable, error) {
	termCount := b.symTab.TerminalCount()
	nonTermCount := b.symTab.NonTerminalCount()
	stateCount := len(b.automaton.states)

	var maxProdNum productionNum
	for _, prod := range b.prods.getAllProductions() {
		if prod.num > maxProdNum {
			maxProdNum = prod.num
		}
	}

	ptab := &ParsingTable{
		actionTable:      make([]actionEntry, stateCount*termCount),
		goToTable:        make([]goToEntry, stateCount*nonTermCount),
		stateCount:       stateCount,
		terminalCount:    termCount,
		nonTerminalCount: nonTermCount,
		initialState:     b.automaton.initial,
		lhsSymbols:       make([]symbol.Symbol, maxProdNum.Int()+1),
		altSymbolCounts:  make([]int, maxProdNum.Int()+1),
		symTab:           b.symTab,
	}
	for _, prod := range b.prods.getAllProductions() {
		ptab.lhsSymbols[prod.num.Int()] = prod.lhs
		ptab.altSymbolCounts[prod.num.Int()] = prod.rhsLen
	}

	for _, state := range b.automaton.states {
		// Shift actions first, then reduces; within a cell the action
		// written first stays and later arrivals only log a conflict.
		for _, sym := range sortedNextSymbols(state) {
			nextState := state.next[sym]
			if sym.IsTerminal() {
				b.writeShiftAction(ptab, state.num, sym, nextState)
			} else {
				ptab.writeGoTo(state.num, sym, nextState)
			}
		}

		for _, item := range state.items {
			if !item.reducible {
				continue
			}
			prod, ok := b.prods.findByID(item.prod)
			if !ok {
				return nil, fmt.Errorf("reducible production not found: %v", item.prod)
			}
			for _, la := range sortedLookAheads(item) {
				b.writeReduceAction(ptab, state.num, la, prod.num)
			}
		}
	}

	return ptab, nil
}

func (b *tableBuilder) writeShiftAction(tab *ParsingTable, state stateNum, sym symbol.Symbol, nextState stateNum) {
	act := tab.readAction(state, sym.Num())
	if !act.isEmpty() {
		if act == newShiftActionEntry(nextState) {
			return
		}
		b.logConflict(tab, state, sym, ConflictKindShiftReduce)
		return
	}
	tab.writeAction(state, sym.Num(), newShiftActionEntry(nextState))
}

func (b *tableBuilder) writeReduceAction(tab *ParsingTable, state stateNum, sym symbol.Symbol, prod productionNum) {
	act := tab.readAction(state, sym.Num())
	if !act.isEmpty() {
		ty, _, p := act.describe()
		if (ty == ActionTypeReduce || ty == ActionTypeAccept) && p == prod {
			return
		}
		kind := ConflictKindReduceReduce
		if ty == ActionTypeShift {
			kind = ConflictKindShiftReduce
		}
		b.logConflict(tab, state, sym, kind)
		return
	}
	tab.writeAction(state, sym.Num(), newReduceActionEntry(prod))
}

func (b *tableBuilder) logConflict(tab *ParsingTable, state stateNum, sym symbol.Symbol, kind ConflictKind) {
	text, _ := b.symTab.ToText(sym)
	tab.conflicts = append(tab.conflicts, &Conflict{
		State:  state.Int(),
		Symbol: text,
		Kind:   kind,
	})
}

func sortedNextSymbols(state *lalrState) []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(state.next))
	for sym := range state.next {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

func sortedLookAheads(item *lalrItem) []symbol.Symbol {
	las := make([]symbol.Symbol, 0, len(item.lookAhead))
	for la := range item.lookAhead {
		las = append(las, la)
	}
	sort.Slice(las, func(i, j int) bool {
		return las[i] < las[j]
	})
	return las
}
