package grammar

import (
	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

// Description is a portable snapshot of a parsing table. All symbols are
// rendered by number and name so the table can be serialized, diffed, or
// displayed without the in-memory handles.
type Description struct {
	InitialState int      `json:"initial_state"`
	States       []*State `json:"states"`

	Terminals    []*Terminal    `json:"terminals"`
	NonTerminals []*NonTerminal `json:"non_terminals"`
	Productions  []*Production  `json:"productions"`

	Conflicts []string `json:"conflicts,omitempty"`
}

type Terminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	EOF    bool   `json:"eof,omitempty"`
}

type NonTerminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type Production struct {
	Number int    `json:"number"`
	LHS    int    `json:"lhs"`
	RHSLen int    `json:"rhs_len"`
	Start  bool   `json:"start,omitempty"`
	Name   string `json:"lhs_name"`
}

type State struct {
	Number int           `json:"number"`
	Shift  []*Transition `json:"shift,omitempty"`
	Reduce []*Reduce     `json:"reduce,omitempty"`
	GoTo   []*Transition `json:"goto,omitempty"`
	Accept bool          `json:"accept,omitempty"`
}

type Transition struct {
	Symbol int `json:"symbol"`
	State  int `json:"state"`
}

type Reduce struct {
	LookAhead  []int `json:"look_ahead"`
	Production int   `json:"production"`
}

// Describe renders the table. The result shares nothing with the table and
// stays valid independently of it.
func (t *ParsingTable) Describe() *Description {
	d := &Description{
		InitialState: t.InitialState(),
	}

	terms := t.symTab.TerminalSymbols()
	for _, sym := range terms {
		name, _ := t.symTab.ToText(sym)
		d.Terminals = append(d.Terminals, &Terminal{
			Number: sym.Num().Int(),
			Name:   name,
			EOF:    sym.IsEOF(),
		})
	}

	nonTerms := t.symTab.NonTerminalSymbols()
	for _, sym := range nonTerms {
		name, _ := t.symTab.ToText(sym)
		d.NonTerminals = append(d.NonTerminals, &NonTerminal{
			Number: sym.Num().Int(),
			Name:   name,
		})
	}

	for num := 1; num < len(t.lhsSymbols); num++ {
		lhs := t.lhsSymbols[num]
		if lhs.IsNil() {
			continue
		}
		name, _ := t.symTab.ToText(lhs)
		d.Productions = append(d.Productions, &Production{
			Number: num,
			LHS:    lhs.Num().Int(),
			RHSLen: t.altSymbolCounts[num],
			Start:  lhs.IsStart(),
			Name:   name,
		})
	}

	for s := 0; s < t.stateCount; s++ {
		state := &State{
			Number: s,
		}

		reduces := map[int]*Reduce{}
		for _, term := range terms {
			ty, next, prod := t.Action(s, term)
			switch ty {
			case ActionTypeShift:
				state.Shift = append(state.Shift, &Transition{
					Symbol: term.Num().Int(),
					State:  next,
				})
			case ActionTypeReduce:
				r, ok := reduces[prod]
				if !ok {
					r = &Reduce{
						Production: prod,
					}
					reduces[prod] = r
					state.Reduce = append(state.Reduce, r)
				}
				r.LookAhead = append(r.LookAhead, term.Num().Int())
			case ActionTypeAccept:
				state.Accept = true
			}
		}

		for _, nt := range nonTerms {
			next, ok := t.GoTo(s, nt)
			if !ok {
				continue
			}
			state.GoTo = append(state.GoTo, &Transition{
				Symbol: nt.Num().Int(),
				State:  next,
			})
		}

		d.States = append(d.States, state)
	}

	for _, c := range t.conflicts {
		d.Conflicts = append(d.Conflicts, c.String())
	}

	return d
}

// ExpectedTerminals lists the terminal names a state has any action for,
// with "$" standing in for end of input. Syntax error reporting uses it to
// tell the user what could have come next.
func (t *ParsingTable) ExpectedTerminals(state int) []string {
	var names []string
	for _, term := range t.symTab.TerminalSymbols() {
		ty, _, _ := t.Action(state, term)
		if ty == ActionTypeError {
			continue
		}
		if term == symbol.SymbolEOF {
			names = append(names, "$")
			continue
		}
		name, _ := t.symTab.ToText(term)
		names = append(names, name)
	}
	return names
}
