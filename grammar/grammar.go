package grammar

import (
	"fmt"

	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

// EmptySymbolText is the rhs spelling of the empty string. A production whose
// rhs is exactly this symbol derives ε.
const EmptySymbolText = "ε"

type GrammarErrorKind string

const (
	// GrammarErrorUndefinedSymbol means an rhs symbol is neither a declared
	// terminal nor the lhs of any production.
	GrammarErrorUndefinedSymbol = GrammarErrorKind("undefined non-terminal")

	// GrammarErrorNoStartProduction means the start symbol never appears on
	// the lhs.
	GrammarErrorNoStartProduction = GrammarErrorKind("no production for the start symbol")

	// GrammarErrorNoProduction means the grammar has no productions at all.
	GrammarErrorNoProduction = GrammarErrorKind("no productions")
)

type GrammarError struct {
	Kind   GrammarErrorKind
	Symbol string
}

func (e *GrammarError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("invalid grammar: %v: %v", e.Kind, e.Symbol)
	}
	return fmt.Sprintf("invalid grammar: %v", e.Kind)
}

// Grammar is an immutable context-free grammar, already augmented with the
// production <start> → S needed by the LR construction.
type Grammar struct {
	symTab *symbol.SymbolTable
	prods  *productionSet
	start  symbol.Symbol
}

func (g *Grammar) SymbolTable() *symbol.SymbolTable {
	return g.symTab
}

// Builder accumulates terminal declarations and productions, then validates
// them into a Grammar. The zero value is not usable; construct with
// NewBuilder, naming the start symbol.
type Builder struct {
	start     string
	terminals []string
	prods     []*rawProduction
}

type rawProduction struct {
	lhs string
	rhs []string
}

func NewBuilder(start string) *Builder {
	return &Builder{
		start: start,
	}
}

// Terminals declares terminal symbol names. Any rhs name that is neither
// declared here nor used as an lhs makes Build fail.
func (b *Builder) Terminals(names ...string) *Builder {
	b.terminals = append(b.terminals, names...)
	return b
}

// Add appends the production lhs → rhs. An empty rhs, or the single symbol
// "ε", adds an empty production.
func (b *Builder) Add(lhs string, rhs ...string) *Builder {
	b.prods = append(b.prods, &rawProduction{
		lhs: lhs,
		rhs: rhs,
	})
	return b
}

func (b *Builder) Build() (*Grammar, error) {
	if len(b.prods) == 0 {
		return nil, &GrammarError{Kind: GrammarErrorNoProduction}
	}

	lhsNames := map[string]struct{}{}
	for _, p := range b.prods {
		lhsNames[p.lhs] = struct{}{}
	}
	if _, ok := lhsNames[b.start]; !ok {
		return nil, &GrammarError{
			Kind:   GrammarErrorNoStartProduction,
			Symbol: b.start,
		}
	}

	termNames := map[string]struct{}{}
	for _, t := range b.terminals {
		termNames[t] = struct{}{}
	}

	symTab := symbol.NewSymbolTable()
	prods := newProductionSet()

	// Register non-terminals first so every lhs resolves before the rhs
	// pass.
	for _, p := range b.prods {
		if _, declared := termNames[p.lhs]; declared {
			return nil, fmt.Errorf("invalid grammar: %v is declared as a terminal but appears on an lhs", p.lhs)
		}
		_, err := symTab.RegisterNonTerminal(p.lhs)
		if err != nil {
			return nil, err
		}
	}

	for _, p := range b.prods {
		lhsSym, _ := symTab.ToSymbol(p.lhs)

		rhsNames := p.rhs
		if len(rhsNames) == 1 && rhsNames[0] == EmptySymbolText {
			rhsNames = nil
		}

		rhs := make([]symbol.Symbol, 0, len(rhsNames))
		for _, name := range rhsNames {
			if _, isLHS := lhsNames[name]; isLHS {
				sym, _ := symTab.ToSymbol(name)
				rhs = append(rhs, sym)
				continue
			}
			if _, declared := termNames[name]; !declared {
				return nil, &GrammarError{
					Kind:   GrammarErrorUndefinedSymbol,
					Symbol: name,
				}
			}
			sym, err := symTab.RegisterTerminal(name)
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, sym)
		}

		prod, err := newProduction(lhsSym, rhs)
		if err != nil {
			return nil, err
		}
		prods.append(prod)
	}

	// Register declared terminals that no production mentions; the parsing
	// table still needs columns for them.
	for _, t := range b.terminals {
		_, err := symTab.RegisterTerminal(t)
		if err != nil {
			return nil, err
		}
	}

	// Augment: <start> → S.
	startSym, _ := symTab.ToSymbol(b.start)
	augProd, err := newProduction(symbol.SymbolStart, []symbol.Symbol{startSym})
	if err != nil {
		return nil, err
	}
	prods.append(augProd)

	return &Grammar{
		symTab: symTab,
		prods:  prods,
		start:  startSym,
	}, nil
}
