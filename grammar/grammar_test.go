package grammar

import (
	"errors"
	"testing"

	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

func TestBuilder(t *testing.T) {
	g, err := NewBuilder("E").
		Terminals("+", "*", "(", ")", "id").
		Add("E", "E", "+", "T").
		Add("E", "T").
		Add("T", "T", "*", "F").
		Add("T", "F").
		Add("F", "(", "E", ")").
		Add("F", "id").
		Build()
	if err != nil {
		t.Fatal(err)
	}

	symTab := g.SymbolTable()
	for _, name := range []string{"+", "*", "(", ")", "id"} {
		sym, ok := symTab.ToSymbol(name)
		if !ok || !sym.IsTerminal() {
			t.Fatalf("%v must be a terminal", name)
		}
	}
	for _, name := range []string{"E", "T", "F"} {
		sym, ok := symTab.ToSymbol(name)
		if !ok || !sym.IsNonTerminal() {
			t.Fatalf("%v must be a non-terminal", name)
		}
	}
}

func TestBuilder_emptyProduction(t *testing.T) {
	for _, rhs := range [][]string{nil, {EmptySymbolText}} {
		g, err := NewBuilder("S").
			Terminals("a").
			Add("S", "a").
			Add("S", rhs...).
			Build()
		if err != nil {
			t.Fatal(err)
		}
		prods, ok := g.prods.findByLHS(mustToSymbol(t, g, "S"))
		if !ok || len(prods) != 2 {
			t.Fatalf("S must have two productions")
		}
		hasEmpty := false
		for _, p := range prods {
			if p.isEmpty() {
				hasEmpty = true
			}
		}
		if !hasEmpty {
			t.Fatalf("one production of S must be empty")
		}
	}
}

func TestBuilder_invalidGrammars(t *testing.T) {
	tests := []struct {
		caption string
		build   func() (*Grammar, error)
		kind    GrammarErrorKind
	}{
		{
			caption: "undefined non-terminal on an rhs",
			build: func() (*Grammar, error) {
				return NewBuilder("S").
					Terminals("a").
					Add("S", "a", "B").
					Build()
			},
			kind: GrammarErrorUndefinedSymbol,
		},
		{
			caption: "no production for the start symbol",
			build: func() (*Grammar, error) {
				return NewBuilder("S").
					Terminals("a").
					Add("A", "a").
					Build()
			},
			kind: GrammarErrorNoStartProduction,
		},
		{
			caption: "no productions at all",
			build: func() (*Grammar, error) {
				return NewBuilder("S").Build()
			},
			kind: GrammarErrorNoProduction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := tt.build()
			if err == nil {
				t.Fatalf("an error must occur")
			}
			var gramErr *GrammarError
			if !errors.As(err, &gramErr) {
				t.Fatalf("unexpected error type: %T", err)
			}
			if gramErr.Kind != tt.kind {
				t.Fatalf("unexpected error kind; want: %v, got: %v", tt.kind, gramErr.Kind)
			}
		})
	}
}

func mustToSymbol(t *testing.T, g *Grammar, name string) symbol.Symbol {
	t.Helper()
	sym, ok := g.symTab.ToSymbol(name)
	if !ok {
		t.Fatalf("symbol not found: %v", name)
	}
	return sym
}
