package spec

import (
	"strings"
	"testing"
)

func TestParseGrammar(t *testing.T) {
	src := `
# Arithmetic expressions.
expr: expr PLUS term | term ;
term: term MUL factor | factor ;
factor: LPAREN expr RPAREN | IDENT ;
`
	g, err := ParseGrammar(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	symTab := g.SymbolTable()
	for _, name := range []string{"PLUS", "MUL", "LPAREN", "RPAREN", "IDENT"} {
		sym, ok := symTab.ToSymbol(name)
		if !ok || !sym.IsTerminal() {
			t.Fatalf("%v must be inferred as a terminal", name)
		}
	}
	for _, name := range []string{"expr", "term", "factor"} {
		sym, ok := symTab.ToSymbol(name)
		if !ok || !sym.IsNonTerminal() {
			t.Fatalf("%v must be a non-terminal", name)
		}
	}
}

func TestParseGrammar_emptyAlternative(t *testing.T) {
	src := `
list: LPAREN items RPAREN ;
items: items IDENT | ε ;
`
	g, err := ParseGrammar(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	first, err := g.FirstSets()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, sym := range first["items"] {
		if sym == "ε" {
			found = true
		}
	}
	if !found {
		t.Fatalf("items must derive the empty string; FIRST: %v", first["items"])
	}
}

func TestParseGrammar_delimitersNeedNoSpaces(t *testing.T) {
	compact, err := ParseGrammar(strings.NewReader("s:A|B;"))
	if err != nil {
		t.Fatal(err)
	}
	spaced, err := ParseGrammar(strings.NewReader("s : A | B ;"))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"A", "B"} {
		if _, ok := compact.SymbolTable().ToSymbol(name); !ok {
			t.Fatalf("%v must exist in the compact grammar", name)
		}
		if _, ok := spaced.SymbolTable().ToSymbol(name); !ok {
			t.Fatalf("%v must exist in the spaced grammar", name)
		}
	}
}

func TestParseGrammar_invalidInputs(t *testing.T) {
	tests := []struct {
		caption string
		src     string
	}{
		{
			caption: "empty file",
			src:     "",
		},
		{
			caption: "comments only",
			src:     "# nothing here\n",
		},
		{
			caption: "missing colon",
			src:     "s A ;",
		},
		{
			caption: "missing semicolon",
			src:     "s: A",
		},
		{
			caption: "rule beginning with a delimiter",
			src:     "| s: A ;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := ParseGrammar(strings.NewReader(tt.src))
			if err == nil {
				t.Fatalf("an error must occur")
			}
		})
	}
}
