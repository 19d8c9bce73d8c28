package symbol

import "testing"

func TestSymbolTable(t *testing.T) {
	tab := NewSymbolTable()

	a, err := tab.RegisterTerminal("a")
	if err != nil {
		t.Fatal(err)
	}
	e, err := tab.RegisterNonTerminal("E")
	if err != nil {
		t.Fatal(err)
	}

	if !a.IsTerminal() || a.IsNonTerminal() {
		t.Fatalf("a terminal symbol reports the wrong kind: %v", a)
	}
	if !e.IsNonTerminal() || e.IsTerminal() {
		t.Fatalf("a non-terminal symbol reports the wrong kind: %v", e)
	}

	if sym, ok := tab.ToSymbol("a"); !ok || sym != a {
		t.Fatalf("ToSymbol must return the registered handle; want: %v, got: %v", a, sym)
	}
	if text, ok := tab.ToText(e); !ok || text != "E" {
		t.Fatalf("ToText must return the registered name; want: %v, got: %v", "E", text)
	}

	// Registering the same name again returns the same handle.
	a2, err := tab.RegisterTerminal("a")
	if err != nil {
		t.Fatal(err)
	}
	if a2 != a {
		t.Fatalf("re-registration must be idempotent; want: %v, got: %v", a, a2)
	}

	// A name cannot be both a terminal and a non-terminal.
	if _, err := tab.RegisterNonTerminal("a"); err == nil {
		t.Fatalf("an error must occur")
	}
}

func TestSymbolTable_reservedSymbols(t *testing.T) {
	tab := NewSymbolTable()

	if !SymbolEOF.IsTerminal() || !SymbolEOF.IsEOF() {
		t.Fatalf("the EOF symbol must be a terminal: %v", SymbolEOF)
	}
	if !SymbolStart.IsNonTerminal() || !SymbolStart.IsStart() {
		t.Fatalf("the start symbol must be a non-terminal: %v", SymbolStart)
	}
	if SymbolNil.IsTerminal() || SymbolNil.IsNonTerminal() {
		t.Fatalf("the nil symbol must have no kind")
	}

	terms := tab.TerminalSymbols()
	if len(terms) != 1 || terms[0] != SymbolEOF {
		t.Fatalf("a fresh table must contain only the EOF terminal; got: %v", terms)
	}
	if len(tab.NonTerminalSymbols()) != 0 {
		t.Fatalf("a fresh table must list no user non-terminals")
	}
}

func TestSymbolTable_counts(t *testing.T) {
	tab := NewSymbolTable()
	if _, err := tab.RegisterTerminal("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := tab.RegisterTerminal("b"); err != nil {
		t.Fatal(err)
	}
	if _, err := tab.RegisterNonTerminal("E"); err != nil {
		t.Fatal(err)
	}

	// Counts include the reserved number space so they serve directly as
	// table row widths.
	if tab.TerminalCount() != 4 {
		t.Fatalf("unexpected terminal count; want: %v, got: %v", 4, tab.TerminalCount())
	}
	if tab.NonTerminalCount() != 3 {
		t.Fatalf("unexpected non-terminal count; want: %v, got: %v", 3, tab.NonTerminalCount())
	}
}
