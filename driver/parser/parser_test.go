package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/OscarTapiaS/proyecto-compilador/driver/lexer"
	"github.com/OscarTapiaS/proyecto-compilador/grammar"
	"github.com/OscarTapiaS/proyecto-compilador/lexical"
	"github.com/OscarTapiaS/proyecto-compilador/spec"
)

func arithTable(t *testing.T) *grammar.ParsingTable {
	t.Helper()
	g, err := grammar.NewBuilder("E").
		Terminals("PLUS", "MUL", "LPAREN", "RPAREN", "IDENT").
		Add("E", "E", "PLUS", "T").
		Add("E", "T").
		Add("T", "T", "MUL", "F").
		Add("T", "F").
		Add("F", "LPAREN", "E", "RPAREN").
		Add("F", "IDENT").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	ptab, err := grammar.BuildParsingTable(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(ptab.Conflicts()) != 0 {
		t.Fatalf("the arithmetic grammar must be conflict-free; got: %v", ptab.Conflicts())
	}
	return ptab
}

func tokenize(t *testing.T, src string) []*lexer.Token {
	t.Helper()
	cspec, err := lexical.Compile(lexical.DefaultRuleSet())
	if err != nil {
		t.Fatal(err)
	}
	l, err := lexer.NewLexer(cspec, strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	return toks
}

func TestParse(t *testing.T) {
	ptab := arithTable(t)

	accept := []string{
		"x",
		"x + y",
		"x + y * z",
		"(x + y) * z",
		"((x))",
		"a * b + c * d",
	}
	for _, src := range accept {
		t.Run(src, func(t *testing.T) {
			err := Parse(ptab, tokenize(t, src))
			if err != nil {
				t.Fatalf("%#v must be accepted; got: %v", src, err)
			}
		})
	}

	reject := []string{
		"",
		"x +",
		"x + + y",
		"x y",
		"(x",
		"x)",
		"+ x",
	}
	for _, src := range reject {
		t.Run(src, func(t *testing.T) {
			err := Parse(ptab, tokenize(t, src))
			if err == nil {
				t.Fatalf("%#v must be rejected", src)
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("unexpected error type: %T", err)
			}
		})
	}
}

func TestParse_syntaxErrorToken(t *testing.T) {
	ptab := arithTable(t)

	err := Parse(ptab, tokenize(t, "x + + y"))
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if synErr.Token.Kind != spec.KindNamePlus {
		t.Fatalf("unexpected offending token kind; want: %v, got: %v", spec.KindNamePlus, synErr.Token.Kind)
	}
	if synErr.Token.Pos != 4 {
		t.Fatalf("the second plus is the offending token; want position %v, got: %v", 4, synErr.Token.Pos)
	}

	// After "x +" the parser expects the beginning of a term.
	expected := map[string]struct{}{}
	for _, name := range synErr.ExpectedTerminals {
		expected[name] = struct{}{}
	}
	for _, name := range []string{"LPAREN", "IDENT"} {
		if _, ok := expected[name]; !ok {
			t.Fatalf("%v must be an expected terminal; got: %v", name, synErr.ExpectedTerminals)
		}
	}
}

func TestParse_emptyProductions(t *testing.T) {
	g, err := grammar.NewBuilder("list").
		Terminals("LPAREN", "RPAREN", "IDENT").
		Add("list", "LPAREN", "items", "RPAREN").
		Add("items", "items", "IDENT").
		Add("items", "ε").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	ptab, err := grammar.BuildParsingTable(g)
	if err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{"()", "(x)", "(x y z)"} {
		if err := Parse(ptab, tokenize(t, src)); err != nil {
			t.Fatalf("%#v must be accepted; got: %v", src, err)
		}
	}
	for _, src := range []string{"(", ")", "x)"} {
		if err := Parse(ptab, tokenize(t, src)); err == nil {
			t.Fatalf("%#v must be rejected", src)
		}
	}
}

func TestParse_startDerivesEmpty(t *testing.T) {
	g, err := grammar.NewBuilder("S").
		Terminals("IDENT").
		Add("S", "IDENT", "S").
		Add("S", "ε").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	ptab, err := grammar.BuildParsingTable(g)
	if err != nil {
		t.Fatal(err)
	}

	for _, src := range []string{"", "x", "x y z"} {
		if err := Parse(ptab, tokenize(t, src)); err != nil {
			t.Fatalf("%#v must be accepted; got: %v", src, err)
		}
	}
}

func TestParse_unknownToken(t *testing.T) {
	ptab := arithTable(t)

	err := Parse(ptab, tokenize(t, "x @ y"))
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if !synErr.Token.Unknown() {
		t.Fatalf("the offending token must be UNKNOWN; got: %v", synErr.Token.Kind)
	}
}

// A grammar left ambiguous on purpose still parses: the first action written
// into a conflicted cell is a shift, so the driver behaves greedily.
func TestParse_conflictedTableStillDrives(t *testing.T) {
	g, err := grammar.NewBuilder("E").
		Terminals("PLUS", "IDENT").
		Add("E", "E", "PLUS", "E").
		Add("E", "IDENT").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	ptab, err := grammar.BuildParsingTable(g)
	if err != nil {
		t.Fatal(err)
	}
	if len(ptab.Conflicts()) == 0 {
		t.Fatalf("the grammar must report conflicts")
	}

	for _, src := range []string{"x", "x + y", "x + y + z"} {
		if err := Parse(ptab, tokenize(t, src)); err != nil {
			t.Fatalf("%#v must be accepted; got: %v", src, err)
		}
	}
	if err := Parse(ptab, tokenize(t, "x +")); err == nil {
		t.Fatalf("an incomplete expression must be rejected")
	}
}
