package spec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/OscarTapiaS/proyecto-compilador/grammar"
)

// ParseGrammar reads a grammar in a small line-oriented notation:
//
//	expr: expr PLUS term | term ;
//	term: term MUL factor | factor ;
//	factor: LPAREN expr RPAREN | NUMBER ;
//
// Each rule is `lhs : alternative | alternative ;` with symbols separated by
// whitespace; "ε" denotes the empty alternative and "#" starts a comment.
// The lhs of the first rule is the start symbol. Names appearing only on the
// right-hand sides are the terminals, so terminal names should match the
// token kinds the parser will consume.
func ParseGrammar(src io.Reader) (*grammar.Grammar, error) {
	toks, err := scanGrammar(src)
	if err != nil {
		return nil, err
	}

	type rawRule struct {
		lhs  string
		alts [][]string
	}
	var rules []*rawRule

	for i := 0; i < len(toks); {
		lhs := toks[i]
		if lhs.isDelim() {
			return nil, fmt.Errorf("line %v: a rule must begin with a symbol name, found %v", lhs.line, lhs.text)
		}
		i++
		if i >= len(toks) || toks[i].text != ":" {
			return nil, fmt.Errorf("line %v: a rule name must be followed by ':'", lhs.line)
		}
		i++

		rule := &rawRule{lhs: lhs.text}
		var alt []string
		closed := false
		for i < len(toks) {
			t := toks[i]
			i++
			if t.text == ";" {
				rule.alts = append(rule.alts, alt)
				closed = true
				break
			}
			if t.text == "|" {
				rule.alts = append(rule.alts, alt)
				alt = nil
				continue
			}
			if t.text == ":" {
				return nil, fmt.Errorf("line %v: unexpected ':'", t.line)
			}
			alt = append(alt, t.text)
		}
		if !closed {
			return nil, fmt.Errorf("line %v: rule %v is not terminated with ';'", lhs.line, lhs.text)
		}
		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("a grammar file must define at least one rule")
	}

	lhsNames := map[string]struct{}{}
	for _, r := range rules {
		lhsNames[r.lhs] = struct{}{}
	}

	// Names that never appear on an lhs are the terminals.
	termNames := map[string]struct{}{}
	b := grammar.NewBuilder(rules[0].lhs)
	for _, r := range rules {
		for _, alt := range r.alts {
			for _, name := range alt {
				if name == grammar.EmptySymbolText {
					continue
				}
				if _, ok := lhsNames[name]; ok {
					continue
				}
				if _, ok := termNames[name]; ok {
					continue
				}
				termNames[name] = struct{}{}
				b.Terminals(name)
			}
		}
	}
	for _, r := range rules {
		for _, alt := range r.alts {
			b.Add(r.lhs, alt...)
		}
	}

	return b.Build()
}

type grammarToken struct {
	text string
	line int
}

func (t *grammarToken) isDelim() bool {
	return t.text == ":" || t.text == "|" || t.text == ";"
}

func scanGrammar(src io.Reader) ([]*grammarToken, error) {
	var toks []*grammarToken
	s := bufio.NewScanner(src)
	line := 0
	for s.Scan() {
		line++
		text := s.Text()
		if i := strings.Index(text, "#"); i >= 0 {
			text = text[:i]
		}
		for _, field := range strings.Fields(splitDelims(text)) {
			toks = append(toks, &grammarToken{
				text: field,
				line: line,
			})
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

// splitDelims pads the structural characters with spaces so `expr:` and
// `expr :` read the same.
func splitDelims(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch r {
		case ':', '|', ';':
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
