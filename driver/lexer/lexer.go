package lexer

import (
	"io"

	"github.com/OscarTapiaS/proyecto-compilador/lexical"
	"github.com/OscarTapiaS/proyecto-compilador/spec"
)

// Token is one lexeme recognized by the scanner. Pos is the 0-based byte
// offset of the lexeme's first character; Line and Col are 1-based and refer
// to the same character. The EOF token has an empty lexeme, and unmatched
// characters surface as single-character UNKNOWN tokens.
type Token struct {
	Kind   spec.KindName
	Lexeme string
	Pos    int
	Line   int
	Col    int
}

func (t *Token) EOF() bool {
	return t.Kind == spec.KindNameEOF
}

func (t *Token) Unknown() bool {
	return t.Kind == spec.KindNameUnknown
}

type scannerState struct {
	pos  int
	line int
	col  int
}

// Lexer scans a source text with the maximal-munch strategy: from each
// position it runs the compiled DFA as far as it can and takes the longest
// prefix that ended in a final state. Ties between rules are already encoded
// in the DFA's accept annotations, so no per-scan tie-break happens here.
type Lexer struct {
	spec  *lexical.CompiledSpec
	src   []byte
	state scannerState
}

func NewLexer(cspec *lexical.CompiledSpec, src io.Reader) (*Lexer, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		spec: cspec,
		src:  b,
		state: scannerState{
			pos:  0,
			line: 1,
			col:  1,
		},
	}, nil
}

// Next returns the next non-ignored token. At the end of the input it
// returns the EOF token, and keeps returning it on further calls.
func (l *Lexer) Next() (*Token, error) {
	for {
		if l.state.pos >= len(l.src) {
			return &Token{
				Kind: spec.KindNameEOF,
				Pos:  l.state.pos,
				Line: l.state.line,
				Col:  l.state.col,
			}, nil
		}

		start := l.state
		kind, lexeme := l.match()
		l.advance(lexeme)

		if kind != spec.KindNameUnknown && l.spec.Ignore(kind) {
			continue
		}
		return &Token{
			Kind:   kind,
			Lexeme: lexeme,
			Pos:    start.pos,
			Line:   start.line,
			Col:    start.col,
		}, nil
	}
}

// match simulates the DFA from the current position and returns the kind and
// lexeme of the longest match, or an UNKNOWN single character when no final
// state was ever entered.
func (l *Lexer) match() (spec.KindName, string) {
	state := l.spec.InitialState()
	cur := l.state.pos
	acceptedAt := -1
	var acceptedKind spec.KindName

	for cur < len(l.src) {
		next, ok := l.spec.NextState(state, l.src[cur])
		if !ok {
			break
		}
		state = next
		cur++
		if kind, ok := l.spec.Accept(state); ok {
			acceptedAt = cur
			acceptedKind = kind
		}
	}

	if acceptedAt < 0 {
		return spec.KindNameUnknown, string(l.src[l.state.pos : l.state.pos+1])
	}
	return acceptedKind, string(l.src[l.state.pos:acceptedAt])
}

func (l *Lexer) advance(lexeme string) {
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] == '\n' {
			l.state.line++
			l.state.col = 1
		} else {
			l.state.col++
		}
	}
	l.state.pos += len(lexeme)
}

// Tokenize drains the lexer and returns every remaining token including the
// trailing EOF token.
func (l *Lexer) Tokenize() ([]*Token, error) {
	var toks []*Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.EOF() {
			return toks, nil
		}
	}
}
