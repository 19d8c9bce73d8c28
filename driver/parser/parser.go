package parser

import (
	"fmt"

	"github.com/OscarTapiaS/proyecto-compilador/driver/lexer"
	"github.com/OscarTapiaS/proyecto-compilador/grammar"
	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

// SyntaxError reports the token the parser got stuck on: the ACTION cell for
// the current state and this token was empty. ExpectedTerminals lists what
// the state would have allowed instead.
type SyntaxError struct {
	Token             *lexer.Token
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	if e.Token.EOF() {
		return fmt.Sprintf("syntax error: unexpected end of input at line %v, column %v", e.Token.Line, e.Token.Col)
	}
	return fmt.Sprintf("syntax error: unexpected token %v (%v) at line %v, column %v", e.Token.Kind, e.Token.Lexeme, e.Token.Line, e.Token.Col)
}

// Parser is a stack-based shift/reduce recognizer over an LALR(1) parsing
// table. It decides membership only; there are no semantic actions.
type Parser struct {
	ptab       *grammar.ParsingTable
	toks       TokenStream
	stateStack []int
}

func NewParser(ptab *grammar.ParsingTable, toks TokenStream) *Parser {
	return &Parser{
		ptab: ptab,
		toks: toks,
	}
}

// Parse consumes the token stream. It returns nil on accept and a
// *SyntaxError when the input is not in the grammar's language.
func (p *Parser) Parse() error {
	p.stateStack = p.stateStack[:0]
	p.push(p.ptab.InitialState())

	tok, err := p.toks.Next()
	if err != nil {
		return err
	}

	for {
		term, ok := p.terminal(tok)
		if !ok {
			return p.syntaxError(tok)
		}

		ty, nextState, prodNum := p.ptab.Action(p.top(), term)
		switch ty {
		case grammar.ActionTypeShift:
			p.push(nextState)
			tok, err = p.toks.Next()
			if err != nil {
				return err
			}
		case grammar.ActionTypeReduce:
			lhs, rhsLen, ok := p.ptab.Production(prodNum)
			if !ok {
				return fmt.Errorf("production not found; production number: %v", prodNum)
			}
			p.pop(rhsLen)
			gotoState, ok := p.ptab.GoTo(p.top(), lhs)
			if !ok {
				return fmt.Errorf("a GOTO entry was not found; state: %v, symbol: %v", p.top(), lhs)
			}
			p.push(gotoState)
		case grammar.ActionTypeAccept:
			return nil
		default:
			return p.syntaxError(tok)
		}
	}
}

func (p *Parser) syntaxError(tok *lexer.Token) *SyntaxError {
	return &SyntaxError{
		Token:             tok,
		ExpectedTerminals: p.ptab.ExpectedTerminals(p.top()),
	}
}

// terminal maps a token to the grammar terminal with the same name as its
// kind. The EOF token maps to the end-of-input symbol; UNKNOWN tokens and
// kinds the grammar does not know have no terminal and surface as syntax
// errors.
func (p *Parser) terminal(tok *lexer.Token) (symbol.Symbol, bool) {
	if tok.EOF() {
		return symbol.SymbolEOF, true
	}
	if tok.Unknown() {
		return symbol.SymbolNil, false
	}
	sym, ok := p.ptab.SymbolTable().ToSymbol(tok.Kind.String())
	if !ok || !sym.IsTerminal() {
		return symbol.SymbolNil, false
	}
	return sym, true
}

func (p *Parser) push(state int) {
	p.stateStack = append(p.stateStack, state)
}

func (p *Parser) pop(n int) {
	p.stateStack = p.stateStack[:len(p.stateStack)-n]
}

func (p *Parser) top() int {
	return p.stateStack[len(p.stateStack)-1]
}

// Parse runs the recognizer over a token slice.
func Parse(ptab *grammar.ParsingTable, toks []*lexer.Token) error {
	return NewParser(ptab, NewTokenStream(toks)).Parse()
}
