package symbol

import (
	"fmt"
	"sort"
)

// Symbol is a compact handle for a grammar symbol. The high bits encode the
// kind, so terminal/non-terminal checks need no table lookup:
//
//	bit 15: 0 = non-terminal, 1 = terminal
//	bit 14: marks the augmented start symbol (non-terminal side) or the
//	        end-of-input symbol (terminal side)
//	bits 13..0: symbol number, unique within the kind
type Symbol uint16

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

const (
	maskKind        = uint16(0x8000)
	maskTerminal    = uint16(0x8000)
	maskNonTerminal = uint16(0x0000)

	maskSubKind = uint16(0x4000)

	maskNum = uint16(0x3fff)

	SymbolNil   = Symbol(0)
	SymbolStart = Symbol(maskNonTerminal | maskSubKind | 1)
	SymbolEOF   = Symbol(maskTerminal | maskSubKind | 1)

	symbolNumMax = SymbolNum(0x3fff)

	// The names contain characters users cannot write so they never collide
	// with grammar-defined symbols.
	symbolNameEOF   = "<eof>"
	symbolNameStart = "<start>"

	numMin = SymbolNum(2)
)

func (s Symbol) String() string {
	num := s.Num().Int()
	switch {
	case s.IsNil():
		return "nil"
	case s.IsStart():
		return fmt.Sprintf("s%v", num)
	case s.IsEOF():
		return fmt.Sprintf("e%v", num)
	case s.IsTerminal():
		return fmt.Sprintf("t%v", num)
	}
	return fmt.Sprintf("n%v", num)
}

func (s Symbol) Num() SymbolNum {
	return SymbolNum(uint16(s) & maskNum)
}

// Byte serializes the symbol for identity hashing.
func (s Symbol) Byte() []byte {
	return []byte{byte(uint16(s) >> 8), byte(uint16(s) & 0x00ff)}
}

func (s Symbol) IsNil() bool {
	return s.Num() == 0
}

func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	return uint16(s)&maskKind == maskTerminal
}

func (s Symbol) IsNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	return uint16(s)&maskKind == maskNonTerminal
}

func (s Symbol) IsStart() bool {
	return s.IsNonTerminal() && uint16(s)&maskSubKind != 0
}

func (s Symbol) IsEOF() bool {
	return s.IsTerminal() && uint16(s)&maskSubKind != 0
}

func newSymbol(terminal bool, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}
	kind := maskNonTerminal
	if terminal {
		kind = maskTerminal
	}
	return Symbol(kind | uint16(num)), nil
}

// SymbolTable maps symbol names to handles and back. Number 1 on each side is
// reserved: the augmented start symbol among the non-terminals and the
// end-of-input symbol among the terminals.
type SymbolTable struct {
	text2Sym   map[string]Symbol
	sym2Text   map[Symbol]string
	termNum    SymbolNum
	nonTermNum SymbolNum
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			symbolNameEOF:   SymbolEOF,
			symbolNameStart: SymbolStart,
		},
		sym2Text: map[Symbol]string{
			SymbolEOF:   symbolNameEOF,
			SymbolStart: symbolNameStart,
		},
		termNum:    numMin,
		nonTermNum: numMin,
	}
}

func (t *SymbolTable) RegisterTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		if !sym.IsTerminal() {
			return SymbolNil, fmt.Errorf("symbol %v is already registered as a non-terminal", text)
		}
		return sym, nil
	}
	sym, err := newSymbol(true, t.termNum)
	if err != nil {
		return SymbolNil, err
	}
	t.termNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	return sym, nil
}

func (t *SymbolTable) RegisterNonTerminal(text string) (Symbol, error) {
	if sym, ok := t.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("symbol %v is already registered as a terminal", text)
		}
		return sym, nil
	}
	sym, err := newSymbol(false, t.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	t.nonTermNum++
	t.text2Sym[text] = sym
	t.sym2Text[sym] = text
	return sym, nil
}

func (t *SymbolTable) ToSymbol(text string) (Symbol, bool) {
	sym, ok := t.text2Sym[text]
	return sym, ok
}

func (t *SymbolTable) ToText(sym Symbol) (string, bool) {
	text, ok := t.sym2Text[sym]
	return text, ok
}

// TerminalSymbols lists every terminal including the end-of-input symbol, in
// handle order.
func (t *SymbolTable) TerminalSymbols() []Symbol {
	var syms []Symbol
	for sym := range t.sym2Text {
		if !sym.IsTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// NonTerminalSymbols lists every non-terminal except the augmented start
// symbol, in handle order.
func (t *SymbolTable) NonTerminalSymbols() []Symbol {
	var syms []Symbol
	for sym := range t.sym2Text {
		if !sym.IsNonTerminal() || sym.IsStart() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// TerminalCount and NonTerminalCount size the parsing table rows. Counts
// include the reserved number space, so they are usable directly as row
// widths indexed by Symbol.Num.
func (t *SymbolTable) TerminalCount() int {
	return t.termNum.Int()
}

func (t *SymbolTable) NonTerminalCount() int {
	return t.nonTermNum.Int()
}
