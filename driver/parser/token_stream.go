package parser

import (
	"fmt"

	"github.com/OscarTapiaS/proyecto-compilador/driver/lexer"
)

// TokenStream feeds tokens to the parser. The stream must end with the EOF
// token; the lexer's Tokenize and Next already guarantee that.
type TokenStream interface {
	Next() (*lexer.Token, error)
}

type sliceTokenStream struct {
	toks []*lexer.Token
	ptr  int
}

// NewTokenStream wraps an already-materialized token slice.
func NewTokenStream(toks []*lexer.Token) TokenStream {
	return &sliceTokenStream{
		toks: toks,
	}
}

func (s *sliceTokenStream) Next() (*lexer.Token, error) {
	if len(s.toks) == 0 {
		return nil, fmt.Errorf("a token stream must have at least the EOF token")
	}
	if s.ptr >= len(s.toks) {
		// Past the end, a stream that ends with EOF keeps returning it. A
		// stream missing its EOF token reports an error instead of repeating
		// its last token, so the parser always terminates.
		last := s.toks[len(s.toks)-1]
		if !last.EOF() {
			return nil, fmt.Errorf("a token stream must end with the EOF token")
		}
		return last, nil
	}
	tok := s.toks[s.ptr]
	s.ptr++
	return tok, nil
}
