package regex

import (
	"github.com/OscarTapiaS/proyecto-compilador/lexical/nfa"
)

// Compile builds an NFA fragment for pattern on the given builder using
// Thompson's construction.
func Compile(b *nfa.Builder, pattern string) (nfa.Fragment, error) {
	toks, err := preprocess(pattern)
	if err != nil {
		return nfa.Fragment{}, err
	}
	postfix, err := toPostfix(insertConcat(toks))
	if err != nil {
		return nfa.Fragment{}, err
	}
	return genFragment(b, postfix)
}

func genFragment(b *nfa.Builder, postfix []*token) (nfa.Fragment, error) {
	var stack []nfa.Fragment

	pop := func() (nfa.Fragment, bool) {
		if len(stack) == 0 {
			return nfa.Fragment{}, false
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, true
	}

	for _, t := range postfix {
		switch t.kind {
		case tokenKindChar:
			start := b.NewState()
			end := b.NewState()
			start.AddTransition(t.char, end.ID)
			stack = append(stack, nfa.Fragment{Start: start.ID, End: end.ID})
		case tokenKindConcat:
			second, ok := pop()
			if !ok {
				return nfa.Fragment{}, newPatternError(t.pos, "concatenation lacks an operand")
			}
			first, ok := pop()
			if !ok {
				return nfa.Fragment{}, newPatternError(t.pos, "concatenation lacks an operand")
			}
			b.State(first.End).AddEpsilonTransition(second.Start)
			stack = append(stack, nfa.Fragment{Start: first.Start, End: second.End})
		case tokenKindAlt:
			second, ok := pop()
			if !ok {
				return nfa.Fragment{}, newPatternError(t.pos, "alternation lacks an operand")
			}
			first, ok := pop()
			if !ok {
				return nfa.Fragment{}, newPatternError(t.pos, "alternation lacks an operand")
			}
			start := b.NewState()
			end := b.NewState()
			start.AddEpsilonTransition(first.Start)
			start.AddEpsilonTransition(second.Start)
			b.State(first.End).AddEpsilonTransition(end.ID)
			b.State(second.End).AddEpsilonTransition(end.ID)
			stack = append(stack, nfa.Fragment{Start: start.ID, End: end.ID})
		case tokenKindStar:
			f, ok := pop()
			if !ok {
				return nfa.Fragment{}, newPatternError(t.pos, "'*' lacks an operand")
			}
			start := b.NewState()
			end := b.NewState()
			start.AddEpsilonTransition(f.Start)
			start.AddEpsilonTransition(end.ID)
			b.State(f.End).AddEpsilonTransition(f.Start)
			b.State(f.End).AddEpsilonTransition(end.ID)
			stack = append(stack, nfa.Fragment{Start: start.ID, End: end.ID})
		case tokenKindPlus:
			f, ok := pop()
			if !ok {
				return nfa.Fragment{}, newPatternError(t.pos, "'+' lacks an operand")
			}
			start := b.NewState()
			end := b.NewState()
			start.AddEpsilonTransition(f.Start)
			b.State(f.End).AddEpsilonTransition(f.Start)
			b.State(f.End).AddEpsilonTransition(end.ID)
			stack = append(stack, nfa.Fragment{Start: start.ID, End: end.ID})
		case tokenKindOption:
			f, ok := pop()
			if !ok {
				return nfa.Fragment{}, newPatternError(t.pos, "'?' lacks an operand")
			}
			start := b.NewState()
			end := b.NewState()
			start.AddEpsilonTransition(f.Start)
			start.AddEpsilonTransition(end.ID)
			b.State(f.End).AddEpsilonTransition(end.ID)
			stack = append(stack, nfa.Fragment{Start: start.ID, End: end.ID})
		}
	}

	if len(stack) != 1 {
		pos := 0
		if len(postfix) > 0 {
			pos = postfix[len(postfix)-1].pos
		}
		return nfa.Fragment{}, newPatternError(pos, "a pattern must reduce to exactly one expression; fragments: %v", len(stack))
	}

	return stack[0], nil
}

// CompileLiteral builds a fragment that matches pattern byte for byte,
// ignoring any operator meaning. It backs the opt-in fallback for patterns
// that fail to compile as regular expressions.
func CompileLiteral(b *nfa.Builder, pattern string) nfa.Fragment {
	start := b.NewState()
	cur := start
	for i := 0; i < len(pattern); i++ {
		next := b.NewState()
		cur.AddTransition(pattern[i], next.ID)
		cur = next
	}
	if cur == start {
		end := b.NewState()
		start.AddEpsilonTransition(end.ID)
		cur = end
	}
	return nfa.Fragment{Start: start.ID, End: cur.ID}
}
