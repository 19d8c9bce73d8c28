package regex

import (
	"errors"
	"testing"

	"github.com/OscarTapiaS/proyecto-compilador/lexical/nfa"
)

// matchNFA simulates a fragment over input by tracking the ε-closed state
// set.
func matchNFA(b *nfa.Builder, frag nfa.Fragment, input string) bool {
	closure := func(set map[nfa.StateID]struct{}) map[nfa.StateID]struct{} {
		stack := make([]nfa.StateID, 0, len(set))
		for id := range set {
			stack = append(stack, id)
		}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, tr := range b.State(id).Transitions {
				if !tr.Epsilon {
					continue
				}
				if _, known := set[tr.To]; known {
					continue
				}
				set[tr.To] = struct{}{}
				stack = append(stack, tr.To)
			}
		}
		return set
	}

	current := closure(map[nfa.StateID]struct{}{frag.Start: {}})
	for i := 0; i < len(input); i++ {
		next := map[nfa.StateID]struct{}{}
		for id := range current {
			for _, tr := range b.State(id).Transitions {
				if tr.Epsilon || tr.Label != input[i] {
					continue
				}
				next[tr.To] = struct{}{}
			}
		}
		if len(next) == 0 {
			return false
		}
		current = closure(next)
	}
	_, accepted := current[frag.End]
	return accepted
}

func TestCompile(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{
			pattern: "a",
			accept:  []string{"a"},
			reject:  []string{"", "b", "aa"},
		},
		{
			pattern: "abc",
			accept:  []string{"abc"},
			reject:  []string{"ab", "abcd"},
		},
		{
			pattern: "a|b",
			accept:  []string{"a", "b"},
			reject:  []string{"", "ab", "c"},
		},
		{
			pattern: "a*",
			accept:  []string{"", "a", "aaaa"},
			reject:  []string{"b", "ab"},
		},
		{
			pattern: "a+",
			accept:  []string{"a", "aaa"},
			reject:  []string{"", "b"},
		},
		{
			pattern: "a?",
			accept:  []string{"", "a"},
			reject:  []string{"aa", "b"},
		},
		{
			pattern: "a(b|c)*",
			accept:  []string{"a", "ab", "ac", "abcbc"},
			reject:  []string{"", "bc", "ad"},
		},
		{
			pattern: "(ab)+",
			accept:  []string{"ab", "abab"},
			reject:  []string{"", "a", "aba"},
		},
		{
			pattern: "[0-9]+",
			accept:  []string{"0", "42", "007"},
			reject:  []string{"", "a", "4a"},
		},
		{
			pattern: "[a-zA-Z_][a-zA-Z0-9_]*",
			accept:  []string{"x", "_tmp", "Name2"},
			reject:  []string{"", "2x", "a-b"},
		},
		{
			pattern: "[^\"]*",
			accept:  []string{"", "abc", "a b"},
			reject:  []string{"\""},
		},
		{
			pattern: "\\d\\d",
			accept:  []string{"42"},
			reject:  []string{"4", "ab"},
		},
		{
			pattern: "\\s+",
			accept:  []string{" ", " \t\n\r"},
			reject:  []string{"", "a"},
		},
		{
			pattern: "\\w+",
			accept:  []string{"abc_123"},
			reject:  []string{"", "-"},
		},
		{
			pattern: "//.*",
			accept:  []string{"//", "// a comment"},
			reject:  []string{"/", "//a\nb"},
		},
		{
			pattern: "\\|\\|",
			accept:  []string{"||"},
			reject:  []string{"|", "|||"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			b := nfa.NewBuilder()
			frag, err := Compile(b, tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			for _, input := range tt.accept {
				if !matchNFA(b, frag, input) {
					t.Fatalf("%#v must be accepted", input)
				}
			}
			for _, input := range tt.reject {
				if matchNFA(b, frag, input) {
					t.Fatalf("%#v must be rejected", input)
				}
			}
		})
	}
}

func TestCompile_invalidPatterns(t *testing.T) {
	tests := []struct {
		caption string
		pattern string
	}{
		{
			caption: "empty pattern",
			pattern: "",
		},
		{
			caption: "lone star",
			pattern: "*",
		},
		{
			caption: "dangling alternation",
			pattern: "a|",
		},
		{
			caption: "leading alternation",
			pattern: "|a",
		},
		{
			caption: "unmatched left paren",
			pattern: "(a",
		},
		{
			caption: "unmatched right paren",
			pattern: "a)",
		},
		{
			caption: "unclosed class",
			pattern: "[a-z",
		},
		{
			caption: "empty class",
			pattern: "[]",
		},
		{
			caption: "reversed range",
			pattern: "[z-a]",
		},
		{
			caption: "trailing escape",
			pattern: "a\\",
		},
		{
			caption: "reserved concat marker",
			pattern: "a·b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			b := nfa.NewBuilder()
			_, err := Compile(b, tt.pattern)
			if err == nil {
				t.Fatalf("an error must occur")
			}
			var patErr *PatternError
			if !errors.As(err, &patErr) {
				t.Fatalf("unexpected error type: %T", err)
			}
		})
	}
}

func TestCompileLiteral(t *testing.T) {
	b := nfa.NewBuilder()
	frag := CompileLiteral(b, "a|b")
	if !matchNFA(b, frag, "a|b") {
		t.Fatalf("a literal fragment must match its pattern byte for byte")
	}
	if matchNFA(b, frag, "a") || matchNFA(b, frag, "b") {
		t.Fatalf("a literal fragment must not interpret operators")
	}
}
