package lexical

import (
	"fmt"
	"sort"

	"github.com/OscarTapiaS/proyecto-compilador/lexical/dfa"
	"github.com/OscarTapiaS/proyecto-compilador/lexical/nfa"
	"github.com/OscarTapiaS/proyecto-compilador/lexical/regex"
	"github.com/OscarTapiaS/proyecto-compilador/spec"
)

// BuildError reports that a rule's pattern failed to compile.
type BuildError struct {
	RuleIndex int
	Pattern   string
	Cause     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build rule #%v (%v): %v", e.RuleIndex, e.Pattern, e.Cause)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

type compilerConfig struct {
	literalFallback bool
}

type CompilerOption func(c *compilerConfig)

// AllowLiteralFallback makes Compile substitute a literal-sequence automaton
// for a pattern that fails to compile as a regular expression, instead of
// failing the build. The substitute matches the pattern byte for byte, which
// silently changes the rule's meaning, so the fallback is off unless asked
// for.
func AllowLiteralFallback() CompilerOption {
	return func(c *compilerConfig) {
		c.literalFallback = true
	}
}

// CompiledSpec is the immutable result of compiling a ruleset: a minimized
// DFA whose accept annotations already encode the priority tie-break, plus
// the per-kind ignore flags. A CompiledSpec never mutates after Compile
// returns, so any number of scanners may share one.
type CompiledSpec struct {
	dfa       *dfa.DFA
	ignore    map[spec.KindName]bool
	ruleCount int
}

func (s *CompiledSpec) InitialState() dfa.StateID {
	return s.dfa.Initial
}

func (s *CompiledSpec) NextState(id dfa.StateID, c byte) (dfa.StateID, bool) {
	next, ok := s.dfa.State(id).Next[c]
	return next, ok
}

// Accept reports whether the state is final and, if so, for which kind.
func (s *CompiledSpec) Accept(id dfa.StateID) (spec.KindName, bool) {
	st := s.dfa.State(id)
	if !st.Final {
		return "", false
	}
	return st.Kind, true
}

func (s *CompiledSpec) Ignore(kind spec.KindName) bool {
	return s.ignore[kind]
}

func (s *CompiledSpec) StateCount() int {
	return s.dfa.StateCount()
}

func (s *CompiledSpec) RuleCount() int {
	return s.ruleCount
}

// DFA exposes the compiled automaton for inspection.
func (s *CompiledSpec) DFA() *dfa.DFA {
	return s.dfa
}

// Compile builds the fused recognizer for a ruleset: each pattern becomes an
// NFA whose end state carries the rule's kind and priority, a fresh common
// start state is ε-connected to every rule automaton, and the result goes
// through subset construction and minimization.
func Compile(rs *RuleSet, opts ...CompilerOption) (*CompiledSpec, error) {
	err := rs.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid ruleset: %w", err)
	}

	var cfg compilerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	// Process rules in ascending priority so state allocation is
	// deterministic. Precedence itself is carried by the accept annotations,
	// not by this order.
	type indexedRule struct {
		index int
		rule  *Rule
	}
	rules := make([]*indexedRule, len(rs.Rules))
	for i, r := range rs.Rules {
		rules[i] = &indexedRule{
			index: i,
			rule:  r,
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].rule.Priority < rules[j].rule.Priority
	})

	b := nfa.NewBuilder()
	start := b.NewState()
	ignore := map[spec.KindName]bool{}
	for _, ir := range rules {
		frag, err := regex.Compile(b, ir.rule.Pattern)
		if err != nil {
			if !cfg.literalFallback {
				return nil, &BuildError{
					RuleIndex: ir.index,
					Pattern:   ir.rule.Pattern,
					Cause:     err,
				}
			}
			frag = regex.CompileLiteral(b, ir.rule.Pattern)
		}
		b.State(frag.End).Accept = &nfa.Accept{
			Kind:     ir.rule.Kind,
			Priority: ir.rule.Priority,
		}
		start.AddEpsilonTransition(frag.Start)
		if ir.rule.Ignore {
			ignore[ir.rule.Kind] = true
		}
	}

	d := dfa.GenDFA(b.Automaton(start.ID), alphabet(rs))
	d = dfa.Minimize(d)

	return &CompiledSpec{
		dfa:       d,
		ignore:    ignore,
		ruleCount: len(rs.Rules),
	}, nil
}

// alphabet is the union of printable ASCII, the whitespace characters, and
// every byte appearing in a rule pattern.
func alphabet(rs *RuleSet) []byte {
	var member [256]bool
	for c := byte(0x20); c <= 0x7e; c++ {
		member[c] = true
	}
	member['\t'] = true
	member['\n'] = true
	member['\r'] = true
	for _, r := range rs.Rules {
		for i := 0; i < len(r.Pattern); i++ {
			member[r.Pattern[i]] = true
		}
	}
	var chars []byte
	for c := 0; c < 256; c++ {
		if member[c] {
			chars = append(chars, byte(c))
		}
	}
	return chars
}
