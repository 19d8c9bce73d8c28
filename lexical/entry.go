package lexical

import (
	"fmt"

	"github.com/OscarTapiaS/proyecto-compilador/spec"
)

// Rule maps a pattern to the token kind it produces. A lower priority value
// takes precedence when two rules match the same lexeme; priorities reflect
// insertion order and must be unique within a ruleset. Ignored rules are
// matched but produce no tokens.
type Rule struct {
	Pattern  string
	Kind     spec.KindName
	Priority int
	Ignore   bool
}

type RuleSet struct {
	Rules []*Rule
}

func (s *RuleSet) Validate() error {
	if len(s.Rules) == 0 {
		return fmt.Errorf("a ruleset must have at least one rule")
	}
	prios := map[int]spec.KindName{}
	for _, r := range s.Rules {
		if prev, exist := prios[r.Priority]; exist {
			return fmt.Errorf("rules %v and %v share priority %v", prev, r.Kind, r.Priority)
		}
		prios[r.Priority] = r.Kind
	}
	return nil
}

// RuleBuilder assembles a ruleset with priorities that follow insertion
// order.
type RuleBuilder struct {
	rules    []*Rule
	priority int
}

func NewRuleBuilder() *RuleBuilder {
	return &RuleBuilder{}
}

func (b *RuleBuilder) Add(pattern string, kind spec.KindName) *RuleBuilder {
	return b.add(pattern, kind, false)
}

func (b *RuleBuilder) AddIgnored(pattern string, kind spec.KindName) *RuleBuilder {
	return b.add(pattern, kind, true)
}

func (b *RuleBuilder) add(pattern string, kind spec.KindName, ignore bool) *RuleBuilder {
	b.rules = append(b.rules, &Rule{
		Pattern:  pattern,
		Kind:     kind,
		Priority: b.priority,
		Ignore:   ignore,
	})
	b.priority++
	return b
}

// Keywords must be added before Literals so that every keyword rule gets a
// lower priority value than the identifier rule.
func (b *RuleBuilder) Keywords() *RuleBuilder {
	b.Add("if", spec.KindNameKwIf)
	b.Add("else", spec.KindNameKwElse)
	b.Add("while", spec.KindNameKwWhile)
	b.Add("for", spec.KindNameKwFor)
	b.Add("int", spec.KindNameKwInt)
	b.Add("float", spec.KindNameKwFloat)
	b.Add("boolean", spec.KindNameKwBoolean)
	b.Add("true", spec.KindNameKwTrue)
	b.Add("false", spec.KindNameKwFalse)
	b.Add("return", spec.KindNameKwReturn)
	b.Add("void", spec.KindNameKwVoid)
	return b
}

// Operators registers two-character operators ahead of their one-character
// prefixes; maximal munch handles the overlap either way, but keeping the
// longer patterns first mirrors how rulesets are usually read.
func (b *RuleBuilder) Operators() *RuleBuilder {
	b.Add("==", spec.KindNameEq)
	b.Add("!=", spec.KindNameNeq)
	b.Add("<=", spec.KindNameLe)
	b.Add(">=", spec.KindNameGe)
	b.Add("&&", spec.KindNameAnd)
	b.Add("\\|\\|", spec.KindNameOr)
	b.Add("\\+", spec.KindNamePlus)
	b.Add("-", spec.KindNameMinus)
	b.Add("\\*", spec.KindNameMul)
	b.Add("/", spec.KindNameDiv)
	b.Add("%", spec.KindNameMod)
	b.Add("=", spec.KindNameAssign)
	b.Add("<", spec.KindNameLt)
	b.Add(">", spec.KindNameGt)
	b.Add("!", spec.KindNameNot)
	b.Add("&", spec.KindNameAmp)
	b.Add("\\|", spec.KindNamePipe)
	return b
}

func (b *RuleBuilder) Delimiters() *RuleBuilder {
	b.Add("\\(", spec.KindNameLParen)
	b.Add("\\)", spec.KindNameRParen)
	b.Add("\\{", spec.KindNameLBrace)
	b.Add("\\}", spec.KindNameRBrace)
	b.Add("\\[", spec.KindNameLBracket)
	b.Add("\\]", spec.KindNameRBracket)
	b.Add(";", spec.KindNameSemi)
	b.Add(",", spec.KindNameComma)
	b.Add("\\.", spec.KindNameDot)
	return b
}

func (b *RuleBuilder) Literals() *RuleBuilder {
	b.Add("[0-9]+", spec.KindNameNumber)
	b.Add("[a-zA-Z_][a-zA-Z0-9_]*", spec.KindNameIdent)
	b.Add("\"[^\"]*\"", spec.KindNameString)
	return b
}

func (b *RuleBuilder) WhitespaceAndComments() *RuleBuilder {
	b.AddIgnored("\\s+", spec.KindNameWhitespace)
	b.AddIgnored("//.*", spec.KindNameComment)
	b.AddIgnored("/\\*.*\\*/", spec.KindNameComment)
	return b
}

// StandardLanguageRules is the default ruleset used by the conformance tests
// and the CLI.
func (b *RuleBuilder) StandardLanguageRules() *RuleBuilder {
	return b.WhitespaceAndComments().
		Keywords().
		Operators().
		Delimiters().
		Literals()
}

func (b *RuleBuilder) Build() *RuleSet {
	rules := make([]*Rule, len(b.rules))
	copy(rules, b.rules)
	return &RuleSet{Rules: rules}
}

// DefaultRuleSet returns the standard language ruleset.
func DefaultRuleSet() *RuleSet {
	return NewRuleBuilder().StandardLanguageRules().Build()
}
