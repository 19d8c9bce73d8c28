package grammar

import (
	"sort"

	"github.com/OscarTapiaS/proyecto-compilador/grammar/symbol"
)

// FirstSets computes FIRST for every non-terminal and renders it with symbol
// names; "ε" marks a non-terminal that derives the empty string.
func (g *Grammar) FirstSets() (map[string][]string, error) {
	fst, err := genFirstSet(g.prods)
	if err != nil {
		return nil, err
	}

	sets := map[string][]string{}
	for _, ntsym := range g.symTab.NonTerminalSymbols() {
		e := fst.findBySymbol(ntsym)
		if e == nil {
			continue
		}
		name, _ := g.symTab.ToText(ntsym)
		var texts []string
		for sym := range e.symbols {
			text, _ := g.symTab.ToText(sym)
			texts = append(texts, text)
		}
		sort.Strings(texts)
		if e.empty {
			texts = append(texts, EmptySymbolText)
		}
		sets[name] = texts
	}
	return sets, nil
}

// FollowSets computes FOLLOW for every non-terminal and renders it with
// symbol names; "$" marks the end of input.
func (g *Grammar) FollowSets() (map[string][]string, error) {
	fst, err := genFirstSet(g.prods)
	if err != nil {
		return nil, err
	}
	flw, err := genFollowSet(g.prods, fst)
	if err != nil {
		return nil, err
	}

	sets := map[string][]string{}
	for _, ntsym := range g.symTab.NonTerminalSymbols() {
		e, err := flw.find(ntsym)
		if err != nil {
			continue
		}
		name, _ := g.symTab.ToText(ntsym)
		var texts []string
		for sym := range e.symbols {
			if sym == symbol.SymbolEOF {
				continue
			}
			text, _ := g.symTab.ToText(sym)
			texts = append(texts, text)
		}
		sort.Strings(texts)
		if e.eof {
			texts = append(texts, "$")
		}
		sets[name] = texts
	}
	return sets, nil
}
