package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/OscarTapiaS/proyecto-compilador/grammar"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	json *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table <grammar file path>",
		Short:   "Show the LALR(1) parsing table, its conflicts, and the FIRST/FOLLOW sets",
		Example: `  compilador table grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTable,
	}
	tableFlags.json = cmd.Flags().Bool("json", false, "print the table as JSON")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) (retErr error) {
	g, err := loadGrammar(args[0])
	if err != nil {
		return err
	}

	ptab, err := grammar.BuildParsingTable(g)
	if err != nil {
		return err
	}

	if *tableFlags.json {
		b, err := json.MarshalIndent(ptab.Describe(), "", "    ")
		if err != nil {
			return err
		}
		fmt.Printf("%v\n", string(b))
		return nil
	}

	printAnalysis(g)
	printActionGoTo(ptab)

	fmt.Printf("%v states\n", ptab.StateCount())
	if len(ptab.Conflicts()) == 0 {
		fmt.Println("no conflicts")
		return nil
	}
	for _, c := range ptab.Conflicts() {
		fmt.Println(c)
	}
	return nil
}

func printAnalysis(g *grammar.Grammar) {
	first, err := g.FirstSets()
	if err != nil {
		return
	}
	follow, err := g.FollowSets()
	if err != nil {
		return
	}

	var names []string
	for name := range first {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Non-terminal", "FIRST", "FOLLOW"})
	table.SetAutoFormatHeaders(false)
	for _, name := range names {
		table.Append([]string{
			name,
			setText(first[name]),
			setText(follow[name]),
		})
	}
	table.Render()
}

func printActionGoTo(ptab *grammar.ParsingTable) {
	symTab := ptab.SymbolTable()
	terms := symTab.TerminalSymbols()
	nonTerms := symTab.NonTerminalSymbols()

	header := []string{"State"}
	for _, t := range terms {
		text, _ := symTab.ToText(t)
		if t.IsEOF() {
			text = "$"
		}
		header = append(header, text)
	}
	for _, n := range nonTerms {
		text, _ := symTab.ToText(n)
		header = append(header, text)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	for s := 0; s < ptab.StateCount(); s++ {
		row := []string{strconv.Itoa(s)}
		for _, t := range terms {
			ty, next, prod := ptab.Action(s, t)
			switch ty {
			case grammar.ActionTypeShift:
				row = append(row, fmt.Sprintf("s%v", next))
			case grammar.ActionTypeReduce:
				row = append(row, fmt.Sprintf("r%v", prod))
			case grammar.ActionTypeAccept:
				row = append(row, "acc")
			default:
				row = append(row, "")
			}
		}
		for _, n := range nonTerms {
			next, ok := ptab.GoTo(s, n)
			if ok {
				row = append(row, strconv.Itoa(next))
			} else {
				row = append(row, "")
			}
		}
		table.Append(row)
	}
	table.Render()
}

func setText(symbols []string) string {
	text := ""
	for i, s := range symbols {
		if i > 0 {
			text += " "
		}
		text += s
	}
	return text
}
