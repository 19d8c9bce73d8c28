package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/OscarTapiaS/proyecto-compilador/driver/lexer"
	"github.com/OscarTapiaS/proyecto-compilador/lexical"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var tokenizeFlags = struct {
	fallback *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tokenize [source file path]",
		Short:   "Tokenize a text stream with the standard language ruleset",
		Example: `  cat src | compilador tokenize`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTokenize,
	}
	tokenizeFlags.fallback = cmd.Flags().Bool("literal-fallback", false, "substitute a literal automaton for patterns that fail to compile")
	rootCmd.AddCommand(cmd)
}

func runTokenize(cmd *cobra.Command, args []string) (retErr error) {
	src := os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	var opts []lexical.CompilerOption
	if *tokenizeFlags.fallback {
		opts = append(opts, lexical.AllowLiteralFallback())
	}
	cspec, err := lexical.Compile(lexical.DefaultRuleSet(), opts...)
	if err != nil {
		return err
	}

	l, err := lexer.NewLexer(cspec, src)
	if err != nil {
		return err
	}
	toks, err := l.Tokenize()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Lexeme", "Pos", "Line", "Col"})
	table.SetAutoFormatHeaders(false)
	for _, tok := range toks {
		table.Append([]string{
			tok.Kind.String(),
			strconv.Quote(tok.Lexeme),
			strconv.Itoa(tok.Pos),
			strconv.Itoa(tok.Line),
			strconv.Itoa(tok.Col),
		})
	}
	table.Render()

	fmt.Printf("%v tokens, %v DFA states\n", len(toks), cspec.StateCount())

	return nil
}
