package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/OscarTapiaS/proyecto-compilador/driver/lexer"
	"github.com/OscarTapiaS/proyecto-compilador/driver/parser"
	"github.com/OscarTapiaS/proyecto-compilador/grammar"
	"github.com/OscarTapiaS/proyecto-compilador/lexical"
	"github.com/OscarTapiaS/proyecto-compilador/spec"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path>",
		Short:   "Tokenize a text stream and check it against a grammar",
		Example: `  cat src | compilador parse grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	g, err := loadGrammar(args[0])
	if err != nil {
		return err
	}

	ptab, err := grammar.BuildParsingTable(g)
	if err != nil {
		return err
	}
	for _, c := range ptab.Conflicts() {
		fmt.Fprintf(os.Stderr, "warning: %v\n", c)
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	cspec, err := lexical.Compile(lexical.DefaultRuleSet())
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

	err = parser.Parse(ptab, toks)
	if err != nil {
		var synErr *parser.SyntaxError
		if errors.As(err, &synErr) {
			fmt.Println(synErr)
			return nil
		}
		return err
	}

	fmt.Println("accepted")
	return nil
}

func loadGrammar(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spec.ParseGrammar(f)
}
