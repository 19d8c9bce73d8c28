package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compilador",
	Short: "Tokenize and parse source text with a generated lexer and LALR(1) parser",
	Long: `compilador drives the lexer-and-parser generator runtime:
- Tokenizes a text stream with the standard language ruleset.
- Builds an LALR(1) parsing table from a grammar file and recognizes input.
- Shows the generated table, its conflicts, and the FIRST/FOLLOW sets.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
