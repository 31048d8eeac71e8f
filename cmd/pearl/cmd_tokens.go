package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/praal/pearl/perl/parser"
)

func newTokensCmd() *cobra.Command {
	var includeTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a Perl file and dump the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read perl file: %w", err)
			}

			lex := parser.NewLexer(data, filename)
			for {
				tok := lex.NextToken()
				if tok.Kind == parser.TokenEOF {
					break
				}
				if !includeTrivia && (tok.Kind == parser.TokenWhitespace || tok.Kind == parser.TokenComment || tok.Kind == parser.TokenPod) {
					continue
				}
				literal := tok.Literal
				if len(literal) > 40 {
					literal = literal[:40] + "..."
				}
				fmt.Printf("%s-%s %s %q", tok.Span.Start, tok.Span.End, tok.Kind, literal)
				if tok.Unterminated {
					fmt.Print(" unterminated")
				}
				fmt.Println()
			}

			for _, rec := range lex.TakeHeredocBodies() {
				fmt.Printf("%s-%s HeredocBody(%s) %q\n",
					rec.Span.Start, rec.Span.End, rec.Label, rec.Body)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeTrivia, "trivia", false, "include whitespace and comment tokens")

	return cmd
}
