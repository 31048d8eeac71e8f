package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/praal/pearl/perl/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a Perl file and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read perl file: %w", err)
			}

			result := parser.Parse(data, filename)

			switch outputFormat {
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "sexp":
				fmt.Print(result.Sexp())
			case "tree":
				if includePositions {
					fmt.Print(result.Root.StringWithPositions())
				} else {
					fmt.Print(result.Root.String())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			for _, d := range result.Diagnostics {
				fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n",
					filename, d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexp", "output format (sexp, json, tree)")
	cmd.Flags().BoolVar(&includePositions, "positions", true, "include positions in tree output")

	return cmd
}
