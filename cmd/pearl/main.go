package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/praal/pearl/internal/logging"
)

const version = "0.1.0"

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "pearl",
		Short: "An error-tolerant Perl parsing toolchain",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetLevel(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
