package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
	"github.com/spf13/cobra"

	"github.com/praal/pearl/internal/logging"
	"github.com/praal/pearl/internal/ui/pretty"
	"github.com/praal/pearl/perl/config"
	"github.com/praal/pearl/perl/parser"
)

func newCheckCmd() *cobra.Command {
	var colorMode string
	var showContext bool

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse Perl files under the given paths and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			cfg, cfgPath, err := config.Discover(".")
			if err != nil {
				return err
			}
			if cfgPath != "" {
				logging.Default().Debug("loaded config", logging.FieldPath, cfgPath)
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))

			var files, errors, warnings int
			for _, root := range args {
				err := walkPerlFiles(root, cfg, func(path string, content []byte) {
					files++
					e, w := checkFile(styles, cfg, path, content, showContext)
					errors += e
					warnings += w
				})
				if err != nil {
					return err
				}
			}

			fmt.Print(styles.FormatSummary(files, errors, warnings))
			if errors > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&colorMode, "color", "auto", "color output (auto, always, never)")
	cmd.Flags().BoolVar(&showContext, "context", true, "show source lines under problems")

	return cmd
}

func walkPerlFiles(root string, cfg *config.Config, visit func(path string, content []byte)) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		content, err := os.ReadFile(root)
		if err != nil {
			return fmt.Errorf("read %s: %w", root, err)
		}
		visit(root, content)
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if rel != "." && cfg.Ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.Ignored(rel) {
			return nil
		}
		if cfg.MaxFileSize > 0 {
			if fi, err := d.Info(); err == nil && fi.Size() > cfg.MaxFileSize {
				logging.Default().Debug("skipping oversized file", logging.FieldPath, path)
				return nil
			}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			logging.Default().Warn("unreadable file", logging.FieldPath, path, logging.FieldError, err)
			return nil
		}
		if !isPerlFile(cfg, path, content) {
			return nil
		}
		visit(path, content)
		return nil
	})
}

// isPerlFile accepts configured extensions outright and falls back to
// content classification for everything else, which catches extensionless
// scripts with a perl shebang.
func isPerlFile(cfg *config.Config, path string, content []byte) bool {
	if cfg.HasExtension(path) {
		return true
	}
	if filepath.Ext(path) != "" {
		return false
	}
	return enry.GetLanguage(filepath.Base(path), content) == "Perl"
}

func checkFile(styles *pretty.Styles, cfg *config.Config, path string, content []byte, showContext bool) (errors, warnings int) {
	result := parser.Parse(content, path)
	if len(result.Diagnostics) == 0 {
		return 0, 0
	}

	fmt.Println(styles.FormatFileHeader(path, len(result.Diagnostics)))
	for _, d := range result.Diagnostics {
		d.Severity = cfg.SeverityFor(d)
		switch d.Severity {
		case parser.SeverityError:
			errors++
		case parser.SeverityWarning:
			warnings++
		}
		var sourceLine string
		if showContext {
			sourceLine = lineOf(content, d.Span.Start.Offset)
		}
		fmt.Print(styles.FormatDiagnostic(path, d, sourceLine))
	}
	fmt.Println()
	return errors, warnings
}

func lineOf(content []byte, offset int) string {
	if offset < 0 || offset > len(content) {
		return ""
	}
	start := offset
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := offset
	for end < len(content) && content[end] != '\n' {
		end++
	}
	return string(content[start:end])
}
