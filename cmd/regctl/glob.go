package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/internal/printer"
)

func init() {
	rootCmd.AddCommand(newGlobCmd())
}

func newGlobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glob <path> <pattern>",
		Short: "Find descendant keys matching a pattern",
		Long: `The glob command prints every key below path whose relative path matches
pattern. Within a key name * and ? and [...] work as in shell globs; **
spans any number of levels. Matching ignores case.

Example:
  regctl glob HKLM\\SOFTWARE "*\\Uninstall"
  regctl glob HKCU\\Software "**\\Recent*"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGlob(args)
		},
	}
	return cmd
}

func runGlob(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	matches := []string{}
	for m, err := range p.Glob(args[1]) {
		if err != nil {
			return fmt.Errorf("glob failed: %w", err)
		}
		matches = append(matches, m.String())
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":    p.String(),
			"pattern": args[1],
			"matches": matches,
			"count":   len(matches),
		})
	}
	pr := printer.New(os.Stdout, printer.Options{Color: useColor()})
	for _, m := range matches {
		printInfo("%s\n", pr.KeyName(m))
	}
	return nil
}
