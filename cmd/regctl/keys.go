package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/internal/printer"
)

var keysRecursive bool

func init() {
	cmd := newKeysCmd()
	cmd.Flags().BoolVarP(&keysRecursive, "recursive", "r", false, "List all descendant keys")
	rootCmd.AddCommand(cmd)
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <path>",
		Short: "List the child keys of a key",
		Long: `The keys command lists the subkeys of a registry key.

Example:
  regctl keys HKCU\\Software
  regctl keys HKLM\\SYSTEM\\CurrentControlSet\\Services --recursive
  regctl keys HKCU\\Software --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
	return cmd
}

func runKeys(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	seq := p.Children()
	if keysRecursive {
		seq = p.Glob("**")
	}
	var keys []string
	for c, err := range seq {
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		if keysRecursive {
			rel, err := c.RelativeTo(p)
			if err != nil {
				return err
			}
			keys = append(keys, rel.String())
		} else {
			keys = append(keys, c.Name())
		}
	}

	if jsonOut {
		if keys == nil {
			keys = []string{}
		}
		return printJSON(map[string]any{
			"path":  p.String(),
			"keys":  keys,
			"count": len(keys),
		})
	}

	pr := printer.New(os.Stdout, printer.Options{Color: useColor()})
	for _, k := range keys {
		printInfo("%s\n", pr.KeyName(k))
	}
	printVerbose("\nTotal: %d keys\n", len(keys))
	return nil
}
