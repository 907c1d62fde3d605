package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/internal/printer"
)

var (
	treeDepth   int
	treeValues  bool
	treeCompact bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 3, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeValues, "values", false, "Show values too")
	cmd.Flags().BoolVar(&treeCompact, "compact", false, "Compact output")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <path>",
		Short: "Display tree structure",
		Long: `The tree command displays a hierarchical tree view of registry keys.

Example:
  regctl tree HKCU\\Software\\MyApp
  regctl tree HKLM\\SYSTEM\\CurrentControlSet\\Services --depth 2
  regctl tree HKCU\\Software\\MyApp --values --depth 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	opts := printer.DefaultOptions()
	opts.ShowValues = treeValues
	opts.MaxDepth = treeDepth
	if treeCompact {
		opts.IndentSize = 1
	}

	if err := newPrinter(opts).PrintTree(p); err != nil {
		return fmt.Errorf("failed to display tree: %w", err)
	}
	return nil
}
