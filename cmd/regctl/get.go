package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/internal/printer"
)

var (
	getShowType bool
	getReg      bool
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getShowType, "type", false, "Show type information")
	cmd.Flags().BoolVar(&getReg, "reg", false, "Print the value as a .reg line")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Get a specific registry value",
		Long: `The get command retrieves and displays a value of a registry key.
An empty name ("") selects the key's default value.

Example:
  regctl get HKCU\\Environment Path
  regctl get HKCU\\Software\\Vendor Version --type
  regctl get HKCU\\Software\\Vendor "" --reg`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	opts := printer.DefaultOptions()
	opts.ShowValueTypes = getShowType || jsonOut
	opts.MaxValueBytes = 0
	if getReg {
		opts.Format = printer.FormatReg
	}
	if err := newPrinter(opts).PrintValue(p, args[1]); err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	return nil
}
