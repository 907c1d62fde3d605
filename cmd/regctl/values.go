package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/internal/printer"
)

var valuesShowTimestamps bool

func init() {
	cmd := newValuesCmd()
	cmd.Flags().BoolVar(&valuesShowTimestamps, "timestamps", false, "Show the key's last write time")
	rootCmd.AddCommand(cmd)
}

func newValuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values <path>",
		Short: "List the values of a key",
		Long: `The values command lists every value of a registry key with its type.

Example:
  regctl values HKCU\\Environment
  regctl values HKLM\\SOFTWARE\\Microsoft\\Windows\\CurrentVersion --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(args)
		},
	}
	return cmd
}

func runValues(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	opts := printer.DefaultOptions()
	opts.ShowTimestamps = valuesShowTimestamps
	if err := newPrinter(opts).PrintKey(p); err != nil {
		return fmt.Errorf("failed to list values: %w", err)
	}
	return nil
}
