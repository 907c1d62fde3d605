package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCopyCmd())
}

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <src> <dst>",
		Short: "Copy a key's values and subkeys into another key",
		Long: `The copy command copies every value and subkey of src into dst with the
native bulk copy. dst is created when missing; existing content is merged.

Example:
  regctl copy HKCU\\Software\\MyApp HKCU\\Software\\MyApp.bak`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(args)
		},
	}
	return cmd
}

func runCopy(args []string) error {
	src, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := resolve(args[1])
	if err != nil {
		return err
	}
	defer dst.Close()

	if !src.Exists() {
		return fmt.Errorf("failed to copy: source %s does not exist", src)
	}
	if err := src.CopyTree(dst); err != nil {
		return fmt.Errorf("failed to copy: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"source":      src.String(),
			"destination": dst.String(),
			"success":     true,
		})
	}
	printInfo("✓ Copied %s to %s\n", src, dst)
	return nil
}
