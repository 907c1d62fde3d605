package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDeleteValueCmd())
}

func newDeleteValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-value <path> <name>",
		Short: "Delete a registry value",
		Long: `The delete-value command removes a value from a registry key.

Example:
  regctl delete-value HKCU\\Software\\MyApp Version
  regctl delete-value HKCU\\Software\\MyApp ""`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteValue(args)
		},
	}
	return cmd
}

func runDeleteValue(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.Values().Delete(args[1]); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":    p.String(),
			"name":    args[1],
			"success": true,
		})
	}
	printInfo("✓ Value deleted successfully\n")
	return nil
}
