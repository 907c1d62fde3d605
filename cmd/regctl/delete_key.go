package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteKeyRecursive bool

func init() {
	cmd := newDeleteKeyCmd()
	cmd.Flags().BoolVarP(&deleteKeyRecursive, "recursive", "r", false, "Delete subkeys too")
	rootCmd.AddCommand(cmd)
	rootCmd.AddCommand(newClearCmd())
}

func newDeleteKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-key <path>",
		Short: "Delete a registry key",
		Long: `The delete-key command removes a registry key. A key with subkeys is
only removed with --recursive, which deletes its descendants first.

Example:
  regctl delete-key HKCU\\Software\\MyApp\\Cache
  regctl delete-key HKCU\\Software\\MyApp --recursive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteKey(args)
		},
	}
	return cmd
}

func runDeleteKey(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if deleteKeyRecursive {
		err = p.RemoveTree()
	} else {
		err = p.RemoveKey()
	}
	if err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":      p.String(),
			"recursive": deleteKeyRecursive,
			"success":   true,
		})
	}
	printInfo("✓ Key deleted successfully\n")
	return nil
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <path>",
		Short: "Delete every value and subkey of a key",
		Long: `The clear command empties a registry key with the native bulk delete.
The key itself remains.

Example:
  regctl clear HKCU\\Software\\MyApp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(args)
		},
	}
	return cmd
}

func runClear(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.DeleteTree(); err != nil {
		return fmt.Errorf("failed to clear key: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{"path": p.String(), "success": true})
	}
	printInfo("✓ Key cleared\n")
	return nil
}
