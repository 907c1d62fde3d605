package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/pkg/types"
)

var mkkeyParents bool

func init() {
	cmd := newMkkeyCmd()
	cmd.Flags().BoolVarP(&mkkeyParents, "parents", "p", false, "Create missing parent keys first")
	rootCmd.AddCommand(cmd)
	rootCmd.AddCommand(newExistsCmd())
}

func newMkkeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkkey <path>",
		Short: "Create a registry key",
		Long: `The mkkey command creates a registry key. Creating a key that already
exists succeeds.

Example:
  regctl mkkey HKCU\\Software\\MyApp
  regctl mkkey HKCU\\Software\\MyApp\\Deep\\Settings -p`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMkkey(args)
		},
	}
	return cmd
}

func runMkkey(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.MakeKey(types.KEY_WRITE, mkkeyParents); err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{"path": p.String(), "success": true})
	}
	printInfo("✓ Key %s created\n", p)
	return nil
}

func newExistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exists <path>",
		Short: "Report whether a registry key exists",
		Long: `The exists command prints true or false. It exits with status 2 when
the key does not exist, so scripts can test it directly.

Example:
  regctl exists HKCU\\Software\\MyApp && echo installed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := runExists(args)
			if err != nil {
				return err
			}
			if !ok {
				// PersistentPostRunE does not run after os.Exit.
				_ = teardown(cmd, args)
				os.Exit(2)
			}
			return nil
		},
	}
	return cmd
}

func runExists(args []string) (bool, error) {
	p, err := resolve(args[0])
	if err != nil {
		return false, err
	}
	defer p.Close()

	ok := p.Exists()
	if jsonOut {
		return ok, printJSON(map[string]any{"path": p.String(), "exists": ok})
	}
	printInfo("%t\n", ok)
	return ok, nil
}
