package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newLoadCmd())
}

func newSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <path> <file>",
		Short: "Save a key and its subtree to a hive file",
		Long: `The save command writes a key and everything below it to a hive file
(RegSaveKey). The file must not exist. On the native backend this needs the
backup privilege; emulated backends write UTF-16LE .reg text.

Example:
  regctl save HKCU\\Software\\MyApp myapp.hiv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(args)
		},
	}
	return cmd
}

func runSave(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.SaveHive(args[1]); err != nil {
		return fmt.Errorf("failed to save hive: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{"path": p.String(), "file": args[1], "success": true})
	}
	printInfo("✓ Saved %s to %s\n", p, args[1])
	return nil
}

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <path> <subkey> <file>",
		Short: "Load a hive file as a new subkey",
		Long: `The load command mounts a hive file as subkey below path (RegLoadKey).
On the native backend path must be HKEY_USERS or HKEY_LOCAL_MACHINE and the
restore privilege is needed.

Example:
  regctl load HKU Offline ntuser.dat`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(args)
		},
	}
	return cmd
}

func runLoad(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.LoadHive(args[1], args[2]); err != nil {
		return fmt.Errorf("failed to load hive: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":    p.String(),
			"subkey":  args[1],
			"file":    args[2],
			"success": true,
		})
	}
	printInfo("✓ Loaded %s as %s\\%s\n", args[2], p, args[1])
	return nil
}
