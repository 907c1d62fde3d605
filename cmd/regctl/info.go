package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Show key counts and last write time",
		Long: `The info command shows how many subkeys and values a key has and when
it was last written.

Example:
  regctl info HKLM\\SOFTWARE
  regctl info HKCU\\Software\\MyApp --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	info, err := p.KeyInfo()
	if err != nil {
		return fmt.Errorf("failed to query key: %w", err)
	}

	if jsonOut {
		result := map[string]any{
			"path":    p.String(),
			"subkeys": info.SubkeyN,
			"values":  info.ValueN,
		}
		if !info.LastWrite.IsZero() {
			result["last_write"] = info.LastWrite.Format(time.RFC3339)
		}
		return printJSON(result)
	}

	printInfo("Path:       %s\n", p)
	printInfo("Subkeys:    %d\n", info.SubkeyN)
	printInfo("Values:     %d\n", info.ValueN)
	if !info.LastWrite.IsZero() {
		printInfo("Last Write: %s\n", info.LastWrite.Format("2006-01-02 15:04:05"))
	}
	return nil
}
