package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/internal/regtext"
	"github.com/joshuapare/regpath/pkg/regpath"
	"github.com/joshuapare/regpath/pkg/types"
)

var (
	importInto     string
	importEncoding string
)

func init() {
	cmd := newImportCmd()
	cmd.Flags().StringVar(&importInto, "into", "", "Apply below this key instead of the paths in the file")
	cmd.Flags().StringVar(&importEncoding, "encoding", "", "Input encoding when the file has no byte-order mark (utf8, utf16le, windows1252)")
	rootCmd.AddCommand(cmd)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.reg>",
		Short: "Apply a .reg file to the registry",
		Long: `The import command applies a .reg file: it creates the keys it names,
sets its values and performs its deletions ([-key] sections and "name"=-).

Sections name full paths such as HKEY_CURRENT_USER\Software\MyApp. With
--into, the first section is treated as the root of the file and everything
is applied below the given key instead.

Example:
  regctl import myapp.reg
  regctl import myapp.reg --into HKCU\\Software\\MyApp.restored`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args)
		},
	}
	return cmd
}

func runImport(args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf(".reg file not readable: %w", err)
	}

	var enc string
	if importEncoding != "" {
		if enc, err = encodingName(importEncoding); err != nil {
			return err
		}
	}
	ops, err := regtext.Parse(data, regtext.ParseOptions{InputEncoding: enc})
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	printVerbose("Parsed %d operations from %s\n", len(ops), args[0])

	if importInto != "" {
		err = importBelow(ops, importInto)
	} else {
		err = importAbsolute(ops)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"file":       args[0],
			"operations": len(ops),
			"success":    true,
		})
	}
	printInfo("✓ Applied %d operations from %s\n", len(ops), args[0])
	return nil
}

// importBelow rebases ops from the file's first section onto target.
func importBelow(ops []regtext.Op, target string) error {
	root, ok := regtext.HiveRoot(ops)
	if !ok {
		return fmt.Errorf("file names no keys")
	}
	ops, err := regtext.Rebase(ops, root, "")
	if err != nil {
		return err
	}
	p, err := resolve(target)
	if err != nil {
		return err
	}
	defer p.Close()
	h, err := p.CreateKey()
	if err != nil {
		return err
	}
	defer h.Close()
	return regtext.Apply(h, ops)
}

// importAbsolute applies each run of ops that shares a root against that
// root's handle.
func importAbsolute(ops []regtext.Op) error {
	for len(ops) > 0 {
		drive, err := opDrive(ops[0])
		if err != nil {
			return err
		}
		n := 1
		for n < len(ops) {
			d, err := opDrive(ops[n])
			if err != nil {
				return err
			}
			if !strings.EqualFold(d, drive) {
				break
			}
			n++
		}
		if err := applyRoot(drive, ops[:n]); err != nil {
			return err
		}
		ops = ops[n:]
	}
	return nil
}

func applyRoot(drive string, ops []regtext.Op) error {
	rel, err := regtext.Rebase(ops, drive, "")
	if err != nil {
		return err
	}
	p, err := resolve(drive)
	if err != nil {
		return err
	}
	defer p.Close()
	root, err := p.RootKey()
	if err != nil {
		return err
	}
	return regtext.Apply(root, rel)
}

// opDrive returns the root an op's path is anchored at.
func opDrive(op regtext.Op) (string, error) {
	p, err := regpath.NewWith(reg, op.OpPath())
	if err != nil {
		return "", err
	}
	if !p.IsAbs() {
		return "", types.Errorf(types.ErrKindInvalidAddress, "section %q names no root key", op.OpPath())
	}
	return p.Drive(), nil
}
