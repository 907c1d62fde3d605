package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/internal/regtext"
	"github.com/joshuapare/regpath/pkg/types"
)

var (
	exportEncoding string
	exportBOM      bool
	exportStdout   bool
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVar(&exportEncoding, "encoding", "utf16le", "Output encoding (utf8, utf16le, windows1252)")
	cmd.Flags().BoolVar(&exportBOM, "with-bom", true, "Include byte-order mark")
	cmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write to stdout instead of file")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <path> [output.reg]",
		Short: "Export a key and its subtree to .reg format",
		Long: `The export command writes a registry key, its values and all of its
subkeys as .reg text, the format regedit exports. The default encoding is
UTF-16LE with a byte-order mark, as regedit writes it.

Example:
  regctl export HKCU\\Software\\MyApp myapp.reg
  regctl export HKCU\\Software\\MyApp --stdout --encoding utf8 --with-bom=false`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

func runExport(args []string) error {
	var outputPath string
	if len(args) > 1 {
		outputPath = args[1]
	}

	// Can't specify both output file and stdout
	if outputPath != "" && exportStdout {
		return fmt.Errorf("cannot specify both output file and --stdout")
	}
	// Need either output file or stdout
	if outputPath == "" && !exportStdout {
		return fmt.Errorf("must specify output file or use --stdout")
	}

	enc, err := encodingName(exportEncoding)
	if err != nil {
		return err
	}

	p, err := resolve(args[0])
	if err != nil {
		return err
	}
	defer p.Close()

	h, err := p.OpenKey(types.KEY_READ)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	defer h.Close()

	data, err := regtext.Export(h, p.String(), regtext.ExportOptions{OutputEncoding: enc, WithBOM: exportBOM})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportStdout {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{
			"path":     p.String(),
			"output":   outputPath,
			"encoding": enc,
			"bytes":    len(data),
			"success":  true,
		})
	}
	printInfo("✓ Exported %s to %s (%d bytes)\n", p, outputPath, len(data))
	return nil
}

// encodingName maps a command-line encoding name to the regtext one.
func encodingName(s string) (string, error) {
	switch strings.ReplaceAll(strings.ToLower(s), "-", "") {
	case "", "utf8":
		return regtext.EncodingUTF8, nil
	case "utf16le", "utf16":
		return regtext.EncodingUTF16LE, nil
	case "windows1252", "cp1252", "latin1":
		return regtext.EncodingWindows1252, nil
	default:
		return "", fmt.Errorf("unknown encoding %q (want utf8, utf16le or windows1252)", s)
	}
}
