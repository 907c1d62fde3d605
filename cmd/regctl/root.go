package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joshuapare/regpath/internal/config"
	"github.com/joshuapare/regpath/internal/logger"
	"github.com/joshuapare/regpath/internal/printer"
	"github.com/joshuapare/regpath/pkg/regpath"
	"github.com/joshuapare/regpath/pkg/registry/boltreg"
	"github.com/joshuapare/regpath/pkg/registry/memreg"
	"github.com/joshuapare/regpath/pkg/types"
)

var (
	// Global flags
	configFile string
	backend    string
	database   string
	remote     string
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
)

var (
	// reg is the store every command resolves paths against.
	reg types.Registry
	// closeRegistry releases reg, if it holds resources.
	closeRegistry func() error
)

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Inspect and manipulate the Windows registry",
	Long: `regctl reads and writes registry keys and values addressed by path,
for example HKCU\Software\Vendor or \\server\HKLM\SOFTWARE.

It runs against the native registry on Windows, or against an in-memory or
bbolt-backed emulation anywhere (--backend memory|bolt).`,
	Version:            "0.1.0",
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default $"+config.EnvVar+" or <config dir>/regctl/config.yaml)")
	pf.StringVar(&backend, "backend", "", "Registry backend: native, memory or bolt")
	pf.StringVar(&database, "database", "", "Database file for the bolt backend")
	pf.StringVar(&remote, "remote", "", `Computer to connect to, as \\name`)
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	pf.BoolVar(&jsonOut, "json", false, "Output in JSON format")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// setup loads the config, lets flags override it, starts logging and opens
// the backend.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = config.Backend(backend)
	}
	if flags.Changed("database") {
		cfg.Database = database
	}
	if flags.Changed("remote") {
		cfg.Remote = remote
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	remote = cfg.Remote

	opts, err := cfg.LoggerOptions()
	if err != nil {
		return err
	}
	switch {
	case quiet:
		opts.Level = slog.LevelError
	case verbose:
		opts.Enabled = true
		opts.Level = slog.LevelDebug
	}
	if err := logger.Init(opts); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	reg, closeRegistry, err = openRegistry(cfg)
	if err != nil {
		return err
	}
	logger.Debug("registry ready", "backend", string(cfg.Backend), "database", cfg.Database, "remote", cfg.Remote)
	return nil
}

func teardown(*cobra.Command, []string) error {
	var err error
	if closeRegistry != nil {
		err = closeRegistry()
		closeRegistry = nil
	}
	return errors.Join(err, logger.Close())
}

// openRegistry returns the store cfg selects and its release function.
func openRegistry(cfg *config.Config) (types.Registry, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memreg.New(), nil, nil
	case config.BackendBolt:
		r, err := boltreg.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", cfg.Database, err)
		}
		return r, r.Close, nil
	default:
		return regpath.DefaultRegistry(), nil, nil
	}
}

// resolve parses a path argument against the open store. With --remote set,
// local paths are addressed on that computer.
func resolve(arg string) (*regpath.Path, error) {
	text := arg
	if remote != "" && !strings.HasPrefix(arg, `\\`) {
		text = `\\` + strings.TrimLeft(remote, `\`) + `\` + arg
	}
	p, err := regpath.NewWith(reg, text)
	if err != nil {
		return nil, err
	}
	printVerbose("Resolved %s\n", p)
	return p, nil
}

// newPrinter returns a printer on stdout honouring --json and colour.
func newPrinter(opts printer.Options) *printer.Printer {
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	opts.Color = useColor()
	return printer.New(os.Stdout, opts)
}

// useColor reports whether key names should be highlighted.
func useColor() bool {
	if noColor || jsonOut {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
