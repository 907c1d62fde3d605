// Package printer renders registry keys and values for regctl in text,
// JSON or .reg form.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/regpath/pkg/regpath"
	"github.com/joshuapare/regpath/pkg/types"
)

const (
	DefaultIndentSize    = 2
	DefaultMaxDepth      = 0
	DefaultMaxValueBytes = 32
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"

	// FormatReg outputs Windows .reg file format.
	FormatReg Format = "reg"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, reg).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits recursion depth (0 = unlimited). Ignored by FormatReg
	// trees, which always export the whole subtree.
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowValues includes value data in output.
	// Default: true
	ShowValues bool

	// ShowTimestamps includes last-write times.
	// Default: false
	ShowTimestamps bool

	// ShowValueTypes includes REG_* type names.
	// Default: true
	ShowValueTypes bool

	// MaxValueBytes limits how many bytes of binary values to display.
	// Longer values are truncated. Set to 0 for no limit.
	// Default: 32
	MaxValueBytes int

	// PrintMetadata includes subkey and value counts.
	// Default: false
	PrintMetadata bool

	// Color highlights key names with ANSI escapes (text format only).
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:         FormatText,
		IndentSize:     DefaultIndentSize,
		MaxDepth:       DefaultMaxDepth,
		ShowValues:     true,
		ShowValueTypes: true,
		MaxValueBytes:  DefaultMaxValueBytes,
	}
}

// Printer handles formatted output of registry keys.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintKey(regpath.Must(regpath.New(`HKCU\Software\Vendor`)))
func New(w io.Writer, opts Options) *Printer {
	return &Printer{writer: w, opts: opts}
}

// PrintKey prints a key and its values.
func (p *Printer) PrintKey(key *regpath.Path) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printKeyJSON(key)
	case FormatReg:
		return p.printKeyReg(key)
	default:
		return p.printKeyText(key, key.String(), 0)
	}
}

// PrintValue prints a single value of key.
func (p *Printer) PrintValue(key *regpath.Path, name string) error {
	raw, err := key.QueryRawValue(name)
	if err != nil {
		return fmt.Errorf("get value %q: %w", name, err)
	}

	switch p.opts.Format {
	case FormatJSON:
		return p.printValueJSON(raw)
	case FormatReg:
		return p.printValueReg(raw)
	default:
		return p.printValueText(raw, 0)
	}
}

// PrintTree prints key and its descendants.
func (p *Printer) PrintTree(key *regpath.Path) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(key)
	case FormatReg:
		return p.printTreeReg(key)
	default:
		return p.printTreeText(key, key.String(), 0)
	}
}

// values collects the raw values of key in enumeration order.
func values(key *regpath.Path) ([]types.RawValue, error) {
	var out []types.RawValue
	for v, err := range key.EnumValue() {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// children collects the child keys of key in enumeration order.
func children(key *regpath.Path) ([]*regpath.Path, error) {
	var out []*regpath.Path
	for c, err := range key.Children() {
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// closeAll releases the handles of paths the printer derived.
func closeAll(ps []*regpath.Path) {
	for _, c := range ps {
		_ = c.Close()
	}
}
