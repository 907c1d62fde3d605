package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/regpath/internal/codec"
	"github.com/joshuapare/regpath/pkg/regpath"
	"github.com/joshuapare/regpath/pkg/types"
)

const (
	ansiKey   = "\x1b[1;34m"
	ansiReset = "\x1b[0m"
)

// DefaultValueName is how the unnamed value is displayed.
const DefaultValueName = "(Default)"

// KeyName renders a key name, highlighted when colour is on.
func (p *Printer) KeyName(name string) string {
	if !p.opts.Color {
		return name
	}
	return ansiKey + name + ansiReset
}

// printKeyText prints a key in human-readable text format.
func (p *Printer) printKeyText(key *regpath.Path, label string, depth int) error {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	fmt.Fprintf(p.writer, "%s[%s]\n", indent, p.KeyName(label))

	if p.opts.ShowTimestamps || p.opts.PrintMetadata {
		info, err := key.KeyInfo()
		if err != nil {
			return err
		}
		if p.opts.ShowTimestamps {
			fmt.Fprintf(p.writer, "%s  Last Write: %s\n", indent, info.LastWrite.Format("2006-01-02 15:04:05"))
		}
		if p.opts.PrintMetadata {
			fmt.Fprintf(p.writer, "%s  Subkeys: %d, Values: %d\n", indent, info.SubkeyN, info.ValueN)
		}
	}

	if p.opts.ShowValues {
		vals, err := values(key)
		if err != nil {
			return err
		}
		for _, v := range vals {
			if err := p.printValueText(v, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// printValueText prints a value as `"Name" [TYPE] = data`.
func (p *Printer) printValueText(v types.RawValue, depth int) error {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	name := v.Name
	if name == "" {
		name = DefaultValueName
	}
	fmt.Fprintf(p.writer, "%s\"%s\"", indent, name)
	if p.opts.ShowValueTypes {
		fmt.Fprintf(p.writer, " [%s]", v.Type)
	}
	fmt.Fprintf(p.writer, " = ")

	switch v.Type {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		str, err := codec.DecodeString(v.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.writer, "\"%s\"\n", str)

	case types.REG_DWORD, types.REG_DWORD_BE:
		val, err := codec.Decode(v.Type, v.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.writer, "0x%08X (%d)\n", val, val)

	case types.REG_QWORD:
		val, err := codec.DecodeQWORD(v.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.writer, "0x%016X (%d)\n", val, val)

	case types.REG_MULTI_SZ:
		strs, err := codec.DecodeMultiString(v.Data)
		if err != nil {
			return err
		}
		if len(strs) == 0 {
			fmt.Fprintf(p.writer, "[]\n")
			break
		}
		fmt.Fprintf(p.writer, "[\n")
		for _, s := range strs {
			fmt.Fprintf(p.writer, "%s  \"%s\"\n", indent, s)
		}
		fmt.Fprintf(p.writer, "%s]\n", indent)

	default:
		shown, truncated := p.clip(v.Data)
		if len(shown) == 0 {
			fmt.Fprintf(p.writer, "<empty>%s\n", truncated)
		} else {
			fmt.Fprintf(p.writer, "%X%s\n", shown, truncated)
		}
	}
	return nil
}

// clip applies MaxValueBytes to binary data.
func (p *Printer) clip(data []byte) ([]byte, string) {
	limit := p.opts.MaxValueBytes
	if limit == 0 || len(data) <= limit {
		return data, ""
	}
	return data[:limit], fmt.Sprintf(" (truncated, %d total bytes)", len(data))
}

// printTreeText recursively prints a subtree in text format.
func (p *Printer) printTreeText(key *regpath.Path, label string, depth int) error {
	if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
		return nil
	}
	if err := p.printKeyText(key, label, depth); err != nil {
		return err
	}

	kids, err := children(key)
	if err != nil {
		return err
	}
	defer closeAll(kids)
	for _, c := range kids {
		if err := p.printTreeText(c, c.Name(), depth+1); err != nil {
			return err
		}
	}
	return nil
}
