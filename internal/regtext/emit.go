package regtext

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/joshuapare/regpath/internal/codec"
	"github.com/joshuapare/regpath/pkg/types"
)

// Export walks the live subtree under k and emits textual .reg output. name
// is the full path written in the first section header (for example
// `HKEY_CURRENT_USER\Software\Vendor`); child sections extend it.
func Export(k types.Key, name string, opts ExportOptions) ([]byte, error) {
	var buf strings.Builder
	buf.WriteString(RegFileHeader + CRLF + CRLF)
	if err := exportKey(&buf, k, []string{name}); err != nil {
		return nil, err
	}
	return encodeOutput(buf.String(), opts.OutputEncoding, opts.WithBOM)
}

// FormatValue renders one value as a .reg value line, including the
// trailing CRLF.
func FormatValue(v types.RawValue) (string, error) {
	var buf strings.Builder
	if err := emitValue(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func exportKey(buf *strings.Builder, k types.Key, path []string) error {
	buf.WriteString(KeyOpenBracket)
	buf.WriteString(strings.Join(path, Backslash))
	buf.WriteString(KeyCloseBracket + CRLF)

	values, err := enumValues(k)
	if err != nil {
		return err
	}
	sort.SliceStable(values, func(i, j int) bool {
		return strings.ToLower(values[i].Name) < strings.ToLower(values[j].Name)
	})
	for _, v := range values {
		if err := emitValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteString(CRLF)

	names, err := enumKeys(k)
	if err != nil {
		return err
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	for _, n := range names {
		child, err := k.OpenKey(n, types.KEY_READ)
		if err != nil {
			return fmt.Errorf("regtext: open %q: %w", n, err)
		}
		err = exportKey(buf, child, append(path[:len(path):len(path)], n))
		if cerr := child.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func enumValues(k types.Key) ([]types.RawValue, error) {
	var out []types.RawValue
	for i := 0; ; i++ {
		v, err := k.EnumValue(i)
		if errors.Is(err, types.ErrNoMoreItems) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func enumKeys(k types.Key) ([]string, error) {
	var out []string
	for i := 0; ; i++ {
		n, err := k.EnumKey(i)
		if errors.Is(err, types.ErrNoMoreItems) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
}

func emitValue(buf *strings.Builder, v types.RawValue) error {
	var head string
	if v.Name == "" {
		head = DefaultValuePrefix
	} else {
		head = Quote + escapeString(v.Name) + Quote + ValueAssignment
	}
	buf.WriteString(head)

	switch v.Type {
	case types.REG_SZ:
		str, err := codec.DecodeString(v.Data)
		if err != nil {
			return err
		}
		buf.WriteString(Quote)
		buf.WriteString(escapeString(str))
		buf.WriteString(Quote)
	case types.REG_DWORD:
		if len(v.Data) == codec.DWORDSize {
			dw, err := codec.DecodeDWORD(v.Data)
			if err != nil {
				return err
			}
			buf.WriteString(DWORDPrefix)
			fmt.Fprintf(buf, DWORDHexFormat, dw)
			break
		}
		writeHex(buf, head, v)
	default:
		writeHex(buf, head, v)
	}
	buf.WriteString(CRLF)
	return nil
}

func writeHex(buf *strings.Builder, head string, v types.RawValue) {
	prefix := HexPrefix
	if v.Type != types.REG_BINARY {
		prefix = fmt.Sprintf(HexTypeFormat, uint32(v.Type))
	}
	buf.WriteString(prefix)
	buf.WriteString(formatHex(v.Data, len(head)+len(prefix)))
}
