package regtext

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regpath/internal/codec"
	"github.com/joshuapare/regpath/pkg/types"
)

// Parse converts .reg text into edit operations, in file order.
func Parse(data []byte, opts ParseOptions) ([]Op, error) {
	text, err := decodeInput(data, opts.InputEncoding)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxLineSize)

	seenHeader := false
	var ops []Op
	seenKeys := make(map[string]bool)
	var current string
	var pending strings.Builder

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), CR)

		// Hex data continues on the next line after a trailing backslash.
		if pending.Len() > 0 || (isValueLine(line) && strings.HasSuffix(strings.TrimSpace(line), Backslash) && isHexLine(line)) {
			pending.WriteString(strings.TrimSpace(line))
			if strings.HasSuffix(strings.TrimSpace(line), Backslash) {
				continue
			}
			line = pending.String()
			pending.Reset()
		}

		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, CommentPrefix) {
			continue
		}
		if !seenHeader {
			if trim != RegFileHeader {
				return nil, errors.New("regtext: missing header")
			}
			seenHeader = true
			continue
		}
		if strings.HasPrefix(trim, KeyOpenBracket) {
			if !strings.HasSuffix(trim, KeyCloseBracket) {
				return nil, fmt.Errorf("regtext: malformed section %q", trim)
			}
			section := strings.TrimSuffix(strings.TrimPrefix(trim, KeyOpenBracket), KeyCloseBracket)
			if strings.HasPrefix(section, DeleteKeyPrefix) {
				ops = append(ops, OpDeleteKey{Path: strings.TrimSpace(section[1:])})
				current = ""
				continue
			}
			current = section
			if fold := strings.ToLower(current); !seenKeys[fold] {
				ops = append(ops, OpCreateKey{Path: current})
				seenKeys[fold] = true
			}
			continue
		}
		if current == "" {
			return nil, fmt.Errorf("regtext: value without section: %q", trim)
		}
		op, err := parseValueLine(current, trim)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("regtext: scanning: %w", err)
	}
	if pending.Len() > 0 {
		return nil, errors.New("regtext: unterminated hex continuation")
	}
	if !seenHeader {
		return nil, errors.New("regtext: missing header")
	}
	return ops, nil
}

func isValueLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, Quote) || strings.HasPrefix(t, DefaultValuePrefix)
}

func isHexLine(line string) bool {
	_, payload, ok := splitValueLine(strings.TrimSpace(line))
	return ok && strings.HasPrefix(payload, "hex")
}

// splitValueLine splits `"name"=payload` or `@=payload`.
func splitValueLine(line string) (name, payload string, ok bool) {
	if strings.HasPrefix(line, DefaultValuePrefix) {
		return "", line[len(DefaultValuePrefix):], true
	}
	if !strings.HasPrefix(line, Quote) {
		return "", "", false
	}
	end := findClosingQuote(line)
	if end < 0 || !strings.HasPrefix(line[end+1:], ValueAssignment) {
		return "", "", false
	}
	return unescapeRegString(line[1:end]), line[end+2:], true
}

func parseValueLine(path, line string) (Op, error) {
	name, payload, ok := splitValueLine(line)
	if !ok {
		return nil, fmt.Errorf("regtext: malformed value line %q", line)
	}
	return parseValue(path, name, payload)
}

func parseValue(path, name, payload string) (Op, error) {
	payload = strings.TrimSpace(payload)
	if payload == DeleteValueToken {
		return OpDeleteValue{Path: path, Name: name}, nil
	}
	if strings.HasPrefix(payload, Quote) {
		if len(payload) < 2 || !strings.HasSuffix(payload, Quote) {
			return nil, fmt.Errorf("regtext: unterminated string %q", payload)
		}
		value := unescapeRegString(payload[1 : len(payload)-1])
		return OpSetValue{Path: path, Name: name, Type: types.REG_SZ, Data: codec.EncodeString(value)}, nil
	}
	if strings.HasPrefix(payload, DWORDPrefix) {
		hexPart := payload[len(DWORDPrefix):]
		if len(hexPart) != DWORDHexLength {
			return nil, fmt.Errorf("regtext: invalid dword %q", payload)
		}
		n, err := strconv.ParseUint(hexPart, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("regtext: invalid dword %q: %w", payload, err)
		}
		return OpSetValue{Path: path, Name: name, Type: types.REG_DWORD, Data: codec.EncodeDWORD(uint32(n))}, nil
	}
	if strings.HasPrefix(payload, "hex") {
		typ, err := parseHexValueType(payload)
		if err != nil {
			return nil, fmt.Errorf("regtext: %w", err)
		}
		data, err := parseHexBytes(payload)
		if err != nil {
			return nil, fmt.Errorf("regtext: %w", err)
		}
		return OpSetValue{Path: path, Name: name, Type: typ, Data: data}, nil
	}
	return nil, fmt.Errorf("regtext: unsupported value %q", payload)
}
