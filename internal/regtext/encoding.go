package regtext

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errUnsupportedEncoding = errors.New("regtext: unsupported encoding")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeInput converts input data to UTF-8 text. A byte order mark wins
// over the requested encoding.
func decodeInput(data []byte, enc string) (string, error) {
	if bytes.HasPrefix(data, UTF16LEBOM) {
		return decodeWith(utf16le.NewDecoder(), data[len(UTF16LEBOM):])
	}
	if bytes.HasPrefix(data, UTF8BOM) {
		return string(data[len(UTF8BOM):]), nil
	}
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		return string(data), nil
	case EncodingUTF16LE:
		if len(data)%2 == 1 {
			data = data[:len(data)-1]
		}
		return decodeWith(utf16le.NewDecoder(), data)
	case EncodingWindows1252:
		return decodeWith(charmap.Windows1252.NewDecoder(), data)
	default:
		return "", errUnsupportedEncoding
	}
}

func decodeWith(t transform.Transformer, data []byte) (string, error) {
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodeOutput converts UTF-8 text to the requested output encoding.
func encodeOutput(s, enc string, withBOM bool) ([]byte, error) {
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		if withBOM {
			return append(append([]byte(nil), UTF8BOM...), s...), nil
		}
		return []byte(s), nil
	case EncodingUTF16LE:
		out, _, err := transform.Bytes(utf16le.NewEncoder(), []byte(s))
		if err != nil {
			return nil, err
		}
		if withBOM {
			out = append(append([]byte(nil), UTF16LEBOM...), out...)
		}
		return out, nil
	case EncodingWindows1252:
		out, _, err := transform.Bytes(charmap.Windows1252.NewEncoder(), []byte(s))
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, errUnsupportedEncoding
	}
}
