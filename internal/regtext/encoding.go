package regtext

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errUnsupportedEncoding = errors.New("regtext: unsupported encoding")

// decodeInput converts .reg data to UTF-8. A UTF-8 or UTF-16 byte order
// mark overrides enc.
func decodeInput(data []byte, enc string) (string, error) {
	var dec *encoding.Decoder
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		dec = unicode.UTF8.NewDecoder()
	case EncodingUTF16LE:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case EncodingWindows1252:
		dec = charmap.Windows1252.NewDecoder()
	default:
		return "", errUnsupportedEncoding
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(dec), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodeOutput converts UTF-8 .reg text to enc.
func encodeOutput(text []byte, enc string, withBOM bool) ([]byte, error) {
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		return text, nil
	case EncodingUTF16LE:
		bom := unicode.IgnoreBOM
		if withBOM {
			bom = unicode.UseBOM
		}
		return unicode.UTF16(unicode.LittleEndian, bom).NewEncoder().Bytes(text)
	default:
		return nil, errUnsupportedEncoding
	}
}
