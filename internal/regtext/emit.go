package regtext

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/joshuapare/regedit/internal/format"
	"github.com/joshuapare/regedit/pkg/registry"
	"github.com/joshuapare/regedit/pkg/types"
)

// ExportOptions controls the text encoding of Export.
type ExportOptions struct {
	// Encoding is EncodingUTF8 (default) or EncodingUTF16LE.
	Encoding string
	// WithBOM prefixes UTF-16LE output with a byte order mark, as regedit
	// does.
	WithBOM bool
}

// Export walks the subtree rooted at k and emits .reg text. Values are
// sorted by name and subkeys case-insensitively, so equal trees export
// identically.
func Export(k *registry.Key, opts ExportOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(RegFileHeader + CRLF + CRLF)
	if err := exportKey(&buf, k, k.String()); err != nil {
		return nil, err
	}
	return encodeOutput(buf.Bytes(), opts.Encoding, opts.WithBOM)
}

func exportKey(buf *bytes.Buffer, k *registry.Key, path string) error {
	buf.WriteString(KeyOpenBracket)
	buf.WriteString(path)
	buf.WriteString(KeyCloseBracket + CRLF)

	entries, err := k.ValueEntries("")
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	for _, e := range entries {
		emitValue(buf, e)
	}
	buf.WriteString(CRLF)

	names, err := k.SubkeyNames()
	if err != nil {
		return err
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	for _, name := range names {
		sub, err := k.OpenKey(name)
		if err != nil {
			return err
		}
		err = exportKey(buf, sub, registry.JoinPath(path, name))
		_ = sub.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func emitValue(buf *bytes.Buffer, e registry.Entry) {
	if e.Name == "" {
		buf.WriteString(DefaultValuePrefix)
	} else {
		buf.WriteString(Quote)
		buf.WriteString(escapeString(e.Name))
		buf.WriteString(Quote + ValueAssignment)
	}

	switch e.Type {
	case types.REG_SZ:
		if s, ok := e.Value.Text(); ok {
			buf.WriteString(Quote)
			buf.WriteString(escapeString(s))
			buf.WriteString(Quote)
			break
		}
		emitHex(buf, e)
	case types.REG_DWORD:
		if n, ok := e.Value.Int(); ok {
			buf.WriteString(DWORDPrefix)
			fmt.Fprintf(buf, DWORDHexFormat, uint32(n))
			break
		}
		emitHex(buf, e)
	default:
		emitHex(buf, e)
	}
	buf.WriteString(CRLF)
}

// emitHex writes the raw data as hex: for REG_BINARY and hex(N): for
// every other type.
func emitHex(buf *bytes.Buffer, e registry.Entry) {
	if e.Type == types.REG_BINARY {
		buf.WriteString(HexPrefix)
	} else {
		fmt.Fprintf(buf, HexTypeFormat, uint32(e.Type))
	}
	buf.WriteString(formatHex(rawData(e)))
}

// rawData re-encodes a decoded entry. Data that decoded as Binary because
// it did not fit its type is written back unchanged.
func rawData(e registry.Entry) []byte {
	if b, ok := e.Value.Bytes(); ok {
		return b
	}
	data, err := format.EncodeValue(e.Type, e.Value)
	if err != nil {
		return nil
	}
	return data
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, Backslash, EscapedBackslash)
	s = strings.ReplaceAll(s, Quote, EscapedQuote)
	return s
}

func formatHex(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf(HexByteFormat, b)
	}
	return strings.Join(parts, HexByteSeparator)
}
