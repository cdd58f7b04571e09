package regtext

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regedit/pkg/types"
)

// unescapeRegString unescapes a string from .reg format.
// .reg files escape backslashes as \\ and quotes as \"
func unescapeRegString(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// findClosingQuote finds the position of the closing quote in a line,
// accounting for escaped quotes (preceded by an odd number of backslashes).
// Returns -1 if no valid closing quote is found.
// The search starts at position 1 (assuming the opening quote is at position 0).
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		numBackslashes := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			numBackslashes++
		}
		if numBackslashes%2 == 1 {
			continue
		}
		return i
	}
	return -1
}

// parseHexBytes parses hex data from .reg format (hex:01,02,03,...).
// It handles:
// - Removing the prefix (hex:, hex(7):, etc.) via the colon position
// - Whitespace left over from joined continuation lines
// - Comma-separated hex bytes
// - Single-digit bytes (auto-pads with 0).
func parseHexBytes(hexStr string) ([]byte, error) {
	colonPos := strings.Index(hexStr, ":")
	if colonPos == -1 {
		return nil, errors.New("invalid hex data format: missing colon")
	}
	hexStr = removeWhitespace(hexStr[colonPos+1:])

	parts := strings.Split(hexStr, HexByteSeparator)
	buf := make([]byte, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if len(p) == 1 {
			p = "0" + p
		}
		b, err := hex.DecodeString(p)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q: %w", p, err)
		}
		buf = append(buf, b...)
	}
	return buf, nil
}

// removeWhitespace removes whitespace and line continuation characters
// from a string. This is used when parsing hex data that may span multiple lines.
func removeWhitespace(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, ch := range s {
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' && ch != '\\' {
			result.WriteRune(ch)
		}
	}
	return result.String()
}

// parseHexValueType extracts the registry type from a hex(N): prefix, where
// N is the type number in hex. A plain hex: prefix is REG_BINARY.
func parseHexValueType(payload string) (types.RegType, error) {
	colon := strings.IndexByte(payload, ':')
	if colon < 0 {
		return 0, errors.New("invalid hex data format: missing colon")
	}
	prefix := payload[:colon+1]
	if prefix == HexPrefix {
		return types.REG_BINARY, nil
	}
	open := strings.IndexByte(prefix, '(')
	closing := strings.IndexByte(prefix, ')')
	if open < 0 || closing < open+2 {
		return 0, fmt.Errorf("invalid hex type %q", prefix)
	}
	n, err := strconv.ParseUint(prefix[open+1:closing], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex type %q: %w", prefix, err)
	}
	return types.RegType(n), nil
}
