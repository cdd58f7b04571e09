package regtext

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regedit/internal/format"
	"github.com/joshuapare/regedit/pkg/types"
)

// ParseOptions controls the text encoding Parse expects when the data has
// no byte order mark.
type ParseOptions struct {
	// InputEncoding is EncodingUTF8 (default), EncodingUTF16LE or
	// EncodingWindows1252.
	InputEncoding string
}

// Parse converts .reg text into ops, in file order. Repeated sections yield
// one CreateKey. Hex payloads may span lines joined by a trailing backslash.
func Parse(data []byte, opts ParseOptions) ([]Op, error) {
	text, err := decodeInput(data, opts.InputEncoding)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxLineSize)

	var (
		ops        []Op
		seenHeader bool
		current    string
		pending    string
		lineNo     int
	)
	seenKeys := make(map[string]bool)

	handle := func(trim string) error {
		if !seenHeader {
			if trim != RegFileHeader {
				return fmt.Errorf("regtext: missing header")
			}
			seenHeader = true
			return nil
		}
		if strings.HasPrefix(trim, KeyOpenBracket) {
			if !strings.HasSuffix(trim, KeyCloseBracket) {
				return fmt.Errorf("regtext: line %d: malformed section %q", lineNo, trim)
			}
			section := strings.TrimSuffix(strings.TrimPrefix(trim, KeyOpenBracket), KeyCloseBracket)
			if strings.HasPrefix(section, DeleteKeyPrefix) {
				ops = append(ops, DeleteKey{Path: strings.TrimSpace(section[1:])})
				current = ""
				return nil
			}
			current = section
			if lower := strings.ToLower(current); !seenKeys[lower] {
				ops = append(ops, CreateKey{Path: current})
				seenKeys[lower] = true
			}
			return nil
		}
		if current == "" {
			return fmt.Errorf("regtext: line %d: value without section: %q", lineNo, trim)
		}
		op, err := parseValueLine(current, trim)
		if err != nil {
			return fmt.Errorf("regtext: line %d: %w", lineNo, err)
		}
		ops = append(ops, op)
		return nil
	}

	for scanner.Scan() {
		lineNo++
		trim := strings.TrimSpace(strings.TrimRight(scanner.Text(), CR))
		if pending != "" {
			trim = pending + trim
			pending = ""
		} else if trim == "" || strings.HasPrefix(trim, CommentPrefix) {
			continue
		}
		if strings.HasSuffix(trim, Backslash) && !strings.HasPrefix(trim, KeyOpenBracket) {
			pending = strings.TrimSuffix(trim, Backslash)
			continue
		}
		if err := handle(trim); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("regtext: %w", err)
	}
	if pending != "" {
		if err := handle(pending); err != nil {
			return nil, err
		}
	}
	if !seenHeader {
		return nil, fmt.Errorf("regtext: missing header")
	}
	return ops, nil
}

func parseValueLine(path, line string) (Op, error) {
	if strings.HasPrefix(line, DefaultValuePrefix) {
		return parseValue(path, "", line[len(DefaultValuePrefix):])
	}
	if !strings.HasPrefix(line, Quote) {
		return nil, fmt.Errorf("malformed value line %q", line)
	}
	end := findClosingQuote(line)
	if end < 0 {
		return nil, fmt.Errorf("unterminated value name in %q", line)
	}
	name := unescapeRegString(line[1:end])
	rest := strings.TrimLeft(line[end+1:], " \t")
	if !strings.HasPrefix(rest, ValueAssignment) {
		return nil, fmt.Errorf("missing '=' in %q", line)
	}
	return parseValue(path, name, rest[1:])
}

func parseValue(path, name, payload string) (Op, error) {
	payload = strings.TrimSpace(payload)
	if payload == DeleteValueToken {
		return DeleteValue{Path: path, Name: name}, nil
	}
	if strings.HasPrefix(payload, Quote) {
		if len(payload) < 2 || findClosingQuote(payload) != len(payload)-1 {
			return nil, fmt.Errorf("unterminated string %q", payload)
		}
		value := unescapeRegString(payload[1 : len(payload)-1])
		return SetValue{Path: path, Name: name, Type: types.REG_SZ, Data: format.EncodeUTF16LEZeroTerminated(value)}, nil
	}
	if strings.HasPrefix(strings.ToLower(payload), DWORDPrefix) {
		hexPart := payload[len(DWORDPrefix):]
		if len(hexPart) != DWORDHexLength {
			return nil, fmt.Errorf("invalid dword %q", payload)
		}
		n, err := strconv.ParseUint(hexPart, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid dword %q: %w", payload, err)
		}
		buf := make([]byte, format.DWORDSize)
		format.PutU32(buf, 0, uint32(n))
		return SetValue{Path: path, Name: name, Type: types.REG_DWORD, Data: buf}, nil
	}
	if strings.HasPrefix(strings.ToLower(payload), ValueTypeHex) {
		typ, err := parseHexValueType(payload)
		if err != nil {
			return nil, err
		}
		data, err := parseHexBytes(payload)
		if err != nil {
			return nil, err
		}
		return SetValue{Path: path, Name: name, Type: typ, Data: data}, nil
	}
	return nil, fmt.Errorf("unsupported value %q", payload)
}
