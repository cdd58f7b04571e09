package types

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindBinary
	KindString
	KindInteger
	KindStrings
)

func (k ValueKind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindStrings:
		return "strings"
	default:
		return "invalid"
	}
}

// Value is registry value data as a closed variant: binary, text, integer
// or a list of strings. The zero Value is invalid and has no registry type.
type Value struct {
	kind ValueKind
	bin  []byte
	str  string
	num  int64
	strs []string
}

// Binary returns a binary Value holding a copy of b.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, bin: bytes.Clone(b)}
}

// String returns a text Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Integer returns an integer Value.
func Integer(n int64) Value {
	return Value{kind: KindInteger, num: n}
}

// Strings returns a multi-string Value holding a copy of ss.
func Strings(ss []string) Value {
	return Value{kind: KindStrings, strs: slices.Clone(ss)}
}

// ValueOf converts a dynamic Go value to a Value. []byte, string, []string,
// every integer kind and Value itself are accepted; anything else fails with
// ErrUnsupportedType, as do unsigned integers above MaxInt64.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case []byte:
		return Binary(x), nil
	case string:
		return String(x), nil
	case []string:
		return Strings(x), nil
	case int:
		return Integer(int64(x)), nil
	case int8:
		return Integer(int64(x)), nil
	case int16:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return ValueOf(uint64(x))
	case uint8:
		return Integer(int64(x)), nil
	case uint16:
		return Integer(int64(x)), nil
	case uint32:
		return Integer(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, NewError(ErrKindUnsupportedType, "integer out of range", strconv.FormatUint(x, 10), nil)
		}
		return Integer(int64(x)), nil
	}
	return Value{}, NewError(ErrKindUnsupportedType, ErrUnsupportedType.Msg, fmt.Sprintf("%T", v), nil)
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether v holds data.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Bytes returns the binary payload; ok is false for other kinds.
func (v Value) Bytes() (b []byte, ok bool) { return v.bin, v.kind == KindBinary }

// Text returns the text payload; ok is false for other kinds.
func (v Value) Text() (s string, ok bool) { return v.str, v.kind == KindString }

// Int returns the integer payload; ok is false for other kinds.
func (v Value) Int() (n int64, ok bool) { return v.num, v.kind == KindInteger }

// List returns the multi-string payload; ok is false for other kinds.
func (v Value) List() (ss []string, ok bool) { return v.strs, v.kind == KindStrings }

// Interface returns the payload as a plain Go value: []byte, string, int64
// or []string. It returns nil for the zero Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBinary:
		return v.bin
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindStrings:
		return v.strs
	}
	return nil
}

// Equal reports whether v and o hold the same kind and data.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBinary:
		return bytes.Equal(v.bin, o.bin)
	case KindString:
		return v.str == o.str
	case KindInteger:
		return v.num == o.num
	case KindStrings:
		return slices.Equal(v.strs, o.strs)
	}
	return true
}

// String formats the payload for display.
func (v Value) String() string {
	switch v.kind {
	case KindBinary:
		return fmt.Sprintf("% x", v.bin)
	case KindString:
		return v.str
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindStrings:
		return strings.Join(v.strs, ", ")
	}
	return "<invalid>"
}

// -----------------------------------------------------------------------------
// Type Inference
// -----------------------------------------------------------------------------

// placeholderRe matches an environment placeholder such as %appdata%.
var placeholderRe = regexp.MustCompile(`%[^%]+%`)

// HasPlaceholder reports whether s contains a %NAME% token.
func HasPlaceholder(s string) bool { return placeholderRe.MatchString(s) }

// InferType picks the registry type for v:
//
//	binary                     REG_BINARY
//	text with a %NAME% token   REG_EXPAND_SZ
//	other text                 REG_SZ
//	integer in [0, MaxInt32]   REG_DWORD
//	other integer              REG_QWORD
//	list of strings            REG_MULTI_SZ
//
// The zero Value fails with ErrUnsupportedType.
func InferType(v Value) (RegType, error) {
	switch v.kind {
	case KindBinary:
		return REG_BINARY, nil
	case KindString:
		if HasPlaceholder(v.str) {
			return REG_EXPAND_SZ, nil
		}
		return REG_SZ, nil
	case KindInteger:
		if v.num < 0 || v.num > math.MaxInt32 {
			return REG_QWORD, nil
		}
		return REG_DWORD, nil
	case KindStrings:
		return REG_MULTI_SZ, nil
	}
	return REG_NONE, NewError(ErrKindUnsupportedType, ErrUnsupportedType.Msg, v.kind.String(), nil)
}
