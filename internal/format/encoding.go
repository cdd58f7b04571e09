package format

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Binary encoding utilities for registry value data.
//
// Integers are little-endian (REG_DWORD_BE aside); strings are UTF-16LE.
// The UTF-16 transcoding goes through golang.org/x/text so unpaired
// surrogates and invalid UTF-8 are replaced instead of silently truncated.

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// EncodeUTF16LE converts s to UTF-16LE without a terminator.
func EncodeUTF16LE(s string) []byte {
	out, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// invalid input is replaced with U+FFFD, so this does not happen
		return nil
	}
	return out
}

// EncodeUTF16LEZeroTerminated converts s to UTF-16LE followed by a NUL code unit.
func EncodeUTF16LEZeroTerminated(s string) []byte {
	return append(EncodeUTF16LE(s), UTF16NullTerminator...)
}

// DecodeUTF16LE converts UTF-16LE data to a string, stopping at the first
// NUL code unit. A trailing odd byte is ignored.
func DecodeUTF16LE(b []byte) string {
	b = b[:len(b)-len(b)%UTF16CodeUnitSize]
	if i := indexNull(b); i >= 0 {
		b = b[:i]
	}
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}

// indexNull returns the byte offset of the first aligned NUL code unit.
func indexNull(b []byte) int {
	for i := 0; i+1 < len(b); i += UTF16CodeUnitSize {
		if b[i] == 0 && b[i+1] == 0 {
			return i
		}
	}
	return -1
}

// EncodeMultiString encodes a REG_MULTI_SZ list: each element NUL-terminated,
// the list closed by an extra NUL.
func EncodeMultiString(values []string) []byte {
	var buf bytes.Buffer
	for _, v := range values {
		buf.Write(EncodeUTF16LEZeroTerminated(v))
	}
	buf.Write(UTF16NullTerminator)
	return buf.Bytes()
}

// DecodeMultiString splits REG_MULTI_SZ data into its elements. Decoding
// stops at the first empty element, which terminates the list.
func DecodeMultiString(b []byte) []string {
	b = b[:len(b)-len(b)%UTF16CodeUnitSize]
	out := []string{}
	for len(b) > 0 {
		i := indexNull(b)
		if i == 0 {
			break
		}
		if i < 0 {
			out = append(out, DecodeUTF16LE(b))
			break
		}
		out = append(out, DecodeUTF16LE(b[:i]))
		b = b[i+UTF16CodeUnitSize:]
	}
	return out
}
