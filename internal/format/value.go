package format

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/joshuapare/regedit/pkg/types"
)

// EncodeValue converts v to the raw data of registry type t.
//
// Text types need a String (REG_MULTI_SZ also takes Strings). REG_DWORD needs
// an Integer in [0, MaxUint32]; REG_QWORD takes any Integer and stores
// negative ones in two's complement. Everything else needs Binary.
// A mismatch fails with types.ErrTypeMismatch.
func EncodeValue(t types.RegType, v types.Value) ([]byte, error) {
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		if s, ok := v.Text(); ok {
			return EncodeUTF16LEZeroTerminated(s), nil
		}
	case types.REG_MULTI_SZ:
		if ss, ok := v.List(); ok {
			return EncodeMultiString(ss), nil
		}
		if s, ok := v.Text(); ok {
			return EncodeMultiString([]string{s}), nil
		}
	case types.REG_DWORD, types.REG_DWORD_BE:
		n, ok := v.Int()
		if !ok || n < 0 || n > math.MaxUint32 {
			break
		}
		data := make([]byte, DWORDSize)
		if t == types.REG_DWORD_BE {
			binary.BigEndian.PutUint32(data, uint32(n))
		} else {
			PutU32(data, 0, uint32(n))
		}
		return data, nil
	case types.REG_QWORD:
		if n, ok := v.Int(); ok {
			data := make([]byte, QWORDSize)
			PutU64(data, 0, uint64(n))
			return data, nil
		}
	default:
		if b, ok := v.Bytes(); ok {
			return bytes.Clone(b), nil
		}
	}
	return nil, types.NewError(types.ErrKindType, types.ErrTypeMismatch.Msg,
		v.Kind().String()+" as "+t.String(), nil)
}

// DecodeValue converts raw registry data of type t to a Value.
//
// REG_DWORD is read as an unsigned 32-bit integer and REG_QWORD as a signed
// 64-bit integer, so every Integer written with an inferred type reads back
// unchanged. Integer data shorter than its width, and every type without a
// text or integer meaning, decode as Binary.
func DecodeValue(t types.RegType, data []byte) types.Value {
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return types.String(DecodeUTF16LE(data))
	case types.REG_MULTI_SZ:
		return types.Strings(DecodeMultiString(data))
	case types.REG_DWORD:
		if len(data) >= DWORDSize {
			return types.Integer(int64(ReadU32(data, 0)))
		}
	case types.REG_DWORD_BE:
		if len(data) >= DWORDSize {
			return types.Integer(int64(binary.BigEndian.Uint32(data)))
		}
	case types.REG_QWORD:
		if len(data) >= QWORDSize {
			return types.Integer(int64(ReadU64(data, 0)))
		}
	}
	return types.Binary(data)
}
