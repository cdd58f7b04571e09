package format

const (
	// DWORDSize is the size of REG_DWORD and REG_DWORD_BE values in bytes (uint32).
	DWORDSize = 4

	// QWORDSize is the size of REG_QWORD values in bytes (uint64).
	QWORDSize = 8

	// UTF16CodeUnitSize is the size of a UTF-16 code unit in bytes.
	UTF16CodeUnitSize = 2
)

// UTF16NullTerminator terminates REG_SZ/REG_EXPAND_SZ data and each
// REG_MULTI_SZ element.
var UTF16NullTerminator = []byte{0x00, 0x00}
