// Package codec converts registry value data between the raw byte image a
// store returns and Go values.
//
// Mapping by type:
//
//	REG_SZ, REG_EXPAND_SZ, REG_LINK  string   (UTF-16LE, NUL terminated)
//	REG_MULTI_SZ                     []string (UTF-16LE, NUL separated, double-NUL terminated)
//	REG_DWORD                        uint32   (little-endian)
//	REG_DWORD_BE                     uint32   (big-endian)
//	REG_QWORD                        uint64   (little-endian)
//	REG_NONE                         nil when empty, []byte otherwise
//	everything else                  []byte
package codec
