package ndt

// Flags is the bitmask every type descriptor carries (spec §3, §6).
type Flags uint8

const (
	// FlagLittleEndian is set when the descriptor's data is stored
	// little-endian; unset means big-endian.
	FlagLittleEndian Flags = 1 << iota
	// FlagOptional marks the type as carrying a validity bit.
	FlagOptional
)

// LittleEndian reports the descriptor's configured byte order.
func (f Flags) LittleEndian() bool { return f&FlagLittleEndian != 0 }

// Optional reports whether the descriptor is optional (nullable).
func (f Flags) Optional() bool { return f&FlagOptional != 0 }

// Encoding identifies a FixedString's character encoding.
type Encoding int

const (
	ASCII Encoding = iota
	UTF8
	UTF16
	UTF32
	UCS2 // unimplemented, per spec Non-goals
)

func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ascii"
	case UTF8:
		return "utf8"
	case UTF16:
		return "utf16"
	case UTF32:
		return "utf32"
	case UCS2:
		return "ucs2"
	default:
		return "invalid"
	}
}

// UnitSize returns the number of bytes one code unit occupies for a
// FixedString using this encoding. UTF-8 is treated as single-byte code
// units for datasize purposes (a fixed-size byte buffer holding a UTF-8
// string of at most N bytes), matching how fixed-size text buffers are
// conventionally sized.
func (e Encoding) UnitSize() int64 {
	switch e {
	case ASCII, UTF8:
		return 1
	case UTF16, UCS2:
		return 2
	case UTF32:
		return 4
	default:
		return 0
	}
}
