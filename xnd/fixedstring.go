package xnd

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/ndview/xnd/ndt"
)

// textEncoding returns the x/text codec for a FixedString's declared
// encoding, matching its declared byte order (spec §9's FixedString
// carries an explicit endianness like every other type).
func textEncoding(t *ndt.Type) encoding.Encoding {
	le := t.LittleEndian()
	switch t.Encoding {
	case ndt.UTF16:
		if le {
			return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		}
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case ndt.UTF32:
		if le {
			return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
		}
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	default:
		// ASCII and UTF-8 are both represented as a plain byte buffer;
		// encoding.Nop leaves bytes untouched.
		return encoding.Nop
	}
}

// GetFixedString decodes a FixedString view's NUL-trimmed content to a Go
// string (spec §9, §4.4).
func GetFixedString(v *View) (string, error) {
	t := v.Type
	if t.Tag != ndt.FixedString {
		return "", typeErr("GetFixedString: not a FixedString view (tag %v)", t.Tag)
	}
	raw := v.Bytes()
	trimmed := trimFixedStringPadding(raw, t.Encoding)
	if t.Encoding == ndt.ASCII || t.Encoding == ndt.UTF8 {
		return string(trimmed), nil
	}
	dec := textEncoding(t).NewDecoder()
	out, err := dec.Bytes(trimmed)
	if err != nil {
		return "", valueErr("GetFixedString: %v", err)
	}
	return string(out), nil
}

// SetFixedString encodes s into a FixedString view, NUL-padding the
// remainder, and errors if s does not fit in t.StrLen code units.
func SetFixedString(v *View, s string) error {
	t := v.Type
	if t.Tag != ndt.FixedString {
		return typeErr("SetFixedString: not a FixedString view (tag %v)", t.Tag)
	}
	var encoded []byte
	if t.Encoding == ndt.ASCII || t.Encoding == ndt.UTF8 {
		encoded = []byte(s)
	} else {
		enc := textEncoding(t).NewEncoder()
		out, err := enc.Bytes([]byte(s))
		if err != nil {
			return valueErr("SetFixedString: %v", err)
		}
		encoded = out
	}

	capacity := t.StrLen * t.Encoding.UnitSize()
	if int64(len(encoded)) > capacity {
		return valueErr("SetFixedString: encoded length %d exceeds capacity %d", len(encoded), capacity)
	}
	dst := v.Bytes()
	copy(dst, encoded)
	for i := len(encoded); i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}

// trimFixedStringPadding strips trailing NUL code units (per the unit
// width implied by enc) from a fixed-size string buffer.
func trimFixedStringPadding(b []byte, enc ndt.Encoding) []byte {
	unit := int(enc.UnitSize())
	if unit == 0 {
		unit = 1
	}
	end := len(b)
	for end >= unit {
		if !isZero(b[end-unit : end]) {
			break
		}
		end -= unit
	}
	return b[:end]
}

func isZero(b []byte) bool {
	return bytes.Equal(b, make([]byte, len(b)))
}

func copyFixedString(dst, src *View) error {
	dt, st := dst.Type, src.Type
	if st.Tag != ndt.FixedString {
		return valueErr("copyFixedString: expected FixedString source")
	}
	if dt.Encoding == st.Encoding && dt.LittleEndian() == st.LittleEndian() && dt.StrLen == st.StrLen {
		copy(dst.Bytes(), src.Bytes())
		return nil
	}
	s, err := GetFixedString(src)
	if err != nil {
		return err
	}
	return SetFixedString(dst, s)
}
