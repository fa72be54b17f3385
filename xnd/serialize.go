package xnd

import "github.com/ndview/xnd/ndt"

// Serialize flattens a pointer-free value into a self-contained byte
// buffer: a fixed-size header (bitmap bytes, if this type's subtree is
// optional) followed by the raw data bytes (spec §6). Types that embed a
// pointer (Ref, String, Bytes, Array) cannot be serialized this way,
// since there is nothing portable to write in place of the pointer; this
// mirrors the library's own IsPointerFree gate on cross-process transfer.
func Serialize(v *View) ([]byte, error) {
	t := v.Type
	if !t.IsPointerFree() {
		return nil, notImplErr("Serialize: type %v embeds a pointer and cannot be serialized", t.Tag)
	}

	var header []byte
	if t.SubtreeIsOptional() {
		header = flattenBitmap(v.Bitmap, bitmapBitCount(t))
	}

	out := make([]byte, 0, len(header)+len(v.Bytes()))
	out = append(out, header...)
	out = append(out, v.Bytes()...)
	return out, nil
}

// Deserialize is Serialize's inverse: it allocates a fresh Master of type
// t and copies data (produced by Serialize for the same type) into it.
func Deserialize(t *ndt.Type, data []byte) (*Master, error) {
	if !t.IsPointerFree() {
		return nil, notImplErr("Deserialize: type %v embeds a pointer and cannot be deserialized", t.Tag)
	}

	m, err := NewMaster(t)
	if err != nil {
		return nil, err
	}

	headerLen := 0
	if t.SubtreeIsOptional() {
		headerLen = int((bitmapBitCount(t) + 7) / 8)
	}
	if int64(len(data)) < int64(headerLen)+t.DataSize() {
		return nil, valueErr("Deserialize: buffer too small: have %d, need %d", len(data), int64(headerLen)+t.DataSize())
	}

	if headerLen > 0 {
		unflattenBitmap(m.View.Bitmap, data[:headerLen], bitmapBitCount(t))
	}
	copy(m.View.Data, data[headerLen:headerLen+int(t.DataSize())])
	return m, nil
}

// bitmapBitCount returns the total number of validity bits a type's
// bitmap tree carries, the same count BitmapInit used to size Data at
// every optional level; it is recomputed rather than stored since it is
// only needed for the flat wire format.
func bitmapBitCount(t *ndt.Type) int64 {
	var n int64
	if t.IsOptional() {
		n = 1
	}
	switch t.Tag {
	case ndt.FixedDim:
		n += t.FixedShape * bitmapBitCount(t.Elem)
	case ndt.VarDim:
		rows := int64(1)
		if len(t.VarOffsets) > 0 {
			rows = int64(t.VarOffsets[len(t.VarOffsets)-1])
		}
		n += rows * bitmapBitCount(t.Elem)
	case ndt.VarDimElem, ndt.Ref, ndt.Constr, ndt.Nominal, ndt.Array:
		n += bitmapBitCount(t.Elem)
	case ndt.Tuple, ndt.Record:
		for _, ft := range t.FieldTypes {
			n += bitmapBitCount(ft)
		}
	case ndt.Union:
		for _, ut := range t.UnionTypes {
			n += bitmapBitCount(ut)
		}
	}
	return n
}

// flattenBitmap walks a Bitmap tree depth-first and concatenates every
// level's own validity bits into one flat, packed bitstream.
func flattenBitmap(b *Bitmap, n int64) []byte {
	out := make([]byte, (n+7)/8)
	var pos int64
	var walk func(b *Bitmap)
	walk = func(b *Bitmap) {
		if b == nil {
			return
		}
		if b.Data != nil {
			bitcopy(out, &pos, b.Data, bitmapLevelCount(b))
		}
		if b.Next != nil {
			walk(b.Next)
		}
		for i := range b.Children {
			walk(&b.Children[i])
		}
	}
	walk(b)
	return out
}

func unflattenBitmap(b *Bitmap, data []byte, n int64) {
	var pos int64
	var walk func(b *Bitmap)
	walk = func(b *Bitmap) {
		if b == nil {
			return
		}
		if b.Data != nil {
			bitcopyInto(b.Data, data, &pos, bitmapLevelCount(b))
		}
		if b.Next != nil {
			walk(b.Next)
		}
		for i := range b.Children {
			walk(&b.Children[i])
		}
	}
	walk(b)
}

func bitmapLevelCount(b *Bitmap) int64 { return int64(len(b.Data)) * 8 }

func bitcopy(dst []byte, pos *int64, src []byte, n int64) {
	for i := int64(0); i < n; i++ {
		bit := src[i>>3]&(1<<uint(i&7)) != 0
		if bit {
			dst[*pos>>3] |= 1 << uint(*pos&7)
		}
		*pos++
	}
}

func bitcopyInto(dst []byte, src []byte, pos *int64, n int64) {
	for i := int64(0); i < n; i++ {
		bit := src[*pos>>3]&(1<<uint(*pos&7)) != 0
		if bit {
			dst[i>>3] |= 1 << uint(i&7)
		}
		*pos++
	}
}
