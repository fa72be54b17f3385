package xnd

import "github.com/ndview/xnd/ndt"

// Bitmap is one level of the recursive validity-bit tree a type's
// optionality implies (spec §3, §4.2). A level with no optional type
// anywhere in its subtree carries an empty, nil Data and no Next/Children;
// bitmap_next and friends treat a nil Data as "always valid" so callers
// never need to special-case the absent case.
type Bitmap struct {
	// Data holds one validity bit per item at this level, packed
	// little-endian within each byte (bit i%8 of byte i/8). Nil when this
	// exact type is not itself optional.
	Data []byte

	// Next is the single child bitmap for FixedDim/VarDim/VarDimElem/Ref/
	// Constr/Nominal/Array elements.
	Next *Bitmap

	// Children holds one bitmap per field for Tuple/Record, and one
	// bitmap per payload type for Union (indexed the same as
	// ndt.Type.UnionTypes).
	Children []Bitmap
}

// IsValid reports whether index i is valid (non-NA) at this exact level.
// A nil Data means the level carries no validity bits at all, i.e.
// everything is valid.
func (b *Bitmap) IsValid(i int64) bool {
	if b == nil || b.Data == nil {
		return true
	}
	return b.Data[i>>3]&(1<<uint(i&7)) != 0
}

// IsNA is the complement of IsValid.
func (b *Bitmap) IsNA(i int64) bool { return !b.IsValid(i) }

// SetValid marks index i valid.
func (b *Bitmap) SetValid(i int64) {
	if b == nil || b.Data == nil {
		return
	}
	b.Data[i>>3] |= 1 << uint(i&7)
}

// SetNA marks index i not-available.
func (b *Bitmap) SetNA(i int64) {
	if b == nil || b.Data == nil {
		return
	}
	b.Data[i>>3] &^= 1 << uint(i&7)
}

func bitmapBytes(n int64) []byte {
	return make([]byte, (n+7)/8)
}

// BitmapInit allocates a Bitmap tree matching t's optionality structure,
// with every bit initialized to valid (spec §4.2, bitmap_init). nitems is
// the number of items at this level (1 for a non-array type reached
// through a Tuple/Record field or Ref/Constr/Nominal/Array indirection).
//
// An optional type whose own NDim() > 0 -- an optional dimension, as
// opposed to an optional leaf or optional element of a dimension -- is
// rejected with ErrOptionalDimension: the original library leaves this
// case unimplemented and this port keeps that contract rather than
// inventing semantics for it (spec Non-goals, Open Questions).
func BitmapInit(t *ndt.Type, nitems int64) (*Bitmap, error) {
	b := &Bitmap{}

	if t.IsOptional() {
		if t.NDim() > 0 {
			return nil, ErrOptionalDimension
		}
		b.Data = bitmapBytes(nitems)
		for i := range b.Data {
			b.Data[i] = 0xff
		}
		trimTrailingBits(b.Data, nitems)
	}

	if !t.SubtreeIsOptional() {
		return b, nil
	}

	switch t.Tag {
	case ndt.FixedDim:
		next, err := BitmapInit(t.Elem, t.FixedShape)
		if err != nil {
			return nil, err
		}
		b.Next = next

	case ndt.VarDim:
		n := int64(1)
		if len(t.VarOffsets) > 0 {
			n = int64(t.VarOffsets[len(t.VarOffsets)-1])
		}
		next, err := BitmapInit(t.Elem, n)
		if err != nil {
			return nil, err
		}
		b.Next = next

	case ndt.VarDimElem, ndt.Ref, ndt.Constr, ndt.Nominal, ndt.Array:
		next, err := BitmapInit(t.Elem, 1)
		if err != nil {
			return nil, err
		}
		b.Next = next

	case ndt.Tuple, ndt.Record:
		children := make([]Bitmap, len(t.FieldTypes))
		for i, ft := range t.FieldTypes {
			c, err := BitmapInit(ft, 1)
			if err != nil {
				return nil, err
			}
			children[i] = *c
		}
		b.Children = children

	case ndt.Union:
		// A union whose subtree is optional would need a bitmap scheme
		// that only the active variant's bit is meaningful; the original
		// library never implements this and hard-fails instead, and this
		// port keeps that contract (spec Non-goals, §7 NotImplemented list).
		return nil, notImplErr("union-type bitmaps are not implemented")

	default:
		// Scalar leaves: nothing further to recurse into.
	}

	return b, nil
}

// trimTrailingBits clears the unused high bits of the last byte so a
// freshly-allocated bitmap never reports spurious validity beyond n.
func trimTrailingBits(data []byte, n int64) {
	if n%8 == 0 || len(data) == 0 {
		return
	}
	last := n / 8
	mask := byte(1<<uint(n%8)) - 1
	data[last] &= mask
}

// Field returns the child bitmap for a Tuple/Record field index, or a nil
// *Bitmap (always-valid) if this level carries no per-field bitmaps.
func (b *Bitmap) Field(i int) *Bitmap {
	if b == nil || b.Children == nil {
		return nil
	}
	return &b.Children[i]
}
