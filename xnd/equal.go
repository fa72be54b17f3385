package xnd

import (
	"bytes"

	"github.com/ndview/xnd/ndt"
)

// Equal reports whether a and b hold the same value: same validity at
// every position, and recursively equal contents where valid. Leaf types
// may differ as long as both are scalar numeric kinds, compared through
// float64 coercion the same way Copy does (spec §4.9).
func Equal(a, b *View) bool {
	av, bv := a.IsValid(), b.IsValid()
	if av != bv {
		return false
	}
	if !av {
		return true
	}

	at, bt := a.Type, b.Type

	switch at.Tag {
	case ndt.FixedDim:
		if bt.Tag != ndt.FixedDim || at.FixedShape != bt.FixedShape {
			return false
		}
		for i := int64(0); i < at.FixedShape; i++ {
			av, err1 := FixedDimNext(a, i)
			bv, err2 := FixedDimNext(b, i)
			if err1 != nil || err2 != nil || !Equal(av, bv) {
				return false
			}
		}
		return true

	case ndt.VarDim:
		if bt.Tag != ndt.VarDim {
			return false
		}
		_, _, ashape, err1 := ndt.VarIndices(at, a.Index)
		_, _, bshape, err2 := ndt.VarIndices(bt, b.Index)
		if err1 != nil || err2 != nil || ashape != bshape {
			return false
		}
		for i := int64(0); i < ashape; i++ {
			av, err1 := VarDimNext(a, i)
			bv, err2 := VarDimNext(b, i)
			if err1 != nil || err2 != nil || !Equal(av, bv) {
				return false
			}
		}
		return true

	case ndt.Tuple:
		if bt.Tag != ndt.Tuple || len(at.FieldTypes) != len(bt.FieldTypes) {
			return false
		}
		for i := range at.FieldTypes {
			av, err1 := TupleNext(a, i)
			bv, err2 := TupleNext(b, i)
			if err1 != nil || err2 != nil || !Equal(av, bv) {
				return false
			}
		}
		return true

	case ndt.Record:
		if bt.Tag != ndt.Record || len(at.FieldTypes) != len(bt.FieldTypes) {
			return false
		}
		for i := range at.FieldTypes {
			if at.FieldNames[i] != bt.FieldNames[i] {
				return false
			}
			av, err1 := RecordNext(a, i)
			bv, err2 := RecordNext(b, i)
			if err1 != nil || err2 != nil || !Equal(av, bv) {
				return false
			}
		}
		return true

	case ndt.Union:
		if bt.Tag != ndt.Union {
			return false
		}
		atag, err1 := ActiveUnionTag(a)
		btag, err2 := ActiveUnionTag(b)
		if err1 != nil || err2 != nil || atag != btag {
			return false
		}
		av, err1 := UnionNext(a)
		bv, err2 := UnionNext(b)
		if err1 != nil || err2 != nil {
			return false
		}
		return Equal(av, bv)

	case ndt.Ref:
		if bt.Tag != ndt.Ref {
			return false
		}
		av, err1 := RefNext(a)
		bv, err2 := RefNext(b)
		if err1 != nil || err2 != nil {
			return false
		}
		return Equal(av, bv)

	case ndt.Constr:
		if bt.Tag != ndt.Constr || at.Name != bt.Name {
			return false
		}
		av, err1 := ConstrNext(a)
		bv, err2 := ConstrNext(b)
		if err1 != nil || err2 != nil {
			return false
		}
		return Equal(av, bv)

	case ndt.Nominal:
		if bt.Tag != ndt.Nominal || at.Name != bt.Name {
			return false
		}
		av, err1 := NominalNext(a)
		bv, err2 := NominalNext(b)
		if err1 != nil || err2 != nil {
			return false
		}
		return Equal(av, bv)

	case ndt.FixedString:
		if bt.Tag != ndt.FixedString {
			return false
		}
		as, err1 := GetFixedString(a)
		bs, err2 := GetFixedString(b)
		return err1 == nil && err2 == nil && as == bs

	case ndt.FixedBytes, ndt.Categorical:
		if bt.Tag != at.Tag {
			return false
		}
		return bytes.Equal(a.Bytes(), b.Bytes())

	default:
		if isScalarNumeric(at) && isScalarNumeric(bt) {
			ax, err1 := readScalarFloat(a)
			bx, err2 := readScalarFloat(b)
			return err1 == nil && err2 == nil && ax == bx
		}
		return false
	}
}

// Identical reports whether a and b hold byte-for-byte identical content:
// structurally equal types, byte-identical bitmap trees, and the same
// datasize bytes of payload (spec §4.9). Unlike Identical's name might
// suggest, this is a content comparison, not a same-allocation check --
// a deep copy into a freshly allocated buffer is Identical to its source
// as long as nothing about it has since diverged.
func Identical(a, b *View) bool {
	if !ndt.Equal(a.Type, b.Type) {
		return false
	}
	if !bitmapsEqual(a.Bitmap, b.Bitmap) {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// bitmapsEqual compares two validity-bit trees level by level: the same
// packed bits at this level, then the same Next child (or both absent)
// and the same Children, recursively.
func bitmapsEqual(a, b *Bitmap) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !bytes.Equal(a.Data, b.Data) {
		return false
	}
	if !bitmapsEqual(a.Next, b.Next) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !bitmapsEqual(&a.Children[i], &b.Children[i]) {
			return false
		}
	}
	return true
}
