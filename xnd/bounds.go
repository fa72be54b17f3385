package xnd

import (
	"github.com/ndview/xnd/internal/bits"
	"github.com/ndview/xnd/ndt"
)

// CheckBounds recursively visits the minimum and maximum element of every
// dimension in t -- indices 0 and shape-1 under the dimension's own
// declared step, not a recomputed contiguous size -- and verifies that
// every scalar leaf's byte range [offset, offset+datasize) lies within
// [0, bufsize), propagating a saturating overflow flag through
// ADDi64/MULi64 at each visited element (spec §4.6, bounds_check).
// linearIndex is the starting element offset in t's own addressing
// units, 0 for a freshly adopted buffer.
//
// Because it follows t's actual per-dimension step rather than assuming
// the type is packed contiguous, this also catches an undersized
// borrowed buffer behind a sliced or transposed view -- the exact case
// spec §3 cites this check for ("used when adopting a borrowed
// buffer"). Optional subtrees and VarDimElem are rejected with
// NotImplemented: this check only ever runs over non-optional types,
// per the original library's own scope for it.
func CheckBounds(t *ndt.Type, linearIndex, bufsize int64) error {
	return boundsCheck(t, linearIndex, bufsize)
}

func boundsCheck(t *ndt.Type, index, bufsize int64) error {
	if t.SubtreeIsOptional() || t.Tag == ndt.VarDimElem {
		return notImplErr("CheckBounds: optional subtrees and VarDimElem are not implemented")
	}

	switch t.Tag {
	case ndt.FixedDim:
		if t.FixedShape == 0 {
			return nil
		}
		if err := boundsCheck(t.Elem, index, bufsize); err != nil {
			return err
		}
		var overflow bool
		span := bits.MulI64(t.FixedShape-1, t.FixedStep, &overflow)
		maxIndex := bits.AddI64(index, span, &overflow)
		if overflow {
			return valueErr("CheckBounds: FixedDim index arithmetic overflows int64")
		}
		return boundsCheck(t.Elem, maxIndex, bufsize)

	case ndt.VarDim:
		if len(t.VarOffsets) == 0 {
			return nil
		}
		n := int64(t.VarOffsets[len(t.VarOffsets)-1])
		if n == 0 {
			return nil
		}
		if err := boundsCheck(t.Elem, index, bufsize); err != nil {
			return err
		}
		var overflow bool
		maxIndex := bits.AddI64(index, n-1, &overflow)
		if overflow {
			return valueErr("CheckBounds: VarDim index arithmetic overflows int64")
		}
		return boundsCheck(t.Elem, maxIndex, bufsize)

	default:
		// t.NDim() == 0 here (a scalar, FixedString/FixedBytes, Tuple,
		// Record, Union, Ref, Constr, Nominal, Array, or Categorical):
		// index is an element count in this type's own units. Convert it
		// to a byte offset and check the leaf's own range; anything this
		// type itself points further into (a Ref's target, say) is a
		// separate allocation outside the buffer under test.
		var overflow bool
		byteOffset := bits.MulI64(index, t.DataSize(), &overflow)
		end := bits.AddI64(byteOffset, t.DataSize(), &overflow)
		if overflow {
			return valueErr("CheckBounds: byte offset arithmetic overflows int64")
		}
		if byteOffset < 0 || end > bufsize {
			return valueErr("CheckBounds: leaf range [%d,%d) outside buffer of size %d", byteOffset, end, bufsize)
		}
		return nil
	}
}
