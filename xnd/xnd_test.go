package xnd

import (
	"testing"

	"github.com/ndview/xnd/ndt"
)

func TestMasterFixedDimRoundTrip(t *testing.T) {
	ty, err := ndt.Parse("3 * 2 * 2 * uint16")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := NewMaster(ty)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}

	v := &m.View
	for i := int64(0); i < 3; i++ {
		for j := int64(0); j < 2; j++ {
			for k := int64(0); k < 2; k++ {
				v1, err := FixedDimNext(v, i)
				if err != nil {
					t.Fatalf("FixedDimNext(%d): %v", i, err)
				}
				v2, err := FixedDimNext(v1, j)
				if err != nil {
					t.Fatalf("FixedDimNext(%d): %v", j, err)
				}
				v3, err := FixedDimNext(v2, k)
				if err != nil {
					t.Fatalf("FixedDimNext(%d): %v", k, err)
				}
				want := uint16(i*4 + j*2 + k)
				if err := writeScalarFloat(v3, float64(want)); err != nil {
					t.Fatalf("write: %v", err)
				}
			}
		}
	}

	v1, _ := FixedDimNext(v, 2)
	v2, _ := FixedDimNext(v1, 1)
	v3, _ := FixedDimNext(v2, 1)
	got, err := readScalarFloat(v3)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != 11 {
		t.Fatalf("got %v want 11", got)
	}
}

func TestVarDimTraversal(t *testing.T) {
	ty, err := ndt.Parse("3 * var(2,3,1) * var(2,2,3,1,1,2) * uint16")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := NewMaster(ty)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}

	// Fill with 0..10 per spec's worked example.
	v := &m.View
	n := int64(0)
	outerRows := 3
	for row := 0; row < outerRows; row++ {
		outer, err := VarDimRow(v, int64(row))
		if err != nil {
			t.Fatalf("VarDimRow: %v", err)
		}
		_, _, outerShape, err := ndt.VarIndices(outer.Type, outer.Index)
		if err != nil {
			t.Fatalf("VarIndices: %v", err)
		}
		for j := int64(0); j < outerShape; j++ {
			inner, err := VarDimNext(outer, j)
			if err != nil {
				t.Fatalf("VarDimNext: %v", err)
			}
			_, _, innerShape, err := ndt.VarIndices(inner.Type, inner.Index)
			if err != nil {
				t.Fatalf("VarIndices inner: %v", err)
			}
			for k := int64(0); k < innerShape; k++ {
				leaf, err := VarDimNext(inner, k)
				if err != nil {
					t.Fatalf("VarDimNext leaf: %v", err)
				}
				if err := writeScalarFloat(leaf, float64(n)); err != nil {
					t.Fatalf("write: %v", err)
				}
				n++
			}
		}
	}
	if n != 11 {
		t.Fatalf("expected 11 total elements, filled %d", n)
	}
}

func TestBitmapOptionalDimensionNotImplemented(t *testing.T) {
	elem := ndt.NewUint16(ndt.FlagLittleEndian)
	inner := ndt.NewVarDimFromLengths([]int64{2, 2, 3, 0, 1, 2}, elem, ndt.FlagLittleEndian|ndt.FlagOptional)
	_, err := BitmapInit(inner, 1)
	if err == nil {
		t.Fatal("expected NotImplemented error for an optional VarDim")
	}
	xerr, ok := err.(*Error)
	if !ok || xerr.Kind != NotImplementedErr {
		t.Fatalf("got %v, want NotImplementedErr", err)
	}
}

func TestCopyScalarCoercion(t *testing.T) {
	srcType := ndt.NewInt32(ndt.FlagLittleEndian)
	dstType := ndt.NewFloat64(ndt.FlagLittleEndian)
	srcM, _ := NewMaster(srcType)
	dstM, _ := NewMaster(dstType)

	if err := writeScalarFloat(&srcM.View, 42); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Copy(&dstM.View, &srcM.View); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	got, err := readScalarFloat(&dstM.View)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %v want 42", got)
	}
}

func TestCopyNAPropagation(t *testing.T) {
	ty := ndt.NewInt32(ndt.FlagLittleEndian | ndt.FlagOptional)
	srcM, _ := NewMaster(ty)
	dstM, _ := NewMaster(ty)

	srcM.View.Bitmap.SetNA(0)
	if err := Copy(&dstM.View, &srcM.View); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if dstM.View.IsValid() {
		t.Fatal("expected NA to propagate")
	}
}

func TestEqualAndIdentical(t *testing.T) {
	ty, _ := ndt.Parse("3 * uint16")
	m1, _ := NewMaster(ty)
	m2, _ := NewMaster(ty)

	if !Equal(&m1.View, &m2.View) {
		t.Fatal("two freshly zeroed masters should be Equal")
	}
	if !Identical(&m1.View, &m2.View) {
		t.Fatal("two distinct buffers with identical content should be Identical")
	}
	if !Identical(&m1.View, &m1.View) {
		t.Fatal("a view should be Identical to itself")
	}

	v, _ := FixedDimNext(&m2.View, 0)
	if err := writeScalarFloat(v, 99); err != nil {
		t.Fatalf("write: %v", err)
	}
	if Identical(&m1.View, &m2.View) {
		t.Fatal("buffers with diverging content should not be Identical")
	}
	if Equal(&m1.View, &m2.View) {
		t.Fatal("buffers with diverging content should not be Equal")
	}
}

func TestSubscribeFieldAndSlice(t *testing.T) {
	ty, err := ndt.Parse("{x: int32, y: float64}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := NewMaster(ty)
	if err != nil {
		t.Fatalf("NewMaster: %v", err)
	}
	xv, err := Subscribe(&m.View, FieldKey("x"))
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := writeScalarFloat(xv, 7); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, _ := readScalarFloat(xv)
	if got != 7 {
		t.Fatalf("got %v want 7", got)
	}

	arrTy, _ := ndt.Parse("10 * uint8")
	am, _ := NewMaster(arrTy)
	sv, err := Subscribe(&am.View, SliceKey(ndt.Slice{Start: 2, Stop: 8, Step: 2, HasStart: true, HasStop: true}))
	if err != nil {
		t.Fatalf("Subscribe slice: %v", err)
	}
	if sv.Type.FixedShape != 3 {
		t.Fatalf("sliced shape: got %d want 3", sv.Type.FixedShape)
	}
}

func TestTransposeDefaultReversesAxes(t *testing.T) {
	ty, _ := ndt.Parse("2 * 3 * 4 * uint8")
	m, _ := NewMaster(ty)

	tv, xerr := Transpose(m.View, nil)
	if xerr != nil {
		t.Fatalf("Transpose: %v", xerr)
	}
	shape, _, _, ok := tv.Type.NDArrayShape()
	if !ok || shape[0] != 4 || shape[1] != 3 || shape[2] != 2 {
		t.Fatalf("got shape %v, want [4 3 2]", shape)
	}
}

func TestTransposeExplicitPermutation(t *testing.T) {
	ty, _ := ndt.Parse("2 * 3 * uint8")
	m, _ := NewMaster(ty)

	tv, xerr := Transpose(m.View, []int{1, 0})
	if xerr != nil {
		t.Fatalf("Transpose: %v", xerr)
	}
	shape, _, _, ok := tv.Type.NDArrayShape()
	if !ok || shape[0] != 3 || shape[1] != 2 {
		t.Fatalf("got shape %v, want [3 2]", shape)
	}

	if _, xerr := Transpose(m.View, []int{0, 0}); xerr == nil {
		t.Fatal("expected an error for a non-permutation")
	}
}

func TestCheckBounds(t *testing.T) {
	ty, _ := ndt.Parse("3 * 4 * float32")
	if err := CheckBounds(ty, 0, 48); err != nil {
		t.Fatalf("CheckBounds: %v", err)
	}
	if err := CheckBounds(ty, 0, 47); err == nil {
		t.Fatal("expected CheckBounds to reject an undersized buffer")
	}
}

func TestReshapeCContiguous(t *testing.T) {
	ty, _ := ndt.Parse("6 * uint8")
	reshaped, err := Reshape(ty, []int64{2, 3}, CContiguous)
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	shape, _, _, ok := reshaped.NDArrayShape()
	if !ok || shape[0] != 2 || shape[1] != 3 {
		t.Fatalf("got shape %v", shape)
	}
}

func TestSplitBalanced(t *testing.T) {
	ty, _ := ndt.Parse("10 * uint8")
	m, _ := NewMaster(ty)
	for i := int64(0); i < 10; i++ {
		v, _ := FixedDimNext(&m.View, i)
		writeScalarFloat(v, float64(i))
	}

	n := int64(3)
	parts, err := Split(&m.View, &n, MaxDim)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if n != 3 || len(parts) != 3 {
		t.Fatalf("got %d parts (n=%d)", len(parts), n)
	}
	total := int64(0)
	for _, p := range parts {
		total += p.Type.FixedShape
	}
	if total != 10 {
		t.Fatalf("parts don't cover all rows: total %d", total)
	}
}

func TestSplitRecursesIntoInnerAxisWhenOuterAxisIsTooSmall(t *testing.T) {
	// Outermost axis only has 2 rows, but requesting 4 parts must recurse
	// into the next axis (3 rows) to manufacture them rather than
	// silently capping the part count at the outer axis length.
	ty, _ := ndt.Parse("2 * 3 * uint8")
	m, _ := NewMaster(ty)

	n := int64(4)
	parts, err := Split(&m.View, &n, MaxDim)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if n != 4 || len(parts) != 4 {
		t.Fatalf("got %d parts (n=%d), want 4", len(parts), n)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	ty, _ := ndt.Parse("3 * uint16")
	m, _ := NewMaster(ty)
	for i := int64(0); i < 3; i++ {
		v, _ := FixedDimNext(&m.View, i)
		writeScalarFloat(v, float64(i*10))
	}

	blob, err := Serialize(&m.View)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	m2, err := Deserialize(ty, blob)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !Equal(&m.View, &m2.View) {
		t.Fatal("round-tripped value differs")
	}
}

func TestFixedString(t *testing.T) {
	ty := ndt.NewFixedString(8, ndt.UTF8, ndt.FlagLittleEndian)
	m, _ := NewMaster(ty)
	if err := SetFixedString(&m.View, "hi"); err != nil {
		t.Fatalf("SetFixedString: %v", err)
	}
	got, err := GetFixedString(&m.View)
	if err != nil {
		t.Fatalf("GetFixedString: %v", err)
	}
	if got != "hi" {
		t.Fatalf("got %q want %q", got, "hi")
	}
}
