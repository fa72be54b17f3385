package xnd

import "github.com/ndview/xnd/ndt"

// View is the traversal cursor the spec's component design threads
// through every recursive descent: a bitmap position, an index, a type,
// and a location in a shared backing buffer (spec §3). Go code addresses
// memory through a slice-plus-offset pair rather than a raw pointer, but
// the four fields map 1:1 onto the original {bitmap, index, type, ptr}
// quadruple.
type View struct {
	Bitmap *Bitmap
	Index  int64
	Type   *ndt.Type
	Data   []byte
	Offset int64

	// Refs is the side table Ref values index into: Go has no portable
	// way to reinterpret arbitrary stored bytes as a pointer, so a Ref's
	// embedded 8-byte slot holds an index into this table rather than a
	// raw address (spec §4.1/§9's Ref indirection). It is a pointer so
	// that appends made while descending into nested Refs are visible to
	// every View sharing the same Master.
	Refs *RefTable
}

// RefTable is the growable side table every Ref-bearing View within one
// Master shares.
type RefTable struct {
	items [][]byte
}

// Add registers target and returns its index.
func (rt *RefTable) Add(target []byte) int {
	rt.items = append(rt.items, target)
	return len(rt.items) - 1
}

// Get returns the buffer registered at idx, or false if idx is out of
// range (a dangling or corrupt reference).
func (rt *RefTable) Get(idx uint64) ([]byte, bool) {
	if rt == nil || idx >= uint64(len(rt.items)) {
		return nil, false
	}
	return rt.items[idx], true
}

// Bytes returns the byte range this view's type occupies in Data. It
// panics if that range extends past the end of Data.
func (v *View) Bytes() []byte {
	return v.Data[v.Offset : v.Offset+v.Type.DataSize()]
}

// IsValid reports whether the view's current position is non-NA.
func (v *View) IsValid() bool {
	if v.Bitmap == nil {
		return true
	}
	return v.Bitmap.IsValid(v.Index)
}

// FixedDimNext descends into element i of a FixedDim view (spec §4.1,
// xnd_fixed_dim_next). The accumulated index converts to a byte offset
// only once the element type itself contributes no further dimensions;
// until then it keeps composing in leaf-element units via the type's
// step, matching how a FixedDim may directly wrap another FixedDim.
func FixedDimNext(v *View, i int64) (*View, error) {
	t := v.Type
	if t.Tag != ndt.FixedDim {
		return nil, typeErr("FixedDimNext: not a FixedDim view (tag %v)", t.Tag)
	}
	if i < 0 || i >= t.FixedShape {
		return nil, indexErr("FixedDimNext: index %d out of range [0,%d)", i, t.FixedShape)
	}

	elem := t.Elem
	newIndex := v.Index + i*t.FixedStep
	offset := v.Offset
	if elem.NDim() == 0 {
		offset = v.Offset + newIndex*elem.DataSize()
		newIndex = 0
	}

	return &View{
		Bitmap: v.Bitmap.Next,
		Index:  newIndex,
		Type:   elem,
		Data:   v.Data,
		Offset: offset,
		Refs:   v.Refs,
	}, nil
}

// VarDimRow repositions a VarDim view at row (bounds-checked against the
// type's own row count), without yet resolving into the element type.
// Use it before VarDimNext when more than one row of a ragged dimension
// must be visited from the same *ndt.Type (e.g. iterating a whole var
// dimension during copy).
func VarDimRow(v *View, row int64) (*View, error) {
	t := v.Type
	if t.Tag != ndt.VarDim {
		return nil, typeErr("VarDimRow: not a VarDim view (tag %v)", t.Tag)
	}
	nrows := int64(len(t.VarOffsets)) - 1
	if row < 0 || row >= nrows {
		return nil, indexErr("VarDimRow: row %d out of range [0,%d)", row, nrows)
	}
	nv := *v
	nv.Index = row
	return &nv, nil
}

// VarDimNext selects element i within the current row of a VarDim view
// (spec §4.1/§4.5, xnd_var_dim_next + ndt_var_indices). v.Index is the
// row number (0 for a freshly-entered dimension, or whatever VarDimRow
// last set); i addresses an element of that row, composed against any
// slices previously stacked on the type by subscription.
func VarDimNext(v *View, i int64) (*View, error) {
	t := v.Type
	if t.Tag != ndt.VarDim {
		return nil, typeErr("VarDimNext: not a VarDim view (tag %v)", t.Tag)
	}

	start, step, shape, err := ndt.VarIndices(t, v.Index)
	if err != nil {
		return nil, indexErr("VarDimNext: %v", err)
	}
	if i < 0 || i >= shape {
		return nil, indexErr("VarDimNext: index %d out of range [0,%d)", i, shape)
	}

	elem := t.Elem
	newIndex := start + i*step
	offset := v.Offset
	if elem.NDim() == 0 {
		offset = v.Offset + newIndex*elem.DataSize()
		newIndex = 0
	}

	return &View{
		Bitmap: v.Bitmap.Next,
		Index:  newIndex,
		Type:   elem,
		Data:   v.Data,
		Offset: offset,
		Refs:   v.Refs,
	}, nil
}

// VarDimElemNext resolves a VarDimElem's stored row index against the
// live ragged shape of the VarDim it wraps, then hands control to that
// VarDim already positioned at the resolved row (spec §4.5). Negative
// indices are adjusted the same way a subscription index key is.
func VarDimElemNext(v *View) (*View, error) {
	t := v.Type
	if t.Tag != ndt.VarDimElem {
		return nil, typeErr("VarDimElemNext: not a VarDimElem view (tag %v)", t.Tag)
	}
	wrapped := t.Elem
	nrows := int64(len(wrapped.VarOffsets)) - 1
	row, ok := ndt.AdjustIndex(t.ElemIndex, nrows)
	if !ok {
		return nil, indexErr("VarDimElemNext: stored index %d out of range [0,%d)", t.ElemIndex, nrows)
	}
	nv := &View{
		Bitmap: v.Bitmap.Next,
		Index:  v.Index,
		Type:   wrapped,
		Data:   v.Data,
		Offset: v.Offset,
		Refs:   v.Refs,
	}
	return VarDimRow(nv, row)
}

// TupleNext descends into field i of a Tuple view (spec §4.1).
func TupleNext(v *View, i int) (*View, error) {
	t := v.Type
	if t.Tag != ndt.Tuple {
		return nil, typeErr("TupleNext: not a Tuple view (tag %v)", t.Tag)
	}
	if i < 0 || i >= len(t.FieldTypes) {
		return nil, indexErr("TupleNext: field %d out of range [0,%d)", i, len(t.FieldTypes))
	}
	return &View{
		Bitmap: v.Bitmap.Field(i),
		Index:  0,
		Type:   t.FieldTypes[i],
		Data:   v.Data,
		Offset: v.Offset + t.FieldOffsets[i],
		Refs:   v.Refs,
	}, nil
}

// RecordNext descends into field i of a Record view by position (spec
// §4.1). Name-based lookup lives at the subscription layer (spec §4.3),
// which does a linear scan over FieldNames before calling this.
func RecordNext(v *View, i int) (*View, error) {
	t := v.Type
	if t.Tag != ndt.Record {
		return nil, typeErr("RecordNext: not a Record view (tag %v)", t.Tag)
	}
	if i < 0 || i >= len(t.FieldTypes) {
		return nil, indexErr("RecordNext: field %d out of range [0,%d)", i, len(t.FieldTypes))
	}
	return &View{
		Bitmap: v.Bitmap.Field(i),
		Index:  0,
		Type:   t.FieldTypes[i],
		Data:   v.Data,
		Offset: v.Offset + t.FieldOffsets[i],
		Refs:   v.Refs,
	}, nil
}

// RefNext follows a Ref's embedded pointer to the separately-allocated
// value it points at (spec §4.1, §9). The pointer itself is stored as an
// 8-byte slice index into a side table rather than a raw address, since
// Go code cannot portably reinterpret arbitrary bytes as a pointer; see
// View.Refs.
func RefNext(v *View) (*View, error) {
	t := v.Type
	if t.Tag != ndt.Ref {
		return nil, typeErr("RefNext: not a Ref view (tag %v)", t.Tag)
	}
	target, err := resolveRef(v)
	if err != nil {
		return nil, err
	}
	return &View{
		Bitmap: v.Bitmap.Next,
		Index:  0,
		Type:   t.Elem,
		Data:   target,
		Offset: 0,
		Refs:   v.Refs,
	}, nil
}

// ConstrNext unwraps a Constr's transparent layout (spec §4.1).
func ConstrNext(v *View) (*View, error) {
	t := v.Type
	if t.Tag != ndt.Constr {
		return nil, typeErr("ConstrNext: not a Constr view (tag %v)", t.Tag)
	}
	return &View{
		Bitmap: v.Bitmap.Next,
		Index:  0,
		Type:   t.Elem,
		Data:   v.Data,
		Offset: v.Offset,
		Refs:   v.Refs,
	}, nil
}

// NominalNext unwraps a Nominal's transparent layout (spec §4.1).
func NominalNext(v *View) (*View, error) {
	t := v.Type
	if t.Tag != ndt.Nominal {
		return nil, typeErr("NominalNext: not a Nominal view (tag %v)", t.Tag)
	}
	return &View{
		Bitmap: v.Bitmap.Next,
		Index:  0,
		Type:   t.Elem,
		Data:   v.Data,
		Offset: v.Offset,
		Refs:   v.Refs,
	}, nil
}

// UnionNext reads the one-byte discriminator immediately preceding a
// Union's payload and descends into the active variant (spec §4.1, §9).
func UnionNext(v *View) (*View, error) {
	t := v.Type
	if t.Tag != ndt.Union {
		return nil, typeErr("UnionNext: not a Union view (tag %v)", t.Tag)
	}
	tagByte := v.Data[v.Offset]
	if int(tagByte) >= len(t.UnionTypes) {
		return nil, runtimeErr("UnionNext: corrupt discriminator byte %d", tagByte)
	}
	return &View{
		Bitmap: v.Bitmap.Field(int(tagByte)),
		Index:  0,
		Type:   t.UnionTypes[tagByte],
		Data:   v.Data,
		Offset: v.Offset + 1,
		Refs:   v.Refs,
	}, nil
}

// ActiveUnionTag returns the discriminator byte of a Union view without
// descending into it.
func ActiveUnionTag(v *View) (byte, error) {
	if v.Type.Tag != ndt.Union {
		return 0, typeErr("ActiveUnionTag: not a Union view (tag %v)", v.Type.Tag)
	}
	return v.Data[v.Offset], nil
}
