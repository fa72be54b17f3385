package ndt

// newScalar builds a leaf type with no further dimensions.
func newScalar(tag Tag, datasize int64, align uint16, flags Flags) *Type {
	return &Type{
		refcount:    1,
		Tag:         tag,
		flags:       flags,
		ndim:        0,
		datasize:    datasize,
		align:       align,
		pointerFree: true,
		subtreeOptional: flags.Optional(),
	}
}

func NewBool(flags Flags) *Type  { return newScalar(Bool, 1, 1, flags) }
func NewInt8(flags Flags) *Type  { return newScalar(Int8, 1, 1, flags) }
func NewInt16(flags Flags) *Type { return newScalar(Int16, 2, 2, flags) }
func NewInt32(flags Flags) *Type { return newScalar(Int32, 4, 4, flags) }
func NewInt64(flags Flags) *Type { return newScalar(Int64, 8, 8, flags) }

func NewUint8(flags Flags) *Type  { return newScalar(Uint8, 1, 1, flags) }
func NewUint16(flags Flags) *Type { return newScalar(Uint16, 2, 2, flags) }
func NewUint32(flags Flags) *Type { return newScalar(Uint32, 4, 4, flags) }
func NewUint64(flags Flags) *Type { return newScalar(Uint64, 8, 8, flags) }

func NewBFloat16(flags Flags) *Type { return newScalar(BFloat16, 2, 2, flags) }
func NewFloat16(flags Flags) *Type  { return newScalar(Float16, 2, 2, flags) }
func NewFloat32(flags Flags) *Type  { return newScalar(Float32, 4, 4, flags) }
func NewFloat64(flags Flags) *Type  { return newScalar(Float64, 8, 8, flags) }

func NewBComplex32(flags Flags) *Type { return newScalar(BComplex32, 4, 2, flags) }
func NewComplex32(flags Flags) *Type  { return newScalar(Complex32, 4, 2, flags) }
func NewComplex64(flags Flags) *Type  { return newScalar(Complex64, 8, 4, flags) }
func NewComplex128(flags Flags) *Type { return newScalar(Complex128, 16, 8, flags) }

// NewChar returns the explicitly-unimplemented Char leaf (spec Non-goals).
func NewChar(flags Flags) *Type { return newScalar(Char, 1, 1, flags) }

// NewModule and NewFunction are accepted by the type system but carry no
// runtime semantics at the xnd layer (spec glossary).
func NewModule(name string) *Type {
	t := newScalar(Module, 0, 1, 0)
	t.Name = name
	return t
}

func NewFunction() *Type { return newScalar(Function, 0, 1, 0) }

// NewFixedString builds a fixed-size string of n code units in the given
// encoding.
func NewFixedString(n int64, enc Encoding, flags Flags) *Type {
	unit := enc.UnitSize()
	align := uint16(unit)
	if align == 0 {
		align = 1
	}
	t := newScalar(FixedString, n*unit, align, flags)
	t.StrLen = n
	t.Encoding = enc
	return t
}

// NewFixedBytes builds a fixed-size opaque byte blob of n bytes aligned to
// align.
func NewFixedBytes(n int64, align uint16, flags Flags) *Type {
	if align == 0 {
		align = 1
	}
	t := newScalar(FixedBytes, n, align, flags)
	t.StrLen = n
	return t
}

// NewString builds a variable-length NUL-terminated string leaf, stored as
// an embedded pointer (spec §9).
func NewString(flags Flags) *Type {
	t := newScalar(String, 8, 8, flags)
	t.pointerFree = false
	return t
}

// NewBytes builds a variable-length byte blob leaf, stored as
// {int64 size; pointer data} (spec §9).
func NewBytes(flags Flags) *Type {
	t := newScalar(Bytes, 16, 8, flags)
	t.pointerFree = false
	return t
}

// NewCategorical builds a categorical leaf over a fixed category list; the
// stored value is a 64-bit category index (spec §4.4).
func NewCategorical(categories []string, flags Flags) *Type {
	t := newScalar(Categorical, 8, 8, flags)
	t.Categories = categories
	return t
}

// NewArray builds the flexible one-dimensional array leaf (an embedded
// {int64 size; pointer} like Bytes, but typed by elem).
func NewArray(elem *Type, flags Flags) *Type {
	t := newScalar(Array, 16, 8, flags)
	t.Elem = elem
	t.pointerFree = false
	t.subtreeOptional = t.subtreeOptional || elem.subtreeOptional
	return t
}

// totalElems returns the number of leaf-level addressing units one index
// step at elem's own level represents, used to compute a wrapping
// FixedDim's step (spec §4.1's fixed_dim_next index accumulation is in
// these units). VarDim/VarDimElem elements reset this to 1: ragged rows
// resolve their own addressing via offsets, decoupled from any fixed
// per-row stride.
func totalElems(elem *Type) int64 {
	if elem.ndim == 0 {
		return 1
	}
	if elem.Tag == FixedDim {
		return elem.FixedShape * totalElems(elem.Elem)
	}
	return 1
}

// NewFixedDim builds a contiguous FixedDim of the given shape wrapping
// elem, deriving step, datasize and alignment from elem.
func NewFixedDim(shape int64, elem *Type, flags Flags) *Type {
	step := totalElems(elem)
	return NewFixedDimStrided(shape, step, elem, flags)
}

// NewFixedDimStrided builds a FixedDim with an explicit step, for results
// of reshape/subscribe that are not necessarily contiguous.
func NewFixedDimStrided(shape, step int64, elem *Type, flags Flags) *Type {
	datasize := int64(0)
	if shape > 0 {
		datasize = shape * elem.datasize
	}
	return &Type{
		refcount:        1,
		Tag:             FixedDim,
		flags:           flags,
		ndim:            1 + elem.ndim,
		datasize:        datasize,
		align:           elem.align,
		pointerFree:     elem.pointerFree,
		subtreeOptional: flags.Optional() || elem.subtreeOptional,
		Elem:            elem,
		FixedShape:      shape,
		FixedStep:       step,
	}
}

// offsetsFromLengths turns a row-length list into a monotonic cumulative
// offsets array, as the "var(len0,len1,...)" type-string syntax implies.
func offsetsFromLengths(lengths []int64) []int32 {
	offsets := make([]int32, len(lengths)+1)
	var acc int64
	for i, l := range lengths {
		offsets[i] = int32(acc)
		acc += l
	}
	offsets[len(lengths)] = int32(acc)
	return offsets
}

// NewVarDimFromLengths builds a VarDim from per-row lengths, the
// convenience form the type-string grammar's "var(l0,l1,...)" uses.
func NewVarDimFromLengths(lengths []int64, elem *Type, flags Flags) *Type {
	return NewVarDim(offsetsFromLengths(lengths), nil, elem, flags)
}

// NewVarDim builds a VarDim from an explicit cumulative offsets array and
// an already-composed slice list (used internally when subscription
// appends a slice onto an existing VarDim).
func NewVarDim(offsets []int32, slices []Slice, elem *Type, flags Flags) *Type {
	var datasize int64
	if len(offsets) > 0 {
		datasize = int64(offsets[len(offsets)-1]) * elem.datasize
	}
	return &Type{
		refcount:        1,
		Tag:             VarDim,
		flags:           flags,
		ndim:            1 + elem.ndim,
		datasize:        datasize,
		align:           elem.align,
		pointerFree:     elem.pointerFree,
		subtreeOptional: flags.Optional() || elem.subtreeOptional,
		Elem:            elem,
		VarOffsets:      offsets,
		VarSlices:       slices,
	}
}

// NewVarDimElem wraps a VarDim together with a stored row index, applied
// implicitly during traversal (spec §4.5).
func NewVarDimElem(wrapped *Type, index int64) *Type {
	return &Type{
		refcount:        1,
		Tag:             VarDimElem,
		ndim:            wrapped.Elem.ndim,
		datasize:        wrapped.Elem.datasize,
		align:           wrapped.Elem.align,
		pointerFree:     wrapped.Elem.pointerFree,
		subtreeOptional: wrapped.Elem.subtreeOptional,
		Elem:            wrapped,
		ElemIndex:       index,
	}
}

// fieldLayout assigns natural offsets to types with a C-struct-like
// layout: each field starts at the next multiple of its own alignment,
// and the total size is rounded up to the maximum field alignment.
func fieldLayout(types []*Type) (offsets []int64, datasize int64, align uint16, pointerFree bool, subtreeOptional bool) {
	align = 1
	pointerFree = true
	offsets = make([]int64, len(types))
	var off int64
	for i, f := range types {
		a := int64(f.align)
		if a == 0 {
			a = 1
		}
		if rem := off % a; rem != 0 {
			off += a - rem
		}
		offsets[i] = off
		off += f.datasize
		if f.align > align {
			align = f.align
		}
		if !f.pointerFree {
			pointerFree = false
		}
		if f.subtreeOptional {
			subtreeOptional = true
		}
	}
	if rem := off % int64(align); rem != 0 {
		off += int64(align) - rem
	}
	return offsets, off, align, pointerFree, subtreeOptional
}

// NewTuple builds a Tuple over the given field types with natural layout.
func NewTuple(types []*Type, flags Flags) *Type {
	offsets, datasize, align, pointerFree, subOpt := fieldLayout(types)
	return &Type{
		refcount:        1,
		Tag:             Tuple,
		flags:           flags,
		ndim:            0,
		datasize:        datasize,
		align:           align,
		pointerFree:     pointerFree,
		subtreeOptional: flags.Optional() || subOpt,
		FieldTypes:      types,
		FieldOffsets:    offsets,
	}
}

// NewRecord builds a Record over the given field names/types with natural
// layout; names and types must be parallel and the same length.
func NewRecord(names []string, types []*Type, flags Flags) *Type {
	offsets, datasize, align, pointerFree, subOpt := fieldLayout(types)
	return &Type{
		refcount:        1,
		Tag:             Record,
		flags:           flags,
		ndim:            0,
		datasize:        datasize,
		align:           align,
		pointerFree:     pointerFree,
		subtreeOptional: flags.Optional() || subOpt,
		FieldTypes:      types,
		FieldOffsets:    offsets,
		FieldNames:      names,
	}
}

// NewUnion builds a Union over parallel tag names and payload types. The
// wire layout is one discriminator byte immediately followed by the
// payload of the widest variant (spec §4.1/§9).
func NewUnion(tags []string, types []*Type, flags Flags) *Type {
	var maxPayload int64
	var align uint16 = 1
	pointerFree := true
	subOpt := flags.Optional()
	for _, t := range types {
		if t.datasize > maxPayload {
			maxPayload = t.datasize
		}
		if t.align > align {
			align = t.align
		}
		if !t.pointerFree {
			pointerFree = false
		}
		if t.subtreeOptional {
			subOpt = true
		}
	}
	return &Type{
		refcount:        1,
		Tag:             Union,
		flags:           flags,
		ndim:            0,
		datasize:        1 + maxPayload,
		align:           align,
		pointerFree:     pointerFree,
		subtreeOptional: subOpt,
		UnionTags:       tags,
		UnionTypes:      types,
	}
}

// NewRef builds a Ref: an embedded pointer to a separately-allocated value
// of elem's type (spec §3, §9).
func NewRef(elem *Type, flags Flags) *Type {
	return &Type{
		refcount:        1,
		Tag:             Ref,
		flags:           flags,
		ndim:            0,
		datasize:        8,
		align:           8,
		pointerFree:     false,
		subtreeOptional: flags.Optional() || elem.subtreeOptional,
		Elem:            elem,
	}
}

// NewConstr builds a Constr: a named, transparent wrapper with the same
// memory layout as elem.
func NewConstr(name string, elem *Type, flags Flags) *Type {
	return &Type{
		refcount:        1,
		Tag:             Constr,
		flags:           flags,
		ndim:            0,
		datasize:        elem.datasize,
		align:           elem.align,
		pointerFree:     elem.pointerFree,
		subtreeOptional: flags.Optional() || elem.subtreeOptional,
		Name:            name,
		Elem:            elem,
	}
}

// NewNominal builds a Nominal: a named, transparent wrapper with the same
// memory layout as elem, optionally carrying methods (opaque to this
// library; spec §3 lists "methods" as a tag-specific field but nothing
// here dispatches through them).
func NewNominal(name string, elem *Type, flags Flags) *Type {
	return &Type{
		refcount:        1,
		Tag:             Nominal,
		flags:           flags,
		ndim:            0,
		datasize:        elem.datasize,
		align:           elem.align,
		pointerFree:     elem.pointerFree,
		subtreeOptional: flags.Optional() || elem.subtreeOptional,
		Name:            name,
		Elem:            elem,
	}
}
