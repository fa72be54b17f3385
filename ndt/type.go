package ndt

import "sync/atomic"

// Type is the opaque, reference-counted type descriptor the xnd core
// consumes (spec §3). Go's garbage collector would reclaim an unreferenced
// Type on its own, but the reference count is kept explicit (as the
// design notes call for, "an intrusive reference-counted Arc-like
// handle") so host bindings can track exported views exactly as the
// original C library's incref/decref contract requires.
type Type struct {
	refcount int32

	Tag   Tag
	flags Flags

	ndim     int
	datasize int64
	align    uint16

	// subtreeOptional caches whether any descendant (including this type)
	// carries FlagOptional, used by bitmap construction/traversal to
	// decide whether a bitmap subtree exists at all.
	subtreeOptional bool
	pointerFree     bool

	// FixedDim / VarDim / VarDimElem / Ref / Constr / Nominal / Array.
	Elem *Type

	// FixedDim.
	FixedShape int64
	FixedStep  int64

	// VarDim.
	VarOffsets []int32
	VarSlices  []Slice

	// VarDimElem.
	ElemIndex int64

	// Tuple / Record.
	FieldTypes   []*Type
	FieldOffsets []int64
	FieldNames   []string // Record only

	// Union.
	UnionTags  []string
	UnionTypes []*Type

	// Constr / Nominal.
	Name string

	// FixedString / FixedBytes.
	StrLen   int64
	Encoding Encoding

	// Categorical.
	Categories []string
}

// NDim returns the number of array dimensions from this level down to the
// first non-array type (the C ndt_t convention): FixedDim and VarDim
// report 1 plus their element's NDim, VarDimElem reports the NDim of its
// wrapped VarDim's element, and every other type reports 0.
func (t *Type) NDim() int { return t.ndim }

// DataSize returns the number of bytes this type occupies in a buffer.
func (t *Type) DataSize() int64 { return t.datasize }

// Align returns the required alignment of this type, in bytes.
func (t *Type) Align() uint16 { return t.align }

// Flags returns the raw flags bitmask.
func (t *Type) Flags() Flags { return t.flags }

// IsOptional reports whether this exact level carries a validity bit.
func (t *Type) IsOptional() bool { return t.flags.Optional() }

// LittleEndian reports this type's configured byte order.
func (t *Type) LittleEndian() bool { return t.flags.LittleEndian() }

// SubtreeIsOptional reports whether this type or anything reachable from
// it is optional; bitmap construction and traversal use this to decide
// whether a bitmap subtree must exist at all (spec §4.2).
func (t *Type) SubtreeIsOptional() bool { return t.subtreeOptional }

// IsPointerFree reports whether no descendant of this type embeds a raw
// pointer (Ref, String, Bytes, Array); required by serialization (spec §6).
func (t *Type) IsPointerFree() bool { return t.pointerFree }

// IsConcrete reports whether this type can appear at a public boundary;
// abstract kinds (and Module/Function, which ndt accepts but which have
// no runtime semantics at the xnd layer) are rejected.
func (t *Type) IsConcrete() bool { return !abstractTags[t.Tag] }

// IncRef increments the reference count and returns t, mirroring
// ndt_incref's borrow-and-keep-alive idiom for callers that hand a type
// off to multiple owners.
func (t *Type) IncRef() *Type {
	atomic.AddInt32(&t.refcount, 1)
	return t
}

// DecRef decrements the reference count. It never frees memory itself
// (the Go garbage collector owns that); it exists so host bindings that
// track view lifetimes against a reference count see the same protocol
// the C library exposes.
func (t *Type) DecRef() {
	atomic.AddInt32(&t.refcount, -1)
}

// RefCount returns the current reference count, for tests and diagnostics.
func (t *Type) RefCount() int32 { return atomic.LoadInt32(&t.refcount) }

// IsCContiguous reports whether a FixedDim chain is laid out C-contiguous
// (last axis varies fastest with unit element stride).
func (t *Type) IsCContiguous() bool {
	shape, step, ok := t.ndarraySteps()
	if !ok {
		return t.ndim == 0
	}
	want := int64(1)
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] != 0 && step[i] != want {
			return false
		}
		want *= shape[i]
	}
	return true
}

// IsFContiguous reports whether a FixedDim chain is laid out F-contiguous
// (first axis varies fastest with unit element stride).
func (t *Type) IsFContiguous() bool {
	shape, step, ok := t.ndarraySteps()
	if !ok {
		return t.ndim == 0
	}
	want := int64(1)
	for i := 0; i < len(shape); i++ {
		if shape[i] != 0 && step[i] != want {
			return false
		}
		want *= shape[i]
	}
	return true
}

// IsVarContiguous reports whether every VarDim in the chain has offsets
// [0, s0, s0+s1, ...] and no composed slices (spec glossary).
func (t *Type) IsVarContiguous() bool {
	u := t
	for u.ndim > 0 {
		switch u.Tag {
		case VarDim:
			if len(u.VarSlices) != 0 {
				return false
			}
			if len(u.VarOffsets) > 0 && u.VarOffsets[0] != 0 {
				return false
			}
			u = u.Elem
		case FixedDim:
			u = u.Elem
		default:
			return false
		}
	}
	return true
}

// NDArrayShape returns the shape and step arrays of a pure FixedDim chain
// (used by reshape/split). ok is false if the type is not an ndarray
// (contains a non-FixedDim axis, e.g. VarDim).
func (t *Type) NDArrayShape() (shape, step []int64, dtype *Type, ok bool) {
	shape, step, ok = t.ndarraySteps()
	if !ok {
		return nil, nil, nil, false
	}
	u := t
	for u.ndim > 0 {
		u = u.Elem
	}
	return shape, step, u, true
}

func (t *Type) ndarraySteps() ([]int64, []int64, bool) {
	var shape, step []int64
	u := t
	for u.ndim > 0 {
		if u.Tag != FixedDim {
			return nil, nil, false
		}
		shape = append(shape, u.FixedShape)
		step = append(step, u.FixedStep)
		u = u.Elem
	}
	return shape, step, true
}

// IsNDArray reports whether t is entirely composed of FixedDim axes over
// a non-array dtype (used by split, spec §4.8).
func (t *Type) IsNDArray() bool {
	_, _, ok := t.ndarraySteps()
	return ok
}
