package xnd

import "github.com/ndview/xnd/ndt"

// Key is one subscription key: exactly one of Index (an integer
// position), Slice (a start:stop:step range), or Field (a record field
// name) is meaningful, selected by Kind (spec §4.3).
type Key struct {
	Kind  KeyKind
	Index int64
	Slice ndt.Slice
	Field string
}

type KeyKind int

const (
	KeyIndex KeyKind = iota
	KeySlice
	KeyField
)

func IndexKey(i int64) Key        { return Key{Kind: KeyIndex, Index: i} }
func SliceKey(s ndt.Slice) Key     { return Key{Kind: KeySlice, Slice: s} }
func FieldKey(name string) Key     { return Key{Kind: KeyField, Field: name} }

// MaxDim bounds the number of keys a single Subscribe call accepts (spec
// §4.3, "too many indices"); the original library's own MAX_DIM constant
// is compile-time and typically 32 or 64 — this port uses 64.
const MaxDim = 64

// Subscribe applies a sequence of keys to v, descending one axis/field
// per key (spec §4.3). An Index key on a dimension collapses that axis
// (removing it from the result's type, like FixedDimNext/VarDimNext); a
// Slice key keeps the axis but narrows it to a new sub-range, producing
// a new (non-owning) FixedDim or VarDim type wrapping the same data; a
// Field key does a linear name lookup over a Record's FieldNames, per
// spec §4.3's explicit "linear name lookup" requirement (no hash map).
//
// Before each key is applied (and once more before returning), any
// Ref/Constr/Nominal wrapper is unwrapped transparently and any
// VarDimElem is resolved against its stored row index — neither
// consumes a key (spec §4.3, §4.5). If any key is a slice, this runs in
// "general mode": after the whole path is applied, every VarDimElem
// still embedded in the resulting type is re-validated against its
// live ragged shape (spec §4.3's validate_indices, §4.5).
func Subscribe(v *View, keys ...Key) (*View, error) {
	if len(keys) > MaxDim {
		return nil, valueErr("Subscribe: too many indices (%d > %d)", len(keys), MaxDim)
	}

	cur, err := descendTransparent(v)
	if err != nil {
		return nil, err
	}

	generalMode := false
	for _, k := range keys {
		if k.Kind == KeySlice {
			generalMode = true
		}
		next, err := subscribeOne(cur, k)
		if err != nil {
			return nil, err
		}
		cur, err = descendTransparent(next)
		if err != nil {
			return nil, err
		}
	}

	if generalMode {
		if err := validateIndices(cur.Type); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// descendTransparent repeatedly unwraps the layers a subscription key
// never consumes: Ref and Constr and Nominal pass through structurally,
// and a VarDimElem resolves its stored row index against the live
// ragged shape before handing control to the wrapped VarDim (spec
// §4.3, §4.5).
func descendTransparent(v *View) (*View, error) {
	for {
		var (
			nv  *View
			err error
		)
		switch v.Type.Tag {
		case ndt.Ref:
			nv, err = RefNext(v)
		case ndt.Constr:
			nv, err = ConstrNext(v)
		case ndt.Nominal:
			nv, err = NominalNext(v)
		case ndt.VarDimElem:
			nv, err = VarDimElemNext(v)
		default:
			return v, nil
		}
		if err != nil {
			return nil, err
		}
		v = nv
	}
}

// validateIndices walks t for any VarDimElem still embedded in it and
// confirms its stored index remains within the live ragged shape it
// addresses (spec §4.3/§4.5's post-flight validate_indices, required
// after a general-mode subscription mixes index and slice keys).
func validateIndices(t *ndt.Type) error {
	switch t.Tag {
	case ndt.VarDimElem:
		wrapped := t.Elem
		nrows := int64(len(wrapped.VarOffsets)) - 1
		if _, ok := ndt.AdjustIndex(t.ElemIndex, nrows); !ok {
			return indexErr("Subscribe: stored VarDimElem index %d out of range [0,%d)", t.ElemIndex, nrows)
		}
		return validateIndices(wrapped)
	case ndt.FixedDim, ndt.VarDim, ndt.Ref, ndt.Constr, ndt.Nominal, ndt.Array:
		return validateIndices(t.Elem)
	case ndt.Tuple, ndt.Record:
		for _, ft := range t.FieldTypes {
			if err := validateIndices(ft); err != nil {
				return err
			}
		}
	case ndt.Union:
		for _, ut := range t.UnionTypes {
			if err := validateIndices(ut); err != nil {
				return err
			}
		}
	}
	return nil
}

func subscribeOne(v *View, k Key) (*View, error) {
	t := v.Type

	switch k.Kind {
	case KeyField:
		if t.Tag != ndt.Record {
			return nil, typeErr("Subscribe: field key %q used on non-Record type %v", k.Field, t.Tag)
		}
		for i, name := range t.FieldNames {
			if name == k.Field {
				return RecordNext(v, i)
			}
		}
		return nil, valueErr("Subscribe: no field named %q", k.Field)

	case KeyIndex:
		switch t.Tag {
		case ndt.FixedDim:
			idx, ok := ndt.AdjustIndex(k.Index, t.FixedShape)
			if !ok {
				return nil, indexErr("Subscribe: index %d out of range [0,%d)", k.Index, t.FixedShape)
			}
			return FixedDimNext(v, idx)
		case ndt.VarDim:
			_, _, shape, err := ndt.VarIndices(t, v.Index)
			if err != nil {
				return nil, indexErr("Subscribe: %v", err)
			}
			idx, ok := ndt.AdjustIndex(k.Index, shape)
			if !ok {
				return nil, indexErr("Subscribe: index %d out of range [0,%d)", k.Index, shape)
			}
			return VarDimNext(v, idx)
		case ndt.Tuple:
			idx, ok := ndt.AdjustIndex(k.Index, int64(len(t.FieldTypes)))
			if !ok {
				return nil, indexErr("Subscribe: field %d out of range [0,%d)", k.Index, len(t.FieldTypes))
			}
			return TupleNext(v, int(idx))
		case ndt.Union:
			tagByte, err := ActiveUnionTag(v)
			if err != nil {
				return nil, err
			}
			if int64(tagByte) != k.Index {
				return nil, valueErr("Subscribe: union tag mismatch: requested %d, active %d", k.Index, tagByte)
			}
			return UnionNext(v)
		default:
			return nil, typeErr("Subscribe: index key used on non-indexable type %v", t.Tag)
		}

	case KeySlice:
		switch t.Tag {
		case ndt.FixedDim:
			start, step, shape := normalizeAndValidate(t.FixedShape, k.Slice)
			return sliceFixedDim(v, start, step, shape), nil
		case ndt.VarDim:
			return sliceVarDim(v, k.Slice)
		default:
			return nil, typeErr("Subscribe: slice key used on non-array type %v", t.Tag)
		}

	default:
		return nil, invalidArgErr("Subscribe: unknown key kind")
	}
}

func normalizeAndValidate(length int64, s ndt.Slice) (start, step, shape int64) {
	start, _, step, shape = ndt.NormalizeSlice(length, s)
	return
}

// sliceFixedDim narrows a FixedDim axis to [start : start+shape*step)
// without copying, producing a new view over the same Data.
func sliceFixedDim(v *View, start, step, shape int64) *View {
	t := v.Type
	elem := t.Elem
	newType := ndt.NewFixedDimStrided(shape, t.FixedStep*step, elem, t.Flags())

	offset := v.Offset
	index := v.Index
	if elem.NDim() == 0 {
		offset = v.Offset + (v.Index+start*t.FixedStep)*elem.DataSize()
		index = 0
	} else {
		index = v.Index + start*t.FixedStep
	}

	return &View{
		Bitmap: v.Bitmap,
		Index:  index,
		Type:   newType,
		Data:   v.Data,
		Offset: offset,
		Refs:   v.Refs,
	}
}

// sliceVarDim composes a new slice onto a VarDim's VarSlices stack (spec
// §4.5's ragged-shape slice composition): the row addressing itself is
// unaffected, but every row's own elements are subsequently renormalized
// against this slice when VarIndices resolves them.
func sliceVarDim(v *View, s ndt.Slice) (*View, error) {
	t := v.Type
	slices := append(append([]ndt.Slice{}, t.VarSlices...), s)
	newType := ndt.NewVarDim(t.VarOffsets, slices, t.Elem, t.Flags())
	return &View{
		Bitmap: v.Bitmap,
		Index:  v.Index,
		Type:   newType,
		Data:   v.Data,
		Offset: v.Offset,
		Refs:   v.Refs,
	}, nil
}
