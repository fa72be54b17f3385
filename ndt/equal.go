package ndt

// Equal reports whether a and b describe the same structural type:
// same tag, same flags, and recursively equal fields. Unlike identity
// comparison at the xnd layer (which also compares bitmaps and data
// bytes), this never inspects data, only the type graph (spec §4.9).
func Equal(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Tag != b.Tag || a.flags != b.flags {
		return false
	}

	switch a.Tag {
	case FixedDim:
		return a.FixedShape == b.FixedShape && a.FixedStep == b.FixedStep && Equal(a.Elem, b.Elem)

	case VarDim:
		if len(a.VarOffsets) != len(b.VarOffsets) || len(a.VarSlices) != len(b.VarSlices) {
			return false
		}
		for i := range a.VarOffsets {
			if a.VarOffsets[i] != b.VarOffsets[i] {
				return false
			}
		}
		for i := range a.VarSlices {
			if a.VarSlices[i] != b.VarSlices[i] {
				return false
			}
		}
		return Equal(a.Elem, b.Elem)

	case VarDimElem:
		return a.ElemIndex == b.ElemIndex && Equal(a.Elem, b.Elem)

	case Tuple:
		return equalFieldTypes(a.FieldTypes, b.FieldTypes)

	case Record:
		if len(a.FieldNames) != len(b.FieldNames) {
			return false
		}
		for i := range a.FieldNames {
			if a.FieldNames[i] != b.FieldNames[i] {
				return false
			}
		}
		return equalFieldTypes(a.FieldTypes, b.FieldTypes)

	case Union:
		if len(a.UnionTags) != len(b.UnionTags) {
			return false
		}
		for i := range a.UnionTags {
			if a.UnionTags[i] != b.UnionTags[i] {
				return false
			}
		}
		return equalFieldTypes(a.UnionTypes, b.UnionTypes)

	case Ref:
		return Equal(a.Elem, b.Elem)

	case Constr:
		return a.Name == b.Name && Equal(a.Elem, b.Elem)

	case Nominal:
		return a.Name == b.Name && Equal(a.Elem, b.Elem)

	case Module:
		return a.Name == b.Name

	case Function:
		return true

	case FixedString:
		return a.StrLen == b.StrLen && a.Encoding == b.Encoding

	case FixedBytes:
		return a.StrLen == b.StrLen && a.align == b.align

	case Categorical:
		if len(a.Categories) != len(b.Categories) {
			return false
		}
		for i := range a.Categories {
			if a.Categories[i] != b.Categories[i] {
				return false
			}
		}
		return true

	case Array:
		return Equal(a.Elem, b.Elem)

	default:
		// Remaining tags are plain scalar leaves or abstract kinds with
		// no further structure beyond tag+flags, already compared above.
		return true
	}
}

func equalFieldTypes(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
