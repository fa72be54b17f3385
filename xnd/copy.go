package xnd

import "github.com/ndview/xnd/ndt"

// Copy copies src into dst, applying NA propagation and scalar coercion
// per spec §4.4. dst and src need not share the same concrete type: the
// structural shape (dimension counts, tuple/record arity, union tags)
// must match, but leaf types may differ as long as both are scalar
// numeric kinds, in which case the value is coerced through float64.
func Copy(dst, src *View) error {
	if !src.IsValid() {
		if !dst.Type.IsOptional() {
			return typeErr("Copy: source is NA but destination type %v is not optional", dst.Type.Tag)
		}
		dst.Bitmap.SetNA(dst.Index)
		return nil
	}
	dst.Bitmap.SetValid(dst.Index)

	dt, st := dst.Type, src.Type

	switch dt.Tag {
	case ndt.FixedDim:
		if st.Tag != ndt.FixedDim || st.FixedShape != dt.FixedShape {
			return valueErr("Copy: FixedDim shape mismatch: dst=%d src shape", dt.FixedShape)
		}
		for i := int64(0); i < dt.FixedShape; i++ {
			dv, err := FixedDimNext(dst, i)
			if err != nil {
				return err
			}
			sv, err := FixedDimNext(src, i)
			if err != nil {
				return err
			}
			if err := Copy(dv, sv); err != nil {
				return err
			}
		}
		return nil

	case ndt.VarDim:
		if st.Tag != ndt.VarDim {
			return valueErr("Copy: expected VarDim source")
		}
		_, _, dshape, err := ndt.VarIndices(dt, dst.Index)
		if err != nil {
			return indexErr("Copy: %v", err)
		}
		_, _, sshape, err := ndt.VarIndices(st, src.Index)
		if err != nil {
			return indexErr("Copy: %v", err)
		}
		if dshape != sshape {
			return valueErr("Copy: VarDim row length mismatch: dst=%d src=%d", dshape, sshape)
		}
		for i := int64(0); i < dshape; i++ {
			dv, err := VarDimNext(dst, i)
			if err != nil {
				return err
			}
			sv, err := VarDimNext(src, i)
			if err != nil {
				return err
			}
			if err := Copy(dv, sv); err != nil {
				return err
			}
		}
		return nil

	case ndt.Tuple:
		if st.Tag != ndt.Tuple || len(st.FieldTypes) != len(dt.FieldTypes) {
			return valueErr("Copy: Tuple arity mismatch")
		}
		for i := range dt.FieldTypes {
			dv, err := TupleNext(dst, i)
			if err != nil {
				return err
			}
			sv, err := TupleNext(src, i)
			if err != nil {
				return err
			}
			if err := Copy(dv, sv); err != nil {
				return err
			}
		}
		return nil

	case ndt.Record:
		if st.Tag != ndt.Record || len(st.FieldTypes) != len(dt.FieldTypes) {
			return valueErr("Copy: Record arity mismatch")
		}
		for i := range dt.FieldTypes {
			dv, err := RecordNext(dst, i)
			if err != nil {
				return err
			}
			sv, err := RecordNext(src, i)
			if err != nil {
				return err
			}
			if err := Copy(dv, sv); err != nil {
				return err
			}
		}
		return nil

	case ndt.Union:
		if st.Tag != ndt.Union {
			return valueErr("Copy: expected Union source")
		}
		tagByte, err := ActiveUnionTag(src)
		if err != nil {
			return err
		}
		dst.Bytes()[0] = tagByte
		dv, err := UnionNext(dst)
		if err != nil {
			return err
		}
		sv, err := UnionNext(src)
		if err != nil {
			return err
		}
		return Copy(dv, sv)

	case ndt.Ref:
		if st.Tag != ndt.Ref {
			return valueErr("Copy: expected Ref source")
		}
		sv, err := RefNext(src)
		if err != nil {
			return err
		}
		target := make([]byte, dt.Elem.DataSize())
		idx := dst.Refs.Add(target)
		copy(dst.Bytes(), encodeRefIndex(idx))
		dv := &View{Bitmap: dst.Bitmap.Next, Type: dt.Elem, Data: target, Offset: 0, Refs: dst.Refs}
		return Copy(dv, sv)

	case ndt.Constr:
		if st.Tag != ndt.Constr {
			return valueErr("Copy: expected Constr source")
		}
		dv, err := ConstrNext(dst)
		if err != nil {
			return err
		}
		sv, err := ConstrNext(src)
		if err != nil {
			return err
		}
		return Copy(dv, sv)

	case ndt.Nominal:
		if st.Tag != ndt.Nominal {
			return valueErr("Copy: expected Nominal source")
		}
		dv, err := NominalNext(dst)
		if err != nil {
			return err
		}
		sv, err := NominalNext(src)
		if err != nil {
			return err
		}
		return Copy(dv, sv)

	case ndt.FixedString:
		return copyFixedString(dst, src)

	case ndt.FixedBytes:
		if st.Tag != ndt.FixedBytes || st.StrLen != dt.StrLen {
			return valueErr("Copy: FixedBytes length mismatch")
		}
		copy(dst.Bytes(), src.Bytes())
		return nil

	case ndt.Categorical:
		if st.Tag != ndt.Categorical {
			return valueErr("Copy: expected Categorical source")
		}
		copy(dst.Bytes(), src.Bytes())
		return nil

	default:
		if isScalarNumeric(dt) && isScalarNumeric(st) {
			x, err := readScalarFloat(src)
			if err != nil {
				return err
			}
			return writeScalarFloat(dst, x)
		}
		return notImplErr("Copy: unsupported tag pair dst=%v src=%v", dt.Tag, st.Tag)
	}
}

func encodeRefIndex(idx int) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(idx >> (8 * i))
	}
	return b
}
