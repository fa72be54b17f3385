package xnd

import (
	"encoding/binary"
	"math"

	"github.com/ndview/xnd/internal/bits"
	"github.com/ndview/xnd/ndt"
)

// scalarOrder returns the byte order a scalar-leaf view's type specifies.
func scalarOrder(t *ndt.Type) binary.ByteOrder {
	if t.LittleEndian() {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// readScalarFloat decodes any scalar numeric leaf as a float64, the
// common currency for cross-tag coercion (spec §4.4).
func readScalarFloat(v *View) (float64, error) {
	b := v.Bytes()
	order := scalarOrder(v.Type)
	le := order == binary.LittleEndian

	switch v.Type.Tag {
	case ndt.Bool:
		if b[0] != 0 {
			return 1, nil
		}
		return 0, nil
	case ndt.Int8:
		return float64(int8(b[0])), nil
	case ndt.Int16:
		return float64(int16(order.Uint16(b))), nil
	case ndt.Int32:
		return float64(int32(order.Uint32(b))), nil
	case ndt.Int64:
		return float64(int64(order.Uint64(b))), nil
	case ndt.Uint8:
		return float64(b[0]), nil
	case ndt.Uint16:
		return float64(order.Uint16(b)), nil
	case ndt.Uint32:
		return float64(order.Uint32(b)), nil
	case ndt.Uint64:
		return float64(order.Uint64(b)), nil
	case ndt.BFloat16:
		h := order.Uint16(b)
		return float64(bits.UnpackBFloat16(h)), nil
	case ndt.Float16:
		h := order.Uint16(b)
		return bits.UnpackFloat16(h), nil
	case ndt.Float32:
		return float64(bits.Float32(b, le)), nil
	case ndt.Float64:
		return bits.Float64(b, le), nil
	default:
		return 0, typeErr("readScalarFloat: tag %v is not a scalar numeric leaf", v.Type.Tag)
	}
}

// writeScalarFloat encodes x into v, coercing/narrowing to v.Type's kind.
// Per spec §4.4, narrowing conversions (e.g. float64 -> int8) truncate
// rather than error; only out-of-range integer targets are rejected.
func writeScalarFloat(v *View, x float64) error {
	b := v.Bytes()
	order := scalarOrder(v.Type)
	le := order == binary.LittleEndian

	switch v.Type.Tag {
	case ndt.Bool:
		if x != 0 {
			b[0] = 1
		} else {
			b[0] = 0
		}
		return nil
	case ndt.Int8:
		if x < math.MinInt8 || x > math.MaxInt8 {
			return valueErr("writeScalarFloat: %v out of range for int8", x)
		}
		b[0] = byte(int8(x))
		return nil
	case ndt.Int16:
		if x < math.MinInt16 || x > math.MaxInt16 {
			return valueErr("writeScalarFloat: %v out of range for int16", x)
		}
		order.PutUint16(b, uint16(int16(x)))
		return nil
	case ndt.Int32:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return valueErr("writeScalarFloat: %v out of range for int32", x)
		}
		order.PutUint32(b, uint32(int32(x)))
		return nil
	case ndt.Int64:
		if x < math.MinInt64 || x >= math.MaxInt64 {
			return valueErr("writeScalarFloat: %v out of range for int64", x)
		}
		order.PutUint64(b, uint64(int64(x)))
		return nil
	case ndt.Uint8:
		if x < 0 || x > math.MaxUint8 {
			return valueErr("writeScalarFloat: %v out of range for uint8", x)
		}
		b[0] = byte(uint8(x))
		return nil
	case ndt.Uint16:
		if x < 0 || x > math.MaxUint16 {
			return valueErr("writeScalarFloat: %v out of range for uint16", x)
		}
		order.PutUint16(b, uint16(x))
		return nil
	case ndt.Uint32:
		if x < 0 || x > math.MaxUint32 {
			return valueErr("writeScalarFloat: %v out of range for uint32", x)
		}
		order.PutUint32(b, uint32(x))
		return nil
	case ndt.Uint64:
		if x < 0 || x >= math.MaxUint64 {
			return valueErr("writeScalarFloat: %v out of range for uint64", x)
		}
		order.PutUint64(b, uint64(x))
		return nil
	case ndt.BFloat16:
		order.PutUint16(b, bits.PackBFloat16(float32(x)))
		return nil
	case ndt.Float16:
		h, err := bits.PackFloat16(x)
		if err != nil {
			return valueErr("writeScalarFloat: %v", err)
		}
		order.PutUint16(b, h)
		return nil
	case ndt.Float32:
		bits.PutFloat32(b, float32(x), le)
		return nil
	case ndt.Float64:
		bits.PutFloat64(b, x, le)
		return nil
	default:
		return typeErr("writeScalarFloat: tag %v is not a scalar numeric leaf", v.Type.Tag)
	}
}

var scalarNumericTags = map[ndt.Tag]bool{
	ndt.Bool: true, ndt.Int8: true, ndt.Int16: true, ndt.Int32: true, ndt.Int64: true,
	ndt.Uint8: true, ndt.Uint16: true, ndt.Uint32: true, ndt.Uint64: true,
	ndt.BFloat16: true, ndt.Float16: true, ndt.Float32: true, ndt.Float64: true,
}

func isScalarNumeric(t *ndt.Type) bool { return scalarNumericTags[t.Tag] }
