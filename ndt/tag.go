// Package ndt implements the external type-system collaborator that the
// xnd core consumes: type descriptors, their tags, concreteness and
// alignment queries, var-dim index resolution, and structural equality.
// Real deployments of this design plug in a full type-description
// language implementation; this package supplies a minimal one grounded
// on the tag set and contracts the core requires, modeled directly on
// the ndtypes C library's ndt_t tagged union.
package ndt

// Tag identifies the kind of a Type. The set is fixed and exhaustive;
// functions that switch on Tag must handle every case (or explicitly
// panic on an unreachable default) so that adding a tag is caught at
// every call site during review.
type Tag int

const (
	// Dimensions.
	FixedDim Tag = iota
	VarDim
	VarDimElem

	// Composites.
	Tuple
	Record
	Union

	// Indirection.
	Ref
	Constr
	Nominal

	// Leaves: boolean.
	Bool

	// Leaves: signed integers.
	Int8
	Int16
	Int32
	Int64

	// Leaves: unsigned integers.
	Uint8
	Uint16
	Uint32
	Uint64

	// Leaves: floats.
	BFloat16
	Float16
	Float32
	Float64

	// Leaves: complexes.
	BComplex32
	Complex32
	Complex64
	Complex128

	// Leaves: strings and bytes.
	FixedString
	FixedBytes
	String
	Bytes

	// Leaves: categorical and flexible array.
	Categorical
	Array // flexible one-dimensional array

	// Leaf explicitly unimplemented by this library (spec Non-goal).
	Char

	// Accepted but inert at the xnd layer.
	Module
	Function

	// Abstract kinds, rejected at concrete entry points.
	AnyKind
	SymbolicDim
	EllipsisDim
	Typevar
	ScalarKind
	SignedKind
	UnsignedKind
	FloatKind
	ComplexKind
	FixedStringKind
	FixedBytesKind
)

var tagNames = map[Tag]string{
	FixedDim:        "FixedDim",
	VarDim:          "VarDim",
	VarDimElem:      "VarDimElem",
	Tuple:           "Tuple",
	Record:          "Record",
	Union:           "Union",
	Ref:             "Ref",
	Constr:          "Constr",
	Nominal:         "Nominal",
	Bool:            "Bool",
	Int8:            "Int8",
	Int16:           "Int16",
	Int32:           "Int32",
	Int64:           "Int64",
	Uint8:           "Uint8",
	Uint16:          "Uint16",
	Uint32:          "Uint32",
	Uint64:          "Uint64",
	BFloat16:        "BFloat16",
	Float16:         "Float16",
	Float32:         "Float32",
	Float64:         "Float64",
	BComplex32:      "BComplex32",
	Complex32:       "Complex32",
	Complex64:       "Complex64",
	Complex128:      "Complex128",
	FixedString:     "FixedString",
	FixedBytes:      "FixedBytes",
	String:          "String",
	Bytes:           "Bytes",
	Categorical:     "Categorical",
	Array:           "Array",
	Char:            "Char",
	Module:          "Module",
	Function:        "Function",
	AnyKind:         "AnyKind",
	SymbolicDim:     "SymbolicDim",
	EllipsisDim:     "EllipsisDim",
	Typevar:         "Typevar",
	ScalarKind:      "ScalarKind",
	SignedKind:      "SignedKind",
	UnsignedKind:    "UnsignedKind",
	FloatKind:       "FloatKind",
	ComplexKind:     "ComplexKind",
	FixedStringKind: "FixedStringKind",
	FixedBytesKind:  "FixedBytesKind",
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "InvalidTag"
}

// abstractTags are rejected by IsConcrete; Module/Function are grouped
// with them since the xnd layer gives them no runtime semantics even
// though ndt itself accepts them as valid tags (spec glossary).
var abstractTags = map[Tag]bool{
	AnyKind:         true,
	SymbolicDim:     true,
	EllipsisDim:     true,
	Typevar:         true,
	ScalarKind:      true,
	SignedKind:      true,
	UnsignedKind:    true,
	FloatKind:       true,
	ComplexKind:     true,
	FixedStringKind: true,
	FixedBytesKind:  true,
	Module:          true,
	Function:        true,
}
