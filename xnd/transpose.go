package xnd

// Transpose reorders a pure FixedDim ndarray's axes by permutation
// without moving any data: the returned view shares the source's buffer
// and differs only in the nested FixedDim chain's shape/step ordering
// (spec §6, "a thin wrapper over the type-system transpose" -- the
// Python binding's pyxnd_transpose does nothing more than swap in a
// permuted type for the existing xnd_t).
//
// A nil permute reverses every axis, matching the default numpy .T
// convention; otherwise permute must list every axis index from 0 to
// ndim-1 exactly once.
func Transpose(v View, permute []int) (View, *Error) {
	shape, step, dtype, ok := v.Type.NDArrayShape()
	if !ok {
		return View{}, newErr(TypeErr, "Transpose: type is not a pure FixedDim ndarray")
	}
	n := len(shape)

	if permute == nil {
		permute = make([]int, n)
		for i := range permute {
			permute[i] = n - 1 - i
		}
	}
	if len(permute) != n {
		return View{}, newErr(Value, "Transpose: permutation length %d does not match ndim %d", len(permute), n)
	}

	seen := make([]bool, n)
	newShape := make([]int64, n)
	newStep := make([]int64, n)
	for i, p := range permute {
		if p < 0 || p >= n || seen[p] {
			return View{}, newErr(Value, "Transpose: %v is not a permutation of [0,%d)", permute, n)
		}
		seen[p] = true
		newShape[i] = shape[p]
		newStep[i] = step[p]
	}

	nv := v
	nv.Type = rebuildWithSteps(newShape, newStep, dtype, v.Type.Flags())
	return nv, nil
}
