package xnd

import "github.com/ndview/xnd/ndt"

// ContiguityOrder selects which axis varies fastest. AutoContiguous
// resolves to FContiguous when the source is F- but not C-contiguous,
// and to CContiguous otherwise (spec §4.7's order 'A').
type ContiguityOrder int

const (
	CContiguous ContiguityOrder = iota
	FContiguous
	AutoContiguous
)

// Reshape builds a new FixedDim chain over t's dtype with the given
// shape without copying any data, following spec §4.7's six-step
// algorithm: an exact shape match keeps the existing per-axis steps
// as-is; any zero in the new shape produces zeroed steps; a type
// already fully contiguous in the requested order gets canonical
// contiguous steps; otherwise axis folding (the NumPy
// _attempt_nocopy_reshape algorithm) is attempted, grouping maximal
// runs of axes with equal element counts on both sides and checking
// each run is itself contiguous -- if no such grouping exists, the
// reshape fails with ValueError rather than falling back to a copy.
func Reshape(t *ndt.Type, shape []int64, order ContiguityOrder) (*ndt.Type, error) {
	oldShape, oldStep, dtype, ok := t.NDArrayShape()
	if !ok {
		return nil, typeErr("Reshape: type is not a pure FixedDim ndarray")
	}

	oldCount := productInt64(oldShape)
	newCount := productInt64(shape)
	if oldCount != newCount {
		return nil, valueErr("Reshape: element count mismatch: have %d, want %d", oldCount, newCount)
	}

	if order == AutoContiguous {
		if t.IsFContiguous() && !t.IsCContiguous() {
			order = FContiguous
		} else {
			order = CContiguous
		}
	}

	if sameShape(oldShape, shape) {
		return rebuildWithSteps(shape, oldStep, dtype, t.Flags()), nil
	}

	if hasZero(shape) {
		return rebuildWithSteps(shape, make([]int64, len(shape)), dtype, t.Flags()), nil
	}

	switch order {
	case CContiguous:
		if t.IsCContiguous() {
			return buildCContiguous(shape, dtype, t.Flags()), nil
		}
	case FContiguous:
		if t.IsFContiguous() {
			return buildFContiguous(shape, dtype, t.Flags()), nil
		}
	}

	newSteps, ok := attemptNocopyReshape(oldShape, oldStep, shape, order)
	if !ok {
		return nil, valueErr("Reshape: inplace reshape not possible")
	}
	return rebuildWithSteps(shape, newSteps, dtype, t.Flags()), nil
}

func sameShape(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasZero(shape []int64) bool {
	for _, s := range shape {
		if s == 0 {
			return true
		}
	}
	return false
}

func productInt64(xs []int64) int64 {
	p := int64(1)
	for _, x := range xs {
		p *= x
	}
	return p
}

// rebuildWithSteps builds nested FixedDim types over dtype with an
// explicit per-axis step, innermost axis first.
func rebuildWithSteps(shape, steps []int64, dtype *ndt.Type, flags ndt.Flags) *ndt.Type {
	t := dtype
	for i := len(shape) - 1; i >= 0; i-- {
		t = ndt.NewFixedDimStrided(shape[i], steps[i], t, flags)
	}
	return t
}

// buildCContiguous builds nested FixedDim types, last axis fastest
// (step=1), matching NumPy's default 'C' order.
func buildCContiguous(shape []int64, dtype *ndt.Type, flags ndt.Flags) *ndt.Type {
	t := dtype
	for i := len(shape) - 1; i >= 0; i-- {
		t = ndt.NewFixedDim(shape[i], t, flags)
	}
	return t
}

// buildFContiguous builds nested FixedDim types, first axis fastest,
// matching NumPy's 'F' order. Since this package's FixedDim always
// applies its step to the leading (outermost) index, representing F
// order requires computing the per-axis step left-to-right and then
// building the type from the innermost axis outward.
func buildFContiguous(shape []int64, dtype *ndt.Type, flags ndt.Flags) *ndt.Type {
	n := len(shape)
	steps := make([]int64, n)
	acc := int64(1)
	for i := 0; i < n; i++ {
		steps[i] = acc
		acc *= shape[i]
	}
	return rebuildWithSteps(shape, steps, dtype, flags)
}

// attemptNocopyReshape is a direct port of NumPy's
// _attempt_nocopy_reshape: size-1 source axes are squeezed out (they
// impose no stride constraint), then maximal runs of axes with equal
// element counts on both sides are grouped and checked for
// contiguity in the requested order. ok is false when no such
// grouping reproduces newShape without copying.
func attemptNocopyReshape(oldShape, oldStep, newShape []int64, order ContiguityOrder) ([]int64, bool) {
	var shp, stp []int64
	for i, s := range oldShape {
		if s != 1 {
			shp = append(shp, s)
			stp = append(stp, oldStep[i])
		}
	}
	oldnd := len(shp)
	newnd := len(newShape)
	newStep := make([]int64, newnd)
	isF := order == FContiguous

	oi, oj := 0, 1
	ni, nj := 0, 1
	for ni < newnd && oi < oldnd {
		np := newShape[ni]
		op := shp[oi]

		for np != op {
			if np < op {
				if nj >= newnd {
					return nil, false
				}
				np *= newShape[nj]
				nj++
			} else {
				if oj >= oldnd {
					return nil, false
				}
				op *= shp[oj]
				oj++
			}
		}

		for ok := oi; ok < oj-1; ok++ {
			if isF {
				if stp[ok+1] != shp[ok]*stp[ok] {
					return nil, false
				}
			} else {
				if stp[ok] != shp[ok+1]*stp[ok+1] {
					return nil, false
				}
			}
		}

		if isF {
			newStep[ni] = stp[oi]
			for nk := ni + 1; nk < nj; nk++ {
				newStep[nk] = newStep[nk-1] * newShape[nk-1]
			}
		} else {
			newStep[nj-1] = stp[oj-1]
			for nk := nj - 1; nk > ni; nk-- {
				newStep[nk-1] = newStep[nk] * newShape[nk]
			}
		}

		ni = nj
		nj++
		oi = oj
		oj++
	}

	if ni >= 1 {
		last := newStep[ni-1]
		if isF {
			last *= newShape[ni-1]
		}
		for nk := ni; nk < newnd; nk++ {
			newStep[nk] = last
		}
	} else {
		for nk := 0; nk < newnd; nk++ {
			newStep[nk] = 1
		}
	}

	return newStep, true
}
