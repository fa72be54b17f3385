package ndt

import "fmt"

// VarIndices resolves a single row of a VarDim into a (start, step, shape)
// triple addressing that row's elements in the flat backing buffer, in
// units of t.Elem. It composes any slices previously stacked onto t by
// subscription (spec §4.5, "ragged-shape slice composition"): each
// composed slice is renormalized against the shape produced by the
// previous step, and the resulting starts/steps are folded together.
func VarIndices(t *Type, index int64) (start, step, shape int64, err error) {
	if t.Tag != VarDim {
		return 0, 0, 0, fmt.Errorf("ndt: VarIndices: not a VarDim")
	}
	offsets := t.VarOffsets
	if index < 0 || index+1 >= int64(len(offsets)) {
		return 0, 0, 0, fmt.Errorf("ndt: VarIndices: row index %d out of range", index)
	}

	start = int64(offsets[index])
	step = 1
	shape = int64(offsets[index+1]) - int64(offsets[index])

	for _, s := range t.VarSlices {
		ns, nstep, _, nshape := NormalizeSlice(shape, s)
		start = start + ns*step
		step = step * nstep
		shape = nshape
	}

	return start, step, shape, nil
}
