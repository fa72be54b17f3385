package ndt

// Slice is a normalized-or-not {start, stop, step} index key, shared by
// subscription (spec §4.3) and split (spec §4.8). HasStart/HasStop mirror
// Python's "None means open end" slice semantics; Step is always given,
// defaulting to 1 when a key omits it.
type Slice struct {
	Start, Stop, Step int64
	HasStart, HasStop bool
}

// MaxStepMagnitude is the clamp applied to a slice step of -(2^63) per
// spec §8 boundary behavior ("step = -INT64_MAX - 1 is clamped to
// -INT64_MAX").
const MaxStepMagnitude = 1<<63 - 1

// NormalizeSlice implements Python's well-known slice.indices semantics:
// given a sequence length and a possibly-negative/partial (start, stop,
// step), it returns an in-range (start', stop', step') and the resulting
// shape = ceil_div(|stop'-start'|, |step|) when the traversal direction
// is consistent with step's sign, else 0 (spec glossary, "Slice
// normalization").
func NormalizeSlice(length int64, s Slice) (start, stop, step, shape int64) {
	step = s.Step
	if step == 0 {
		step = 1
	}
	if step == -(1 << 63) {
		step = -MaxStepMagnitude
	}

	if step > 0 {
		if !s.HasStart {
			start = 0
		} else {
			start = clampIndex(s.Start, length)
		}
		if !s.HasStop {
			stop = length
		} else {
			stop = clampIndex(s.Stop, length)
		}
		if stop > start {
			shape = ceilDiv(stop-start, step)
		} else {
			shape = 0
		}
	} else {
		if !s.HasStart {
			start = length - 1
		} else {
			start = clampIndexNeg(s.Start, length)
		}
		if !s.HasStop {
			stop = -1
		} else {
			stop = clampIndexNeg(s.Stop, length)
		}
		if start > stop {
			shape = ceilDiv(start-stop, -step)
		} else {
			shape = 0
		}
	}

	return start, stop, step, shape
}

func clampIndex(i, length int64) int64 {
	if i < 0 {
		i += length
		if i < 0 {
			i = 0
		}
	} else if i > length {
		i = length
	}
	return i
}

// clampIndexNeg clamps for a negative-step slice, where the valid range
// for 'stop' extends one below zero (-1, meaning "through index 0").
func clampIndexNeg(i, length int64) int64 {
	if i < 0 {
		i += length
		if i < -1 {
			i = -1
		}
	} else if i >= length {
		i = length - 1
	}
	return i
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// AdjustIndex resolves a negative index against length (spec §4.3,
// "negative indices count from the end") and reports whether the
// resulting index is in range.
func AdjustIndex(i, length int64) (int64, bool) {
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return i, false
	}
	return i, true
}
