package xnd

import (
	"github.com/ndview/xnd/internal/bits"
	"github.com/ndview/xnd/ndt"
)

// Split partitions up to maxOuter of v's outermost FixedDim axes into n
// roughly-equal views for concurrent consumption (spec §4.8). When the
// outermost axis has fewer rows than n, Split consumes that axis one row
// at a time and recurses into the next axis to manufacture the remaining
// parts. The actual part count is the smaller of n and the product of
// the collected outer shapes, so it never exceeds the request and falls
// short of it only when those axes cannot supply n parts; that count is
// written back through n before returning. Grounded on the original
// library's schedule/column recursion (original split.c).
func Split(v *View, n *int64, maxOuter int) ([]*View, error) {
	if *n < 1 {
		return nil, valueErr("Split: 'n' parameter must be >= 1")
	}

	shape, err := collectOuterShapes(v.Type, maxOuter)
	if err != nil {
		return nil, err
	}

	var overflow bool
	if len(shape) > 0 {
		bits.MulI64(*n, int64(len(shape)), &overflow)
		if overflow {
			return nil, valueErr("Split: 'n' parameter is too large")
		}
	}

	paths := buildSchedule(*n, shape)

	parts := make([]*View, len(paths))
	for i, keys := range paths {
		p, err := Subscribe(v, keys...)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}

	*n = int64(len(paths))
	return parts, nil
}

// collectOuterShapes walks up to maxOuter leading FixedDim axes of t,
// collecting their shapes, then validates (without collecting) any
// further FixedDim axes beneath those -- every visited shape must be
// positive, matching the original library's get_shape.
func collectOuterShapes(t *ndt.Type, maxOuter int) ([]int64, error) {
	if !t.IsNDArray() {
		return nil, valueErr("Split: called on non-ndarray")
	}

	var shape []int64
	cur := t
	for len(shape) < maxOuter && cur.NDim() > 0 {
		if cur.FixedShape <= 0 {
			return nil, valueErr("Split: invalid shape or shape with zeros")
		}
		shape = append(shape, cur.FixedShape)
		cur = cur.Elem
	}
	for cur.NDim() > 0 {
		if cur.FixedShape <= 0 {
			return nil, valueErr("Split: invalid shape or shape with zeros")
		}
		cur = cur.Elem
	}
	return shape, nil
}

// buildSchedule is the recursive schedule/column algorithm (original
// split.c:138-183): given a target part count n over the leading axis
// shape[0] and the axes beneath it, it returns one key path per output
// part. When n fits within shape[0], that axis alone is sliced into n
// balanced contiguous ranges. When n exceeds shape[0], every row of the
// axis is consumed individually and the remaining n is distributed
// across the rows (as evenly as possible) by recursing into shape[1:],
// which is how more parts than the outermost axis has rows get
// manufactured. Once no axes remain, each path yields a single part, so
// a request larger than the product of the shapes produces only that
// many parts.
//
// The original emits a length-1 slice for a consumed row, keeping a
// trivial axis in the result's type; this port uses an index key
// instead, which collapses that axis. Each index key also properly
// descends into the next axis for the remaining path the way a bare
// slice key would not, and the data addressed is identical either way.
func buildSchedule(n int64, shape []int64) [][]Key {
	if len(shape) == 0 {
		return [][]Key{{}}
	}

	m := shape[0]
	if n <= m {
		q, r := m/n, m%n
		paths := make([][]Key, n)
		for i := int64(0); i < n; i++ {
			paths[i] = []Key{SliceKey(ndt.Slice{
				Start: blockStart(i, r, q), Stop: blockStop(i, r, q), Step: 1,
				HasStart: true, HasStop: true,
			})}
		}
		return paths
	}

	q, r := n/m, n%m
	var paths [][]Key
	for i := int64(0); i < m; i++ {
		rowN := q
		if i < r {
			rowN++
		}
		rowKey := IndexKey(i)
		for _, sub := range buildSchedule(rowN, shape[1:]) {
			path := make([]Key, 0, 1+len(sub))
			path = append(path, rowKey)
			path = append(path, sub...)
			paths = append(paths, path)
		}
	}
	return paths
}

func blockStart(i, r, q int64) int64 {
	if i < r {
		return i * (q + 1)
	}
	return r + i*q
}

func blockStop(i, r, q int64) int64 {
	if i < r {
		return (i + 1) * (q + 1)
	}
	return r + (i+1)*q
}
