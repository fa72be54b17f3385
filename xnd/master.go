package xnd

import (
	"encoding/binary"
	"fmt"

	"github.com/ndview/xnd/ndt"
)

// OwnFlags mirrors the ownership bitmask the original library stamps on a
// master buffer so teardown knows exactly what it allocated and must free
// (spec §6). Go's garbage collector reclaims everything eventually; the
// flags are kept for API fidelity. Close does not consult them: it
// unmaps an mmap'd backing file whenever the Master was built by
// FromFile.
type OwnFlags uint8

const (
	OwnType OwnFlags = 1 << iota
	OwnData
	OwnStrings
	OwnBytes
	OwnPointers
	OwnArrays
	OwnCUDAManaged
)

// Master is the top-level owner of a buffer: the flags describing what it
// owns, and the root View over the whole thing (spec §3).
type Master struct {
	Flags OwnFlags
	View  View

	// mmapped holds the close func for an mmap-backed buffer, nil
	// otherwise; see file.go.
	mmapped func() error
}

// NewMaster allocates a zero-filled buffer sized for t and returns a
// Master owning it outright (spec §3, §6). Optional positions default to
// valid; callers needing NA values call SetNA after construction.
func NewMaster(t *ndt.Type) (*Master, error) {
	if !t.IsConcrete() {
		return nil, typeErr("NewMaster: type %v is abstract, not concrete", t.Tag)
	}

	bm, err := BitmapInit(t, 1)
	if err != nil {
		return nil, err
	}

	data := make([]byte, t.DataSize())
	m := &Master{
		Flags: OwnType | OwnData | OwnStrings | OwnBytes | OwnPointers | OwnArrays,
		View: View{
			Bitmap: bm,
			Index:  0,
			Type:   t,
			Data:   data,
			Offset: 0,
			Refs:   &RefTable{},
		},
	}
	return m, nil
}

// NewMasterFromBytes wraps an existing buffer without copying it. The
// Master does not own Data (OwnData is unset); callers remain responsible
// for its lifetime, mirroring xnd_from_xnd's non-owning view contract.
func NewMasterFromBytes(t *ndt.Type, data []byte) (*Master, error) {
	if !t.IsConcrete() {
		return nil, typeErr("NewMasterFromBytes: type %v is abstract, not concrete", t.Tag)
	}
	if int64(len(data)) < t.DataSize() {
		return nil, valueErr("NewMasterFromBytes: buffer too small: have %d, need %d", len(data), t.DataSize())
	}
	bm, err := BitmapInit(t, 1)
	if err != nil {
		return nil, err
	}
	return &Master{
		Flags: OwnType,
		View: View{
			Bitmap: bm,
			Index:  0,
			Type:   t,
			Data:   data,
			Offset: 0,
			Refs:   &RefTable{},
		},
	}, nil
}

// Close releases any external resources the Master owns (currently, an
// mmap'd file; see file.go). It is always safe to call, and a no-op when
// there is nothing to release.
func (m *Master) Close() error {
	if m.mmapped != nil {
		return m.mmapped()
	}
	return nil
}

// AddRef registers target in the view's ref side table and returns an
// 8-byte little-endian encoding of its index, the value a Ref leaf's
// embedded slot stores (spec §9). It is the caller's responsibility to
// keep target alive for as long as any Ref pointing at it is reachable;
// Go's garbage collector does this automatically as long as the Master
// that owns the side table is reachable.
func (m *Master) AddRef(target []byte) []byte {
	idx := m.View.Refs.Add(target)
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(idx))
	return buf
}

func resolveRef(v *View) ([]byte, error) {
	if len(v.Data) < int(v.Offset)+8 {
		return nil, memoryErr("resolveRef: truncated buffer at offset %d", v.Offset)
	}
	idx := binary.LittleEndian.Uint64(v.Data[v.Offset : v.Offset+8])
	target, ok := v.Refs.Get(idx)
	if !ok {
		return nil, memoryErr("resolveRef: dangling ref index %d", idx)
	}
	return target, nil
}

func (f OwnFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for bit, name := range map[OwnFlags]string{
		OwnType:        "type",
		OwnData:        "data",
		OwnStrings:     "strings",
		OwnBytes:       "bytes",
		OwnPointers:    "pointers",
		OwnArrays:      "arrays",
		OwnCUDAManaged: "cuda_managed",
	} {
		if f&bit != 0 {
			parts = append(parts, name)
		}
	}
	return fmt.Sprint(parts)
}
