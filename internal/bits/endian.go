package bits

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// HostDoubleLE and HostFloatLE record the host's native memory layout for
// float64/float32, probed once at package init by writing a known value
// natively and reading its bytes back as little-endian, mirroring the
// memcmp-against-known-bit-patterns probe described for this library
// (9006104071832581.0 for float64, 16711938.0 for float32). All pack/unpack
// routines below choose byte order from the type descriptor's endianness
// flag explicitly and do not depend on these, but the probe is kept as the
// documented process-wide state other pluggable allocators/backends may
// consult.
var (
	HostDoubleLE bool
	HostFloatLE  bool
)

func init() {
	HostDoubleLE = probeDoubleLE()
	HostFloatLE = probeFloatLE()
}

func probeDoubleLE() bool {
	const v = 9006104071832581.0
	want := math.Float64bits(v)

	var buf [8]byte
	*(*float64)(unsafe.Pointer(&buf[0])) = v

	return binary.LittleEndian.Uint64(buf[:]) == want
}

func probeFloatLE() bool {
	const v float32 = 16711938.0
	want := math.Float32bits(v)

	var buf [4]byte
	*(*float32)(unsafe.Pointer(&buf[0])) = v

	return binary.LittleEndian.Uint32(buf[:]) == want
}
