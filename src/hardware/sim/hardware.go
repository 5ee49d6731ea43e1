package sim

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/cpu"

	"stopwatch/src/lib/haste"
	"stopwatch/src/lib/patience"
)

var fenceWord atomic.Uint64

// Barriers are sequentially consistent atomics.  The go compiler will not
// move the workload's atomic loads and stores across them.
type Barriers struct{}

func (Barriers) Fence() {
	fenceWord.Add(1)
}

func (Barriers) Complete() {
	fenceWord.Add(1)
}

// SystemTimer is HostCounter slowed to the 1MHz of the board's system timer.
type SystemTimer struct {
	Counter patience.Counter
}

func (s SystemTimer) Now() uint64 {
	return s.Counter.Now() / (s.Counter.Frequency() / 1_000_000)
}

func (SystemTimer) Frequency() uint64 {
	return 1_000_000
}

// absentTimer is what QEMU shows: a counter stuck at zero.
type absentTimer struct{}

func (absentTimer) Now() uint64       { return 0 }
func (absentTimer) Frequency() uint64 { return 1_000_000 }

// CachelineSize is the host's, as the runtime pads for it.
func CachelineSize() int {
	return int(unsafe.Sizeof(cpu.CacheLinePad{}))
}

// HostGeometry is the default geometry with the host's cacheline size.
func HostGeometry() haste.Geometry {
	g := haste.DefaultGeometry()
	g.CachelineSize = CachelineSize()
	return g
}

// AlignedWords returns n zeroed words whose first word starts on an align
// byte boundary.  align must be a multiple of 8.
func AlignedWords(n int, align int) []uint64 {
	raw := make([]uint64, n+align/8)
	for i := range raw {
		if uintptr(unsafe.Pointer(&raw[i]))%uintptr(align) == 0 {
			return raw[i : i+n]
		}
	}
	return nil
}
