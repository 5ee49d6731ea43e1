//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package bcm2835

import "runtime/volatile"

type SysTimerRegisterMap struct {
	ControlStatus       volatile.Register32 //0x00
	FreeRunningLower32  volatile.Register32 //0x04
	FreeRunningHigher32 volatile.Register32 //0x08
	reservedGPU0        volatile.Register32 //0x0C
	Compare1            volatile.Register32 //0x10
	reservedGPU2        volatile.Register32 //0x14
	Compare3            volatile.Register32 //0x18
}

// SystemTimer is the 64 bit free running counter.  QEMU does not model it
// and every read is zero.
type SystemTimer struct{}

// Now reads high, low, high; if the high word moved the low word wrapped
// in between and we read again.
func (SystemTimer) Now() uint64 {
	for {
		hi := SysTimer.FreeRunningHigher32.Get()
		lo := SysTimer.FreeRunningLower32.Get()
		if SysTimer.FreeRunningHigher32.Get() == hi {
			return uint64(hi)<<32 | uint64(lo)
		}
	}
}

func (SystemTimer) Frequency() uint64 {
	return SystemTimerFrequency
}
