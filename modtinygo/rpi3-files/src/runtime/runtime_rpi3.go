//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package runtime

// Copy this file into the TinyGo tree's src/runtime to build stopwatch for the
// rpi3 and rpi3_qemu targets.  The runtime cannot import the stopwatch
// packages, so the two registers it needs are spelled out here.

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

type timeUnit int64

var asyncScheduler = false

//mini uart data and line status, MemoryMappedIO + 0x215040 and 0x215054
var miniUARTData = (*volatile.Register32)(unsafe.Pointer(uintptr(0x3F215040)))
var miniUARTLineStatus = (*volatile.Register32)(unsafe.Pointer(uintptr(0x3F215054)))

const transmitFIFOSpaceAvailable = 1 << 5

// ticks are generic timer ticks, CNTPCT_EL0
func ticks() timeUnit {
	var t uint64
	arm.AsmFull(`mrs x27, cntpct_el0
		str x27,{t}`, map[string]interface{}{"t": &t})
	return timeUnit(t)
}

func counterFrequency() int64 {
	var f uint64
	arm.AsmFull(`mrs x28, cntfrq_el0
		str x28,{f}`, map[string]interface{}{"f": &f})
	if f == 0 {
		return 1 //never divide by zero
	}
	return int64(f)
}

func ticksToNanoseconds(t timeUnit) int64 {
	f := counterFrequency()
	return int64(t)/f*1_000_000_000 + int64(t)%f*1_000_000_000/f
}

func nanosecondsToTicks(ns int64) timeUnit {
	f := counterFrequency()
	return timeUnit(ns/1_000_000_000*f + ns%1_000_000_000*f/1_000_000_000)
}

//go:export sleepticks sleepticks
func sleepTicks(n timeUnit) {
	start := ticks()
	for ticks()-start < n {
		arm.Asm("nop")
	}
}

//go:export main
func main() {
	run()
	Exit()
}

// putchar assumes the uart is already up; before that output is lost.
func putchar(c byte) {
	for miniUARTLineStatus.Get()&transmitFIFOSpaceAvailable == 0 {
		arm.Asm("nop")
	}
	miniUARTData.Set(uint32(c))
}

// abort is called by panic().
func abort() {
	for {
		arm.Asm("wfe")
	}
}

func postinit() {
	// Initialize .bss: zero-initialized global variables.
	ptr := unsafe.Pointer(&_sbss)
	for ptr != unsafe.Pointer(&_ebss) {
		*(*uint32)(ptr) = 0
		ptr = unsafe.Pointer(uintptr(ptr) + 4)
	}
}

//go:extern _sbss
var _sbss [0]byte

//go:extern _ebss
var _ebss [0]byte

func Exit() {
	for _, c := range []byte("Program exited.\n") {
		putchar(c)
	}
	abort()
}
