//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package bcm2835

import (
	"unsafe"

	"stopwatch/src/hardware/rpi"
)

var Aux *AuxPeripheralsRegisterMap = (*AuxPeripheralsRegisterMap)(unsafe.Pointer(rpi.MemoryMappedIO + 0x00215000))
var GPIO *GPIORegisterMap = (*GPIORegisterMap)(unsafe.Pointer(rpi.MemoryMappedIO + 0x00200000))
var SysTimer *SysTimerRegisterMap = (*SysTimerRegisterMap)(unsafe.Pointer(rpi.MemoryMappedIO + 0x3000))
