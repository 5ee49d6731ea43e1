//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package videocore

import (
	"unsafe"

	"device/arm"
	"runtime/volatile"

	"stopwatch/src/hardware/rpi"
)

var Mailbox *MailboxRegisterMap = (*MailboxRegisterMap)(unsafe.Pointer(rpi.MemoryMappedIO + 0x0000B880))

type MailboxRegisterMap struct {
	Read     volatile.Register32    //0x00
	reserved [3]volatile.Register32 //0x04-0x10
	Poll     volatile.Register32    //0x10
	Sender   volatile.Register32    // 0x14
	Status   volatile.Register32    // 0x18
	Config   volatile.Register32    //0x1c
	Write    volatile.Register32    //0x20
}

// the one shared message area, with room to slide up to a 16 byte boundary
var backing [MessageWords + 4]uint32

func alignedBuffer() []uint32 {
	off := ((16 - uintptr(unsafe.Pointer(&backing[0]))&0xf) & 0xf) / 4
	return backing[off : off+MessageWords]
}

//
// Call hands msg to the videocore on ch and waits until it comes back.  The
// answer is written over msg.  Uses of this function are NOT multithread
// safe.
//
func Call(ch uint8, msg []uint32) error {
	addr := uintptr(unsafe.Pointer(&msg[0]))
	if addr&0xf != 0 {
		return ErrMisaligned
	}
	for i := range msg {
		volatile.StoreUint32(&msg[i], msg[i])
	}
	arm.Asm("dsb sy")
	addrWithChannel := uint32(addr) | uint32(ch&0xf)
	for Mailbox.Status.HasBits(MailboxFull) {
		arm.Asm("nop")
	}
	Mailbox.Write.Set(addrWithChannel)
	for {
		for Mailbox.Status.HasBits(MailboxEmpty) {
			arm.Asm("nop")
		}
		if Mailbox.Read.Get() == addrWithChannel {
			break
		}
	}
	arm.Asm("dsb sy")
	for i := range msg {
		msg[i] = volatile.LoadUint32(&msg[i])
	}
	return nil
}

// ClockRate returns the rate of clock in Hz, see ClockCore and friends.
func ClockRate(clock uint32) (uint32, error) {
	msg, err := ClockRateMessage(alignedBuffer(), clock)
	if err != nil {
		return 0, err
	}
	if err := Call(MailboxChannelProperties, msg); err != nil {
		return 0, err
	}
	return ParseClockRate(msg, clock)
}
