//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package bcm2835

import "runtime/volatile"

type GPIORegisterMap struct {
	FuncSelect             [6]volatile.Register32 //0x00,04,08,0C,10, and 14
	reserved00             volatile.Register32    //0x18
	OutputSet0             volatile.Register32    //0x1C
	OutputSet1             volatile.Register32    //0x20
	reserved01             volatile.Register32    //0x24
	OutputClear0           volatile.Register32    //0x28
	OutputClear1           volatile.Register32    //0x2C
	reserved03             volatile.Register32    //0x30
	Level0                 volatile.Register32    //0x34
	Level1                 volatile.Register32    //0x38
	reserved04             [22]volatile.Register32 //0x3C-0x90, edge and level detection
	PullUpDownEnable       volatile.Register32    //0x94
	PullUpDownEnableClock0 volatile.Register32    //0x98
	PullUpDownEnableClock1 volatile.Register32    //0x9C
}

type GPIOMode uint32 //3 bits wide
const GPIOInput GPIOMode = 0
const GPIOOutput GPIOMode = 1
const GPIOAltFunc5 GPIOMode = 2
const GPIOAltFunc4 GPIOMode = 3
const GPIOAltFunc0 GPIOMode = 4
const GPIOAltFunc1 GPIOMode = 5
const GPIOAltFunc2 GPIOMode = 6
const GPIOAltFunc3 GPIOMode = 7

const GPIOPins = 54

// GPIOSetup puts pin in mode.  False if there is no such pin.
func GPIOSetup(pin uint8, mode GPIOMode) bool {
	if pin >= GPIOPins {
		return false
	}
	shift := (pin % 10) * 3
	GPIO.FuncSelect[pin/10].ReplaceBits(uint32(mode), 7, shift)
	return true
}

// GPIOPullNone takes the pull up/down resistors off the pins in mask (bank 0),
// with the 150 cycle settle time the data sheet asks for on both sides of
// the clock.
func GPIOPullNone(mask uint32, nop func()) {
	GPIO.PullUpDownEnable.Set(0)
	for i := 0; i < 150; i++ {
		nop()
	}
	GPIO.PullUpDownEnableClock0.Set(mask)
	for i := 0; i < 150; i++ {
		nop()
	}
	GPIO.PullUpDownEnableClock0.Set(0) //flush gpio setup
}
