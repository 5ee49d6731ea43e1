package bcm2835

import (
	"errors"
	"fmt"
)

// the free running system timer always counts at 1MHz
const SystemTimerFrequency = 1_000_000

const DefaultBaud = 115200

// what the firmware sets the core clock to unless config.txt says otherwise
const DefaultCoreClock = 250_000_000

var ErrBaudRate = errors.New("baud rate not reachable from core clock")

// BaudDivisor is the value for MiniUARTBAUD, BCM2835 ARM Peripheral manual
// page 11: baud = clock / (8 * (divisor + 1)).
func BaudDivisor(coreClock uint32, baud uint32) (uint32, error) {
	if baud == 0 {
		return 0, fmt.Errorf("%w: baud is zero", ErrBaudRate)
	}
	n := uint64(coreClock) / (8 * uint64(baud))
	if n == 0 || n-1 > 0xFFFF {
		return 0, fmt.Errorf("%w: %d baud from %d Hz", ErrBaudRate, baud, coreClock)
	}
	return uint32(n - 1), nil
}
