// Package patience holds the busy-wait primitives.  Everything here spins;
// nothing yields, nothing can be cancelled, and nothing returns an error.
package patience

import (
	"math"
	"math/bits"
)

// Counter is a free running, monotonic tick source with a fixed frequency.
// On the board it is the ARM generic timer (CNTPCT_EL0/CNTFRQ_EL0) or the
// BCM system timer.
type Counter interface {
	Now() uint64
	Frequency() uint64
}

const MicrosPerSecond = 1_000_000

// MuSecToTicks converts n microseconds to ticks of a counter running at freq.
// The product is formed in 128 bits so no realistic frequency can overflow
// it.  The result truncates toward zero, so a tiny n on a slow counter can
// come out as zero ticks.  If the quotient does not fit in 64 bits the
// result saturates.
func MuSecToTicks(n uint32, freq uint64) uint64 {
	hi, lo := bits.Mul64(uint64(n), freq)
	if hi >= MicrosPerSecond {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, MicrosPerSecond)
	return q
}

// Elapsed is now-start on a counter that may have wrapped once.
func Elapsed(start, now uint64) uint64 {
	return now - start
}
