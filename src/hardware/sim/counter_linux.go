//go:build linux

package sim

import "golang.org/x/sys/unix"

// HostCounter is CLOCK_MONOTONIC_RAW, which NTP does not slew, in nanoseconds.
type HostCounter struct{}

func (HostCounter) Now() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		return 0
	}
	return uint64(ts.Nano())
}

func (HostCounter) Frequency() uint64 {
	return 1_000_000_000
}
