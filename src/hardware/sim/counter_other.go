//go:build !linux

package sim

import "time"

var epoch = time.Now()

// HostCounter is the monotonic clock in nanoseconds since the package was
// loaded.
type HostCounter struct{}

func (HostCounter) Now() uint64 {
	return uint64(time.Since(epoch).Nanoseconds()) + 1
}

func (HostCounter) Frequency() uint64 {
	return 1_000_000_000
}
