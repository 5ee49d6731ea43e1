// Package sim stands in for the board on a host: a nanosecond counter for
// the cycle counter, atomics for the barriers, heap memory for the benchmark
// regions and a stream for the uart.  It runs the same boot sequence the
// firmware runs, which is what cachemon simulate does.
package sim
