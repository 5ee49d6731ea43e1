//go:build rpi3 && !rpi3_qemu
// +build rpi3,!rpi3_qemu

package main

import "stopwatch/src/lib/devotion"

type boardQuirks struct {
	assumeCoreClock bool
}

// on the board: wait for the key, run the benchmark, echo forever
func config() (devotion.Config, boardQuirks) {
	return devotion.DefaultConfig(), boardQuirks{}
}
