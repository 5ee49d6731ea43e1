//go:build rpi3_qemu
// +build rpi3_qemu

package main

import (
	"stopwatch/src/lib/devotion"
	"stopwatch/src/lib/trust"
)

type boardQuirks struct {
	assumeCoreClock bool
}

// QEMU has no system timer, ignores the baud rate and runs the cycle loops
// far faster than the board, so tick instead of echo to show time passing.
func config() (devotion.Config, boardQuirks) {
	cfg := devotion.DefaultConfig()
	cfg.Terminal = devotion.TerminalTick
	cfg.LogLevel = trust.ErrorMask | trust.WarnMask | trust.InfoMask | trust.StatsMask
	return cfg, boardQuirks{assumeCoreClock: true}
}
