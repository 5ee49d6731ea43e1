package devotion

import (
	"stopwatch/src/lib/haste"
	"stopwatch/src/lib/trust"
)

// Terminal is what the sequence does once everything else is done.
type Terminal int

const (
	// TerminalTick waits TickMuSec and prints a tick, forever.
	TerminalTick Terminal = iota
	// TerminalEcho sends back every byte it reads, forever.
	TerminalEcho
)

// Config is fixed at compile time; the board has no flags and no files.
type Config struct {
	WaitForKey   bool
	CycleDemo    uint32 //cpu spin loop iterations
	MuSecDemo    uint32 //on both timers
	TickMuSec    uint32
	Terminal     Terminal
	Geometry     haste.Geometry
	RunBenchmark bool
	LogLevel     trust.MaskLevel
}

func DefaultConfig() Config {
	return Config{
		WaitForKey:   true,
		CycleDemo:    1_000_000,
		MuSecDemo:    1_000_000,
		TickMuSec:    1_000_000,
		Terminal:     TerminalEcho,
		Geometry:     haste.DefaultGeometry(),
		RunBenchmark: true,
		LogLevel:     trust.ErrorMask | trust.WarnMask,
	}
}
