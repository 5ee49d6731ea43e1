// Package devotion is the boot sequence.  It brings the console up, shows
// off the delays, runs the cache benchmark and then never stops.
package devotion

import (
	"stopwatch/src/lib/haste"
	"stopwatch/src/lib/patience"
	"stopwatch/src/lib/trust"
	"stopwatch/src/lib/upbeat"
)

// Platform is the hardware bring-up the sequence depends on but does not
// implement.
type Platform interface {
	// ConsoleUp initializes the uart.  An error here is fatal.
	ConsoleUp() (upbeat.Console, error)
	// MemoryUp turns on the mmu with the cacheable and non-cacheable maps.
	MemoryUp() error
	// Regions returns the two benchmark regions, valid once MemoryUp worked.
	Regions(geom haste.Geometry) (cacheable, nonCacheable *haste.Region, err error)
	// Halt parks the cpu.  On the board it does not return.
	Halt()
}

// Timing is the set of timing tools the sequence drives.
type Timing struct {
	Waiter *patience.Waiter
	SysTmr *patience.SysTmr
	Bench  *haste.Bench
}

type State int

const (
	StateConsole State = iota
	StateGreeting
	StateMemory
	StateDelays
	StateBenchmark
	StateForever
	StateHalted
)

var stateNames = [...]string{"console", "greeting", "memory", "delays", "benchmark", "forever", "halted"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Sequence is the boot state machine.  Every state but the last two moves on
// after one Step; StateForever and StateHalted are never left.
type Sequence struct {
	cfg      Config
	platform Platform
	timing   Timing

	con      upbeat.Console
	state    State
	memoryUp bool
	looping  bool
	report   haste.Report
}

func NewSequence(cfg Config, p Platform, t Timing) *Sequence {
	return &Sequence{cfg: cfg, platform: p, timing: t, state: StateConsole}
}

func (s *Sequence) State() State {
	return s.state
}

// Report is what the benchmark found, zero until it ran.
func (s *Sequence) Report() haste.Report {
	return s.report
}

// Run steps forever.
func (s *Sequence) Run() {
	for {
		s.Step()
	}
}

// Step does the work of the current state and returns the next one.
func (s *Sequence) Step() State {
	switch s.state {
	case StateConsole:
		s.state = s.consoleUp()
	case StateGreeting:
		s.greet()
		s.state = StateMemory
	case StateMemory:
		s.memory()
		s.state = StateDelays
	case StateDelays:
		s.delays()
		s.state = StateBenchmark
	case StateBenchmark:
		s.benchmark()
		s.state = StateForever
	case StateForever:
		s.forever()
	case StateHalted:
		s.platform.Halt()
	}
	return s.state
}

func (s *Sequence) consoleUp() State {
	con, err := s.platform.ConsoleUp()
	if err != nil {
		//nobody to tell
		return StateHalted
	}
	s.con = con
	l := trust.NewLogger(con)
	l.SetLevel(s.cfg.LogLevel)
	trust.SetDefault(l)
	con.Puts("\n[0] UART is live!\n")
	return StateGreeting
}

func (s *Sequence) greet() {
	s.con.Puts("[1] Press a key to continue booting... ")
	if s.cfg.WaitForKey {
		s.con.Getc()
	}
	s.con.Puts("Greetings fellow Gopher!\n")
}

func (s *Sequence) memory() {
	if err := s.platform.MemoryUp(); err != nil {
		s.con.Puts("[2][Error] MMU: ")
		s.con.Puts(err.Error())
		s.con.Puts("\n")
		return
	}
	s.memoryUp = true
	s.con.Puts("[2] MMU online.\n")
}

func (s *Sequence) delays() {
	s.con.Puts("[i] Waiting ")
	s.con.Puts(groupDigits(s.cfg.CycleDemo))
	s.con.Puts(" CPU cycles (ARM CPU): ")
	s.timing.Waiter.WaitCycles(s.cfg.CycleDemo)
	s.con.Puts("OK\n")

	s.con.Puts("[i] Waiting " + durationWords(s.cfg.MuSecDemo) + " (ARM CPU): ")
	s.timing.Waiter.WaitMuSec(s.cfg.MuSecDemo)
	s.con.Puts("OK\n")

	//a zero read means there is no system timer here
	if s.timing.SysTmr != nil && s.timing.SysTmr.GetSystemTimer() != 0 {
		s.con.Puts("[i] Waiting " + durationWords(s.cfg.MuSecDemo) + " (BCM System Timer): ")
		s.timing.SysTmr.WaitMuSecST(s.cfg.MuSecDemo)
		s.con.Puts("OK\n")
	}
}

func (s *Sequence) benchmark() {
	if !s.cfg.RunBenchmark {
		return
	}
	if !s.memoryUp {
		s.con.Puts("[3] Benchmark skipped, no memory map.\n")
		return
	}
	cacheable, nonCacheable, err := s.platform.Regions(s.cfg.Geometry)
	if err != nil {
		trust.Errorf("regions: %v", err)
		s.con.Puts(haste.Diagnostic)
		return
	}
	s.report = s.timing.Bench.Run(s.con, cacheable, nonCacheable)
}

func (s *Sequence) forever() {
	if !s.looping {
		s.looping = true
		s.con.Puts("[i] Looping forever now!\n")
	}
	switch s.cfg.Terminal {
	case TerminalTick:
		s.timing.Waiter.WaitMuSec(s.cfg.TickMuSec)
		s.con.Puts("Tick: " + durationShort(s.cfg.TickMuSec) + "\n")
	case TerminalEcho:
		s.con.Send(s.con.Getc())
	}
}
