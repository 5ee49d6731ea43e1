package sim

import (
	"errors"
	"fmt"
	"io"

	"stopwatch/src/lib/devotion"
	"stopwatch/src/lib/haste"
	"stopwatch/src/lib/patience"
	"stopwatch/src/lib/upbeat"
)

var ErrHalted = errors.New("simulated board halted")

// Options are the knobs of a simulated board.
type Options struct {
	In  io.ByteReader
	Out io.Writer
	// SystemTimer makes the 1MHz timer present, like a real board.  Without
	// it the timer reads zero, like QEMU.
	SystemTimer bool
	// NoMMU makes memory bring-up fail.
	NoMMU bool
}

// Platform is a devotion.Platform backed by the host.
type Platform struct {
	opts   Options
	words  []uint64
	halted bool
}

func NewPlatform(opts Options) *Platform {
	return &Platform{opts: opts}
}

func (p *Platform) ConsoleUp() (upbeat.Console, error) {
	if p.opts.Out == nil {
		return nil, fmt.Errorf("%w: no output stream", ErrHalted)
	}
	return &upbeat.StreamConsole{In: p.opts.In, Out: p.opts.Out}, nil
}

func (p *Platform) MemoryUp() error {
	if p.opts.NoMMU {
		return errors.New("translation disabled on this board")
	}
	return nil
}

// Regions hands out the same heap words twice.  The host cannot turn the
// cache off for an alias, so both runs hit cached memory.
func (p *Platform) Regions(geom haste.Geometry) (*haste.Region, *haste.Region, error) {
	if len(p.words) < geom.Words() {
		p.words = AlignedWords(geom.Words(), geom.CachelineSize)
	}
	c, err := haste.RegionOver("cacheable", p.words, 0, geom)
	if err != nil {
		return nil, nil, err
	}
	c.Physical = c.Virtual
	nc, err := haste.RegionOver("non-cacheable", p.words, c.Virtual, geom)
	if err != nil {
		return nil, nil, err
	}
	return c, nc, nil
}

func (p *Platform) Halt() {
	p.halted = true
}

func (p *Platform) Halted() bool {
	return p.halted
}

// Timing is the timing set of a simulated board, all on HostCounter.
func (p *Platform) Timing() devotion.Timing {
	var clock HostCounter
	var st patience.Counter = absentTimer{}
	if p.opts.SystemTimer {
		st = SystemTimer{Counter: clock}
	}
	return devotion.Timing{
		Waiter: patience.NewWaiter(clock, nil),
		SysTmr: patience.NewSysTmr(st),
		Bench:  haste.NewBench(clock, Barriers{}),
	}
}

// Run boots a simulated board with cfg up to the terminal loop and then
// lets the loop go round extra times.
func Run(cfg devotion.Config, opts Options, extra int) (*devotion.Sequence, error) {
	p := NewPlatform(opts)
	s := devotion.NewSequence(cfg, p, p.Timing())
	for s.State() != devotion.StateForever {
		if s.Step() == devotion.StateHalted {
			return s, ErrHalted
		}
	}
	for i := 0; i < extra; i++ {
		s.Step()
	}
	return s, nil
}
