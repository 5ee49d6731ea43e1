package cachemon

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"stopwatch/src/hardware/sim"
	"stopwatch/src/lib/devotion"
	"stopwatch/src/lib/haste"
)

// SimulateConfig shapes a host run of the boot sequence.
type SimulateConfig struct {
	Geometry    haste.Geometry
	Ticks       int
	TickMuSec   uint32
	DelayMuSec  uint32
	SystemTimer bool
	NoMMU       bool
}

// DefaultSimulateConfig uses the host's cacheline size and the board's
// timings.
func DefaultSimulateConfig() SimulateConfig {
	return SimulateConfig{
		Geometry:    sim.HostGeometry(),
		Ticks:       3,
		TickMuSec:   1_000_000,
		DelayMuSec:  1_000_000,
		SystemTimer: true,
	}
}

// Simulate runs the firmware's boot sequence on the host and summarizes it.
// No key is waited for and the final loop ticks instead of echoing.
func Simulate(ctx context.Context, logger *slog.Logger, cfg SimulateConfig, out io.Writer) (Summary, error) {
	boot := devotion.DefaultConfig()
	boot.WaitForKey = false
	boot.Terminal = devotion.TerminalTick
	boot.TickMuSec = cfg.TickMuSec
	boot.MuSecDemo = cfg.DelayMuSec
	boot.Geometry = cfg.Geometry

	logger.InfoContext(ctx, "simulating board",
		slog.Int("cacheline", cfg.Geometry.CachelineSize),
		slog.Int("cachelines", cfg.Geometry.Cachelines),
		slog.Int("iterations", cfg.Geometry.Iterations),
		slog.Bool("system_timer", cfg.SystemTimer),
	)

	mon := NewMonitor(out)

	seq, err := sim.Run(boot, sim.Options{
		In:          bytes.NewReader(nil),
		Out:         mon,
		SystemTimer: cfg.SystemTimer,
		NoMMU:       cfg.NoMMU,
	}, cfg.Ticks)
	if err != nil {
		return Summary{}, err
	}

	logger.DebugContext(ctx, "simulation done", slog.String("state", seq.State().String()))

	return mon.Summary()
}
