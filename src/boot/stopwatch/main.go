//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package main

import (
	"unsafe"

	arm "stopwatch/src/hardware/arm-cortex-a53"
	"stopwatch/src/hardware/bcm2835"
	"stopwatch/src/hardware/rpi"
	"stopwatch/src/hardware/videocore"
	"stopwatch/src/lib/devotion"
	"stopwatch/src/lib/haste"
	"stopwatch/src/lib/patience"
	"stopwatch/src/lib/trust"
	"stopwatch/src/lib/upbeat"
)

// board is the devotion.Platform of a raspberry pi 3, real or emulated.
type board struct {
	uart  bcm2835.MiniUART
	quirk boardQuirks
}

func (b *board) ConsoleUp() (upbeat.Console, error) {
	clock, err := videocore.ClockRate(videocore.ClockCore)
	if err != nil {
		if !b.quirk.assumeCoreClock {
			return nil, err
		}
		clock = bcm2835.DefaultCoreClock
	}
	if err := b.uart.Init(clock, bcm2835.DefaultBaud); err != nil {
		return nil, err
	}
	return upbeat.WireConsole{Wire: b.uart}, nil
}

func (b *board) MemoryUp() error {
	words := unsafe.Slice((*uint64)(unsafe.Pointer(rpi.TranslationTablesBase)), arm.TableWords(rpi.Level3Tables))
	tables, err := rpi.BuildTables(words, rpi.TranslationTablesBase)
	if err != nil {
		return err
	}
	trust.Debugf("translation tables at 0x%x, %d level 3 tables", rpi.TranslationTablesBase, rpi.Level3Tables)
	arm.EnableMMU(tables)
	return nil
}

func (b *board) Regions(geom haste.Geometry) (*haste.Region, *haste.Region, error) {
	cacheable, err := haste.RegionAt("cacheable", rpi.CacheableStart, rpi.BenchmarkPhysical, geom)
	if err != nil {
		return nil, nil, err
	}
	nonCacheable, err := haste.RegionAt("non-cacheable", rpi.NonCacheableStart, rpi.BenchmarkPhysical, geom)
	if err != nil {
		return nil, nil, err
	}
	return cacheable, nonCacheable, nil
}

func (b *board) Halt() {
	arm.Halt()
}

func main() {
	cfg, quirk := config()
	b := &board{uart: bcm2835.MiniUART{Nop: arm.Nop}, quirk: quirk}
	timing := devotion.Timing{
		Waiter: patience.NewWaiter(arm.GenericTimer{}, arm.Nop),
		SysTmr: patience.NewSysTmr(bcm2835.SystemTimer{}),
		Bench:  haste.NewBench(arm.GenericTimer{}, arm.Barriers{}),
	}
	devotion.NewSequence(cfg, b, timing).Run()
}
