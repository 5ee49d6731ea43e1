package rpi

import (
	"errors"
	"testing"

	arm "stopwatch/src/hardware/arm-cortex-a53"
)

func buildHostTables(t *testing.T) *arm.TranslationTables {
	t.Helper()
	words := make([]uint64, arm.TableWords(Level3Tables))
	tables, err := BuildTables(words, TranslationTablesBase)
	if err != nil {
		t.Fatalf("unable to build tables: %v", err)
	}
	return tables
}

func checkMapped(t *testing.T, tables *arm.TranslationTables, virt, phys uintptr, attr arm.MemoryAttr) {
	t.Helper()
	p, a, ok := tables.Lookup(virt)
	if !ok {
		t.Errorf("expected 0x%x to be mapped", virt)
		return
	}
	if p != phys || a != attr {
		t.Errorf("0x%x: expected 0x%x (attr %d) but got 0x%x (attr %d)", virt, phys, attr, p, a)
	}
}

func TestTablesFitBelowKernel(t *testing.T) {
	if Level3Tables != 3 {
		t.Errorf("expected 3 level 3 tables, got %d", Level3Tables)
	}
	end := TranslationTablesBase + uintptr(arm.TableWords(Level3Tables))*8
	if end > TranslationTablesEnd {
		t.Errorf("tables end at 0x%x, past 0x%x", end, TranslationTablesEnd)
	}
}

func TestMemoryMap(t *testing.T) {
	tables := buildHostTables(t)
	if tables.Root() != uint64(TranslationTablesBase) {
		t.Errorf("bad root 0x%x", tables.Root())
	}
	checkMapped(t, tables, 0x8_0000, 0x8_0000, arm.MemoryNormal)
	checkMapped(t, tables, CacheableStart, BenchmarkPhysical, arm.MemoryNormal)
	checkMapped(t, tables, CacheableStart+0x140, BenchmarkPhysical+0x140, arm.MemoryNormal)
	checkMapped(t, tables, NonCacheableStart, BenchmarkPhysical, arm.MemoryNoCache)
	checkMapped(t, tables, NonCacheableStart+BenchmarkPageSize, NonCacheableStart+BenchmarkPageSize, arm.MemoryNormal)
	checkMapped(t, tables, MemoryMappedIO+0x215040, MemoryMappedIO+0x215040, arm.MemoryDevice)
	checkMapped(t, tables, LocalPeripherals, LocalPeripherals, arm.MemoryDevice)
	if _, _, ok := tables.Lookup(LocalPeripheralsEnd); ok {
		t.Errorf("nothing should be mapped past the local peripherals")
	}
	if _, _, ok := tables.Lookup(tables.Span()); ok {
		t.Errorf("nothing should be mapped past the tables")
	}
}

func TestTableErrors(t *testing.T) {
	words := make([]uint64, arm.TableWords(1))
	if _, err := arm.NewTranslationTables(words, 0x1_0008, 1); !errors.Is(err, arm.ErrTableAlignment) {
		t.Errorf("expected ErrTableAlignment, got %v", err)
	}
	if _, err := arm.NewTranslationTables(words, 0x1_0000, 2); !errors.Is(err, arm.ErrTableSpace) {
		t.Errorf("expected ErrTableSpace, got %v", err)
	}
	tables, err := arm.NewTranslationTables(words, 0x1_0000, 1)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := tables.Map(arm.Mapping{Virtual: 0x100, Physical: 0, Size: arm.GranuleSize}); !errors.Is(err, arm.ErrUnmappable) {
		t.Errorf("expected ErrUnmappable for a misaligned mapping, got %v", err)
	}
	if err := tables.Map(arm.Mapping{Virtual: arm.Level3Span, Physical: 0, Size: arm.GranuleSize}); !errors.Is(err, arm.ErrUnmappable) {
		t.Errorf("expected ErrUnmappable past the span, got %v", err)
	}
	if _, _, ok := tables.Lookup(0); ok {
		t.Errorf("fresh tables must fault everywhere")
	}
}
