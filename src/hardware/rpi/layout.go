package rpi

import (
	arm "stopwatch/src/hardware/arm-cortex-a53"
)

// Level3Tables is enough level 3 tables to reach the local peripherals.
const Level3Tables = int((LocalPeripheralsEnd + arm.Level3Span - 1) / arm.Level3Span)

//
// MemoryMap is the identity map of the board plus the non-cacheable alias the
// benchmark uses.  Order matters, later entries replace earlier ones.
//
func MemoryMap() []arm.Mapping {
	return []arm.Mapping{
		{Virtual: 0, Physical: 0, Size: MemoryMappedIO, Attr: arm.MemoryNormal},
		{Virtual: MemoryMappedIO, Physical: MemoryMappedIO, Size: MemoryMappedIOEnd - MemoryMappedIO, Attr: arm.MemoryDevice},
		{Virtual: LocalPeripherals, Physical: LocalPeripherals, Size: LocalPeripheralsEnd - LocalPeripherals, Attr: arm.MemoryDevice},
		{Virtual: NonCacheableStart, Physical: BenchmarkPhysical, Size: BenchmarkPageSize, Attr: arm.MemoryNoCache},
	}
}

// BuildTables formats words (the memory at base) with MemoryMap.
func BuildTables(words []uint64, base uintptr) (*arm.TranslationTables, error) {
	t, err := arm.NewTranslationTables(words, base, Level3Tables)
	if err != nil {
		return nil, err
	}
	for _, m := range MemoryMap() {
		if err := t.Map(m); err != nil {
			return nil, err
		}
	}
	return t, nil
}
