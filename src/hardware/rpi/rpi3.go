package rpi

//This file is for things that are specific to the *model* Raspberry Pi 3 and
//are different on other rpi models.

const MemoryMappedIO = uintptr(0x3F000000)
const MemoryMappedIOEnd = uintptr(0x4000_0000)

// QA7_rev3.4.pdf, the per core timers and mailboxes
const LocalPeripherals = uintptr(0x4000_0000)
const LocalPeripheralsEnd = uintptr(0x4004_0000)

// The benchmark works on one 64K page of DRAM, seen through two virtual
// addresses.  CacheableStart is identity mapped as normal memory and
// NonCacheableStart is an alias of the same physical page with the caches off.
const CacheableStart = uintptr(0x0020_0000)
const NonCacheableStart = uintptr(0x0040_0000)
const BenchmarkPhysical = CacheableStart
const BenchmarkPageSize = uintptr(0x1_0000)

// where the translation tables live, below the kernel at 0x80000
const TranslationTablesBase = uintptr(0x1_0000)
const TranslationTablesEnd = uintptr(0x8_0000)
