package arm_cortex_a53

// ***************************************
// MAIR_EL1, Memory Attribute Indirection Register (EL1), Page 2609 of AArch64-Reference-Manual.
// ***************************************

//these are indices into the MAIR register
type MemoryAttr uint64

const MemoryDevice MemoryAttr = 0
const MemoryNoCache MemoryAttr = 1
const MemoryNormal MemoryAttr = 2

//these are values for the MAIR register
const MemoryDeviceValue = 0x00  //nGnRnE, it's hardware regs
const MemoryNoCacheValue = 0x44 //not inner or outer cacheable
const MemoryNormalValue = 0xFF  //write back, read and write allocate

const MAIRValue = uint64((MemoryDeviceValue << (uint64(MemoryDevice) * 8)) |
	(MemoryNoCacheValue << (uint64(MemoryNoCache) * 8)) |
	(MemoryNormalValue << (uint64(MemoryNormal) * 8))) //0xFF4400

// ***************************************
// TCR_EL1, Translation Control Register (EL1), Page 2685 of AArch64-Reference-Manual.
// ***************************************

// zero on these fields
// TBI - no tag bits
// IPS - 32 bit (4GB)
// EPD1,EPD0 - walks enabled in both halves
const TCRValue = uint64((0b11 << 30) | // 64K granule, TTBR1
	(0b11 << 28) | // inner shareable
	(0b01 << 26) | // write back (outer)
	(0b01 << 24) | // write back (inner)
	(22 << 16) | //T1SZ, 42 bit addr space
	(0b01 << 14) | // 64K granule, TTBR0
	(0b11 << 12) | //inner shareable
	(0b01 << 10) | //write back (outer)
	(0b01 << 8) | //write back (inner)
	(22 << 0)) //T0SZ, 42 bit addr space

// ***************************************
// SCTLR_EL1, System Control Register (EL1), Page 2654 of AArch64-Reference-Manual.
// ***************************************

const SystemControlRegisterReserved = 0xC00800
const SystemControlRegisterICache = 1 << 12
const SystemControlRegisterSA0 = 1 << 4
const SystemControlRegisterSA = 1 << 3
const SystemControlRegisterDCache = 1 << 2
const SystemControlRegisterAlignment = 1 << 1
const SystemControlRegisterMMUEnabled = 1 << 0

const SCTLRValue = uint64(SystemControlRegisterReserved |
	SystemControlRegisterICache |
	SystemControlRegisterSA0 |
	SystemControlRegisterSA |
	SystemControlRegisterDCache |
	SystemControlRegisterMMUEnabled) //0xC0181D, no alignment faults: the compiler emits unaligned loads
