//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package arm_cortex_a53

import (
	"device/arm"
)

// GenericTimer is the core's own counter, CNTPCT_EL0 ticking at CNTFRQ_EL0.
type GenericTimer struct{}

func (GenericTimer) Now() uint64 {
	var t uint64
	arm.AsmFull(`mrs x27, cntpct_el0
		str x27,{t}`, map[string]interface{}{"t": &t})
	return t
}

func (GenericTimer) Frequency() uint64 {
	var f uint64
	arm.AsmFull(`mrs x28, cntfrq_el0
		str x28,{f}`, map[string]interface{}{"f": &f})
	return f
}

// Barriers orders the counter reads against the memory traffic between them.
type Barriers struct{}

// Fence is opaque to the compiler and flushes the pipeline, so nothing after
// it is started before the counter read in front of it.
func (Barriers) Fence() {
	arm.Asm("isb")
}

// Complete waits for every outstanding memory access.
func (Barriers) Complete() {
	arm.Asm("dsb sy")
}

func Nop() {
	arm.Asm("nop")
}

// Halt parks the core forever.
func Halt() {
	for {
		arm.Asm("wfe")
	}
}

//
// EnableMMU points both halves of the address space at t and turns on the
// mmu and the caches.  Everything the caller touches afterwards must be
// mapped by t.
//
func EnableMMU(t *TranslationTables) {
	mair, tcr, sctlr, ttbr := MAIRValue, TCRValue, SCTLRValue, t.Root()
	arm.AsmFull(`dsb sy
		ldr x0, {mair}
		msr mair_el1, x0
		ldr x0, {tcr}
		msr tcr_el1, x0
		ldr x0, {ttbr}
		msr ttbr0_el1, x0
		msr ttbr1_el1, x0
		tlbi vmalle1
		dsb ish
		isb
		ldr x0, {sctlr}
		msr sctlr_el1, x0
		isb`, map[string]interface{}{"mair": &mair, "tcr": &tcr, "ttbr": &ttbr, "sctlr": &sctlr})
}
