package patience

// DelayKind says how the amount of a Delay is counted.
type DelayKind int

const (
	KindCycles DelayKind = iota
	KindMuSec
)

func (k DelayKind) String() string {
	switch k {
	case KindCycles:
		return "cycles"
	case KindMuSec:
		return "usec"
	}
	return "unknown"
}

// Delay is either a number of spin loop iterations or a number of
// microseconds.
type Delay struct {
	Kind   DelayKind
	Amount uint32
}

func Cycles(n uint32) Delay { return Delay{Kind: KindCycles, Amount: n} }
func MuSec(n uint32) Delay  { return Delay{Kind: KindMuSec, Amount: n} }

// Ticks is the tick target the delay turns into on a counter at freq. For a
// cycle delay this is just the iteration count.
func (d Delay) Ticks(freq uint64) uint64 {
	if d.Kind == KindMuSec {
		return MuSecToTicks(d.Amount, freq)
	}
	return uint64(d.Amount)
}

// Waiter spins on the cpu.  The nop func is the loop body of WaitCycles and
// must be something the compiler cannot see through; on the board that is
// an inline "nop" instruction.
type Waiter struct {
	clock Counter
	nop   func()
}

// NewWaiter returns a Waiter on clock.  A nil nop uses a function the
// compiler is not allowed to inline.
func NewWaiter(clock Counter, nop func()) *Waiter {
	if nop == nil {
		nop = opaqueNop
	}
	return &Waiter{clock: clock, nop: nop}
}

//go:noinline
func opaqueNop() {}

// WaitCycles runs the loop body exactly n times.  How long that takes depends
// on the cpu clock, so this is approximate at best.
func (w *Waiter) WaitCycles(n uint32) {
	for i := uint32(0); i < n; i++ {
		w.nop()
	}
}

// WaitMuSec busy-waits at least n microseconds (after truncation to whole
// ticks) on the counter.
func (w *Waiter) WaitMuSec(n uint32) {
	spinTicks(w.clock, MuSecToTicks(n, w.clock.Frequency()))
}

// Wait dispatches on the kind of d.
func (w *Waiter) Wait(d Delay) {
	switch d.Kind {
	case KindCycles:
		w.WaitCycles(d.Amount)
	case KindMuSec:
		w.WaitMuSec(d.Amount)
	}
}

func spinTicks(c Counter, target uint64) {
	start := c.Now()
	for Elapsed(start, c.Now()) < target {
	}
}
