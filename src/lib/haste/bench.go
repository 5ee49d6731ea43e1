package haste

import (
	"errors"
	"math"
	"math/bits"

	"stopwatch/src/lib/patience"
	"stopwatch/src/lib/trust"
)

var ErrZeroFrequency = errors.New("counter frequency is zero")
var ErrZeroBaseline = errors.New("cacheable time is zero, no ratio")

// Fencer keeps the timed section honest.  Fence goes right after the start
// read so the workload cannot be hoisted above it, Complete goes right after
// the workload so every store has retired before the end read.
type Fencer interface {
	Fence()
	Complete()
}

// Bench times the workload on a counter.  It keeps no state between calls.
type Bench struct {
	clock patience.Counter
	fence Fencer
}

func NewBench(clock patience.Counter, fence Fencer) *Bench {
	return &Bench{clock: clock, fence: fence}
}

// Measure runs the read-modify-write workload over r and returns the elapsed
// time in milliseconds.  The contents of r change; only the timing matters.
func (b *Bench) Measure(r *Region) (uint64, error) {
	mem := r.words
	iterations := r.Geometry.Iterations

	t1 := b.clock.Now()
	b.fence.Fence()

	for i := 0; i < iterations; i++ {
		for j := range mem {
			p := &mem[j]
			storeWord(p, loadWord(p)+1)
		}
	}

	b.fence.Complete()
	t2 := b.clock.Now()
	frq := b.clock.Frequency()

	trust.Statsf("bench", "%s: t1=%d t2=%d frq=%d words=%d iterations=%d",
		r.Name, t1, t2, frq, len(mem), iterations)
	return ElapsedMs(patience.Elapsed(t1, t2), frq)
}

// ElapsedMs is delta*1000/freq with a 128 bit intermediate, truncated.  A
// zero frequency is ErrZeroFrequency, never a divide fault.
func ElapsedMs(delta uint64, freq uint64) (uint64, error) {
	if freq == 0 {
		return 0, ErrZeroFrequency
	}
	return mulDiv(delta, 1000, freq), nil
}

// mulDiv is a*m/d in 128 bits, saturating.  d must not be zero.
func mulDiv(a, m, d uint64) uint64 {
	hi, lo := bits.Mul64(a, m)
	if hi >= d {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, d)
	return q
}
