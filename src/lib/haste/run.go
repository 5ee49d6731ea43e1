package haste

import (
	"math"

	"stopwatch/src/lib/trust"
	"stopwatch/src/lib/upbeat"
)

// Diagnostic is printed in place of any number that could not be computed.
const Diagnostic = "Something went wrong!\n"

// Comparison is how much faster (or slower) the cached run was, in percent
// of the cached time.
type Comparison struct {
	Percent uint64
	Slower  bool
}

// Speedup is (nonCacheable-cacheable)*100/cacheable.  A cacheable time of
// zero has no meaningful ratio and gives ErrZeroBaseline.  If caching lost,
// the difference is taken the other way round and Slower is set.
func Speedup(nonCacheableMs, cacheableMs uint64) (Comparison, error) {
	if cacheableMs == 0 {
		return Comparison{}, ErrZeroBaseline
	}
	c := Comparison{}
	diff := nonCacheableMs - cacheableMs
	if nonCacheableMs < cacheableMs {
		c.Slower = true
		diff = cacheableMs - nonCacheableMs
	}
	c.Percent = mulDiv(diff, 100, cacheableMs)
	return c, nil
}

// Report is everything Run found out.  Complete is only true if both
// measurements and the comparison worked; otherwise none of the numbers were
// presented as a result.
type Report struct {
	NonCacheableMs uint64
	CacheableMs    uint64
	Comparison     Comparison
	Complete       bool
	Err            error
}

// Run measures the non-cacheable region, then the cacheable one, and prints
// both times and the comparison to con.  Any failure prints Diagnostic and
// stops there.
func (b *Bench) Run(con upbeat.Console, cacheable, nonCacheable *Region) Report {
	var rep Report
	var err error

	rep.NonCacheableMs, err = b.measureAndPrint(con, "non-cacheable", nonCacheable)
	if err != nil {
		return b.fail(con, rep, err)
	}
	rep.CacheableMs, err = b.measureAndPrint(con, "cacheable", cacheable)
	if err != nil {
		return b.fail(con, rep, err)
	}

	rep.Comparison, err = Speedup(rep.NonCacheableMs, rep.CacheableMs)
	if err != nil {
		return b.fail(con, rep, err)
	}
	con.Puts("With caching, the function is ")
	con.Dec(clamp32(rep.Comparison.Percent))
	if rep.Comparison.Slower {
		con.Puts("% slower!\n")
	} else {
		con.Puts("% faster!\n")
	}
	rep.Complete = true
	return rep
}

func (b *Bench) measureAndPrint(con upbeat.Console, label string, r *Region) (uint64, error) {
	con.Puts("Benchmarking " + label + " DRAM modifications at virtual 0x")
	con.Hex(uint64(r.Virtual))
	con.Puts(", physical 0x")
	con.Hex(uint64(r.Physical))
	con.Puts(":\n")

	ms, err := b.Measure(r)
	if err != nil {
		return 0, err
	}
	con.Dec(clamp32(ms))
	con.Puts(" milliseconds.\n\n")
	return ms, nil
}

func (b *Bench) fail(con upbeat.Console, rep Report, err error) Report {
	trust.Errorf("benchmark: %v", err)
	con.Puts(Diagnostic)
	rep.Err = err
	return rep
}

func clamp32(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
