package haste

import (
	"errors"
	"strings"
	"testing"
	"unsafe"

	"stopwatch/src/lib/upbeat"
)

// scriptedCounter hands out the values it was given, in order, and then
// keeps repeating the last one.
type scriptedCounter struct {
	values []uint64
	freq   uint64
	log    *[]string
}

func (s *scriptedCounter) Now() uint64 {
	if s.log != nil {
		*s.log = append(*s.log, "now")
	}
	v := s.values[0]
	if len(s.values) > 1 {
		s.values = s.values[1:]
	}
	return v
}

func (s *scriptedCounter) Frequency() uint64 { return s.freq }

type recordingFencer struct {
	log        *[]string
	onFence    func()
	onComplete func()
}

func (r *recordingFencer) Fence() {
	*r.log = append(*r.log, "fence")
	if r.onFence != nil {
		r.onFence()
	}
}

func (r *recordingFencer) Complete() {
	*r.log = append(*r.log, "complete")
	if r.onComplete != nil {
		r.onComplete()
	}
}

// alignedWords returns n words starting on a boundary of align bytes.
func alignedWords(t *testing.T, n int, align int) []uint64 {
	t.Helper()
	raw := make([]uint64, n+align/wordSize)
	for i := range raw {
		if uintptr(unsafe.Pointer(&raw[i]))%uintptr(align) == 0 {
			return raw[i : i+n]
		}
	}
	t.Fatalf("could not align %d words to %d", n, align)
	return nil
}

func testRegion(t *testing.T, name string, geom Geometry) *Region {
	t.Helper()
	r, err := RegionOver(name, alignedWords(t, geom.Words(), geom.CachelineSize), 0x200000, geom)
	if err != nil {
		t.Fatalf("unable to build region: %v", err)
	}
	return r
}

func smallGeometry() Geometry {
	return Geometry{CachelineSize: 64, Cachelines: 2, Iterations: 3}
}

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry()
	if g.SizeBytes() != 320 || g.Words() != 40 || g.Iterations != 20_000 {
		t.Errorf("unexpected default geometry %+v (%d bytes, %d words)", g, g.SizeBytes(), g.Words())
	}
}

func TestRegionValidation(t *testing.T) {
	geom := smallGeometry()
	words := alignedWords(t, geom.Words()+1, geom.CachelineSize)

	if _, err := RegionOver("off", words[1:], 0, geom); !errors.Is(err, ErrMisaligned) {
		t.Errorf("expected ErrMisaligned for a base one word off, got %v", err)
	}
	if _, err := RegionOver("short", words[:3], 0, geom); !errors.Is(err, ErrBadGeometry) {
		t.Errorf("expected ErrBadGeometry for too few words, got %v", err)
	}
	bad := []Geometry{
		{CachelineSize: 0, Cachelines: 5, Iterations: 1},
		{CachelineSize: 64, Cachelines: 0, Iterations: 1},
		{CachelineSize: 64, Cachelines: 5, Iterations: 0},
		{CachelineSize: 12, Cachelines: 5, Iterations: 1},
	}
	for _, g := range bad {
		if _, err := RegionOver("bad", words, 0, g); !errors.Is(err, ErrBadGeometry) {
			t.Errorf("expected ErrBadGeometry for %+v, got %v", g, err)
		}
	}
	r, err := RegionOver("ok", words, 0x400000, geom)
	if err != nil {
		t.Fatalf("expected aligned region to be fine: %v", err)
	}
	if len(r.Words()) != geom.Words() || r.Physical != 0x400000 {
		t.Errorf("region has %d words and physical %x", len(r.Words()), r.Physical)
	}
}

func TestElapsedMs(t *testing.T) {
	cases := []struct {
		delta, freq, want uint64
	}{
		{500_000, 1_000_000, 500},
		{19_200_000, 19_200_000, 1000},
		{19_199, 19_200_000, 0},
		{0, 62_500_000, 0},
		{1 << 62, 1, 1<<64 - 1}, //saturates instead of wrapping
	}
	for _, c := range cases {
		got, err := ElapsedMs(c.delta, c.freq)
		if err != nil {
			t.Errorf("ElapsedMs(%d,%d) unexpected error %v", c.delta, c.freq, err)
		}
		if got != c.want {
			t.Errorf("ElapsedMs(%d,%d): expected %d but got %d", c.delta, c.freq, c.want, got)
		}
	}
	if _, err := ElapsedMs(100, 0); !errors.Is(err, ErrZeroFrequency) {
		t.Errorf("expected ErrZeroFrequency, got %v", err)
	}
}

func TestMeasureFormula(t *testing.T) {
	var log []string
	c := &scriptedCounter{values: []uint64{0, 500_000}, freq: 1_000_000, log: &log}
	f := &recordingFencer{log: &log}
	ms, err := NewBench(c, f).Measure(testRegion(t, "nc", smallGeometry()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms != 500 {
		t.Errorf("expected 500 ms but got %d", ms)
	}
	want := "now,fence,complete,now"
	if strings.Join(log, ",") != want {
		t.Errorf("expected ordering %s but got %s", want, strings.Join(log, ","))
	}
}

func TestMeasureTruncates(t *testing.T) {
	c := &scriptedCounter{values: []uint64{100, 100 + 19_200_000 + 19_199}, freq: 19_200_000}
	var log []string
	ms, err := NewBench(c, &recordingFencer{log: &log}).Measure(testRegion(t, "c", smallGeometry()))
	if err != nil || ms != 1000 {
		t.Errorf("expected 1000 ms with truncation, got %d (%v)", ms, err)
	}
}

func TestMeasureZeroFrequency(t *testing.T) {
	c := &scriptedCounter{values: []uint64{0, 12345}, freq: 0}
	var log []string
	ms, err := NewBench(c, &recordingFencer{log: &log}).Measure(testRegion(t, "c", smallGeometry()))
	if !errors.Is(err, ErrZeroFrequency) {
		t.Errorf("expected ErrZeroFrequency, got %v", err)
	}
	if ms != 0 {
		t.Errorf("no partial result expected, got %d", ms)
	}
}

func TestWorkloadSitsBetweenTheBarriers(t *testing.T) {
	geom := smallGeometry()
	r := testRegion(t, "c", geom)
	var log []string
	f := &recordingFencer{log: &log}
	f.onFence = func() {
		for i, w := range r.Words() {
			if w != 0 {
				t.Errorf("word %d already touched before the fence: %d", i, w)
			}
		}
	}
	f.onComplete = func() {
		for i, w := range r.Words() {
			if w != uint64(geom.Iterations) {
				t.Errorf("word %d should have been bumped %d times by completion, is %d", i, geom.Iterations, w)
			}
		}
	}
	c := &scriptedCounter{values: []uint64{1, 2}, freq: 1}
	if _, err := NewBench(c, f).Measure(r); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSpeedup(t *testing.T) {
	c, err := Speedup(1000, 250)
	if err != nil || c.Percent != 300 || c.Slower {
		t.Errorf("expected 300%% faster, got %+v (%v)", c, err)
	}
	c, err = Speedup(250, 1000)
	if err != nil || c.Percent != 75 || !c.Slower {
		t.Errorf("expected 75%% slower, got %+v (%v)", c, err)
	}
	c, err = Speedup(7, 3)
	if err != nil || c.Percent != 133 {
		t.Errorf("expected truncated 133%%, got %+v (%v)", c, err)
	}
	if _, err = Speedup(1000, 0); !errors.Is(err, ErrZeroBaseline) {
		t.Errorf("expected ErrZeroBaseline, got %v", err)
	}
}

func runWith(t *testing.T, values []uint64, freq uint64) (string, Report) {
	t.Helper()
	var out strings.Builder
	con := &upbeat.StreamConsole{Out: &out}
	var log []string
	b := NewBench(&scriptedCounter{values: values, freq: freq}, &recordingFencer{log: &log})
	geom := smallGeometry()
	rep := b.Run(con, testRegion(t, "cacheable", geom), testRegion(t, "non-cacheable", geom))
	return out.String(), rep
}

func TestRunReportsSpeedup(t *testing.T) {
	//non-cacheable first: 0 -> 1_000_000 ticks, then cacheable 0 -> 250_000
	out, rep := runWith(t, []uint64{0, 1_000_000, 0, 250_000}, 1000)
	if !rep.Complete || rep.NonCacheableMs != 1_000_000 || rep.CacheableMs != 250_000 {
		t.Errorf("unexpected report %+v", rep)
	}
	if !strings.Contains(out, "Benchmarking non-cacheable DRAM modifications at virtual 0x") {
		t.Errorf("missing non-cacheable header in %q", out)
	}
	if !strings.Contains(out, ", physical 0x200000:\n1000000 milliseconds.\n\n") {
		t.Errorf("missing non-cacheable result in %q", out)
	}
	if !strings.Contains(out, "250000 milliseconds.\n\n") {
		t.Errorf("missing cacheable result in %q", out)
	}
	if !strings.HasSuffix(out, "With caching, the function is 300% faster!\n") {
		t.Errorf("missing speedup line in %q", out)
	}
	if strings.Index(out, "non-cacheable") > strings.Index(out, "Benchmarking cacheable") {
		t.Errorf("non-cacheable must be measured first: %q", out)
	}
}

func TestRunCacheableZeroGivesDiagnostic(t *testing.T) {
	out, rep := runWith(t, []uint64{0, 1_000_000, 5, 5}, 1_000_000)
	if rep.Complete {
		t.Errorf("report should not be complete: %+v", rep)
	}
	if !errors.Is(rep.Err, ErrZeroBaseline) {
		t.Errorf("expected ErrZeroBaseline, got %v", rep.Err)
	}
	if strings.Contains(out, "faster") || !strings.HasSuffix(out, Diagnostic) {
		t.Errorf("expected the diagnostic instead of a ratio: %q", out)
	}
}

func TestRunZeroFrequencyStopsEarly(t *testing.T) {
	out, rep := runWith(t, []uint64{0, 10, 0, 10}, 0)
	if rep.Complete || !errors.Is(rep.Err, ErrZeroFrequency) {
		t.Errorf("unexpected report %+v", rep)
	}
	if strings.Contains(out, "Benchmarking cacheable") {
		t.Errorf("cacheable run should be skipped after a failure: %q", out)
	}
	if strings.Contains(out, "milliseconds") {
		t.Errorf("no time should be printed: %q", out)
	}
	if !strings.HasSuffix(out, Diagnostic) {
		t.Errorf("expected the diagnostic at the end: %q", out)
	}
}
