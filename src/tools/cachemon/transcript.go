// Package cachemon watches the stopwatch firmware's console, on a serial
// line, under QEMU or in a host simulation, and turns what it prints into a
// Summary.
package cachemon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Console lines the firmware prints that the tools key off.
const (
	UARTLiveLine   = "[0] UART is live!"
	KeyPrompt      = "[1] Press a key to continue booting... "
	LoopingBanner  = "[i] Looping forever now!"
	DiagnosticLine = "Something went wrong!"
	SkippedLine    = "[3] Benchmark skipped, no memory map."
)

var ErrMalformed = errors.New("malformed transcript")

// Delay is one "[i] Waiting ..." line.
type Delay struct {
	Amount string `json:"amount"`
	Source string `json:"source"`
	OK     bool   `json:"ok"`
}

// RegionTiming is one benchmarked region.
type RegionTiming struct {
	Name     string `json:"name"`
	Virtual  uint64 `json:"virtual"`
	Physical uint64 `json:"physical"`
	Ms       uint64 `json:"ms"`
	Measured bool   `json:"measured"`
}

// Summary is what one boot of the firmware said about itself.
type Summary struct {
	UARTLive         bool           `json:"uart_live"`
	Greeted          bool           `json:"greeted"`
	MMUOnline        bool           `json:"mmu_online"`
	MMUError         string         `json:"mmu_error,omitempty"`
	Delays           []Delay        `json:"delays"`
	Regions          []RegionTiming `json:"regions"`
	SpeedupPercent   *uint64        `json:"speedup_percent,omitempty"`
	Slower           bool           `json:"slower,omitempty"`
	Diagnostic       bool           `json:"diagnostic"`
	BenchmarkSkipped bool           `json:"benchmark_skipped"`
	Looping          bool           `json:"looping"`
	Ticks            int            `json:"ticks"`
	Logs             []string       `json:"logs,omitempty"`
}

// Region finds a benchmarked region by name.
func (s *Summary) Region(name string) (RegionTiming, bool) {
	for _, r := range s.Regions {
		if r.Name == name {
			return r, true
		}
	}

	return RegionTiming{}, false
}

// Complete is true when both regions were timed and compared.
func (s *Summary) Complete() bool {
	return s.SpeedupPercent != nil && !s.Diagnostic
}

var (
	waitingRe = regexp.MustCompile(`^\[i\] Waiting (.+) \((.+)\): ?(OK)?$`)
	benchRe   = regexp.MustCompile(`^Benchmarking (\S+) DRAM modifications at virtual 0x([0-9A-Fa-f]+), physical 0x([0-9A-Fa-f]+):$`)
	msRe      = regexp.MustCompile(`^(\d+) milliseconds\.$`)
	speedupRe = regexp.MustCompile(`^With caching, the function is (\d+)% (faster|slower)!$`)
	logRe     = regexp.MustCompile(`^(FATAL|ERROR| WARN| INFO|DEBUG|STATS\[[^\]]*\]):`)
)

// ParseTranscript reads console output up to EOF.  Lines it does not know,
// like echoed keys, are skipped.
func ParseTranscript(r io.Reader) (Summary, error) {
	var s Summary

	sc := bufio.NewScanner(r)
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if err := s.parseLine(line); err != nil {
			return s, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if err := sc.Err(); err != nil {
		return s, fmt.Errorf("read transcript: %w", err)
	}

	return s, nil
}

func (s *Summary) parseLine(line string) error {
	switch {
	case line == UARTLiveLine:
		s.UARTLive = true
	case strings.HasPrefix(line, KeyPrompt):
		s.Greeted = strings.Contains(line, "Greetings")
	case line == "[2] MMU online.":
		s.MMUOnline = true
	case strings.HasPrefix(line, "[2][Error] MMU: "):
		s.MMUError = strings.TrimPrefix(line, "[2][Error] MMU: ")
	case line == SkippedLine:
		s.BenchmarkSkipped = true
	case line == DiagnosticLine:
		s.Diagnostic = true
	case line == LoopingBanner:
		s.Looping = true
	case strings.HasPrefix(line, "Tick: "):
		s.Ticks++
	case logRe.MatchString(line):
		s.Logs = append(s.Logs, line)
	default:
		return s.parseMeasurement(line)
	}

	return nil
}

func (s *Summary) parseMeasurement(line string) error {
	if m := waitingRe.FindStringSubmatch(line); m != nil {
		s.Delays = append(s.Delays, Delay{Amount: m[1], Source: m[2], OK: m[3] == "OK"})

		return nil
	}

	if m := benchRe.FindStringSubmatch(line); m != nil {
		virt, err := strconv.ParseUint(m[2], 16, 64)
		if err != nil {
			return fmt.Errorf("%w: virtual address %q", ErrMalformed, m[2])
		}

		phys, err := strconv.ParseUint(m[3], 16, 64)
		if err != nil {
			return fmt.Errorf("%w: physical address %q", ErrMalformed, m[3])
		}

		s.Regions = append(s.Regions, RegionTiming{Name: m[1], Virtual: virt, Physical: phys})

		return nil
	}

	if m := msRe.FindStringSubmatch(line); m != nil {
		if len(s.Regions) == 0 || s.Regions[len(s.Regions)-1].Measured {
			return fmt.Errorf("%w: time %q without a region", ErrMalformed, line)
		}

		ms, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: time %q", ErrMalformed, m[1])
		}

		last := &s.Regions[len(s.Regions)-1]
		last.Ms = ms
		last.Measured = true

		return nil
	}

	if m := speedupRe.FindStringSubmatch(line); m != nil {
		pct, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: percentage %q", ErrMalformed, m[1])
		}

		s.SpeedupPercent = &pct
		s.Slower = m[2] == "slower"
	}

	return nil
}
