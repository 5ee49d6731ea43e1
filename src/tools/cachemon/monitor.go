package cachemon

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

//
// Monitor passes board output through to a writer and keeps a copy for
// ParseTranscript.  Callers can wait for a line to show up with Await.  It
// is safe to Write from one goroutine while others Await.
//
type Monitor struct {
	mu      sync.Mutex
	out     io.Writer
	seen    bytes.Buffer
	waiters []waiter
}

type waiter struct {
	marker string
	ch     chan struct{}
}

func NewMonitor(out io.Writer) *Monitor {
	if out == nil {
		out = io.Discard
	}

	return &Monitor{out: out}
}

func (m *Monitor) Write(p []byte) (int, error) {
	m.mu.Lock()
	m.seen.Write(p)
	m.fire()
	m.mu.Unlock()

	return m.out.Write(p)
}

// Await returns a channel closed once marker has been written.
func (m *Monitor) Await(marker string) <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := waiter{marker: marker, ch: make(chan struct{})}
	m.waiters = append(m.waiters, w)
	m.fire()

	return w.ch
}

// caller holds mu
func (m *Monitor) fire() {
	text := m.seen.String()
	kept := m.waiters[:0]

	for _, w := range m.waiters {
		if strings.Contains(text, w.marker) {
			close(w.ch)

			continue
		}

		kept = append(kept, w)
	}

	m.waiters = kept
}

// Transcript is everything written so far.
func (m *Monitor) Transcript() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.seen.String()
}

func (m *Monitor) Summary() (Summary, error) {
	return ParseTranscript(strings.NewReader(m.Transcript()))
}
