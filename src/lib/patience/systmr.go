package patience

// SysTmr is the board level timer, independent of the cpu's counter.  Some
// environments (qemu, for one) do not have it at all, and the only way to
// know is to look once at startup.
type SysTmr struct {
	src     Counter
	present bool
}

// NewSysTmr probes src once.  A nil src, or one that reads zero, is absent.
// Reading the counter has no side effects, so the probe is safe on boards
// where nothing is behind the address.
func NewSysTmr(src Counter) *SysTmr {
	s := &SysTmr{src: src}
	if src != nil && src.Now() != 0 {
		s.present = true
	}
	return s
}

func (s *SysTmr) Present() bool {
	return s.present
}

// GetSystemTimer is the current value of the timer, or 0 if it is absent.
// What the caller does with the zero is up to the caller.
func (s *SysTmr) GetSystemTimer() uint64 {
	if !s.present {
		return 0
	}
	return s.src.Now()
}

// WaitMuSecST waits n microseconds on the system timer.  With no timer it
// returns at once.
func (s *SysTmr) WaitMuSecST(n uint32) {
	if !s.present {
		return
	}
	spinTicks(s.src, MuSecToTicks(n, s.src.Frequency()))
}
