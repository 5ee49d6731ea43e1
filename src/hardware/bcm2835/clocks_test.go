package bcm2835

import (
	"errors"
	"testing"
)

func TestBaudDivisor(t *testing.T) {
	cases := []struct {
		clock, baud, want uint32
	}{
		{DefaultCoreClock, DefaultBaud, 270},
		{400_000_000, DefaultBaud, 433},
		{DefaultCoreClock, 9600, 3254},
		{8 * 9600, 9600, 0},
	}
	for _, c := range cases {
		got, err := BaudDivisor(c.clock, c.baud)
		if err != nil {
			t.Errorf("BaudDivisor(%d,%d): unexpected error %v", c.clock, c.baud, err)
			continue
		}
		if got != c.want {
			t.Errorf("BaudDivisor(%d,%d): expected %d but got %d", c.clock, c.baud, c.want, got)
		}
	}
}

func TestBaudDivisorUnreachable(t *testing.T) {
	bad := []struct{ clock, baud uint32 }{
		{DefaultCoreClock, 0},
		{0, DefaultBaud},
		{DefaultBaud, DefaultBaud},
		{4_000_000_000, 1},
	}
	for _, b := range bad {
		if _, err := BaudDivisor(b.clock, b.baud); !errors.Is(err, ErrBaudRate) {
			t.Errorf("BaudDivisor(%d,%d): expected ErrBaudRate, got %v", b.clock, b.baud, err)
		}
	}
}
