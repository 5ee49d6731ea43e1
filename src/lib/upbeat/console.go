package upbeat

import "io"

// Console is the small, blocking serial surface everything else talks to.
// Bytes go out in call order; nothing is buffered beyond that promise.
type Console interface {
	Puts(s string)
	Dec(d uint32)
	Hex(d uint64)
	Getc() byte
	Send(b byte)
}

// ByteWire is the part of a uart a Console actually needs.
type ByteWire interface {
	WriteByte(c byte) error
	ReadByte() (byte, error)
}

// WireConsole turns any ByteWire into a Console.  It does the \n -> \r\n
// translation and the number formatting so the drivers only move bytes.
type WireConsole struct {
	Wire ByteWire
}

func (w WireConsole) Send(b byte) {
	_ = w.Wire.WriteByte(b)
}

// Getc returns 0 if the wire has nothing more to give (host side EOF).
func (w WireConsole) Getc() byte {
	b, err := w.Wire.ReadByte()
	if err != nil {
		return 0
	}
	if b == '\r' {
		b = '\n'
	}
	return b
}

func (w WireConsole) Puts(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			w.Send('\r')
		}
		w.Send(s[i])
	}
}

func (w WireConsole) Hex(d uint64) {
	var buf [16]byte
	w.Puts(string(AppendHex(buf[:0], d)))
}

func (w WireConsole) Dec(d uint32) {
	var buf [10]byte
	w.Puts(string(AppendDec(buf[:0], d)))
}

// StreamConsole is a Console over a reader and a writer, used by the host
// simulation and the tests.  No \r is added on output.
type StreamConsole struct {
	In  io.ByteReader
	Out io.Writer
}

func (s *StreamConsole) Send(b byte) {
	_, _ = s.Out.Write([]byte{b})
}

func (s *StreamConsole) Getc() byte {
	if s.In == nil {
		return 0
	}
	b, err := s.In.ReadByte()
	if err != nil {
		return 0
	}
	return b
}

func (s *StreamConsole) Puts(str string) {
	_, _ = io.WriteString(s.Out, str)
}

func (s *StreamConsole) Hex(d uint64) {
	var buf [16]byte
	_, _ = s.Out.Write(AppendHex(buf[:0], d))
}

func (s *StreamConsole) Dec(d uint32) {
	var buf [10]byte
	_, _ = s.Out.Write(AppendDec(buf[:0], d))
}
