package cachemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tty "github.com/mattn/go-tty"
	"go.bug.st/serial"
)

// SerialConfig says how to reach the board.
type SerialConfig struct {
	Port string
	Baud int
	// Keyboard forwards local keystrokes to the board.  Without it a single
	// carriage return is sent when the firmware asks for a key.
	Keyboard bool
	// Follow keeps reading after the firmware reaches its final loop.
	Follow bool
}

const readPoll = 100 * time.Millisecond

// ctrl-c in raw mode, which ends the session
const interrupt = 3

// Watch copies the board's console to out until the firmware starts looping
// (or ctx ends, when following) and summarizes what it said.
func Watch(ctx context.Context, logger *slog.Logger, cfg SerialConfig, out io.Writer) (Summary, error) {
	port, err := serial.Open(cfg.Port, &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("open %s: %w", cfg.Port, err)
	}
	defer port.Close()

	if err := port.SetReadTimeout(readPoll); err != nil {
		return Summary{}, fmt.Errorf("set read timeout on %s: %w", cfg.Port, err)
	}

	logger.InfoContext(ctx, "watching board",
		slog.String("port", cfg.Port),
		slog.Int("baud", cfg.Baud),
		slog.Bool("keyboard", cfg.Keyboard),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mon := NewMonitor(out)
	looping := mon.Await(LoopingBanner)

	if cfg.Keyboard {
		restore, err := forwardKeys(ctx, cancel, port)
		if err != nil {
			return Summary{}, err
		}
		defer restore()
	} else {
		go pressKeyWhenAsked(ctx, logger, mon, port)
	}

	buf := make([]byte, 256)

	for {
		select {
		case <-ctx.Done():
			return mon.Summary()
		case <-looping:
			if !cfg.Follow {
				return mon.Summary()
			}

			looping = nil
		default:
		}

		n, err := port.Read(buf)
		if err != nil {
			return Summary{}, fmt.Errorf("read %s: %w", cfg.Port, err)
		}

		if n > 0 {
			_, _ = mon.Write(buf[:n])
		}
	}
}

func pressKeyWhenAsked(ctx context.Context, logger *slog.Logger, mon *Monitor, w io.Writer) {
	select {
	case <-ctx.Done():
		return
	case <-mon.Await(KeyPrompt):
	}

	if _, err := w.Write([]byte{'\r'}); err != nil {
		logger.WarnContext(ctx, "unable to press a key", slog.Any("err", err))
	}
}

// forwardKeys puts the local terminal in raw mode and sends every key to w
// until ctx ends.  ctrl-c calls cancel.
func forwardKeys(ctx context.Context, cancel context.CancelFunc, w io.Writer) (func(), error) {
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}

	restore, err := t.Raw()
	if err != nil {
		t.Close()

		return nil, fmt.Errorf("raw terminal: %w", err)
	}

	go func() {
		for ctx.Err() == nil {
			r, err := t.ReadRune()
			if err != nil {
				cancel()

				return
			}

			if r == interrupt {
				cancel()

				return
			}

			if _, err := w.Write([]byte(string(r))); err != nil {
				cancel()

				return
			}
		}
	}()

	return func() {
		_ = restore()
		_ = t.Close()
	}, nil
}

// ErrNoPorts is returned by DefaultPort when nothing looks like a board.
var ErrNoPorts = errors.New("no serial ports found")

// DefaultPort is the first serial port on the system.
func DefaultPort() (string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}

	if len(ports) == 0 {
		return "", ErrNoPorts
	}

	return ports[0], nil
}
