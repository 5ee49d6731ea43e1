package cachemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/google/shlex"
)

// the mini uart is the second uart, so it goes to stdio
const DefaultQemuCommand = "qemu-system-aarch64 -M raspi3b -display none -serial null -serial stdio -kernel"

var ErrNoCommand = errors.New("empty emulator command")

type QemuConfig struct {
	// Command is a shell-like command line, the kernel path is appended.
	Command string
	Kernel  string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Linger is how long to keep watching after the firmware starts looping.
	Linger time.Duration
}

// QemuCommand builds the emulator invocation.
func QemuCommand(ctx context.Context, cfg QemuConfig) (*exec.Cmd, error) {
	args, err := shlex.Split(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", cfg.Command, err)
	}

	if len(args) == 0 {
		return nil, ErrNoCommand
	}

	if cfg.Kernel != "" {
		args = append(args, cfg.Kernel)
	}

	return exec.CommandContext(ctx, args[0], args[1:]...), nil
}

// RunQemu boots the kernel under the emulator, answers the key prompt and
// summarizes the console.  The emulator is killed when done.
func RunQemu(ctx context.Context, logger *slog.Logger, cfg QemuConfig, out, errOut io.Writer) (Summary, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	cmd, err := QemuCommand(runCtx, cfg)
	if err != nil {
		return Summary{}, err
	}

	mon := NewMonitor(out)
	cmd.Stdout = mon
	cmd.Stderr = errOut

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Summary{}, fmt.Errorf("emulator stdin: %w", err)
	}

	looping := mon.Await(LoopingBanner)

	logger.InfoContext(ctx, "starting emulator", slog.String("path", cmd.Path), slog.Any("args", cmd.Args[1:]))

	if err := cmd.Start(); err != nil {
		return Summary{}, fmt.Errorf("start %s: %w", cmd.Path, err)
	}

	go pressKeyWhenAsked(runCtx, logger, mon, stdin)

	select {
	case <-looping:
		select {
		case <-time.After(cfg.Linger):
		case <-ctx.Done():
		}
	case <-ctx.Done():
		logger.WarnContext(ctx, "emulator run ended before the firmware looped", slog.Any("err", ctx.Err()))
	}

	stop()

	if err := cmd.Wait(); err != nil {
		logger.DebugContext(ctx, "emulator exit", slog.Any("err", err))
	}

	return mon.Summary()
}
