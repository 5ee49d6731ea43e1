// Package main provides the CLI entry point for cachemon, which boots the
// stopwatch firmware on a board, under QEMU or on the host and reports what
// its cache benchmark found.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"stopwatch/src/hardware/bcm2835"
	"stopwatch/src/tools/cachemon"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(logger, level)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("cachemon failed", slog.Any("err", err))
		os.Exit(1)
	}
}

type outputFlags struct {
	json  bool
	quiet bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false,
		"Output the summary as JSON instead of a table")
	cmd.Flags().BoolVarP(&o.quiet, "quiet", "q", false,
		"Do not echo the console while it runs")
}

func (o *outputFlags) console() io.Writer {
	if o.quiet {
		return io.Discard
	}

	return os.Stderr
}

func (o *outputFlags) report(s cachemon.Summary) error {
	if o.json {
		return cachemon.WriteJSON(os.Stdout, s)
	}

	return cachemon.WriteText(os.Stdout, s)
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "cachemon",
		Short: "Run and watch the stopwatch cache benchmark",
		Long: `Cachemon runs the stopwatch firmware, which times busy-wait delays and
compares cached with uncached DRAM access, and summarizes its console output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				level.Set(slog.LevelDebug)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug information")

	root.AddCommand(newWatchCmd(logger))
	root.AddCommand(newQemuCmd(logger))
	root.AddCommand(newSimulateCmd(logger))
	root.AddCommand(newParseCmd())

	return root
}

func newWatchCmd(logger *slog.Logger) *cobra.Command {
	var (
		out      outputFlags
		port     string
		baud     int
		keyboard bool
		follow   bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a board over its serial console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				p, err := cachemon.DefaultPort()
				if err != nil {
					return err
				}

				port = p
			}

			s, err := cachemon.Watch(cmd.Context(), logger, cachemon.SerialConfig{
				Port:     port,
				Baud:     baud,
				Keyboard: keyboard,
				Follow:   follow,
			}, out.console())
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}

			return out.report(s)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&port, "port", "p", "",
		"Serial port of the board (default: first port found)")
	flags.IntVar(&baud, "baud", bcm2835.DefaultBaud,
		"Baud rate of the mini uart")
	flags.BoolVar(&keyboard, "keyboard", false,
		"Forward local keys to the board (ctrl-c ends the session)")
	flags.BoolVar(&follow, "follow", false,
		"Keep watching after the firmware starts looping")
	out.register(cmd)

	return cmd
}

func newQemuCmd(logger *slog.Logger) *cobra.Command {
	var (
		out     outputFlags
		command string
		timeout time.Duration
		linger  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "qemu KERNEL",
		Short: "Boot the firmware under QEMU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cachemon.RunQemu(cmd.Context(), logger, cachemon.QemuConfig{
				Command: command,
				Kernel:  args[0],
				Timeout: timeout,
				Linger:  linger,
			}, out.console(), os.Stderr)
			if err != nil {
				return fmt.Errorf("qemu: %w", err)
			}

			return out.report(s)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&command, "exec", cachemon.DefaultQemuCommand,
		"Emulator command line, the kernel is appended")
	flags.DurationVar(&timeout, "timeout", 2*time.Minute,
		"Give up on the emulator after this long")
	flags.DurationVar(&linger, "linger", 3*time.Second,
		"Keep watching this long after the firmware starts looping")
	out.register(cmd)

	return cmd
}

func newSimulateCmd(logger *slog.Logger) *cobra.Command {
	var out outputFlags

	cfg := cachemon.DefaultSimulateConfig()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the boot sequence on this machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := cachemon.Simulate(cmd.Context(), logger, cfg, out.console())
			if err != nil {
				return fmt.Errorf("simulate: %w", err)
			}

			return out.report(s)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Geometry.Iterations, "iterations", cfg.Geometry.Iterations,
		"Passes over the benchmark region")
	flags.IntVar(&cfg.Geometry.Cachelines, "cachelines", cfg.Geometry.Cachelines,
		"Cachelines in the benchmark region")
	flags.IntVar(&cfg.Ticks, "ticks", cfg.Ticks,
		"Ticks to run once the sequence is looping")
	flags.BoolVar(&cfg.SystemTimer, "system-timer", cfg.SystemTimer,
		"Simulate the 1MHz system timer (off is like QEMU)")
	flags.BoolVar(&cfg.NoMMU, "no-mmu", cfg.NoMMU,
		"Fail memory bring-up, which skips the benchmark")
	out.register(cmd)

	return cmd
}

func newParseCmd() *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "parse [TRANSCRIPT]",
		Short: "Summarize a saved console transcript (stdin if no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var r io.Reader = os.Stdin

			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open transcript: %w", err)
				}
				defer f.Close()

				r = f
			}

			s, err := cachemon.ParseTranscript(r)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			return out.report(s)
		},
	}

	out.register(cmd)

	return cmd
}
