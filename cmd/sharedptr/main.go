// Command sharedptr demonstrates shared handles over a logging payload.
//
// Without flags it replays the built-in scenario: construct A, copy it
// into B, move it into C, reassign a copy D from a fresh value, and let
// every handle go. Scripts, a line REPL and a TUI drive the same session
// commands interactively.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/sharedptr/control"
	"github.com/wippyai/sharedptr/handle"
)

func main() {
	var (
		scriptFile  = flag.String("script", "", "Run a YAML script instead of the built-in scenario")
		repl        = flag.Bool("repl", false, "Read commands from a line prompt")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log every retain, release and destroy")
		jsonLogs    = flag.Bool("json", false, "Emit JSON logs")
		history     = flag.String("history", ".sharedptr-history.tmp", "REPL history file")
	)
	flag.Parse()

	level := zapcore.InfoLevel
	if *verbose {
		level = zapcore.DebugLevel
	}

	ctx, stop := exitContext(context.Background())
	defer stop()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal on stdout")
			os.Exit(1)
		}
		if err := runInteractive(ctx, level); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log, err := newLogger(level, *jsonLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(ctx, os.Stdout, log, *scriptFile, *repl, *history); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, log *zap.Logger, scriptFile string, repl bool, history string) error {
	control.SetLogger(log.Named("control"))
	handle.SetLogger(log.Named("handle"))

	return runSession(ctx, NewSession(out, log.Named("payload")), scriptFile, repl, history)
}

// runSession drives s in the selected mode and closes it before returning,
// however the run ends.
func runSession(ctx context.Context, s *Session, scriptFile string, repl bool, history string) (err error) {
	defer func() {
		err = multierr.Append(err, s.Close())
	}()

	if repl {
		return runREPL(ctx, s, history)
	}

	var sc *Script
	if scriptFile != "" {
		sc, err = LoadScript(scriptFile)
	} else {
		sc, err = ParseScript(defaultScenario)
	}
	if err != nil {
		return err
	}
	return sc.Run(ctx, s)
}

func newLogger(level zapcore.Level, jsonLogs bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if jsonLogs {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	if !jsonLogs {
		cfg.EncoderConfig.TimeKey = ""
		if term.IsTerminal(int(os.Stderr.Fd())) {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}
	return cfg.Build()
}
