package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/editorbind/config"
	"github.com/wippyai/editorbind/loader"
	"github.com/wippyai/editorbind/resource"
	"github.com/wippyai/editorbind/runtime"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to HCL host configuration")
		theme       = flag.String("theme", "", "Theme override (vs, vs-dark, hc-black, hc-light)")
		delay       = flag.Duration("delay", -1, "Engine load delay override")
		logFile     = flag.String("log", "", "Write JSON logs to this file")
		interactive = flag.Bool("i", false, "Interactive mode even when stdout is not a terminal")
		plain       = flag.Bool("plain", false, "Print a summary instead of starting the TUI")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile, *theme, *delay)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(*logFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loader.SetLogger(logger)
	resource.SetLogger(logger)
	runtime.SetLogger(logger)

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	if *interactive || (tty && !*plain) {
		err = runInteractive(cfg, logger)
	} else {
		err = run(cfg, logger)
	}
	if err != nil {
		logger.Error("editor host failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path, theme string, delay time.Duration) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if theme != "" {
		cfg.Theme = theme
	}
	if delay >= 0 {
		cfg.LoadDelay = delay
	}
	return cfg, cfg.Validate()
}

// newLogger writes JSON to path, or discards everything when path is empty.
func newLogger(path string, level zapcore.Level) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	h, err := newHost(cfg, logger, nil)
	if err != nil {
		return err
	}
	return runSummary(context.Background(), os.Stdout, h)
}
