package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/retained/cmd/retained/internal/demo"
	"github.com/go-drift/retained/cmd/retained/internal/termhost"
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/engine"
	"github.com/go-drift/retained/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run the demo in this terminal",
		Long: `Run the sample tree in the current terminal.

Click buttons with the mouse, click the text area and type into it.
Function keys are sent as host commands:
  F1    reset the counter and the typed text
  F2    open a file dialog (unsupported in a terminal)
  F10   quit
Ctrl+C also quits.

Flags:
  --dir DIR            Project directory holding retained.yaml or retained.toml
  --debug-addr ADDR    Serve /tree, /frames and /health on ADDR (e.g. 127.0.0.1:9999)

Logs go to log.file from the configuration, or nowhere, since the terminal
is in use.`,
		Usage: "retained run [--dir DIR] [--debug-addr ADDR]",
		Run:   runRun,
	})
}

type runOptions struct {
	dir       string
	debugAddr string
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for i := 0; i < len(args); i++ {
		var err error
		switch arg := args[i]; {
		case arg == "--dir" || hasFlagValue(arg, "--dir"):
			opts.dir, i, err = takeValue(args, i, "--dir")
		case arg == "--debug-addr" || hasFlagValue(arg, "--debug-addr"):
			opts.debugAddr, i, err = takeValue(args, i, "--debug-addr")
		default:
			err = fmt.Errorf("unexpected argument %q", arg)
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func runRun(args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	res, err := projectConfig(opts.dir)
	if err != nil {
		return err
	}
	if opts.debugAddr != "" {
		res.DebugAddr = opts.debugAddr
	}

	logOut, closeLog, err := openLog(res.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := res.NewLogger(logOut)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: res.Verbose})
	defer errors.SetHandler(nil)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := core.NewUIState()
	d := demo.Build(state, res.AppName)
	ui := engine.New(state, res.EngineOptions(logger, func() {
		logger.Info("window destroyed")
	}))
	host := termhost.New(screen, ui, termhost.Options{DPI: res.DPI, Logger: logger})

	if res.DebugAddr != "" {
		srv := engine.NewDebugServer(ui)
		srv.Runtime = engine.NewRuntimeSampler(0, 0)
		port, err := srv.Start(res.DebugAddr)
		if err != nil {
			return err
		}
		defer srv.Stop()
		logger.Info("debug server listening", "port", port)
	}

	go d.RunClock(ctx, host.Window().IdleHandle(), time.Second)

	logger.Info("running", "app", res.AppName, "config", res.Source)
	if err := host.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openLog opens path for appending, or returns io.Discard when path is
// empty.
func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func hasFlagValue(arg, name string) bool {
	return strings.HasPrefix(arg, name+"=")
}
