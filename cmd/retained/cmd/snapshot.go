package cmd

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/go-drift/retained/cmd/retained/internal/demo"
	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/engine"
	"github.com/go-drift/retained/pkg/platform"
	"github.com/go-drift/retained/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Render one frame of the demo to a PNG",
		Long: `Lay out and paint the sample tree once and write the result as a PNG.

The image size is window.width by window.height from the configuration.

Flags:
  --dir DIR          Project directory holding retained.yaml or retained.toml
  -o, --output FILE  Output path (default: snapshot.png)`,
		Usage: "retained snapshot [--dir DIR] [-o FILE]",
		Run:   runSnapshot,
	})
}

func runSnapshot(args []string) error {
	dir, output := "", "snapshot.png"
	for i := 0; i < len(args); i++ {
		var err error
		switch arg := args[i]; {
		case arg == "--dir" || hasFlagValue(arg, "--dir"):
			dir, i, err = takeValue(args, i, "--dir")
		case arg == "-o":
			output, i, err = takeValue(args, i, "-o")
		case arg == "--output" || hasFlagValue(arg, "--output"):
			output, i, err = takeValue(args, i, "--output")
		default:
			err = fmt.Errorf("unexpected argument %q", arg)
		}
		if err != nil {
			return err
		}
	}

	res, err := projectConfig(dir)
	if err != nil {
		return err
	}
	logger := res.NewLogger(os.Stderr)

	state := core.NewUIState()
	demo.Build(state, res.AppName)
	ui := engine.New(state, res.EngineOptions(logger, nil))
	ui.Connect(platform.NullWindow{})
	ui.Size(uint32(res.Width), uint32(res.Height))

	canvas := rendering.NewImageCanvas(res.Width, res.Height)
	ui.Paint(canvas)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, canvas.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Debug("snapshot written", slog.String("path", output), slog.Int("width", res.Width), slog.Int("height", res.Height))
	fmt.Fprintf(stdout, "wrote %s (%dx%d)\n", output, res.Width, res.Height)
	return nil
}
