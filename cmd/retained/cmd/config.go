package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/retained/cmd/retained/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration after defaults are applied, in the format of
the configuration file.

Flags:
  --dir DIR        Project directory holding retained.yaml or retained.toml
  --format FORMAT  yaml (default) or toml`,
		Usage: "retained config [--dir DIR] [--format yaml|toml]",
		Run:   runConfig,
	})
}

func runConfig(args []string) error {
	dir, format := "", "yaml"
	for i := 0; i < len(args); i++ {
		var err error
		switch arg := args[i]; {
		case arg == "--dir" || hasFlagValue(arg, "--dir"):
			dir, i, err = takeValue(args, i, "--dir")
		case arg == "--format" || hasFlagValue(arg, "--format"):
			format, i, err = takeValue(args, i, "--format")
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
	if res.Source != "" {
		fmt.Fprintf(stdout, "# from %s\n", res.Source)
	}

	view := resolvedView(res)
	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(view)
	case "toml":
		data, err = toml.Marshal(view)
	default:
		return fmt.Errorf("unknown format %q (want yaml or toml)", format)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = stdout.Write(data)
	return err
}

// resolvedView renders resolved values back into the file layout.
func resolvedView(res *config.Resolved) config.Config {
	return config.Config{
		App: config.AppConfig{Name: res.AppName},
		Window: config.WindowConfig{
			Width:  res.Width,
			Height: res.Height,
			DPI:    res.DPI,
		},
		Theme: config.ThemeConfig{Background: res.Background.String()},
		Log: config.LogConfig{
			Level:   res.LogLevel.String(),
			Verbose: res.Verbose,
			File:    res.LogFile,
		},
		Debug: config.DebugConfig{
			Addr:        res.DebugAddr,
			TraceFrames: res.TraceFrames,
		},
	}
}
