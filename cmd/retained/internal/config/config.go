// Package config loads the optional retained.yaml or retained.toml file that
// configures the terminal host, and resolves it into engine options.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/retained/pkg/engine"
	"github.com/go-drift/retained/pkg/platform"
	"github.com/go-drift/retained/pkg/rendering"
)

// File names searched for, in order.
const (
	YAMLFile = "retained.yaml"
	TOMLFile = "retained.toml"
)

// Config mirrors the configuration file. Every field is optional.
type Config struct {
	App    AppConfig    `yaml:"app" toml:"app"`
	Window WindowConfig `yaml:"window" toml:"window"`
	Theme  ThemeConfig  `yaml:"theme" toml:"theme"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Debug  DebugConfig  `yaml:"debug" toml:"debug"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
}

// WindowConfig sizes the surface used by the snapshot command and scales
// device pixels in the terminal host.
type WindowConfig struct {
	Width  int     `yaml:"width,omitempty" toml:"width,omitempty"`
	Height int     `yaml:"height,omitempty" toml:"height,omitempty"`
	DPI    float64 `yaml:"dpi,omitempty" toml:"dpi,omitempty"`
}

// ThemeConfig holds colors as #RRGGBB or #AARRGGBB strings.
type ThemeConfig struct {
	Background string `yaml:"background,omitempty" toml:"background,omitempty"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level   string `yaml:"level,omitempty" toml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty" toml:"verbose,omitempty"`
	// File receives log output; empty means stderr.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// DebugConfig enables the inspection server and frame tracing.
type DebugConfig struct {
	Addr        string `yaml:"addr,omitempty" toml:"addr,omitempty"`
	TraceFrames int    `yaml:"trace_frames,omitempty" toml:"trace_frames,omitempty"`
}

// Resolved contains configuration with defaults applied.
type Resolved struct {
	Root        string
	Source      string
	ModulePath  string
	AppName     string
	Width       int
	Height      int
	DPI         float64
	Background  rendering.Color
	LogLevel    slog.Level
	Verbose     bool
	LogFile     string
	DebugAddr   string
	TraceFrames int
}

// Defaults applied by Resolve.
const (
	DefaultWidth  = 640
	DefaultHeight = 400
	DefaultName   = "retained_app"
)

// LoadOptional reads retained.yaml, or retained.toml if there is no YAML
// file. It returns an empty Config and an empty source path when neither
// exists.
func LoadOptional(dir string) (*Config, string, error) {
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		cfg, err := Parse(name, data)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return &Config{}, "", nil
}

// Parse decodes data as YAML or TOML depending on the extension of name.
func Parse(name string, data []byte) (*Config, error) {
	var cfg Config
	var err error
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(name))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(name), err)
	}
	return &cfg, nil
}

// Resolve loads the configuration in dir, if any, and applies defaults. A
// go.mod in dir is optional; when present its module path names the app.
func Resolve(dir string) (*Resolved, error) {
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	res := &Resolved{
		Root:        dir,
		Source:      source,
		ModulePath:  modulePath,
		AppName:     strings.TrimSpace(cfg.App.Name),
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		DPI:         cfg.Window.DPI,
		Background:  engine.DefaultBackground,
		Verbose:     cfg.Log.Verbose,
		LogFile:     cfg.Log.File,
		DebugAddr:   strings.TrimSpace(cfg.Debug.Addr),
		TraceFrames: cfg.Debug.TraceFrames,
	}
	if res.AppName == "" {
		res.AppName = defaultAppName(modulePath, dir)
	}
	if res.Width <= 0 {
		res.Width = DefaultWidth
	}
	if res.Height <= 0 {
		res.Height = DefaultHeight
	}
	if res.DPI <= 0 {
		res.DPI = platform.BaseDPI
	}
	if bg := strings.TrimSpace(cfg.Theme.Background); bg != "" {
		c, err := rendering.ParseHex(bg)
		if err != nil {
			return nil, fmt.Errorf("theme.background: %w", err)
		}
		res.Background = c
	}
	if err := res.LogLevel.UnmarshalText([]byte(defaultString(cfg.Log.Level, "info"))); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	if res.TraceFrames < 0 {
		return nil, fmt.Errorf("debug.trace_frames must not be negative, got %d", res.TraceFrames)
	}
	return res, nil
}

// NewLogger returns a text logger writing to w at the resolved level.
func (r *Resolved) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: r.LogLevel}))
}

// EngineOptions converts the resolved values into engine options. Frame
// tracing is enabled when TraceFrames is positive or a debug address is set.
func (r *Resolved) EngineOptions(logger *slog.Logger, onDestroy func()) engine.Options {
	opts := engine.Options{
		Background: r.Background,
		OnDestroy:  onDestroy,
		Logger:     logger,
	}
	if r.TraceFrames > 0 || r.DebugAddr != "" {
		opts.Trace = engine.NewFrameTraceBuffer(r.TraceFrames, 0)
	}
	return opts
}

// FindProjectRoot walks up from the current directory to find go.mod. It
// returns the current directory if there is none.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := start; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		prefix, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return DefaultName
	}
	return base
}

func defaultString(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}
