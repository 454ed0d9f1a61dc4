package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/retained/pkg/engine"
	"github.com/go-drift/retained/pkg/rendering"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/tools/widgetdemo/v2\n\ngo 1.24\n")

	res, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.AppName != "widgetdemo" {
		t.Errorf("AppName = %q, want widgetdemo", res.AppName)
	}
	if res.Width != DefaultWidth || res.Height != DefaultHeight || res.DPI != 96 {
		t.Errorf("window = %dx%d@%v", res.Width, res.Height, res.DPI)
	}
	if res.Background != engine.DefaultBackground {
		t.Errorf("Background = %v", res.Background)
	}
	if res.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", res.LogLevel)
	}
	if res.Source != "" {
		t.Errorf("Source = %q, want none", res.Source)
	}
}

func TestResolveWithoutGoMod(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plain")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	res, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ModulePath != "" || res.AppName != "plain" {
		t.Errorf("ModulePath = %q, AppName = %q", res.ModulePath, res.AppName)
	}
}

func TestResolveYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, `
app:
  name: demo
window:
  width: 1024
  height: 768
  dpi: 192
theme:
  background: "#102030"
log:
  level: debug
  verbose: true
debug:
  addr: "127.0.0.1:9999"
`)
	res, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.AppName != "demo" || res.Width != 1024 || res.Height != 768 || res.DPI != 192 {
		t.Errorf("resolved = %+v", res)
	}
	if res.Background != rendering.Color(0xFF102030) {
		t.Errorf("Background = %v", res.Background)
	}
	if res.LogLevel != slog.LevelDebug || !res.Verbose {
		t.Errorf("log = %v verbose %v", res.LogLevel, res.Verbose)
	}
	if !strings.HasSuffix(res.Source, YAMLFile) {
		t.Errorf("Source = %q", res.Source)
	}

	opts := res.EngineOptions(nil, nil)
	if opts.Background != res.Background {
		t.Errorf("options background = %v", opts.Background)
	}
	if opts.Trace == nil {
		t.Error("debug address should enable frame tracing")
	}
}

func TestResolveTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TOMLFile, `
[app]
name = "from-toml"

[log]
level = "warn"

[debug]
trace_frames = 32
`)
	res, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.AppName != "from-toml" || res.LogLevel != slog.LevelWarn || res.TraceFrames != 32 {
		t.Errorf("resolved = %+v", res)
	}
}

func TestYAMLTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, YAMLFile, "app:\n  name: yaml\n")
	writeFile(t, dir, TOMLFile, "[app]\nname = \"toml\"\n")

	res, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.AppName != "yaml" {
		t.Errorf("AppName = %q, want yaml", res.AppName)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad yaml", YAMLFile, "app: [", "failed to parse"},
		{"bad toml", TOMLFile, "[app\n", "failed to parse"},
		{"bad color", YAMLFile, "theme:\n  background: nope\n", "theme.background"},
		{"bad level", YAMLFile, "log:\n  level: loud\n", "log.level"},
		{"negative trace", YAMLFile, "debug:\n  trace_frames: -1\n", "trace_frames"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.file, tt.content)
			_, err := Resolve(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	if _, err := Parse("retained.json", []byte("{}")); err == nil {
		t.Error("expected error for .json")
	}
}
