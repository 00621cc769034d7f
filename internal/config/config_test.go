package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"

	"dfsorter/internal/config"
	"dfsorter/internal/fault"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "dfsorter", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if cfg.Paths.InputDir != filepath.Join(wd, "input") {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Paths.OutputDir != filepath.Join(wd, "output") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.HeaderFile != filepath.Join(wd, "define.h") {
		t.Fatalf("unexpected header file: %q", cfg.Paths.HeaderFile)
	}
	if cfg.Header.MacroName != "DFPLAYER_AUDIO_FILES" {
		t.Fatalf("unexpected macro name: %q", cfg.Header.MacroName)
	}
	if diff := cmp.Diff([]string{".mp3", ".wav", ".wma"}, cfg.Discover.Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Sort.Enabled {
		t.Fatal("expected custom sort disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dfsorter.toml")
	content := `
[paths]
input_dir = "` + filepath.ToSlash(filepath.Join(dir, "sounds")) + `"
output_dir = "` + filepath.ToSlash(filepath.Join(dir, "sd")) + `"
header_file = "` + filepath.ToSlash(filepath.Join(dir, "tracks.h")) + `"

[header]
macro_name = "  MY_TRACKS  "

[discover]
extensions = ["MP3", ".wav", "mp3", " "]

[sort]
enabled = true
split_mode = " CAMEL_CASE "
primary_order = ["alarm", " ", "door"]
secondary_order = ["low", "high"]

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to be used, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Header.MacroName != "MY_TRACKS" {
		t.Fatalf("expected trimmed macro name, got %q", cfg.Header.MacroName)
	}
	if diff := cmp.Diff([]string{".mp3", ".wav"}, cfg.Discover.Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Sort.SplitMode != "CAMEL_CASE" {
		t.Fatalf("expected trimmed split mode, got %q", cfg.Sort.SplitMode)
	}
	if diff := cmp.Diff([]string{"alarm", "door"}, cfg.Sort.PrimaryOrder); diff != "" {
		t.Fatalf("primary order mismatch (-want +got):\n%s", diff)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging settings: %+v", cfg.Logging)
	}
	if cfg.IgnorePath() != filepath.Join(dir, "sounds", ".dfsorterignore") {
		t.Fatalf("unexpected ignore path: %q", cfg.IgnorePath())
	}
	if cfg.LockPath() != filepath.Join(dir, ".sd.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestLoadResolvesRelativePathsFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	cwd := t.TempDir()
	t.Chdir(cwd)

	path := filepath.Join(dir, "dfsorter.toml")
	content := `
[paths]
input_dir = "sounds"
output_dir = "sd/tracks"
header_file = "../include/define.h"

[logging]
file = "logs/dfsorter.log"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	checks := map[string][2]string{
		"input_dir":   {cfg.Paths.InputDir, filepath.Join(dir, "sounds")},
		"output_dir":  {cfg.Paths.OutputDir, filepath.Join(dir, "sd", "tracks")},
		"header_file": {cfg.Paths.HeaderFile, filepath.Join(filepath.Dir(dir), "include", "define.h")},
		"log file":    {cfg.Logging.File, filepath.Join(dir, "logs", "dfsorter.log")},
	}
	for field, pair := range checks {
		if pair[0] != pair[1] {
			t.Fatalf("%s: got %q want %q", field, pair[0], pair[1])
		}
	}
	if strings.HasPrefix(cfg.Paths.OutputDir, cwd) {
		t.Fatalf("output dir resolved from working directory: %q", cfg.Paths.OutputDir)
	}
}

func TestLoadKeepsEmptySplitMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[sort]\nenabled = true\nsplit_mode = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Sort.SplitMode != "" {
		t.Fatalf("expected empty split mode to survive normalization, got %q", cfg.Sort.SplitMode)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\ninput_folder = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestMacroNameEnvFallback(t *testing.T) {
	t.Setenv("DFSORTER_MACRO_NAME", "FROM_ENV")
	cfg := config.Default()
	cfg.Header.MacroName = ""
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.Header.MacroName != "FROM_ENV" {
		t.Fatalf("expected env macro name, got %q", cfg.Header.MacroName)
	}
}

func TestValidateRejectsUnsafeLayouts(t *testing.T) {
	base := t.TempDir()
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name: "output equals input",
			mutate: func(c *config.Config) {
				c.Paths.InputDir = filepath.Join(base, "same")
				c.Paths.OutputDir = filepath.Join(base, "same")
			},
			want: "must differ",
		},
		{
			name: "input inside output",
			mutate: func(c *config.Config) {
				c.Paths.OutputDir = filepath.Join(base, "out")
				c.Paths.InputDir = filepath.Join(base, "out", "in")
			},
			want: "must not contain",
		},
		{
			name: "header inside output",
			mutate: func(c *config.Config) {
				c.Paths.OutputDir = filepath.Join(base, "out")
				c.Paths.HeaderFile = filepath.Join(base, "out", "define.h")
			},
			want: "header_file",
		},
		{
			name: "header equals output",
			mutate: func(c *config.Config) {
				c.Paths.OutputDir = filepath.Join(base, "out")
				c.Paths.HeaderFile = filepath.Join(base, "out")
			},
			want: "header_file",
		},
		{
			name: "header equals input",
			mutate: func(c *config.Config) {
				c.Paths.InputDir = filepath.Join(base, "sounds")
				c.Paths.HeaderFile = filepath.Join(base, "sounds") + string(filepath.Separator)
			},
			want: "header_file",
		},
		{
			name: "bad log level",
			mutate: func(c *config.Config) {
				c.Logging.Level = "verbose"
			},
			want: "logging.level",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.InputDir = filepath.Join(base, "input")
			cfg.Paths.OutputDir = filepath.Join(base, "output")
			cfg.Paths.HeaderFile = filepath.Join(base, "define.h")
			tc.mutate(&cfg)
			err := cfg.Finalize()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
			if !errors.Is(err, fault.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Header.MacroName != "DFPLAYER_AUDIO_FILES" {
		t.Fatalf("unexpected sample macro name: %q", cfg.Header.MacroName)
	}
	if cfg.Sort.SplitMode != "underscore" {
		t.Fatalf("unexpected sample split mode: %q", cfg.Sort.SplitMode)
	}
}
