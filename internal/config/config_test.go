package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cutsync/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := (&cfg).Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Editorial.FrameRate != 24.0 {
		t.Errorf("frame rate = %v, want 24", cfg.Editorial.FrameRate)
	}
	if cfg.Editorial.MappingMode != config.MappingAutomatic {
		t.Errorf("mapping mode = %q, want automatic", cfg.Editorial.MappingMode)
	}
	if cfg.Editorial.DefaultHeadIn != 1001 || cfg.Editorial.DefaultHeadDuration != 8 {
		t.Errorf("unexpected head defaults: %d/%d", cfg.Editorial.DefaultHeadIn, cfg.Editorial.DefaultHeadDuration)
	}
}

func TestLoadPartialFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[editorial]
frame_rate = 30.0
mapping_mode = "Absolute"
reinstate_shot_if_status_is = ["omt", " hld ", ""]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected file to resolve, got exists=%v path=%q", exists, resolved)
	}
	if cfg.Editorial.FrameRate != 30.0 {
		t.Errorf("frame rate = %v, want 30", cfg.Editorial.FrameRate)
	}
	if cfg.Editorial.MappingMode != config.MappingAbsolute {
		t.Errorf("mapping mode = %q, want absolute", cfg.Editorial.MappingMode)
	}
	set := cfg.ReinstateStatusSet()
	if len(set) != 2 {
		t.Errorf("reinstate status set = %v, want omt and hld", set)
	}
	if _, ok := set["hld"]; !ok {
		t.Errorf("trimmed status missing from set: %v", set)
	}
	if cfg.Store.DBPath == "" {
		t.Error("store.db_path default was not applied")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero frame rate", func(c *config.Config) { c.Editorial.FrameRate = 0 }, "frame_rate"},
		{"bad mapping mode", func(c *config.Config) { c.Editorial.MappingMode = "sideways" }, "mapping_mode"},
		{"negative head duration", func(c *config.Config) { c.Editorial.DefaultHeadDuration = -1 }, "default_head_duration"},
		{"relative without base", func(c *config.Config) {
			c.Editorial.MappingMode = config.MappingRelative
			c.Editorial.RelativeBaseTimecode = ""
		}, "relative_base_timecode"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := (&cfg).Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}
