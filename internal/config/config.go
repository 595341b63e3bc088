package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Mapping modes for deriving a shot's cut-in frame from edit timecodes when
// no prior cut item constrains it.
const (
	MappingAbsolute  = "absolute"
	MappingAutomatic = "automatic"
	MappingRelative  = "relative"
)

// Editorial contains the frame-mapping and shot-default settings that drive
// reconciliation.
type Editorial struct {
	// FrameRate applies when no explicit rate is given for an EDL.
	FrameRate float64 `toml:"frame_rate"`

	// MappingMode selects how a first-appearance cut-in is derived:
	// absolute, automatic or relative.
	MappingMode       string `toml:"mapping_mode"`
	AbsoluteBaseFrame int    `toml:"absolute_base_frame"`

	// RelativeBaseTimecode maps to RelativeBaseFrame in relative mode.
	RelativeBaseTimecode string `toml:"relative_base_timecode"`
	RelativeBaseFrame    int    `toml:"relative_base_frame"`

	DefaultHeadIn       int `toml:"default_head_in"`
	DefaultHeadDuration int `toml:"default_head_duration"`
	DefaultTailDuration int `toml:"default_tail_duration"`

	// UseSmartFields switches shot frame-range reads and writes to the
	// smart column set.
	UseSmartFields bool `toml:"use_smart_fields"`

	// OmitStatus is written to shots that left the cut.
	OmitStatus string `toml:"omit_status"`

	// ReinstateStatus is written to shots returning to the cut.
	ReinstateStatus string `toml:"reinstate_status"`

	// ReinstateShotIfStatusIs lists the statuses marking a shot as
	// previously omitted; a shot in one of them that reappears in the
	// incoming edit list is classified as reinstated.
	ReinstateShotIfStatusIs []string `toml:"reinstate_shot_if_status_is"`
}

// Store contains record database configuration.
type Store struct {
	DBPath string `toml:"db_path"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cutsync.
type Config struct {
	Editorial     Editorial     `toml:"editorial"`
	Store         Store         `toml:"store"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cutsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cutsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ReinstateStatusSet returns the previously-omitted status codes as a set.
func (c *Config) ReinstateStatusSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Editorial.ReinstateShotIfStatusIs))
	for _, status := range c.Editorial.ReinstateShotIfStatusIs {
		status = strings.TrimSpace(status)
		if status != "" {
			set[status] = struct{}{}
		}
	}
	return set
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
