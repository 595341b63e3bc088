package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditorial(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEditorial() error {
	if c.Editorial.FrameRate <= 0 {
		return fmt.Errorf("editorial.frame_rate must be positive, got %v", c.Editorial.FrameRate)
	}
	switch c.Editorial.MappingMode {
	case MappingAbsolute, MappingAutomatic, MappingRelative:
	default:
		return fmt.Errorf("editorial.mapping_mode must be absolute, automatic or relative, got %q", c.Editorial.MappingMode)
	}
	if c.Editorial.DefaultHeadIn < 0 {
		return errors.New("editorial.default_head_in must not be negative")
	}
	if c.Editorial.DefaultHeadDuration < 0 {
		return errors.New("editorial.default_head_duration must not be negative")
	}
	if c.Editorial.DefaultTailDuration < 0 {
		return errors.New("editorial.default_tail_duration must not be negative")
	}
	if c.Editorial.MappingMode == MappingRelative && c.Editorial.RelativeBaseTimecode == "" {
		return errors.New("editorial.relative_base_timecode is required in relative mapping mode")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.DBPath == "" {
		return errors.New("store.db_path must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
