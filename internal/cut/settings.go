package cut

import (
	"fmt"

	"cutsync/internal/config"
	"cutsync/internal/timecode"
)

// Settings carries the frame-mapping and shot-default values that drive
// value derivation and classification for one reconciliation pass.
type Settings struct {
	FrameRate float64

	MappingMode       string
	AbsoluteBaseFrame int
	RelativeBaseTC    timecode.Timecode
	RelativeBaseFrame int

	DefaultHeadIn       int
	DefaultHeadDuration int
	DefaultTailDuration int

	UseSmartFields bool

	OmitStatus        string
	ReinstateStatus   string
	ReinstateStatuses map[string]struct{}
}

// SettingsFromConfig builds engine settings from the editorial section,
// parsing the relative base timecode at the configured frame rate.
func SettingsFromConfig(cfg *config.Config) (Settings, error) {
	settings := Settings{
		FrameRate:           cfg.Editorial.FrameRate,
		MappingMode:         cfg.Editorial.MappingMode,
		AbsoluteBaseFrame:   cfg.Editorial.AbsoluteBaseFrame,
		RelativeBaseFrame:   cfg.Editorial.RelativeBaseFrame,
		DefaultHeadIn:       cfg.Editorial.DefaultHeadIn,
		DefaultHeadDuration: cfg.Editorial.DefaultHeadDuration,
		DefaultTailDuration: cfg.Editorial.DefaultTailDuration,
		UseSmartFields:      cfg.Editorial.UseSmartFields,
		OmitStatus:          cfg.Editorial.OmitStatus,
		ReinstateStatus:     cfg.Editorial.ReinstateStatus,
		ReinstateStatuses:   cfg.ReinstateStatusSet(),
	}
	if settings.MappingMode == config.MappingRelative {
		tc, err := timecode.Parse(cfg.Editorial.RelativeBaseTimecode, cfg.Editorial.FrameRate)
		if err != nil {
			return Settings{}, fmt.Errorf("relative base timecode: %w", err)
		}
		settings.RelativeBaseTC = tc
	}
	return settings, nil
}

func (s *Settings) reinstates(status string) bool {
	_, ok := s.ReinstateStatuses[status]
	return ok
}
