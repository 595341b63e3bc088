package config

const (
	defaultDBPath            = "~/.local/share/cutsync/records.db"
	defaultFrameRate         = 24.0
	defaultMappingMode       = MappingAutomatic
	defaultHeadIn            = 1001
	defaultHeadDuration      = 8
	defaultTailDuration      = 8
	defaultRelativeBaseTC    = "01:00:00:00"
	defaultRelativeBaseFrame = 1001
	defaultOmitStatus        = "omt"
	defaultReinstateStatus   = "ip"
	defaultNotifyTimeout     = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Editorial: Editorial{
			FrameRate:               defaultFrameRate,
			MappingMode:             defaultMappingMode,
			AbsoluteBaseFrame:       0,
			RelativeBaseTimecode:    defaultRelativeBaseTC,
			RelativeBaseFrame:       defaultRelativeBaseFrame,
			DefaultHeadIn:           defaultHeadIn,
			DefaultHeadDuration:     defaultHeadDuration,
			DefaultTailDuration:     defaultTailDuration,
			OmitStatus:              defaultOmitStatus,
			ReinstateStatus:         defaultReinstateStatus,
			ReinstateShotIfStatusIs: []string{"omt", "hld"},
		},
		Store: Store{
			DBPath: defaultDBPath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
