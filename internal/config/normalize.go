package config

import "strings"

// normalize trims and lower-cases enumerated fields and fills empty values
// with defaults so Validate only sees canonical input.
func (c *Config) normalize() error {
	c.Editorial.MappingMode = strings.ToLower(strings.TrimSpace(c.Editorial.MappingMode))
	if c.Editorial.MappingMode == "" {
		c.Editorial.MappingMode = defaultMappingMode
	}
	c.Editorial.OmitStatus = strings.TrimSpace(c.Editorial.OmitStatus)
	c.Editorial.ReinstateStatus = strings.TrimSpace(c.Editorial.ReinstateStatus)
	c.Editorial.RelativeBaseTimecode = strings.TrimSpace(c.Editorial.RelativeBaseTimecode)

	statuses := make([]string, 0, len(c.Editorial.ReinstateShotIfStatusIs))
	for _, status := range c.Editorial.ReinstateShotIfStatusIs {
		status = strings.TrimSpace(status)
		if status != "" {
			statuses = append(statuses, status)
		}
	}
	c.Editorial.ReinstateShotIfStatusIs = statuses

	c.Store.DBPath = strings.TrimSpace(c.Store.DBPath)
	if c.Store.DBPath == "" {
		c.Store.DBPath = defaultDBPath
	}

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
