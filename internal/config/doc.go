// Package config loads and validates cutsync configuration from TOML.
//
// Configuration sections by subsystem:
//   - Editorial: frame rate, cut-in mapping mode, shot frame defaults,
//     smart-field selection and omit/reinstate statuses
//   - Store: record database location
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
//
// Load resolves the file from an explicit path, ~/.config/cutsync/config.toml
// or ./cutsync.toml, in that order, and always layers the parsed file over
// Default so partial files are valid.
package config
