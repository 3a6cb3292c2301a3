// Package config holds the tunable settings of the PAM intelligence
// core: analytics thresholds, playback search limits, and summary
// fan-out sizing.
//
// Settings load from an optional YAML file and can be overridden by
// PAM_INTEL_* environment variables; each attribute tracks the source
// it was loaded from (default, file, or environment). Watch provides
// fsnotify-based hot reload of the config file.
package config
