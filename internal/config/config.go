// Package config provides the configuration schema and loader for the
// periovox charting server.
package config

import "time"

// LogLevel controls log verbosity for the periovox server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for periovox.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Dictation DictationConfig `yaml:"dictation"`
	Chart     ChartConfig     `yaml:"chart"`
}

// ServerConfig holds the admin HTTP and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the admin server (metrics, health,
	// chart snapshot) listens on, e.g. ":8080". Empty disables it.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// DictationConfig tunes the dictation intake and interpreter.
type DictationConfig struct {
	// DebounceMillis is the quiet period after the last text change before
	// a parse is attempted. 0 selects the default (500 ms); a negative
	// value disables debouncing so every input fires immediately.
	DebounceMillis int `yaml:"debounce_ms"`

	// ClearDelayMillis is how long after a successful parse the input is
	// cleared. 0 selects the default (1000 ms); negative clears at once.
	ClearDelayMillis int `yaml:"clear_delay_ms"`

	// Synonyms adds extra dictation variants on top of the built-in table,
	// mapping each variant to a canonical command word ("buccal",
	// "lingual", "pd", "rec", "mob") or a single digit.
	Synonyms map[string]string `yaml:"synonyms"`

	// Suggestions tunes the "did you mean" hints for unrecognized commands.
	Suggestions SuggestionsConfig `yaml:"suggestions"`
}

// SuggestionsConfig tunes the phonetic suggester.
type SuggestionsConfig struct {
	// Disabled turns suggestion hints off entirely.
	Disabled bool `yaml:"disabled"`

	// PhoneticThreshold is the minimum Jaro-Winkler score for a Double
	// Metaphone candidate. 0 selects the default (0.70).
	PhoneticThreshold float64 `yaml:"phonetic_threshold"`

	// FuzzyThreshold is the minimum Jaro-Winkler score for the pure-string
	// fallback. 0 selects the default (0.85).
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// ChartConfig seeds the charting session.
type ChartConfig struct {
	// MissingTeeth lists Universal tooth numbers (1–32) flagged missing at
	// session start.
	MissingTeeth []int `yaml:"missing_teeth"`
}

// Debounce returns the configured quiet period as a duration, applying the
// default when unset.
func (d DictationConfig) Debounce() time.Duration {
	switch {
	case d.DebounceMillis < 0:
		return 0
	case d.DebounceMillis == 0:
		return 500 * time.Millisecond
	}
	return time.Duration(d.DebounceMillis) * time.Millisecond
}

// ClearDelay returns the configured clear delay as a duration, applying the
// default when unset.
func (d DictationConfig) ClearDelay() time.Duration {
	switch {
	case d.ClearDelayMillis < 0:
		return 0
	case d.ClearDelayMillis == 0:
		return 1000 * time.Millisecond
	}
	return time.Duration(d.ClearDelayMillis) * time.Millisecond
}
