package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/periovox/periovox/internal/dictation"
	"github.com/periovox/periovox/pkg/perio"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	// Extra synonyms must preserve normalizer idempotence; NewNormalizer
	// performs the per-entry checks.
	if len(cfg.Dictation.Synonyms) > 0 {
		if _, err := dictation.NewNormalizer(dictation.WithSynonyms(cfg.Dictation.Synonyms)); err != nil {
			errs = append(errs, fmt.Errorf("dictation.synonyms: %w", err))
		}
	}

	if t := cfg.Dictation.Suggestions.PhoneticThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("dictation.suggestions.phonetic_threshold %v must be within [0, 1]", t))
	}
	if t := cfg.Dictation.Suggestions.FuzzyThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("dictation.suggestions.fuzzy_threshold %v must be within [0, 1]", t))
	}

	seen := make(map[int]bool, len(cfg.Chart.MissingTeeth))
	for _, id := range cfg.Chart.MissingTeeth {
		if id < 1 || id > perio.ToothCount {
			errs = append(errs, fmt.Errorf("chart.missing_teeth: tooth %d outside 1–%d", id, perio.ToothCount))
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("chart.missing_teeth: tooth %d listed twice", id))
		}
		seen[id] = true
	}

	return errors.Join(errs...)
}
