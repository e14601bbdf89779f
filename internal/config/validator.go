package config

import (
	"errors"
	"fmt"
)

// Validator checks a Config for internally consistent field values and
// applies smart defaults for anything left at zero.
type Validator struct{}

// NewValidator returns a Validator. It holds no state and is safe to share.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates cfg, collecting every field-level
// problem into one aggregate error rather than stopping at the first
// failure, then fills in defaults for anything left unset.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	var problems []error

	if cfg.MaxTokenLength <= 0 {
		problems = append(problems, fmt.Errorf("MaxTokenLength must be positive, got %d", cfg.MaxTokenLength))
	}
	if cfg.MinLanguageScore < 0 || cfg.MinLanguageScore > 1 {
		problems = append(problems, fmt.Errorf("MinLanguageScore must be in [0,1], got %f", cfg.MinLanguageScore))
	}
	if cfg.BatchSize < 0 {
		problems = append(problems, fmt.Errorf("BatchSize cannot be negative, got %d", cfg.BatchSize))
	}
	if cfg.PositionGap < 0 {
		problems = append(problems, fmt.Errorf("PositionGap cannot be negative, got %d", cfg.PositionGap))
	}
	for _, pattern := range cfg.Exclude {
		if pattern == "" {
			problems = append(problems, errors.New("exclude pattern cannot be empty"))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %w", errors.Join(problems...))
	}

	v.setSmartDefaults(cfg)
	return nil
}

// setSmartDefaults fills in anything a caller-constructed Config left at
// its zero value; defaults are applied only after validation passes.
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.MaxTokenLength == 0 {
		cfg.MaxTokenLength = Default().MaxTokenLength
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = Default().BatchSize
	}
	if cfg.Exclude == nil {
		cfg.Exclude = Default().Exclude
	}
}

// ValidateConfig is a convenience wrapper for one-shot validation.
func ValidateConfig(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
