package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings is returned by Settings.Validate for out-of-range values.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the immutable per-run configuration consumed by the enricher.
type Settings struct {
	NumPapers           int           `yaml:"num_papers" json:"num_papers"`
	MatchScoreThreshold int           `yaml:"match_score_threshold" json:"match_score_threshold"`
	MaxRows             int           `yaml:"max_rows" json:"max_rows"`
	PerRowDelay         time.Duration `yaml:"per_row_delay" json:"per_row_delay"`

	// SafeMode documents that LinkedIn is never scraped. LinkedIn columns are
	// passed through unchanged whatever its value.
	SafeMode bool `yaml:"safe_mode" json:"safe_mode"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		NumPapers:           5,
		MatchScoreThreshold: 65,
		MaxRows:             50,
		PerRowDelay:         500 * time.Millisecond,
		SafeMode:            true,
	}
}

// Validate checks every field against its allowed range.
func (s Settings) Validate() error {
	if s.NumPapers < 1 || s.NumPapers > 20 {
		return fmt.Errorf("%w: num_papers must be between 1 and 20, got %d", ErrInvalidSettings, s.NumPapers)
	}
	if s.MatchScoreThreshold < 30 || s.MatchScoreThreshold > 95 {
		return fmt.Errorf("%w: match_score_threshold must be between 30 and 95, got %d", ErrInvalidSettings, s.MatchScoreThreshold)
	}
	if s.MaxRows < 1 || s.MaxRows > 500 {
		return fmt.Errorf("%w: max_rows must be between 1 and 500, got %d", ErrInvalidSettings, s.MaxRows)
	}
	if s.PerRowDelay < 0 {
		return fmt.Errorf("%w: per_row_delay must not be negative, got %s", ErrInvalidSettings, s.PerRowDelay)
	}
	return nil
}
