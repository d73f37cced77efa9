// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/tukai/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Stats    StatsConfig    `toml:"stats"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Lang        *string  `toml:"lang"`
	Duration    *string  `toml:"duration"`
	CapsPct     *float64 `toml:"caps"`
	PunctPct    *float64 `toml:"punct"`
	PunctSet    *string  `toml:"punct-set"`
	WordListDir *string  `toml:"wordlist-dir"`
}

// StatsConfig maps defaults for the stats command.
type StatsConfig struct {
	CurveWindow *int `toml:"curve-window" validate:"omitempty,gte=1"`
	Rows        *int `toml:"rows" validate:"omitempty,gte=0"`
}

var validate = validator.New()

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := validate.Struct(cfg.Stats); err != nil {
		return FileConfig{}, fmt.Errorf("invalid [stats] section: %w", err)
	}
	return cfg, nil
}

// Validate checks a resolved practice config.
func Validate(cfg model.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	switch first.Field() {
	case "CapsPct":
		return fmt.Errorf("--caps must be between 0 and 1")
	case "PunctPct":
		return fmt.Errorf("--punct must be between 0 and 1")
	case "PunctSet":
		return fmt.Errorf("--punct-set must not be empty")
	case "RecordPath":
		return fmt.Errorf("--record must not be empty")
	default:
		return fmt.Errorf("invalid %s: failed %q", first.Field(), first.Tag())
	}
}
