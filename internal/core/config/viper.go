package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/gavelhq/gavel/internal/types"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*EvaluatorConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultEvaluatorConfig
	v.SetDefault("evaluator.zone_id", "")
	v.SetDefault("evaluator.max_sequence", types.MaxSequenceElements)
	v.SetDefault("evaluator.payload_path", "")

	// Bind environment variables with GAVEL_ prefix
	v.SetEnvPrefix("GAVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &EvaluatorConfig{
		ZoneID:      v.GetString("evaluator.zone_id"),
		MaxSequence: v.GetInt("evaluator.max_sequence"),
		PayloadPath: v.GetString("evaluator.payload_path"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the zone resolves and the sequence cap is positive.
func validateConfig(cfg *EvaluatorConfig) error {
	if cfg.ZoneID != "" {
		if _, err := time.LoadLocation(cfg.ZoneID); err != nil {
			return fmt.Errorf("zone_id '%s' is not a recognized time zone: %w", cfg.ZoneID, err)
		}
	}
	if cfg.MaxSequence <= 0 {
		return fmt.Errorf("max_sequence must be positive, got %d", cfg.MaxSequence)
	}
	return nil
}
