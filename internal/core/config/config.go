// Package config provides configuration management for Gavel tooling.
package config

import (
	"github.com/gavelhq/gavel/internal/types"
)

// EvaluatorConfig holds configuration for an evaluation session.
type EvaluatorConfig struct {
	// ZoneID is the session time zone. Empty selects the host zone.
	ZoneID string

	// MaxSequence caps NumberSequence generation per call.
	MaxSequence int

	// PayloadPath is the JSON payload file evaluated against; empty reads
	// the payload from stdin.
	PayloadPath string
}

// DefaultEvaluatorConfig returns configuration with default values.
func DefaultEvaluatorConfig() *EvaluatorConfig {
	return &EvaluatorConfig{
		ZoneID:      "",
		MaxSequence: types.MaxSequenceElements,
		PayloadPath: "",
	}
}
