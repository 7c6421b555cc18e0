package expansion

import (
	"io"
	"log/slog"
)

const (
	// DefaultReferenceTemperature is the reference temperature in kelvin
	// (20 °C) set by DefaultConfig.
	DefaultReferenceTemperature = 293.15

	// DefaultTargetStability is the advisory temperature stability target
	// in kelvin. It is reported, never enforced.
	DefaultTargetStability = 0.01
)

// Config configures an Evaluator. Temperatures are used exactly as given,
// including zero; start from DefaultConfig and override fields.
type Config struct {
	// ReferenceTemperature is T_ref in kelvin for Evaluate and
	// ThermalFunction.
	ReferenceTemperature float64

	// TargetStability is the advisory |ΔT| bound in kelvin used by
	// WithinStability.
	TargetStability float64

	// Logger receives range advisories (warn) and evaluation traces
	// (debug). Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ReferenceTemperature: DefaultReferenceTemperature,
		TargetStability:      DefaultTargetStability,
	}
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}
