package domain

import (
	"fmt"
	"time"
)

// EnergyReading is one self-reported energy sample. Readings are immutable
// once recorded; Hour is always derived from Timestamp.
type EnergyReading struct {
	Timestamp      time.Time `json:"timestamp"`
	Hour           int       `json:"hour"`
	EnergyLevel    int       `json:"energy_level"`
	CompletionRate float64   `json:"completion_rate"`
}

// NewEnergyReading validates the sample ranges and derives Hour from the
// timestamp.
func NewEnergyReading(ts time.Time, energyLevel int, completionRate float64) (EnergyReading, error) {
	if energyLevel < 1 || energyLevel > 10 {
		return EnergyReading{}, fmt.Errorf("energy level must be 1..10, got %d", energyLevel)
	}
	if completionRate < 0 || completionRate > 1 {
		return EnergyReading{}, fmt.Errorf("completion rate must be 0..1, got %g", completionRate)
	}
	return EnergyReading{
		Timestamp:      ts,
		Hour:           ts.Hour(),
		EnergyLevel:    energyLevel,
		CompletionRate: completionRate,
	}, nil
}
