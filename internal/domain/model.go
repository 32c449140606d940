package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type ModelType string

const (
	ModelTimeBlocking   ModelType = "time-blocking"
	ModelEisenhower     ModelType = "eisenhower"
	ModelUltradian      ModelType = "ultradian"
	ModelEnergyBased    ModelType = "energy-based"
	ModelAdaptive       ModelType = "adaptive"
	ModelDeadlineDriven ModelType = "deadline-driven"
)

// ModelConfig is the variant-specific configuration of a scheduling model.
// Exactly one concrete config type exists per model type, so the dispatcher
// can switch on the config and carry no foreign state.
type ModelConfig interface {
	modelConfig()
}

// TimeBlock is one scheduled block of a time-blocking model, expressed in
// minutes since midnight.
type TimeBlock struct {
	StartTime  int            `json:"start_time"`
	Duration   int            `json:"duration"`
	Type       BlockType      `json:"type"`
	Priority   Priority       `json:"priority"`
	Recurring  bool           `json:"recurring"`
	DaysOfWeek []time.Weekday `json:"days_of_week,omitempty"`
}

// Contains reports whether the minute-of-day falls inside [start, start+duration).
func (b TimeBlock) Contains(minuteOfDay int) bool {
	return minuteOfDay >= b.StartTime && minuteOfDay < b.StartTime+b.Duration
}

// AppliesOn reports whether the block is in effect on the given weekday.
// Non-recurring blocks ignore the day filter entirely.
func (b TimeBlock) AppliesOn(day time.Weekday) bool {
	if !b.Recurring || len(b.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range b.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

type TimeBlockingConfig struct {
	Blocks []TimeBlock `json:"blocks"`
}

func (TimeBlockingConfig) modelConfig() {}

// EisenhowerConfig optionally pins an explicit working set: when TaskQueue is
// non-empty the strategy considers only the listed task IDs, in store order.
type EisenhowerConfig struct {
	TaskQueue []string `json:"task_queue,omitempty"`
}

func (EisenhowerConfig) modelConfig() {}

// UltradianConfig carries no state: the ultradian strategy is purely
// clock-driven.
type UltradianConfig struct{}

func (UltradianConfig) modelConfig() {}

// EnergyProfile is a per-hour energy map with marked peak and low hours.
// Learned profiles are derived from recorded readings.
type EnergyProfile struct {
	HourlyEnergy   [24]float64 `json:"hourly_energy"`
	PeakHours      []int       `json:"peak_hours,omitempty"`
	LowEnergyHours []int       `json:"low_energy_hours,omitempty"`
	Learned        bool        `json:"learned"`
}

// EnergyAt returns the profile energy for an hour, defaulting to 5 when the
// profile has no signal for it.
func (p EnergyProfile) EnergyAt(hour int) float64 {
	if hour < 0 || hour > 23 || p.HourlyEnergy[hour] == 0 {
		return 5
	}
	return p.HourlyEnergy[hour]
}

// IsPeak reports whether the hour is one of the profile's peak hours.
func (p EnergyProfile) IsPeak(hour int) bool {
	return containsInt(p.PeakHours, hour)
}

// IsLowEnergy reports whether the hour is one of the profile's low hours.
func (p EnergyProfile) IsLowEnergy(hour int) bool {
	return containsInt(p.LowEnergyHours, hour)
}

func containsInt(hours []int, hour int) bool {
	for _, h := range hours {
		if h == hour {
			return true
		}
	}
	return false
}

type EnergyBasedConfig struct {
	Profile EnergyProfile `json:"profile"`
}

func (EnergyBasedConfig) modelConfig() {}

// AdaptiveConfig carries no state of its own: the adaptive strategy consults
// the rebuilt scheduling intelligence and the learned adaptation rules.
type AdaptiveConfig struct{}

func (AdaptiveConfig) modelConfig() {}

type DeadlineDrivenConfig struct {
	// TimePressureThreshold is the deadline window in hours.
	TimePressureThreshold float64 `json:"time_pressure_threshold"`
}

func (DeadlineDrivenConfig) modelConfig() {}

// SchedulingModel is one scheduling strategy with its variant configuration.
// Exactly one model is current at a time; switching replaces the whole value.
type SchedulingModel struct {
	ID           string
	Name         string
	Description  string
	WorkDuration int
	RestDuration int
	BasedOn      string
	Config       ModelConfig
}

// Type returns the variant tag implied by the model's config.
func (m *SchedulingModel) Type() ModelType {
	switch m.Config.(type) {
	case TimeBlockingConfig, *TimeBlockingConfig:
		return ModelTimeBlocking
	case EisenhowerConfig, *EisenhowerConfig:
		return ModelEisenhower
	case UltradianConfig, *UltradianConfig:
		return ModelUltradian
	case EnergyBasedConfig, *EnergyBasedConfig:
		return ModelEnergyBased
	case AdaptiveConfig, *AdaptiveConfig:
		return ModelAdaptive
	case DeadlineDrivenConfig, *DeadlineDrivenConfig:
		return ModelDeadlineDriven
	default:
		return ""
	}
}

// modelEnvelope is the persisted JSON form: common fields plus a type tag
// that selects which config struct the raw config decodes into.
type modelEnvelope struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	WorkDuration int             `json:"work_duration"`
	RestDuration int             `json:"rest_duration"`
	BasedOn      string          `json:"based_on,omitempty"`
	Type         ModelType       `json:"type"`
	Config       json.RawMessage `json:"config,omitempty"`
}

func (m SchedulingModel) MarshalJSON() ([]byte, error) {
	typ := m.Type()
	if typ == "" {
		return nil, fmt.Errorf("scheduling model %q has no config variant", m.ID)
	}
	raw, err := json.Marshal(m.Config)
	if err != nil {
		return nil, fmt.Errorf("encoding %s config: %w", typ, err)
	}
	return json.Marshal(modelEnvelope{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		WorkDuration: m.WorkDuration,
		RestDuration: m.RestDuration,
		BasedOn:      m.BasedOn,
		Type:         typ,
		Config:       raw,
	})
}

func (m *SchedulingModel) UnmarshalJSON(data []byte) error {
	var env modelEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	cfg, err := decodeModelConfig(env.Type, env.Config)
	if err != nil {
		return err
	}

	m.ID = env.ID
	m.Name = env.Name
	m.Description = env.Description
	m.WorkDuration = env.WorkDuration
	m.RestDuration = env.RestDuration
	m.BasedOn = env.BasedOn
	m.Config = cfg
	return nil
}

func decodeModelConfig(typ ModelType, raw json.RawMessage) (ModelConfig, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch typ {
	case ModelTimeBlocking:
		var c TimeBlockingConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding time-blocking config: %w", err)
		}
		return c, nil
	case ModelEisenhower:
		var c EisenhowerConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding eisenhower config: %w", err)
		}
		return c, nil
	case ModelUltradian:
		return UltradianConfig{}, nil
	case ModelEnergyBased:
		var c EnergyBasedConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding energy-based config: %w", err)
		}
		return c, nil
	case ModelAdaptive:
		return AdaptiveConfig{}, nil
	case ModelDeadlineDriven:
		var c DeadlineDrivenConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decoding deadline-driven config: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown scheduling model type %q", typ)
	}
}
