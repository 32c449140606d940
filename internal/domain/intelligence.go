package domain

import "time"

// HourScore is an hour of day with its unified productivity score
// ((avgEnergy + avgCompletion*10) / 2, so 0..10).
type HourScore struct {
	Hour  int     `json:"hour"`
	Score float64 `json:"score"`
}

// WeeklyPattern aggregates readings by weekday.
type WeeklyPattern struct {
	Day          time.Weekday `json:"day"`
	AvgEnergy    float64      `json:"avg_energy"`
	ReadingCount int          `json:"reading_count"`
}

// CircadianRhythm is the derived per-hour performance profile. Confidence
// grows linearly with the number of readings and saturates at 100.
type CircadianRhythm struct {
	PeakPerformances []HourScore     `json:"peak_performances"`
	EnergyDips       []HourScore     `json:"energy_dips"`
	WeeklyPatterns   []WeeklyPattern `json:"weekly_patterns,omitempty"`
	Confidence       float64         `json:"confidence"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// TimePreference scores a single hour of day. Entries exist only for hours
// with at least 3 readings; SupportedByData additionally requires 10.
type TimePreference struct {
	Hour            int     `json:"hour"`
	PreferenceScore float64 `json:"preference_score"`
	AvgEnergy       float64 `json:"avg_energy"`
	AvgCompletion   float64 `json:"avg_completion"`
	ReadingCount    int     `json:"reading_count"`
	SupportedByData bool    `json:"supported_by_data"`
}

// EnergyPattern aggregates readings into a 2-hour bucket. Buckets with 5 or
// fewer readings are withheld to avoid overfitting sparse data.
type EnergyPattern struct {
	BucketStart   int     `json:"bucket_start"`
	AvgEnergy     float64 `json:"avg_energy"`
	AvgCompletion float64 `json:"avg_completion"`
	Score         float64 `json:"score"`
	ReadingCount  int     `json:"reading_count"`
}

// SchedulingIntelligence is the rebuildable analysis artifact consumed by the
// adaptive and energy-based strategies. It is never hand-edited: the analyzer
// recomputes it wholesale from the recorded readings.
type SchedulingIntelligence struct {
	UserRhythm        CircadianRhythm       `json:"user_rhythm"`
	EnergyPatterns    []EnergyPattern       `json:"energy_patterns,omitempty"`
	ProductivityZones []TimePreference      `json:"productivity_zones,omitempty"`
	TaskAffinity      map[EnergyLevel][]int `json:"task_affinity,omitempty"`
}

// ZoneFor returns the productivity zone entry for the given hour, or nil.
func (si *SchedulingIntelligence) ZoneFor(hour int) *TimePreference {
	if si == nil {
		return nil
	}
	for i := range si.ProductivityZones {
		if si.ProductivityZones[i].Hour == hour {
			return &si.ProductivityZones[i]
		}
	}
	return nil
}
