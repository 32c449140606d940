package scheduler

import (
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Catalog returns the built-in scheduling models, one per strategy variant.
// Model IDs double as the stable identifiers the learning loop switches
// between.
func Catalog() []domain.SchedulingModel {
	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}

	return []domain.SchedulingModel{
		{
			ID:           string(domain.ModelTimeBlocking),
			Name:         "Time Blocking",
			Description:  "Follow a fixed daily block schedule",
			WorkDuration: 50,
			RestDuration: 10,
			BasedOn:      "built-in",
			Config: domain.TimeBlockingConfig{
				Blocks: []domain.TimeBlock{
					{StartTime: 9 * 60, Duration: 120, Type: domain.BlockDeepWork, Priority: domain.PriorityHigh, Recurring: true, DaysOfWeek: weekdays},
					{StartTime: 11 * 60, Duration: 30, Type: domain.BlockBreaks, Priority: domain.PriorityLow, Recurring: true, DaysOfWeek: weekdays},
					{StartTime: 11*60 + 30, Duration: 90, Type: domain.BlockShallowWork, Priority: domain.PriorityMedium, Recurring: true, DaysOfWeek: weekdays},
					{StartTime: 14 * 60, Duration: 60, Type: domain.BlockMeetings, Priority: domain.PriorityMedium, Recurring: true, DaysOfWeek: weekdays},
					{StartTime: 15 * 60, Duration: 120, Type: domain.BlockDeepWork, Priority: domain.PriorityHigh, Recurring: true, DaysOfWeek: weekdays},
				},
			},
		},
		{
			ID:           string(domain.ModelEisenhower),
			Name:         "Eisenhower Matrix",
			Description:  "Urgent-important work first, delegate the rest",
			WorkDuration: 25,
			RestDuration: 5,
			BasedOn:      "built-in",
			Config:       domain.EisenhowerConfig{},
		},
		{
			ID:           string(domain.ModelUltradian),
			Name:         "Ultradian Rhythm",
			Description:  "90-minute focus cycles anchored to midnight",
			WorkDuration: 75,
			RestDuration: 15,
			BasedOn:      "built-in",
			Config:       domain.UltradianConfig{},
		},
		{
			ID:           string(domain.ModelEnergyBased),
			Name:         "Energy Based",
			Description:  "Match task intensity to your energy profile",
			WorkDuration: 45,
			RestDuration: 10,
			BasedOn:      "built-in",
			Config: domain.EnergyBasedConfig{
				Profile: defaultEnergyProfile(),
			},
		},
		{
			ID:           string(domain.ModelAdaptive),
			Name:         "Adaptive",
			Description:  "Learned productivity zones and adaptation rules",
			WorkDuration: 25,
			RestDuration: 5,
			BasedOn:      "built-in",
			Config:       domain.AdaptiveConfig{},
		},
		{
			ID:           string(domain.ModelDeadlineDriven),
			Name:         "Deadline Driven",
			Description:  "Whatever is due soonest wins",
			WorkDuration: 50,
			RestDuration: 10,
			BasedOn:      "built-in",
			Config: domain.DeadlineDrivenConfig{
				TimePressureThreshold: 24,
			},
		},
	}
}

// defaultEnergyProfile is a neutral profile with a conventional morning peak
// and post-lunch dip, used until a learned profile replaces it.
func defaultEnergyProfile() domain.EnergyProfile {
	profile := domain.EnergyProfile{
		PeakHours:      []int{9, 10, 11},
		LowEnergyHours: []int{13, 14, 22, 23},
	}
	for hour := 0; hour < 24; hour++ {
		switch {
		case hour >= 9 && hour <= 11:
			profile.HourlyEnergy[hour] = 8
		case hour >= 13 && hour <= 14:
			profile.HourlyEnergy[hour] = 3
		case hour >= 22 || hour <= 5:
			profile.HourlyEnergy[hour] = 2
		default:
			profile.HourlyEnergy[hour] = 5
		}
	}
	return profile
}

// LearnedEnergyModel derives an energy-based model from rebuilt intelligence.
// Returns nil when there is no intelligence to derive from.
func LearnedEnergyModel(intel *domain.SchedulingIntelligence) *domain.SchedulingModel {
	if intel == nil {
		return nil
	}

	profile := domain.EnergyProfile{Learned: true}
	for _, zone := range intel.ProductivityZones {
		profile.HourlyEnergy[zone.Hour] = zone.AvgEnergy
	}
	for _, peak := range intel.UserRhythm.PeakPerformances {
		profile.PeakHours = append(profile.PeakHours, peak.Hour)
	}
	for _, dip := range intel.UserRhythm.EnergyDips {
		profile.LowEnergyHours = append(profile.LowEnergyHours, dip.Hour)
	}

	return &domain.SchedulingModel{
		ID:           "energy-based-learned",
		Name:         "Energy Based (learned)",
		Description:  "Energy profile derived from your recorded readings",
		WorkDuration: 45,
		RestDuration: 10,
		BasedOn:      "learned circadian profile",
		Config:       domain.EnergyBasedConfig{Profile: profile},
	}
}
