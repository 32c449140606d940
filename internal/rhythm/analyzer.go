package rhythm

import (
	"sort"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Analysis thresholds. Hours scoring above peakScore are peak-performance
// hours, below dipScore energy dips. Sparse hours and buckets are withheld
// so a handful of readings cannot fake a rhythm.
const (
	minReadingsForRebuild   = 10
	minReadingsPerHour      = 3
	minReadingsForSupported = 10
	minReadingsPerBucket    = 6
	peakScore               = 7.0
	dipScore                = 4.0
)

type hourStat struct {
	hour          int
	count         int
	avgEnergy     float64
	avgCompletion float64
	score         float64
}

// Confidence maps a reading count to a 0..1 confidence, saturating at 100
// readings.
func Confidence(readingCount int) float64 {
	c := float64(readingCount) / 100
	if c > 1 {
		return 1
	}
	return c
}

// Rebuild recomputes the scheduling intelligence from scratch. It returns nil
// when fewer than 10 readings exist: no model at all beats a false-confidence
// one.
func Rebuild(readings []domain.EnergyReading, now time.Time) *domain.SchedulingIntelligence {
	if len(readings) < minReadingsForRebuild {
		return nil
	}

	stats := hourStats(readings)

	var peaks, dips []domain.HourScore
	for _, st := range stats {
		switch {
		case st.score > peakScore:
			peaks = append(peaks, domain.HourScore{Hour: st.hour, Score: st.score})
		case st.score < dipScore:
			dips = append(dips, domain.HourScore{Hour: st.hour, Score: st.score})
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].Score > peaks[j].Score })
	sort.Slice(dips, func(i, j int) bool { return dips[i].Score < dips[j].Score })

	return &domain.SchedulingIntelligence{
		UserRhythm: domain.CircadianRhythm{
			PeakPerformances: peaks,
			EnergyDips:       dips,
			WeeklyPatterns:   weeklyPatterns(readings),
			Confidence:       Confidence(len(readings)),
			LastUpdated:      now,
		},
		EnergyPatterns:    energyPatterns(readings),
		ProductivityZones: productivityZones(stats),
		TaskAffinity:      taskAffinity(stats),
	}
}

func hourStats(readings []domain.EnergyReading) []hourStat {
	var counts [24]int
	var energySum, completionSum [24]float64
	for _, r := range readings {
		if r.Hour < 0 || r.Hour > 23 {
			continue
		}
		counts[r.Hour]++
		energySum[r.Hour] += float64(r.EnergyLevel)
		completionSum[r.Hour] += r.CompletionRate
	}

	var stats []hourStat
	for hour := 0; hour < 24; hour++ {
		if counts[hour] == 0 {
			continue
		}
		avgEnergy := energySum[hour] / float64(counts[hour])
		avgCompletion := completionSum[hour] / float64(counts[hour])
		stats = append(stats, hourStat{
			hour:          hour,
			count:         counts[hour],
			avgEnergy:     avgEnergy,
			avgCompletion: avgCompletion,
			score:         (avgEnergy + avgCompletion*10) / 2,
		})
	}
	return stats
}

func productivityZones(stats []hourStat) []domain.TimePreference {
	var zones []domain.TimePreference
	for _, st := range stats {
		if st.count < minReadingsPerHour {
			continue
		}
		zones = append(zones, domain.TimePreference{
			Hour:            st.hour,
			PreferenceScore: st.score / 10,
			AvgEnergy:       st.avgEnergy,
			AvgCompletion:   st.avgCompletion,
			ReadingCount:    st.count,
			SupportedByData: st.count >= minReadingsForSupported,
		})
	}
	return zones
}

func energyPatterns(readings []domain.EnergyReading) []domain.EnergyPattern {
	var counts [12]int
	var energySum, completionSum [12]float64
	for _, r := range readings {
		if r.Hour < 0 || r.Hour > 23 {
			continue
		}
		bucket := r.Hour / 2
		counts[bucket]++
		energySum[bucket] += float64(r.EnergyLevel)
		completionSum[bucket] += r.CompletionRate
	}

	var patterns []domain.EnergyPattern
	for bucket := 0; bucket < 12; bucket++ {
		if counts[bucket] < minReadingsPerBucket {
			continue
		}
		avgEnergy := energySum[bucket] / float64(counts[bucket])
		avgCompletion := completionSum[bucket] / float64(counts[bucket])
		patterns = append(patterns, domain.EnergyPattern{
			BucketStart:   bucket * 2,
			AvgEnergy:     avgEnergy,
			AvgCompletion: avgCompletion,
			Score:         (avgEnergy + avgCompletion*10) / 2,
			ReadingCount:  counts[bucket],
		})
	}
	return patterns
}

func weeklyPatterns(readings []domain.EnergyReading) []domain.WeeklyPattern {
	var counts [7]int
	var energySum [7]float64
	for _, r := range readings {
		day := r.Timestamp.Weekday()
		counts[day]++
		energySum[day] += float64(r.EnergyLevel)
	}

	var patterns []domain.WeeklyPattern
	for day := time.Sunday; day <= time.Saturday; day++ {
		if counts[day] == 0 {
			continue
		}
		patterns = append(patterns, domain.WeeklyPattern{
			Day:          day,
			AvgEnergy:    energySum[day] / float64(counts[day]),
			ReadingCount: counts[day],
		})
	}
	return patterns
}

// taskAffinity maps each task energy requirement to the hours whose observed
// score fits it, so demanding work lands in strong hours and light work fills
// the dips.
func taskAffinity(stats []hourStat) map[domain.EnergyLevel][]int {
	affinity := make(map[domain.EnergyLevel][]int)
	for _, st := range stats {
		if st.count < minReadingsPerHour {
			continue
		}
		for _, level := range affinityLevels(st.score) {
			affinity[level] = append(affinity[level], st.hour)
		}
	}
	return affinity
}

func affinityLevels(score float64) []domain.EnergyLevel {
	switch {
	case score >= 8:
		return []domain.EnergyLevel{domain.EnergyVeryHigh, domain.EnergyHigh}
	case score >= 7:
		return []domain.EnergyLevel{domain.EnergyHigh}
	case score >= 4:
		return []domain.EnergyLevel{domain.EnergyModerate}
	case score >= 3:
		return []domain.EnergyLevel{domain.EnergyLow}
	default:
		return []domain.EnergyLevel{domain.EnergyLow, domain.EnergyVeryLow}
	}
}
