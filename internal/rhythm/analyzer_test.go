package rhythm

import (
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 11, 12, 0, 0, 0, time.UTC)

// readingsAt builds n readings at the given hour with fixed energy/completion.
func readingsAt(t *testing.T, hour, n, energy int, completion float64) []domain.EnergyReading {
	t.Helper()
	out := make([]domain.EnergyReading, 0, n)
	for i := 0; i < n; i++ {
		ts := time.Date(2026, 5, 1+i, hour, 15, 0, 0, time.UTC)
		r, err := domain.NewEnergyReading(ts, energy, completion)
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestConfidence_SaturatesAtHundredReadings(t *testing.T) {
	assert.Equal(t, 0.0, Confidence(0))
	assert.Equal(t, 0.5, Confidence(50))
	assert.Equal(t, 1.0, Confidence(100))
	assert.Equal(t, 1.0, Confidence(250))
}

func TestRebuild_TooFewReadingsReturnsNil(t *testing.T) {
	readings := readingsAt(t, 9, 9, 8, 0.9)
	assert.Nil(t, Rebuild(readings, testNow), "below 10 readings no model should be built")
}

func TestRebuild_ClassifiesPeaksAndDips(t *testing.T) {
	// Hour 9: energy 9, completion 0.9 -> score (9+9)/2 = 9 -> peak.
	// Hour 14: energy 3, completion 0.3 -> score (3+3)/2 = 3 -> dip.
	// Hour 18: energy 5, completion 0.5 -> score 5 -> neither.
	var readings []domain.EnergyReading
	readings = append(readings, readingsAt(t, 9, 5, 9, 0.9)...)
	readings = append(readings, readingsAt(t, 14, 5, 3, 0.3)...)
	readings = append(readings, readingsAt(t, 18, 5, 5, 0.5)...)

	intel := Rebuild(readings, testNow)
	require.NotNil(t, intel)

	require.Len(t, intel.UserRhythm.PeakPerformances, 1)
	assert.Equal(t, 9, intel.UserRhythm.PeakPerformances[0].Hour)
	assert.InDelta(t, 9.0, intel.UserRhythm.PeakPerformances[0].Score, 1e-9)

	require.Len(t, intel.UserRhythm.EnergyDips, 1)
	assert.Equal(t, 14, intel.UserRhythm.EnergyDips[0].Hour)

	assert.Equal(t, testNow, intel.UserRhythm.LastUpdated)
	assert.InDelta(t, 0.15, intel.UserRhythm.Confidence, 1e-9)
}

func TestRebuild_ZonesNeedThreeReadingsPerHour(t *testing.T) {
	var readings []domain.EnergyReading
	readings = append(readings, readingsAt(t, 8, 3, 8, 0.8)...)
	readings = append(readings, readingsAt(t, 20, 2, 4, 0.4)...) // too sparse
	readings = append(readings, readingsAt(t, 10, 10, 6, 0.6)...)

	intel := Rebuild(readings, testNow)
	require.NotNil(t, intel)

	hours := make(map[int]domain.TimePreference)
	for _, z := range intel.ProductivityZones {
		hours[z.Hour] = z
	}
	assert.Contains(t, hours, 8)
	assert.Contains(t, hours, 10)
	assert.NotContains(t, hours, 20, "hour with fewer than 3 readings must be withheld")

	// SupportedByData kicks in at 10 readings for the hour.
	assert.False(t, hours[8].SupportedByData)
	assert.True(t, hours[10].SupportedByData)
	assert.InDelta(t, 0.8, hours[8].PreferenceScore, 1e-9)
}

func TestRebuild_EnergyPatternsNeedSixReadingsPerBucket(t *testing.T) {
	var readings []domain.EnergyReading
	readings = append(readings, readingsAt(t, 8, 3, 8, 0.8)...)
	readings = append(readings, readingsAt(t, 9, 3, 8, 0.8)...) // bucket 8-10 has 6 readings
	readings = append(readings, readingsAt(t, 14, 5, 4, 0.4)...) // bucket 14-16 has only 5

	intel := Rebuild(readings, testNow)
	require.NotNil(t, intel)

	require.Len(t, intel.EnergyPatterns, 1, "only the bucket with more than 5 readings emits a pattern")
	assert.Equal(t, 8, intel.EnergyPatterns[0].BucketStart)
	assert.Equal(t, 6, intel.EnergyPatterns[0].ReadingCount)
}

func TestRebuild_TaskAffinityTracksHourScores(t *testing.T) {
	var readings []domain.EnergyReading
	readings = append(readings, readingsAt(t, 9, 5, 9, 0.9)...)  // score 9 -> demanding work
	readings = append(readings, readingsAt(t, 15, 5, 2, 0.2)...) // score 2 -> light work

	intel := Rebuild(readings, testNow)
	require.NotNil(t, intel)

	assert.Contains(t, intel.TaskAffinity[domain.EnergyVeryHigh], 9)
	assert.Contains(t, intel.TaskAffinity[domain.EnergyHigh], 9)
	assert.Contains(t, intel.TaskAffinity[domain.EnergyLow], 15)
	assert.Contains(t, intel.TaskAffinity[domain.EnergyVeryLow], 15)
	assert.NotContains(t, intel.TaskAffinity[domain.EnergyVeryHigh], 15)
}

func TestRebuild_WeeklyPatternsAggregateByWeekday(t *testing.T) {
	var readings []domain.EnergyReading
	readings = append(readings, readingsAt(t, 9, 10, 7, 0.7)...)

	intel := Rebuild(readings, testNow)
	require.NotNil(t, intel)
	require.NotEmpty(t, intel.UserRhythm.WeeklyPatterns)

	total := 0
	for _, p := range intel.UserRhythm.WeeklyPatterns {
		total += p.ReadingCount
		assert.InDelta(t, 7.0, p.AvgEnergy, 1e-9)
	}
	assert.Equal(t, 10, total)
}
