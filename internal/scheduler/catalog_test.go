package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_OneModelPerVariant(t *testing.T) {
	models := Catalog()
	require.Len(t, models, 6)

	seen := make(map[domain.ModelType]bool)
	for _, m := range models {
		typ := m.Type()
		assert.NotEmpty(t, typ, "model %s must carry a config variant", m.ID)
		assert.False(t, seen[typ], "duplicate variant %s", typ)
		seen[typ] = true
		assert.Equal(t, string(typ), m.ID, "built-in model IDs match their variant tag")
		assert.Equal(t, "built-in", m.BasedOn)
	}
}

func TestCatalog_DeadlineThresholdDefault(t *testing.T) {
	for _, m := range Catalog() {
		if cfg, ok := m.Config.(domain.DeadlineDrivenConfig); ok {
			assert.Equal(t, 24.0, cfg.TimePressureThreshold)
			return
		}
	}
	t.Fatal("catalog has no deadline-driven model")
}

func TestLearnedEnergyModel_NilWithoutIntelligence(t *testing.T) {
	assert.Nil(t, LearnedEnergyModel(nil))
}

func TestLearnedEnergyModel_DerivesProfile(t *testing.T) {
	intel := &domain.SchedulingIntelligence{
		UserRhythm: domain.CircadianRhythm{
			PeakPerformances: []domain.HourScore{{Hour: 9, Score: 9}},
			EnergyDips:       []domain.HourScore{{Hour: 15, Score: 3}},
			Confidence:       0.4,
			LastUpdated:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		ProductivityZones: []domain.TimePreference{
			{Hour: 9, AvgEnergy: 8.5, PreferenceScore: 0.9, ReadingCount: 12, SupportedByData: true},
		},
	}

	model := LearnedEnergyModel(intel)
	require.NotNil(t, model)
	assert.Equal(t, domain.ModelEnergyBased, model.Type())
	assert.Equal(t, "learned circadian profile", model.BasedOn)

	cfg, ok := model.Config.(domain.EnergyBasedConfig)
	require.True(t, ok)
	assert.True(t, cfg.Profile.Learned)
	assert.True(t, cfg.Profile.IsPeak(9))
	assert.True(t, cfg.Profile.IsLowEnergy(15))
	assert.InDelta(t, 8.5, cfg.Profile.EnergyAt(9), 1e-9)
}
