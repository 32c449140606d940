package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptationStatus_Terminal(t *testing.T) {
	assert.False(t, AdaptationActive.Terminal())
	assert.False(t, AdaptationNeedsRollback.Terminal())
	assert.True(t, AdaptationSuccessful.Terminal())
	assert.True(t, AdaptationRolledBack.Terminal())
}

func TestPriority_Weight(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Weight())
	assert.Equal(t, 2, PriorityMedium.Weight())
	assert.Equal(t, 1, PriorityLow.Weight())
	assert.Equal(t, 0, Priority("bogus").Weight())
}

func TestAdaptationOpportunity_JSONRoundTrip_ModelSwitch(t *testing.T) {
	opp := AdaptationOpportunity{
		Type:                OpportunityModelSwitch,
		Priority:            PriorityHigh,
		Confidence:          0.9,
		ExpectedImprovement: 12.5,
		Description:         "switch to energy-based",
		RollbackPlan:        "restore ultradian",
		Payload:             ModelSwitchPayload{FromModelID: "ultradian", ToModelID: "energy-based"},
	}

	data, err := json.Marshal(opp)
	require.NoError(t, err)

	var got AdaptationOpportunity
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, opp.Type, got.Type)
	assert.Equal(t, opp.Confidence, got.Confidence)

	payload, ok := got.Payload.(ModelSwitchPayload)
	require.True(t, ok)
	assert.Equal(t, "ultradian", payload.FromModelID)
	assert.Equal(t, "energy-based", payload.ToModelID)
}

func TestAdaptationOpportunity_JSONRoundTrip_TrendBundle(t *testing.T) {
	opp := AdaptationOpportunity{
		Type:       OpportunityTrendResponse,
		Priority:   PriorityHigh,
		Confidence: 0.85,
		Payload: TrendResponsePayload{
			Trend: 0.3,
			Solutions: []AdaptationOpportunity{
				{
					Type:       OpportunityEnergyAdaptation,
					Priority:   PriorityMedium,
					Confidence: 0.85,
					Payload:    EnergyAdaptationPayload{Hours: []int{14, 15}, ExpectedOutcome: 55},
				},
			},
		},
	}

	data, err := json.Marshal(opp)
	require.NoError(t, err)

	var got AdaptationOpportunity
	require.NoError(t, json.Unmarshal(data, &got))

	payload, ok := got.Payload.(TrendResponsePayload)
	require.True(t, ok)
	require.Len(t, payload.Solutions, 1)
	sub, ok := payload.Solutions[0].Payload.(EnergyAdaptationPayload)
	require.True(t, ok)
	assert.Equal(t, []int{14, 15}, sub.Hours)
}

func TestModelAdaptation_DueForEvaluation(t *testing.T) {
	implemented := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := &ModelAdaptation{
		Status:             AdaptationActive,
		ImplementationDate: implemented,
		MonitoringInterval: 7 * 24 * time.Hour,
	}

	assert.False(t, a.DueForEvaluation(implemented.Add(6*24*time.Hour)))
	assert.True(t, a.DueForEvaluation(implemented.Add(7*24*time.Hour)))

	a.Status = AdaptationSuccessful
	assert.False(t, a.DueForEvaluation(implemented.Add(8*24*time.Hour)))
}

func TestAdaptationRule_Matches(t *testing.T) {
	rule := AdaptationRule{
		Hours: []int{9, 10, 11},
		Days:  []time.Weekday{time.Monday, time.Tuesday},
	}
	assert.True(t, rule.Matches(10, time.Monday))
	assert.False(t, rule.Matches(12, time.Monday))
	assert.False(t, rule.Matches(10, time.Friday))

	open := AdaptationRule{}
	assert.True(t, open.Matches(3, time.Sunday))
}
