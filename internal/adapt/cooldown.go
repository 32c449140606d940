package adapt

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/mitchellh/hashstructure/v2"
)

// Cooldown windows per opportunity type. Cooldowns are the rate limiter that
// keeps competing opportunities with the same signature from thrashing the
// configuration back and forth.
const (
	cooldownModelSwitch         = 24 * time.Hour
	cooldownContextOptimization = 12 * time.Hour
	cooldownEnergyAdaptation    = 6 * time.Hour
	cooldownBehaviorAdaptation  = 48 * time.Hour
	cooldownTrendResponse       = 168 * time.Hour
	cooldownRollback            = 24 * time.Hour
)

func cooldownFor(typ domain.OpportunityType) time.Duration {
	switch typ {
	case domain.OpportunityModelSwitch:
		return cooldownModelSwitch
	case domain.OpportunityContextOptimization:
		return cooldownContextOptimization
	case domain.OpportunityEnergyAdaptation:
		return cooldownEnergyAdaptation
	case domain.OpportunityBehaviorAdaptation:
		return cooldownBehaviorAdaptation
	case domain.OpportunityTrendResponse:
		return cooldownTrendResponse
	default:
		return cooldownModelSwitch
	}
}

// signature keys an opportunity by its type plus a structural hash of its
// payload, so the identical change is recognized across cycles regardless of
// field ordering.
func signature(opp domain.AdaptationOpportunity) string {
	if opp.Payload == nil {
		return string(opp.Type)
	}
	hash, err := hashstructure.Hash(opp.Payload, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing only fails on unhashable payloads; fall back to the
		// bare type so the cooldown still applies per type.
		return string(opp.Type)
	}
	return fmt.Sprintf("%s:%d", opp.Type, hash)
}
