package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMatchesSpecNamedValues(t *testing.T) {
	c := Default()
	assert.Equal(t, 0.5, c.Tuning.RelationshipDecayPerDay)
	assert.Equal(t, 0.1, c.Tuning.DebtDecayPerDay)
	assert.Equal(t, 15.0, c.Tuning.RelationshipChangeFromEvent)
	assert.Equal(t, 0.15, c.Tuning.RumorSpreadChance)
	assert.Equal(t, 5, c.Tuning.MaxGoalsPerEntity)
	assert.Equal(t, 10, c.Limits.MaxPlanSteps)
	assert.Equal(t, 1000, c.Limits.MaxEntitiesPerTick)
	assert.Equal(t, 5, c.Limits.MaxIntentsPerEntity)
	assert.Equal(t, 8, c.Limits.MaxReactiveStatesPerEntity)
}

func TestNotabilityDecayRateBaseline(t *testing.T) {
	c := Default()
	assert.Equal(t, 0.5, c.NotabilityDecayRate(30, false))
}

func TestNotabilityDecayRateReducedAboveFifty(t *testing.T) {
	c := Default()
	assert.Equal(t, 0.25, c.NotabilityDecayRate(75, false))
}

func TestNotabilityDecayRateLeadershipCeiling(t *testing.T) {
	c := Default()
	assert.Equal(t, 0.4, c.NotabilityDecayRate(10, true))
}

func TestNotabilityDecayRateLeadershipBelowCeilingUnaffected(t *testing.T) {
	c := Default()
	assert.Equal(t, 0.25, c.NotabilityDecayRate(90, true))
}
