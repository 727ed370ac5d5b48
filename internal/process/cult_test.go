package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/site"
)

func TestRecruitmentChanceBounds(t *testing.T) {
	w := simworld.NewWorld(entropy.New(1), 1)
	s := firstSettlement(w)
	require.NotNil(t, s)
	s.AnchoringStrength = 0
	s.EclipsingPressure = 100
	s.Unrest = 100

	target := npc.New("n1", "N", npc.CategoryWanderer, s.ID)
	target.Traits.NeedForCertainty = 100
	target.Traits.Fear = 100
	target.Trauma = 100
	target.Traits.Integrity = 0

	chance := recruitmentChance(s, target)
	assert.LessOrEqual(t, chance, 0.85)
	assert.GreaterOrEqual(t, chance, 0.0)
}

func TestRecruitmentChanceHighIntegrityLowersOdds(t *testing.T) {
	w := simworld.NewWorld(entropy.New(2), 2)
	s := firstSettlement(w)
	require.NotNil(t, s)
	s.AnchoringStrength = 0

	low := npc.New("n1", "N", npc.CategoryWanderer, s.ID)
	low.Traits.Integrity = 100

	high := npc.New("n2", "N", npc.CategoryWanderer, s.ID)
	high.Traits.Integrity = 0
	high.Traits.NeedForCertainty = 50

	assert.Less(t, recruitmentChance(s, low), recruitmentChance(s, high))
}

type fixedFloat float64

func (f fixedFloat) Float64() float64 { return float64(f) }

func TestRollIncidentKindCoversAllBuckets(t *testing.T) {
	cases := map[float64]incidentKind{
		0.1: incidentTheft,
		0.4: incidentIntimidation,
		0.7: incidentArson,
		0.9: incidentMurder,
	}
	for v, want := range cases {
		got := rollIncidentKind(fixedFloat(v))
		assert.Equal(t, want, got)
	}
}

func TestStealFromNewestLotTakesNewestOnly(t *testing.T) {
	s := site.NewSettlement("s1", "S", site.CultureHuman)
	s.FoodStock[site.FoodGrain] = []site.Lot{
		{Amount: 10, ProducedDay: 1},
		{Amount: 10, ProducedDay: 5},
	}
	stealFromNewestLot(s)
	assert.Equal(t, 10.0, s.FoodStock[site.FoodGrain][0].Amount)
	assert.Equal(t, 8.0, s.FoodStock[site.FoodGrain][1].Amount)
}

func TestPickRandomResidentEmptyIsNil(t *testing.T) {
	assert.Nil(t, pickRandomResident(newTestContext(1), nil))
}

func TestRecomputeCultInfluenceFromRosterSmooths(t *testing.T) {
	ctx := newTestContext(3)
	w := simworld.NewWorld(ctx.RNG, 3)
	s := firstSettlement(w)
	require.NotNil(t, s)
	s.CultInfluence = 0

	for _, n := range w.NPCsAtSite(s.ID) {
		n.Cult.Member = true
	}
	recomputeCultInfluenceFromRoster(w, s.ID, s)
	assert.Greater(t, s.CultInfluence, 0.0)
}

func TestRunCultSkipsNonDailyHour(t *testing.T) {
	ctx := newTestContext(4)
	ctx.Counter.Reset()
	w := simworld.NewWorld(ctx.RNG, 4)
	w.Tick = 3
	s := firstSettlement(w)
	require.NotNil(t, s)
	before := s.CultInfluence
	RunCult(ctx, w)
	assert.Equal(t, before, s.CultInfluence)
}
