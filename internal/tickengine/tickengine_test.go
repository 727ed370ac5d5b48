package tickengine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/worldsim/internal/attempt"
	"github.com/talgya/worldsim/internal/belief"
	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/event"
	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/process"
	"github.com/talgya/worldsim/internal/simerr"
	"github.com/talgya/worldsim/internal/simworld"
	"github.com/talgya/worldsim/internal/site"
)

func newTickContext(t *testing.T, seed int64) (*process.Context, *simworld.World) {
	t.Helper()
	rng := entropy.New(seed)
	w := simworld.NewWorld(rng, seed)
	ctx := &process.Context{RNG: rng, Log: &event.Log{}, Counter: &event.Counter{}, Config: config.Default()}
	return ctx, w
}

func TestRunRejectsNegativeDays(t *testing.T) {
	_, _, _, err := Run(1, -1, config.Default())
	require.Error(t, err)
	var ve *simerr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestRunZeroDaysStillEmitsStart(t *testing.T) {
	w, events, summaries, err := Run(1, 0, config.Default())
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Empty(t, summaries)
	require.NotEmpty(t, events)
	assert.Equal(t, "sim.started", events[0].Kind)
}

func TestRunIsDeterministicAcrossSameSeed(t *testing.T) {
	wa, eventsA, summariesA, err := Run(42, 3, config.Default())
	require.NoError(t, err)
	wb, eventsB, summariesB, err := Run(42, 3, config.Default())
	require.NoError(t, err)

	assert.Equal(t, wa.Tick, wb.Tick)
	assert.Equal(t, len(eventsA), len(eventsB))
	assert.Equal(t, len(summariesA), len(summariesB))
	for i := range eventsA {
		assert.Equal(t, eventsA[i].Kind, eventsB[i].Kind)
		assert.Equal(t, eventsA[i].Tick, eventsB[i].Tick)
	}
}

func TestRunProducesOneSummaryPerDay(t *testing.T) {
	_, _, summaries, err := Run(7, 2, config.Default())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 0, summaries[0].Day)
	assert.Equal(t, 1, summaries[1].Day)
}

func TestEventsForTickFiltersByTickField(t *testing.T) {
	all := []event.SimEvent{
		{ID: 1, Tick: 1, Seq: 1, Kind: "a"},
		{ID: 2, Tick: 2, Seq: 1, Kind: "b"},
		{ID: 1, Tick: 1, Seq: 2, Kind: "c"},
	}
	got := eventsForTick(all, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Kind)
	assert.Equal(t, "c", got[1].Kind)
}

func TestTickHourReturnsSummaryOnlyAtHour23(t *testing.T) {
	ctx, w := newTickContext(t, 3)
	for h := 0; h < 23; h++ {
		summary := TickHour(ctx, w)
		assert.Nil(t, summary)
	}
	summary := TickHour(ctx, w)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Day)
}

func TestValidateInvariantsPassesOnHealthyWorld(t *testing.T) {
	w, _, _, err := Run(5, 1, config.Default())
	require.NoError(t, err)
	assert.NotPanics(t, func() { validateInvariants(w, w.Tick) })
}

func TestValidateInvariantsRaisesOnNegativeFood(t *testing.T) {
	_, w := newTickContext(t, 5)
	for _, s := range w.Sites {
		if s.IsSettlement() {
			s.FoodStock[site.FoodGrain] = []site.Lot{{Amount: -5, ProducedDay: 0}}
			break
		}
	}
	assert.Panics(t, func() { validateInvariants(w, w.Tick) })
}

func TestValidateInvariantsRaisesOnDanglingTravelDestination(t *testing.T) {
	_, w := newTickContext(t, 5)
	for _, n := range w.NPCs {
		n.Travel = &npc.Travel{ToSiteID: "nowhere", KmRemaining: 1}
		break
	}
	assert.Panics(t, func() { validateInvariants(w, w.Tick) })
}

// TestRunDivergesAcrossDifferentSeeds covers spec scenario 2: seed=1 and
// seed=2 at 10 days produce different summaries.
func TestRunDivergesAcrossDifferentSeeds(t *testing.T) {
	_, _, summariesA, err := Run(1, 10, config.Default())
	require.NoError(t, err)
	_, _, summariesB, err := Run(2, 10, config.Default())
	require.NoError(t, err)

	assert.NotEqual(t, summariesA, summariesB)
}

// TestIndividualStarvationKillsAtFortyEightHours covers spec scenario 3:
// an NPC with consecutiveHungerHours=47 and hp=4 at a hunger=100,
// food-empty site dies on the next hungry hour, with an npc.died event
// carrying cause="starvation".
func TestIndividualStarvationKillsAtFortyEightHours(t *testing.T) {
	ctx, w := newTickContext(t, 11)
	s := firstSettlement(w)
	require.NotNil(t, s)
	s.Hunger = 100
	for _, ft := range site.AllFoodTypes() {
		s.FoodStock[ft] = nil
	}

	victim := npc.New("starving", "Starving", npc.CategoryFarmer, s.ID)
	victim.HP = 4
	victim.ConsecutiveHungerHours = 47
	w.NPCs[victim.ID] = victim

	TickHour(ctx, w)

	assert.False(t, victim.Alive)
	require.NotNil(t, victim.Death)
	assert.Equal(t, npc.CauseStarvation, victim.Death.Cause)

	var died *event.SimEvent
	for _, e := range ctx.Log.All() {
		if e.Kind == "npc.died" && e.Data["npcId"] == string(victim.ID) {
			died = &e
			break
		}
	}
	require.NotNil(t, died)
	assert.Equal(t, "starvation", died.Data["cause"])
}

func firstSettlement(w *simworld.World) *site.Site {
	for _, id := range w.SortedSiteIDs() {
		if w.Sites[id].IsSettlement() {
			return w.Sites[id]
		}
	}
	return nil
}

// TestKidnapChainThroughForcedEclipseAndAnchorSever covers spec scenario
// 5: a kidnap at overwhelming score detains the target, a cult leader's
// forced_eclipse then sets eclipsing, and an anchor mage's anchor_sever
// clears it again.
func TestKidnapChainThroughForcedEclipseAndAnchorSever(t *testing.T) {
	ctx, w := newTickContext(t, 13)
	s := w.Sites[simworld.HumanVillageA]
	require.NotNil(t, s)
	s.EclipsingPressure = 60
	s.AnchoringStrength = 40
	s.CultInfluence = 60

	kidnapper := npc.New("kidnapper", "Kidnapper", npc.CategoryCultDevotee, s.ID)
	kidnapper.Cult = npc.CultStanding{Member: true, Role: npc.CultRoleCellLeader}
	target := npc.New("target", "Target", npc.CategoryFarmer, s.ID)
	anchorMage := npc.New("anchor", "Anchor", npc.CategoryPriest, s.ID)
	w.NPCs[kidnapper.ID] = kidnapper
	w.NPCs[target.ID] = target
	w.NPCs[anchorMage.ID] = anchorMage
	for i := 0; i < 8; i++ {
		ally := npc.New(npc.ID(fmt.Sprintf("ally-%d", i)), "Ally", npc.CategoryCultDevotee, s.ID)
		ally.Cult = npc.CultStanding{Member: true}
		w.NPCs[ally.ID] = ally
	}

	attempt.Resolve(ctx, w, attempt.Attempt{
		Tick: w.Tick, Kind: attempt.KindKidnap, ActorID: kidnapper.ID, TargetID: target.ID,
		SiteID: s.ID, Visibility: attempt.VisibilityPrivate,
	})
	require.True(t, target.Status.Detained)
	assert.Equal(t, kidnapper.ID, target.Status.ByNPCID)

	attempt.Resolve(ctx, w, attempt.Attempt{
		Tick: w.Tick, Kind: attempt.KindForcedEclipse, ActorID: kidnapper.ID, TargetID: target.ID,
		SiteID: s.ID, Visibility: attempt.VisibilityPrivate,
	})
	assert.True(t, target.Status.Eclipsing)

	attempt.Resolve(ctx, w, attempt.Attempt{
		Tick: w.Tick, Kind: attempt.KindAnchorSever, ActorID: anchorMage.ID, TargetID: target.ID,
		SiteID: s.ID, Visibility: attempt.VisibilityPrivate,
	})
	assert.False(t, target.Status.Eclipsing)
}

// TestRaidBonusFromExtraBanditTipsAFailingRoll covers spec scenario 6: a
// raid that fails at the base bandit-count score succeeds once a second
// bandit's presence bumps the score by 10. Both runs start a fresh RNG
// from the same seed, so the underlying roll() draw is identical across
// the pair; only the score (and therefore the success threshold) moves.
func TestRaidBonusFromExtraBanditTipsAFailingRoll(t *testing.T) {
	runRaid := func(seed int64, extraBandits int) float64 {
		ctx, w := newTickContext(t, seed)
		s := w.Sites[simworld.HumanVillageA]
		actor := npc.New("bandit", "Bandit", npc.CategoryBandit, s.ID)
		w.NPCs[actor.ID] = actor
		for i := 0; i < extraBandits; i++ {
			extra := npc.New(npc.ID(fmt.Sprintf("bandit-%d", i)), "Bandit", npc.CategoryBandit, s.ID)
			w.NPCs[extra.ID] = extra
		}
		attempt.Resolve(ctx, w, attempt.Attempt{
			Tick: w.Tick, Kind: attempt.KindRaid, ActorID: actor.ID, SiteID: s.ID,
			Visibility: attempt.VisibilityPublic,
		})
		return s.FieldsCondition
	}

	for seed := int64(1); seed < 300; seed++ {
		baseUnchanged := runRaid(seed, 0) == 0.8
		bonusUnchanged := runRaid(seed, 1) == 0.8
		if baseUnchanged && !bonusUnchanged {
			return
		}
	}
	t.Fatal("expected at least one seed where the extra bandit turns a failing raid roll into a success")
}

// TestRumorIngestionOnReturnUpdatesRelationship covers spec scenario 4:
// a witness-later NPC who was away when a public steal happened ingests
// the site's rumor on return and gets a relationship delta toward the
// thief.
func TestRumorIngestionOnReturnUpdatesRelationship(t *testing.T) {
	ctx, w := newTickContext(t, 17)
	s := w.Sites[simworld.HumanVillageA]
	require.NotNil(t, s)
	s.FoodStock[site.FoodGrain] = []site.Lot{{Amount: 100, ProducedDay: 0}}

	thief := npc.New("thief", "Thief", npc.CategoryWanderer, s.ID)
	w.NPCs[thief.ID] = thief

	attempt.Resolve(ctx, w, attempt.Attempt{
		Tick: w.Tick, Kind: attempt.KindSteal, ActorID: thief.ID, SiteID: s.ID,
		Visibility: attempt.VisibilityPublic,
	})
	require.NotEmpty(t, s.Rumors)

	witness := npc.New("witness", "Witness Later", npc.CategoryWanderer, simworld.HumanCityPort)
	w.NPCs[witness.ID] = witness
	witness.SiteID = s.ID

	belief.IngestOnReturn(ctx.RNG, ctx.Config, witness, s, 0)

	rel, ok := witness.Relationships[thief.ID]
	require.True(t, ok)
	assert.True(t, rel.Trust <= -25 && rel.Trust >= -30)
	assert.Equal(t, 15.0, rel.Fear)
	assert.LessOrEqual(t, rel.Loyalty, 20.0)
}
