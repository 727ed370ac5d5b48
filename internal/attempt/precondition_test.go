package attempt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/worldsim/internal/npc"
	"github.com/talgya/worldsim/internal/site"
)

func TestCompareOps(t *testing.T) {
	assert.True(t, compare(1, OpLT, 2))
	assert.False(t, compare(2, OpLT, 2))
	assert.True(t, compare(2, OpLTE, 2))
	assert.True(t, compare(3, OpGT, 2))
	assert.True(t, compare(2, OpGTE, 2))
	assert.True(t, compare(2, OpEQ, 2))
	assert.False(t, compare(2, OpEQ, 3))
}

func TestAtSiteKindMatchesAnyListedKind(t *testing.T) {
	pred := AtSiteKind(site.KindSettlement, site.KindHideout)
	settlement := site.NewSettlement("s1", "S", site.CultureHuman)
	terrain := site.NewNonSettlement("t1", site.KindTerrain, "T", site.CultureHuman)
	assert.True(t, pred(Candidate{Site: settlement}))
	assert.False(t, pred(Candidate{Site: terrain}))
}

func TestHasCategoryMatchesActor(t *testing.T) {
	pred := HasCategory(npc.CategoryGuard, npc.CategoryLeader)
	guard := npc.New("g1", "G", npc.CategoryGuard, "s1")
	farmer := npc.New("f1", "F", npc.CategoryFarmer, "s1")
	assert.True(t, pred(Candidate{Actor: guard}))
	assert.False(t, pred(Candidate{Actor: farmer}))
}

func TestNotBusyRespectsBusyUntilTick(t *testing.T) {
	pred := NotBusy(10)
	n := npc.New("n1", "N", npc.CategoryFarmer, "s1")
	n.BusyUntilTick = 12
	assert.False(t, pred(Candidate{Actor: n}))
	n.BusyUntilTick = 8
	assert.True(t, pred(Candidate{Actor: n}))
}

func TestNotTravelingRequiresNoActiveTravel(t *testing.T) {
	pred := NotTraveling()
	n := npc.New("n1", "N", npc.CategoryFarmer, "s1")
	assert.True(t, pred(Candidate{Actor: n}))
	n.Travel = &npc.Travel{ToSiteID: "s2"}
	assert.False(t, pred(Candidate{Actor: n}))
}

func TestNotDetainedRequiresNotHeld(t *testing.T) {
	pred := NotDetained()
	n := npc.New("n1", "N", npc.CategoryFarmer, "s1")
	assert.True(t, pred(Candidate{Actor: n}))
	n.Status.Detained = true
	assert.False(t, pred(Candidate{Actor: n}))
}

func TestSiteConditionReadsNamedField(t *testing.T) {
	s := site.NewSettlement("s1", "S", site.CultureHuman)
	s.Hunger = 60
	pred := SiteCondition(SiteFieldHunger, OpGT, 50)
	assert.True(t, pred(Candidate{Site: s}))
}

func TestNPCConditionReadsNamedField(t *testing.T) {
	n := npc.New("n1", "N", npc.CategoryFarmer, "s1")
	n.Trauma = 40
	pred := NPCCondition(NPCFieldTrauma, OpGTE, 40)
	assert.True(t, pred(Candidate{Actor: n}))
}

func TestHasTargetRequiresNonNilTarget(t *testing.T) {
	pred := HasTarget()
	assert.False(t, pred(Candidate{}))
	assert.True(t, pred(Candidate{Target: npc.New("t1", "T", npc.CategoryFarmer, "s1")}))
}

func TestCheckRequiresEveryPredicate(t *testing.T) {
	alwaysTrue := func(c Candidate) bool { return true }
	alwaysFalse := func(c Candidate) bool { return false }
	assert.True(t, Check([]Predicate{alwaysTrue, alwaysTrue}, Candidate{}))
	assert.False(t, Check([]Predicate{alwaysTrue, alwaysFalse}, Candidate{}))
	assert.True(t, Check(nil, Candidate{}))
}
