package npc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/worldsim/internal/worldmap"
)

func TestNewDefaults(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	assert.True(t, n.Alive)
	assert.Equal(t, 100.0, n.HP)
	assert.Equal(t, 100.0, n.MaxHP)
	assert.Equal(t, worldmap.SiteID("site-1"), n.SiteID)
	assert.Equal(t, worldmap.SiteID("site-1"), n.HomeSiteID)
	assert.NotNil(t, n.Relationships)
	assert.NotNil(t, n.StateTriggerMemory)
	assert.NotNil(t, n.LastVisitTick)
}

func TestClampStatsClampsEverything(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.Traits.Aggression = 500
	n.Needs.Food = -20
	n.Trauma = 200
	n.Notability = -5
	n.HP = -10
	n.Emotions.Anger = 101

	n.ClampStats()

	assert.Equal(t, 100.0, n.Traits.Aggression)
	assert.Equal(t, 0.0, n.Needs.Food)
	assert.Equal(t, 100.0, n.Trauma)
	assert.Equal(t, 0.0, n.Notability)
	assert.Equal(t, 0.0, n.HP)
	assert.Equal(t, 100.0, n.Emotions.Anger)
}

func TestClampStatsCapsHPAtMaxHP(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.MaxHP = 80
	n.HP = 200
	n.ClampStats()
	assert.Equal(t, 80.0, n.HP)
}

func TestDieClearsTransientState(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.Travel = &Travel{ToSiteID: "site-2"}
	n.LocalTravel = &LocalTravel{}
	n.Plan = &Plan{GoalKind: "get_food"}

	n.Die(Death{Tick: 10, Cause: CauseStarvation})

	assert.False(t, n.Alive)
	require.NotNil(t, n.Death)
	assert.Equal(t, CauseStarvation, n.Death.Cause)
	assert.Nil(t, n.Travel)
	assert.Nil(t, n.LocalTravel)
	assert.Nil(t, n.Plan)
}

func TestDeathCauseString(t *testing.T) {
	assert.Equal(t, "murder", CauseMurder.String())
	assert.Equal(t, "starvation", CauseStarvation.String())
	assert.Equal(t, "none", CauseNone.String())
}

func TestAddRecentActionEvicts(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	for i := 0; i < 5; i++ {
		n.AddRecentAction(uint64(i), "work", 3)
	}
	require.Len(t, n.RecentActions, 3)
	assert.Equal(t, uint64(2), n.RecentActions[0].Tick)
}

func TestAddEpisodicMemoryEvictsLeastImportant(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.AddEpisodicMemory(EpisodicMemory{Content: "a", Importance: 5}, 2)
	n.AddEpisodicMemory(EpisodicMemory{Content: "b", Importance: 1}, 2)
	n.AddEpisodicMemory(EpisodicMemory{Content: "c", Importance: 10}, 2)

	require.Len(t, n.EpisodicMemory, 2)
	contents := []string{n.EpisodicMemory[0].Content, n.EpisodicMemory[1].Content}
	assert.ElementsMatch(t, []string{"a", "c"}, contents)
}

func TestAddEpisodicMemoryKeepsLowerImportanceWhenBelowCapacity(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.AddEpisodicMemory(EpisodicMemory{Content: "a", Importance: 1}, 2)
	require.Len(t, n.EpisodicMemory, 1)
}

func TestSetRelationshipRejectsNewEntryAtCapacity(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.SetRelationship("npc-2", Relationship{Trust: 10}, 1)
	n.SetRelationship("npc-3", Relationship{Trust: 20}, 1)
	assert.Len(t, n.Relationships, 1)
	_, exists := n.Relationships["npc-3"]
	assert.False(t, exists)
}

func TestSetRelationshipAllowsUpdatingExistingEntryAtCapacity(t *testing.T) {
	n := New("npc-1", "Alda", CategoryFarmer, "site-1")
	n.SetRelationship("npc-2", Relationship{Trust: 10}, 1)
	n.SetRelationship("npc-2", Relationship{Trust: 99}, 1)
	assert.Equal(t, 99.0, n.Relationships["npc-2"].Trust)
}
