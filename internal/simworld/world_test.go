package simworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/worldsim/internal/entropy"
	"github.com/talgya/worldsim/internal/npc"
)

func TestNewWorldAssemblesSixSites(t *testing.T) {
	w := NewWorld(entropy.New(1), 1)
	assert.Len(t, w.Sites, 6)
	assert.NotEmpty(t, w.NPCs)
	assert.NotNil(t, w.Map)
	assert.NotNil(t, w.Chronicle)
	assert.NotNil(t, w.Spawner)
}

func TestNewWorldIsDeterministic(t *testing.T) {
	a := NewWorld(entropy.New(7), 7)
	b := NewWorld(entropy.New(7), 7)
	require.Equal(t, len(a.NPCs), len(b.NPCs))
	for id, na := range a.NPCs {
		nb, ok := b.NPCs[id]
		require.True(t, ok)
		assert.Equal(t, na.Traits, nb.Traits)
		assert.Equal(t, na.Category, nb.Category)
	}
}

func TestSortedSiteIDsAndNPCIDsAreOrdered(t *testing.T) {
	w := NewWorld(entropy.New(1), 1)
	ids := w.SortedSiteIDs()
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
	npcIDs := w.SortedNPCIDs()
	for i := 1; i < len(npcIDs); i++ {
		assert.Less(t, npcIDs[i-1], npcIDs[i])
	}
}

func TestNPCsAtSiteFiltersToLivingResidents(t *testing.T) {
	w := NewWorld(entropy.New(1), 1)
	target := w.SortedNPCIDs()[0]
	n := w.NPCs[target]
	n.Alive = false

	residents := w.NPCsAtSite(n.SiteID)
	for _, r := range residents {
		assert.NotEqual(t, target, r.ID)
	}
}

func TestHourOfDayAndDay(t *testing.T) {
	w := NewWorld(entropy.New(1), 1)
	w.Tick = 26
	assert.Equal(t, uint64(2), w.HourOfDay())
	assert.Equal(t, 1, w.Day())
}

func TestBuildSeedNPCsIncludesBanditCell(t *testing.T) {
	sites := BuildSeedSites()
	spawner := npc.NewSpawner(entropy.New(1), 1)
	npcs := BuildSeedNPCs(spawner, sites)

	bandits := 0
	for _, n := range npcs {
		if n.SiteID == CultHideout1 {
			bandits++
			assert.True(t, n.Cult.Member)
		}
	}
	assert.Equal(t, 6, bandits)
}
