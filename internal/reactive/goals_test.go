package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/npc"
)

func TestUpdateGoalsSynthesizesGoalFromNewBelief(t *testing.T) {
	cfg := config.Default()
	n := npc.New("n1", "N", npc.CategoryWanderer, "s1")

	sig := Signals{NewBeliefPredicates: []string{"identified_cult_member"}}
	UpdateGoals(cfg, n, 5, sig)

	require.Len(t, n.Goals, 1)
	assert.Equal(t, "expose_cult", n.Goals[0].Kind)
	assert.Equal(t, cfg.Tuning.GoalPriorityFromMemory, n.Goals[0].Priority)
	assert.Equal(t, uint64(5), n.Goals[0].SpawnedTick)
}

func TestUpdateGoalsIgnoresUnrelatedBeliefPredicate(t *testing.T) {
	cfg := config.Default()
	n := npc.New("n1", "N", npc.CategoryWanderer, "s1")

	sig := Signals{NewBeliefPredicates: []string{"divine_sign"}}
	UpdateGoals(cfg, n, 5, sig)
	assert.Empty(t, n.Goals)
}

func TestUpdateGoalsSkipsDuplicateGoalKind(t *testing.T) {
	cfg := config.Default()
	n := npc.New("n1", "N", npc.CategoryWanderer, "s1")
	n.Goals = []npc.Goal{{Kind: "expose_cult", Priority: 99, SpawnedTick: 1}}

	sig := Signals{NewBeliefPredicates: []string{"identified_cult_member"}}
	UpdateGoals(cfg, n, 5, sig)

	require.Len(t, n.Goals, 1)
	assert.Equal(t, 99.0, n.Goals[0].Priority)
	assert.Equal(t, uint64(1), n.Goals[0].SpawnedTick)
}

func TestUpdateGoalsDecaysAndAbandonsOnlyAtDayBoundary(t *testing.T) {
	cfg := config.Default()
	n := npc.New("n1", "N", npc.CategoryWanderer, "s1")
	n.Goals = []npc.Goal{{Kind: "see_justice_done", Priority: cfg.Tuning.GoalAbandonThreshold + 1}}

	UpdateGoals(cfg, n, 5, Signals{})
	require.Len(t, n.Goals, 1, "no decay outside an hour-24 boundary")

	UpdateGoals(cfg, n, 24, Signals{})
	assert.Empty(t, n.Goals, "decay at the day boundary drops it below the abandon threshold")
}
