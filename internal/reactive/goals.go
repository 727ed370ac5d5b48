package reactive

import (
	"github.com/talgya/worldsim/internal/config"
	"github.com/talgya/worldsim/internal/npc"
)

// goalDecayPerDay is the fixed daily priority decay for standing goals,
// independent of config tuning (mirrors intentDecayPerHour's shape).
const goalDecayPerDay = 4.0

// goalFromBeliefKinds maps a freshly-gained belief predicate to the
// standing goal kind it spawns. Spec.md §3 keeps goals[] a field
// distinct from plan: a goal tracks *why* an NPC is acting (it outlives
// any single plan pursuing it), while plan is the concrete step
// sequence reactive.SynthesizePlan drives.
var goalFromBeliefKinds = map[string]string{
	"witnessed_crime":        "see_justice_done",
	"identified_cult_member": "expose_cult",
}

// UpdateGoals promotes newly-gained beliefs into standing goals and
// decays/abandons existing ones once per day, per spec.md §6's
// goalPriorityFromMemory, goalAbandonThreshold, and maxActiveGoals
// tunables.
func UpdateGoals(cfg config.Config, n *npc.NPC, tick uint64, sig Signals) {
	for _, p := range sig.NewBeliefPredicates {
		kind, ok := goalFromBeliefKinds[p]
		if !ok || n.HasGoalKind(kind) {
			continue
		}
		n.AddGoal(npc.Goal{
			Kind:        kind,
			Priority:    cfg.Tuning.GoalPriorityFromMemory,
			SpawnedTick: tick,
		}, cfg.Limits.MaxActiveGoals)
	}

	if tick%24 == 0 {
		n.DecayGoals(goalDecayPerDay, cfg.Tuning.GoalAbandonThreshold)
	}
}
